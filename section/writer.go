package section

import (
	"github.com/arloliu/bjson/format"
)

// PutPreamble writes the version marker and root type tag into dst[0:2].
func PutPreamble(dst []byte, root format.Type) {
	dst[0] = MarkerV1
	dst[1] = byte(root)
}

// PutContainerHeader writes totalLength and count into dst[0:8].
func PutContainerHeader(dst []byte, total, count uint32) {
	engine.PutUint32(dst[0:4], total)
	engine.PutUint32(dst[4:8], count)
}

// PutKeyEntry writes a key entry into dst[0:8].
func PutKeyEntry(dst []byte, off, length uint32) {
	engine.PutUint32(dst[0:4], off)
	engine.PutUint32(dst[4:8], length)
}

// PutInlineEntry writes a value entry holding an inline scalar into dst[0:9].
// slot carries the scalar bits: 0/1 for Bool, the two's complement or IEEE-754
// bits for numbers, zero for Null.
func PutInlineEntry(dst []byte, tag format.Type, slot uint64) {
	dst[0] = byte(tag)
	engine.PutUint64(dst[1:9], slot)
}

// PutIndirectEntry writes a value entry pointing at a body into dst[0:9].
func PutIndirectEntry(dst []byte, tag format.Type, off, length uint32) {
	dst[0] = byte(tag)
	engine.PutUint32(dst[1:5], off)
	engine.PutUint32(dst[5:9], length)
}

// PutUint32 writes v little-endian into dst[0:4].
func PutUint32(dst []byte, v uint32) {
	engine.PutUint32(dst[0:4], v)
}

// PutUint64 writes v little-endian into dst[0:8].
func PutUint64(dst []byte, v uint64) {
	engine.PutUint64(dst[0:8], v)
}
