package section

import (
	"fmt"

	"github.com/arloliu/bjson/endian"
	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
)

var engine = endian.Wire()

// Entry locates the body of one encoded value inside a buffer.
//
// For inline scalars stored in a value table, Off points at the slot and Len is the
// type's inline size. For everything else Off and Len span the full body.
type Entry struct {
	Type format.Type
	Off  int // absolute offset of the body
	Len  int // body length in bytes
}

// End returns the absolute offset one past the body.
func (e Entry) End() int {
	return e.Off + e.Len
}

// Container is a bounds-checked Array or Object header.
type Container struct {
	Type  format.Type
	Off   int // absolute offset of the container's first byte
	Len   int // totalLength, equal to the body length
	Count int // number of elements or members
}

// ParseMarker validates a version marker byte and returns the format version.
//
// Returns:
//   - uint8: format version (always FormatVersion on success)
//   - error: *errs.CorruptError if the magic nibble is wrong, errs.ErrUnsupportedVersion
//     if the magic is right but the version is unknown
func ParseMarker(b byte) (uint8, error) {
	if b&MagicMask != MagicNibble {
		return 0, errs.Corrupt(0, "bad version marker 0x%02x", b)
	}

	version := b & VersionMask
	if version != FormatVersion {
		return version, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, version)
	}

	return version, nil
}

// RootType reads the root type tag of a document without looking at the body.
func RootType(buf []byte) (format.Type, error) {
	if len(buf) < PreambleSize {
		return format.TypeInvalid, errs.Corrupt(len(buf), "document shorter than %d-byte preamble", PreambleSize)
	}

	if _, err := ParseMarker(buf[0]); err != nil {
		return format.TypeInvalid, err
	}

	t := format.Type(buf[1])
	if !t.IsValid() {
		return format.TypeInvalid, errs.Corrupt(1, "unknown type tag 0x%02x", buf[1])
	}

	return t, nil
}

// Root returns the entry of the root value and verifies that its body spans exactly
// to the end of buf.
func Root(buf []byte) (Entry, error) {
	t, err := RootType(buf)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{Type: t, Off: PreambleSize, Len: len(buf) - PreambleSize}
	if err := CheckBody(buf, e); err != nil {
		return Entry{}, err
	}

	return e, nil
}

// CheckBody verifies that the intrinsic size of the body at e matches e.Len.
//
// Inline types must have exactly their inline size, strings must have a length prefix
// consistent with e.Len, and containers must have totalLength == e.Len with tables
// that fit inside the body.
func CheckBody(buf []byte, e Entry) error {
	if e.Off < 0 || e.Len < 0 || e.End() > len(buf) {
		return errs.Corrupt(e.Off, "body of %d bytes exceeds buffer of %d bytes", e.Len, len(buf))
	}

	switch e.Type {
	case format.TypeNull, format.TypeBool, format.TypeInt64, format.TypeUInt64, format.TypeDouble:
		if e.Len != e.Type.InlineSize() {
			return errs.Corrupt(e.Off, "%s body is %d bytes, want %d", e.Type, e.Len, e.Type.InlineSize())
		}
		if e.Type == format.TypeBool && buf[e.Off] > 1 {
			return errs.Corrupt(e.Off, "bool byte 0x%02x", buf[e.Off])
		}

		return nil
	case format.TypeString:
		_, err := StringBytes(buf, e)
		return err
	case format.TypeArray, format.TypeObject:
		_, err := OpenContainer(buf, e)
		return err
	default:
		return errs.Corrupt(e.Off, "unknown type tag 0x%02x", uint8(e.Type))
	}
}

// StringBytes returns the raw bytes of the string body at e, aliasing buf.
func StringBytes(buf []byte, e Entry) ([]byte, error) {
	if e.Len < StringHeaderSize || e.End() > len(buf) {
		return nil, errs.Corrupt(e.Off, "truncated string header")
	}

	n := uint64(engine.Uint32(buf[e.Off:]))
	if n+StringHeaderSize != uint64(e.Len) {
		return nil, errs.Corrupt(e.Off, "string length %d does not match body of %d bytes", n, e.Len)
	}

	start := e.Off + StringHeaderSize

	return buf[start:e.End():e.End()], nil
}

// OpenContainer validates the header of the Array or Object body at e.
func OpenContainer(buf []byte, e Entry) (Container, error) {
	if !e.Type.IsContainer() {
		return Container{}, errs.Corrupt(e.Off, "%s is not a container", e.Type)
	}
	if e.Len < ContainerHeaderSize || e.Off < 0 || e.End() > len(buf) {
		return Container{}, errs.Corrupt(e.Off, "truncated container header")
	}

	total := engine.Uint32(buf[e.Off:])
	count := engine.Uint32(buf[e.Off+LengthSize:])
	if uint64(total) != uint64(e.Len) {
		return Container{}, errs.Corrupt(e.Off, "container length %d does not match body of %d bytes", total, e.Len)
	}

	perEntry := uint64(ValueEntrySize)
	if e.Type == format.TypeObject {
		perEntry = ObjectEntrySize
	}
	if ContainerHeaderSize+uint64(count)*perEntry > uint64(total) {
		return Container{}, errs.Corrupt(e.Off+LengthSize, "%d entries do not fit in %d bytes", count, total)
	}

	return Container{Type: e.Type, Off: e.Off, Len: e.Len, Count: int(count)}, nil
}

// End returns the absolute offset one past the container.
func (c Container) End() int {
	return c.Off + c.Len
}

// KeyTableOffset returns the absolute offset of the key table. Only meaningful for objects.
func (c Container) KeyTableOffset() int {
	return c.Off + ContainerHeaderSize
}

// ValueTableOffset returns the absolute offset of the value table.
func (c Container) ValueTableOffset() int {
	if c.Type == format.TypeObject {
		return c.Off + ContainerHeaderSize + c.Count*KeyEntrySize
	}

	return c.Off + ContainerHeaderSize
}

// PayloadOffset returns the container-relative offset where tables end.
func (c Container) PayloadOffset() int {
	return c.ValueTableOffset() - c.Off + c.Count*ValueEntrySize
}

// Value returns the entry of element i. The caller guarantees 0 <= i < c.Count.
//
// Indirect entries are checked to lie inside the container's payload region; the
// body itself is not inspected, see CheckBody.
func (c Container) Value(buf []byte, i int) (Entry, error) {
	at := c.ValueTableOffset() + i*ValueEntrySize
	tag := format.Type(buf[at])
	slot := at + 1

	switch tag {
	case format.TypeNull, format.TypeBool, format.TypeInt64, format.TypeUInt64, format.TypeDouble:
		if tag == format.TypeBool && buf[slot] > 1 {
			return Entry{}, errs.Corrupt(slot, "bool byte 0x%02x", buf[slot])
		}

		return Entry{Type: tag, Off: slot, Len: tag.InlineSize()}, nil
	case format.TypeString, format.TypeArray, format.TypeObject:
		rel := uint64(engine.Uint32(buf[slot:]))
		n := uint64(engine.Uint32(buf[slot+LengthSize:]))
		if rel < uint64(c.PayloadOffset()) || rel+n > uint64(c.Len) {
			return Entry{}, errs.Corrupt(slot, "%s body [%d,+%d) outside container payload [%d,%d)",
				tag, rel, n, c.PayloadOffset(), c.Len)
		}

		return Entry{Type: tag, Off: c.Off + int(rel), Len: int(n)}, nil
	default:
		return Entry{}, errs.Corrupt(at, "unknown type tag 0x%02x", uint8(tag))
	}
}

// Key returns the key bytes of member i of an object, aliasing buf.
// The caller guarantees 0 <= i < c.Count.
func (c Container) Key(buf []byte, i int) ([]byte, error) {
	start, end, err := c.KeySpan(buf, i)
	if err != nil {
		return nil, err
	}

	return buf[start:end:end], nil
}

// KeySpan returns the absolute [start, end) range of the key bytes of member i.
// The caller guarantees 0 <= i < c.Count.
func (c Container) KeySpan(buf []byte, i int) (start, end int, err error) {
	at := c.KeyTableOffset() + i*KeyEntrySize
	rel := uint64(engine.Uint32(buf[at:]))
	n := uint64(engine.Uint32(buf[at+LengthSize:]))
	if rel < uint64(c.PayloadOffset()) || rel+n > uint64(c.Len) {
		return 0, 0, errs.Corrupt(at, "key bytes [%d,+%d) outside container payload [%d,%d)",
			rel, n, c.PayloadOffset(), c.Len)
	}

	start = c.Off + int(rel)

	return start, start + int(n), nil
}

// Walk reads the value table of a container in table order.
//
// Each indirect body must start at or after the end of the one before it, so a
// walk that visits every child reads each payload byte at most once, even when a
// corrupt table points several entries at the same body.
type Walk struct {
	c    Container
	next int // absolute offset where the next indirect body may start
}

// Walk starts an in-order walk over the value table of c.
func (c Container) Walk() Walk {
	return Walk{c: c, next: c.Off + c.PayloadOffset()}
}

// Value returns the entry of element i. Calls must use increasing i.
func (w *Walk) Value(buf []byte, i int) (Entry, error) {
	e, err := w.c.Value(buf, i)
	if err != nil {
		return Entry{}, err
	}
	if e.Type.IsInline() {
		return e, nil
	}
	if e.Off < w.next {
		return Entry{}, errs.Corrupt(e.Off, "%s body overlaps previous payload ending at %d", e.Type, w.next)
	}
	w.next = e.End()

	return e, nil
}

// Uint64At reads the 8-byte little-endian word at off. The caller guarantees bounds,
// which every Entry of an 8-byte inline type satisfies.
func Uint64At(buf []byte, off int) uint64 {
	return engine.Uint64(buf[off:])
}
