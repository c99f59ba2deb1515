package section

import (
	"math"
)

const (
	// Version marker (byte 0 of every encoded document)
	MagicMask     = 0xF0 // Mask for magic nibble (bits 4-7)
	VersionMask   = 0x0F // Mask for format version (bits 0-3)
	MagicNibble   = 0xB0 // MagicNibble identifies a bjson document.
	FormatVersion = 0x01 // FormatVersion is the only wire format version this package reads and writes.
	MarkerV1      = MagicNibble | FormatVersion

	// Frame magic number, "BJ" read as little-endian uint16
	FrameMagic   = 0x4A42
	FrameVersion = 0x01
)

// fixed sizes in bytes
const (
	MarkerSize          = 1                                 // version marker
	PreambleSize        = MarkerSize + 1                    // version marker + root type tag
	LengthSize          = 4                                 // every length and offset is a uint32
	StringHeaderSize    = LengthSize                        // string byte length prefix
	ContainerHeaderSize = 2 * LengthSize                    // totalLength + count
	KeyEntrySize        = 2 * LengthSize                    // keyOffset + keyLength
	SlotSize            = 8                                 // inline scalar or (offset, length) pair
	ValueEntrySize      = 1 + SlotSize                      // type tag + slot
	ObjectEntrySize     = KeyEntrySize + ValueEntrySize     // per-member table cost of an object
	FrameHeaderSize     = 24                                // storage frame header
	MaxLength           = math.MaxUint32                    // largest representable length or offset
	MaxArrayCount       = MaxLength / ValueEntrySize        // upper bound implied by table sizes
	MaxObjectCount      = MaxLength / ObjectEntrySize       // upper bound implied by table sizes
	EmptyContainerSize  = ContainerHeaderSize               // body size of [] and {}
	EmptyDocumentSize   = PreambleSize + EmptyContainerSize // smallest container document
)
