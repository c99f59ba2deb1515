package section

import (
	"fmt"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
)

// FrameHeader is the fixed-size header in front of a stored document.
type FrameHeader struct {
	// Checksum is the xxHash64 of the uncompressed document.
	Checksum uint64 // byte offset 12-19
	// UncompressedSize is the document size in bytes.
	UncompressedSize uint32 // byte offset 4-7
	// StoredSize is the payload size following the header, after compression.
	StoredSize uint32 // byte offset 8-11
	// Magic must be FrameMagic.
	Magic uint16 // byte offset 0-1
	// Version is the frame layout version.
	Version uint8 // byte offset 2
	// Compression is the codec applied to the payload.
	Compression format.CompressionType // byte offset 3
}

// NewFrameHeader creates a frame header for the given compression with magic and
// version filled in. Sizes and checksum are set by the frame writer.
func NewFrameHeader(compression format.CompressionType) FrameHeader {
	return FrameHeader{
		Magic:       FrameMagic,
		Version:     FrameVersion,
		Compression: compression,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 24 bytes)
//
// Returns:
//   - error: ErrInvalidFrameHeaderSize, ErrInvalidMagicNumber, ErrInvalidFrame for an
//     unknown version or non-zero reserved bytes, ErrUnsupportedCompression
func (h *FrameHeader) Parse(data []byte) error {
	if len(data) != FrameHeaderSize {
		return fmt.Errorf("%w: got %d bytes", errs.ErrInvalidFrameHeaderSize, len(data))
	}

	h.Magic = engine.Uint16(data[0:2])
	h.Version = data[2]
	h.Compression = format.CompressionType(data[3])
	h.UncompressedSize = engine.Uint32(data[4:8])
	h.StoredSize = engine.Uint32(data[8:12])
	h.Checksum = engine.Uint64(data[12:20])

	if h.Magic != FrameMagic {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagicNumber, h.Magic)
	}
	if h.Version != FrameVersion {
		return fmt.Errorf("%w: frame version %d", errs.ErrInvalidFrame, h.Version)
	}
	if engine.Uint32(data[20:24]) != 0 {
		return fmt.Errorf("%w: reserved bytes are not zero", errs.ErrInvalidFrame)
	}
	if h.Compression.String() == "Unknown" {
		return fmt.Errorf("%w: 0x%02x", errs.ErrUnsupportedCompression, uint8(h.Compression))
	}

	return nil
}

// Bytes serializes the header into a new 24-byte slice.
func (h *FrameHeader) Bytes() []byte {
	b := make([]byte, FrameHeaderSize)
	h.WriteToSlice(b)

	return b
}

// WriteToSlice writes the header into data[0:24]. data must have room for the header.
func (h *FrameHeader) WriteToSlice(data []byte) {
	engine.PutUint16(data[0:2], h.Magic)
	data[2] = h.Version
	data[3] = byte(h.Compression)
	engine.PutUint32(data[4:8], h.UncompressedSize)
	engine.PutUint32(data[8:12], h.StoredSize)
	engine.PutUint64(data[12:20], h.Checksum)
	engine.PutUint32(data[20:24], 0)
}

// ParseFrameHeader parses a FrameHeader from the start of data.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least 24 bytes)
//
// Returns:
//   - FrameHeader: Parsed header struct
//   - error: see Parse
func ParseFrameHeader(data []byte) (FrameHeader, error) {
	if len(data) < FrameHeaderSize {
		return FrameHeader{}, fmt.Errorf("%w: got %d bytes", errs.ErrInvalidFrameHeaderSize, len(data))
	}

	h := FrameHeader{}
	if err := h.Parse(data[:FrameHeaderSize]); err != nil {
		return FrameHeader{}, err
	}

	return h, nil
}
