package frame

import (
	"fmt"

	"github.com/arloliu/bjson/compress"
	"github.com/arloliu/bjson/endian"
	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/internal/hash"
	"github.com/arloliu/bjson/internal/options"
	"github.com/arloliu/bjson/internal/pool"
	"github.com/arloliu/bjson/section"
)

// Pack wraps an encoded document in a frame.
//
// doc must start with a supported version marker; its body is not otherwise
// validated. The returned slice is newly allocated.
func Pack(doc []byte, opts ...Option) ([]byte, error) {
	cfg, err := options.Build(newConfig(), opts...)
	if err != nil {
		return nil, err
	}
	if _, err := section.RootType(doc); err != nil {
		return nil, err
	}
	if uint64(len(doc)) > section.MaxLength {
		return nil, fmt.Errorf("%w: document of %d bytes", errs.ErrValueTooLarge, len(doc))
	}

	codec, err := compress.CreateCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Compress(doc)
	if err != nil {
		return nil, err
	}
	if uint64(len(payload)) > section.MaxLength {
		return nil, fmt.Errorf("%w: compressed payload of %d bytes", errs.ErrValueTooLarge, len(payload))
	}

	header := section.NewFrameHeader(cfg.compression)
	header.UncompressedSize = uint32(len(doc)) //nolint: gosec
	header.StoredSize = uint32(len(payload))   //nolint: gosec
	header.Checksum = hash.Sum(doc)

	bb := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(bb)

	bb.Grow(section.FrameHeaderSize + len(payload))
	bb.B = bb.B[:section.FrameHeaderSize]
	header.WriteToSlice(bb.B)
	bb.MustWrite(payload)

	return bb.Clone(), nil
}

// Unpack verifies a frame and returns the document it carries.
//
// The frame must be exactly header plus stored payload. Uncompressed frames
// return a sub-slice of data; compressed frames return a new buffer.
//
// Returns:
//   - errs.ErrInvalidFrame and the header errors of section.ParseFrameHeader for
//     malformed envelopes
//   - errs.ErrDecompressedSizeInvalid when the payload inflates to the wrong size
//   - errs.ErrChecksumMismatch when the document does not match its checksum
//   - the marker errors of section.RootType when the payload is not a document
func Unpack(data []byte) ([]byte, error) {
	header, err := section.ParseFrameHeader(data)
	if err != nil {
		return nil, err
	}

	payload := data[section.FrameHeaderSize:]
	if uint64(len(payload)) != uint64(header.StoredSize) {
		return nil, fmt.Errorf("%w: stored size %d, payload has %d bytes", errs.ErrInvalidFrame, header.StoredSize, len(payload))
	}

	codec, err := compress.CreateCodec(header.Compression)
	if err != nil {
		return nil, err
	}
	doc, err := codec.Decompress(payload, int(header.UncompressedSize))
	if err != nil {
		return nil, err
	}

	if sum := hash.Sum(doc); sum != header.Checksum {
		return nil, fmt.Errorf("%w: got 0x%016x, want 0x%016x", errs.ErrChecksumMismatch, sum, header.Checksum)
	}
	if _, err := section.RootType(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// IsFrame reports whether data starts with the frame magic number. Encoded
// documents never do, since their first byte is a version marker.
func IsFrame(data []byte) bool {
	return len(data) >= 2 && endian.Wire().Uint16(data[:2]) == section.FrameMagic
}
