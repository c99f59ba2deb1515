package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
)

// Compressor compresses an encoded document before it is stored in a frame.
type Compressor interface {
	// Compress returns the compressed form of data.
	//
	// The input slice is not modified. Implementations may return data itself
	// when they do not transform it.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	// Decompress restores data to its original form.
	//
	// size is the uncompressed length recorded in the frame header. It is not
	// trusted for allocation: a size the codec cannot reach from len(data) and a
	// result of any other length are both reported as
	// errs.ErrDecompressedSizeInvalid.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
//
// All codecs in this package are stateless values and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns the Codec for the given compression type.
//
// Unknown types yield errs.ErrUnsupportedCompression.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnsupportedCompression, uint8(compressionType))
	}
}

func checkSize(algo string, out []byte, size int) ([]byte, error) {
	if len(out) != size {
		return nil, fmt.Errorf("%w: %s produced %d bytes, want %d", errs.ErrDecompressedSizeInvalid, algo, len(out), size)
	}

	return out, nil
}

// checkBound rejects a declared size that data cannot expand to at the codec's
// worst-case ratio. It runs before any output buffer is allocated.
func checkBound(algo string, data []byte, size int, maxRatio uint64) error {
	if size < 0 || uint64(size) > uint64(len(data))*maxRatio {
		return fmt.Errorf("%w: %s cannot expand %d bytes to %d", errs.ErrDecompressedSizeInvalid, algo, len(data), size)
	}

	return nil
}

// readAll drains a decompressing reader into a buffer that grows with the bytes
// actually produced, reading at most one byte past size.
func readAll(algo string, r io.Reader, compressed, size int) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, min(size, max(compressed*4, readAllMinBuffer))))
	if _, err := buf.ReadFrom(io.LimitReader(r, int64(size)+1)); err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", algo, err)
	}

	return checkSize(algo, buf.Bytes(), size)
}

const readAllMinBuffer = 64 << 10
