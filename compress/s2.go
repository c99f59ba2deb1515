package compress

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/s2"
)

// s2BlockSize bounds both the blocks the writer emits and the blocks the reader
// accepts, so one forged chunk cannot claim more than this much output.
const s2BlockSize = 64 << 10

// S2Compressor provides S2 (Snappy-compatible) compression, trading some ratio
// for encode and decode speed.
//
// Output uses the S2 stream format. Its decoded length is never read from the
// input; the decoder grows its buffer with the bytes actually produced.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data as an S2 stream.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)
	w := s2.NewWriter(&buf, s2.WriterConcurrency(1), s2.WriterBlockSize(s2BlockSize))
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an S2 stream.
func (c S2Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return checkSize("s2", nil, size)
	}

	r := s2.NewReader(bytes.NewReader(data), s2.ReaderMaxBlockSize(s2BlockSize))

	return readAll("s2", r, len(data), size)
}
