package compress

// ZstdCompressor provides Zstandard compression.
//
// It gives the best ratio of the available codecs on text-heavy documents, where
// the repeated key strings of arrays of objects compress well.
//
// The implementation is selected at build time: the pure Go klauspost/compress
// encoder by default, or the cgo libzstd binding when built with the gozstd tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// A zstd block decodes to at most 128KiB and costs at least four bytes (an RLE
// block).
const zstdMaxRatio = 128 << 10 / 4
