// Package compress provides the compression codecs used by storage frames.
//
// An encoded bjson document is already random-access and needs no decoding
// step, so compression is optional and applies only to whole documents at rest
// or on the wire (see package frame). Four algorithms are supported:
//
//   - None: no compression, the document is stored as is
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte, size int) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Decompress receives the uncompressed size recorded in the frame header and
// rejects payloads that decode to any other length. The header is input like
// the payload, so the size is only trusted for allocation once it is reachable
// from the payload length: LZ4 and Zstd check it against their worst-case
// expansion ratio, and S2 streams into a buffer that grows with the bytes
// actually decoded.
//
// # Algorithm Selection
//
// | Workload               | Recommended | Reason                         |
// |------------------------|-------------|--------------------------------|
// | Archival / cold data   | Zstd        | Best compression ratio         |
// | Request/response cache | S2          | Balanced speed and compression |
// | Read-heavy, hot path   | LZ4         | Fastest decompression          |
// | Memory-mapped access   | None        | Frame payload is the document  |
//
// # Build Tags
//
// Zstd uses the pure Go github.com/klauspost/compress/zstd by default. Building
// with -tags gozstd (and cgo enabled) switches to the libzstd binding
// github.com/valyala/gozstd. Both produce standard zstd frames and can read each
// other's output.
//
// # Thread Safety
//
// All codecs are stateless values and may be shared across goroutines. Internal
// encoder and decoder state is pooled.
package compress
