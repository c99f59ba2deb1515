// Package frame wraps encoded documents in a checksummed, optionally compressed
// envelope for storage and transport.
//
// A frame is a 24-byte header followed by the stored payload:
//
//	+--------+---------+-------------+--------------+-------------+----------+----------+
//	| magic  | version | compression | uncompressed |   stored    | checksum | reserved |
//	| 2 bytes| 1 byte  |   1 byte    |   4 bytes    |   4 bytes   | 8 bytes  | 4 bytes  |
//	+--------+---------+-------------+--------------+-------------+----------+----------+
//
// The checksum is the xxHash64 of the uncompressed document, so it also covers
// the decompression step. Documents inside a frame are ordinary encoded values;
// Unpack returns a buffer that view.Open accepts directly.
//
//	framed, err := frame.Pack(doc, frame.WithCompression(format.CompressionZstd))
//	...
//	doc, err = frame.Unpack(framed)
package frame
