// Package section defines the physical layout of bjson documents and storage frames,
// and is the only place that performs offset arithmetic on encoded bytes.
//
// Every read in this package is bounds-checked. A violation is reported as an
// *errs.CorruptError (which unwraps to errs.ErrCorruptEncoding) carrying the absolute
// offset where it was detected; no function here panics on malformed input.
//
// # Document Structure
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Version marker (1 byte): magic 0xB in bits 4-7,          │
//	│                          format version in bits 0-3       │
//	├──────────────────────────────────────────────────────────┤
//	│ Root type tag (1 byte)                                   │
//	├──────────────────────────────────────────────────────────┤
//	│ Root body (spans exactly to the end of the buffer)       │
//	└──────────────────────────────────────────────────────────┘
//
// # Bodies
//
//	Type    | Body
//	--------|----------------------------------------------------------
//	Null    | empty
//	Bool    | 1 byte, 0 or 1
//	Int64   | 8 bytes, two's complement
//	UInt64  | 8 bytes
//	Double  | 8 bytes, IEEE-754 binary64 bits
//	String  | uint32 byteLength, raw bytes
//	Array   | uint32 totalLength, uint32 count, count value entries, payloads
//	Object  | uint32 totalLength, uint32 count, count key entries,
//	        | count value entries, key bytes, payloads
//
// Key entry (8 bytes):
//
//	Bytes | Field     | Type   | Description
//	------|-----------|--------|-------------------------------------------
//	0-3   | KeyOffset | uint32 | offset of key bytes from container start
//	4-7   | KeyLength | uint32 | key length in bytes
//
// Value entry (9 bytes):
//
//	Bytes | Field | Type   | Description
//	------|-------|--------|-----------------------------------------------
//	0     | Tag   | uint8  | format.Type of the element
//	1-8   | Slot  | 8 bytes| inline scalar, or uint32 offset + uint32 length
//
// Inline scalars (Null, Bool, Int64, UInt64, Double) live in the slot itself: Bool in
// its first byte, Null as all zeros. Indirect values (String, Array, Object) store the
// offset and length of their body relative to the containing container's first byte.
//
// Object key entries are sorted by strictly increasing key bytes, which allows binary
// search over the key table.
//
// # Byte Order
//
// All multi-byte integers use the engine returned by endian.Wire(), little-endian in
// format version 1.
//
// # Frame Structure
//
// A storage frame wraps one document for persistence:
//
//	Bytes  | Field            | Type   | Description
//	-------|------------------|--------|-----------------------------------
//	0-1    | Magic            | uint16 | 0x4A42
//	2      | Version          | uint8  | frame version (1)
//	3      | Compression      | uint8  | format.CompressionType
//	4-7    | UncompressedSize | uint32 | document size in bytes
//	8-11   | StoredSize       | uint32 | payload size after compression
//	12-19  | Checksum         | uint64 | xxHash64 of the uncompressed document
//	20-23  | Reserved         | uint32 | must be zero
//
// # Thread Safety
//
// All functions are pure; the types are immutable values safe for concurrent use.
package section
