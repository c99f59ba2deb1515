// Package endian pins the byte order used by the bjson wire format.
//
// Format version 1 is little-endian for every multi-byte integer and float:
// container lengths, element counts, table offsets, inline scalars, and the
// storage frame header. Encoders and decoders obtain the engine from Wire()
// instead of naming binary.LittleEndian directly, so a future format version
// can switch engines in one place.
//
// # Basic Usage
//
//	engine := endian.Wire()
//	buf = engine.AppendUint32(buf, uint32(len(payload)))
//	n := engine.Uint32(buf[0:4])
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Wire returns the engine mandated by the current wire format version.
func Wire() EndianEngine {
	return binary.LittleEndian
}

// ForVersion returns the engine for the given format version, or nil if the
// version is unknown.
func ForVersion(version uint8) EndianEngine {
	switch version {
	case 1:
		return binary.LittleEndian
	default:
		return nil
	}
}
