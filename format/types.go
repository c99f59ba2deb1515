// Package format defines the closed enumerations shared by the bjson wire format:
// value type tags and storage frame compression types.
//
// The numeric codes are part of the wire format and must never change within a
// format version.
package format

type (
	// Type is the one-byte type tag stored in front of every encoded value.
	Type uint8
	// CompressionType identifies the compression applied to a storage frame payload.
	CompressionType uint8
)

const (
	TypeInvalid Type = 0x0 // TypeInvalid is the zero value and never appears on the wire.
	TypeNull    Type = 0x1 // TypeNull represents JSON null, inline with an empty body.
	TypeBool    Type = 0x2 // TypeBool represents true/false, inline with a 1-byte body.
	TypeInt64   Type = 0x3 // TypeInt64 represents a signed 64-bit integer, inline.
	TypeUInt64  Type = 0x4 // TypeUInt64 represents an unsigned 64-bit integer, inline.
	TypeDouble  Type = 0x5 // TypeDouble represents an IEEE-754 binary64 number, inline.
	TypeString  Type = 0x6 // TypeString represents a length-prefixed UTF-8 byte string.
	TypeArray   Type = 0x7 // TypeArray represents an ordered container.
	TypeObject  Type = 0x8 // TypeObject represents a container with a sorted key table.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// IsValid reports whether t is one of the defined wire tags.
func (t Type) IsValid() bool {
	return t >= TypeNull && t <= TypeObject
}

// IsInline reports whether values of this type are stored directly in a value table slot.
func (t Type) IsInline() bool {
	return t >= TypeNull && t <= TypeDouble
}

// IsContainer reports whether t is an Array or an Object.
func (t Type) IsContainer() bool {
	return t == TypeArray || t == TypeObject
}

// IsScalar reports whether t is a valid non-container type.
func (t Type) IsScalar() bool {
	return t.IsValid() && !t.IsContainer()
}

// InlineSize returns the body size of an inline type, or -1 for indirect types.
func (t Type) InlineSize() int {
	switch t { //nolint: exhaustive
	case TypeNull:
		return 0
	case TypeBool:
		return 1
	case TypeInt64, TypeUInt64, TypeDouble:
		return 8
	default:
		return -1
	}
}

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "Null"
	case TypeBool:
		return "Bool"
	case TypeInt64:
		return "Int64"
	case TypeUInt64:
		return "UInt64"
	case TypeDouble:
		return "Double"
	case TypeString:
		return "String"
	case TypeArray:
		return "Array"
	case TypeObject:
		return "Object"
	case TypeInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive name ("none", "zstd", "s2", "lz4")
// to its CompressionType. The second result is false for unknown names.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none", "None", "NONE", "":
		return CompressionNone, true
	case "zstd", "Zstd", "ZSTD":
		return CompressionZstd, true
	case "s2", "S2":
		return CompressionS2, true
	case "lz4", "LZ4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
