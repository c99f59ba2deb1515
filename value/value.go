// Package value defines the in-memory value tree that the bjson encoder consumes and the
// navigator materializes.
//
// A Value is a closed tagged union over eight variants: Null, Bool, Int64, UInt64, Double,
// String, Array and Object. Every consumer switches exhaustively on Value.Type(); there is no
// open-ended dynamic typing.
//
// Objects are built from an ordered member slice, so a caller can express any construction
// order and even duplicate keys. The encoded form does NOT preserve that order: encoding sorts
// members by key bytes and resolves duplicates (see Canonical). Materializing an encoded object
// therefore yields its members in ascending key order.
//
// The zero Value is Null.
package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/bjson/format"
)

// Value is an immutable JSON-shaped value.
type Value struct {
	typ  format.Type
	bits uint64 // Bool (0/1), Int64, UInt64 and Double payloads
	str  string
	arr  []Value
	obj  []Member
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// KV is shorthand for building a Member.
func KV(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// Null returns the null value.
func Null() Value {
	return Value{typ: format.TypeNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	v := Value{typ: format.TypeBool}
	if b {
		v.bits = 1
	}

	return v
}

// Int64 returns a signed integer value.
func Int64(i int64) Value {
	return Value{typ: format.TypeInt64, bits: uint64(i)} //nolint:gosec
}

// Uint64 returns an unsigned integer value.
func Uint64(u uint64) Value {
	return Value{typ: format.TypeUInt64, bits: u}
}

// Double returns a floating point value.
func Double(f float64) Value {
	return Value{typ: format.TypeDouble, bits: math.Float64bits(f)}
}

// String returns a string value. The bytes are interpreted as UTF-8 but not validated here.
func String(s string) Value {
	return Value{typ: format.TypeString, str: s}
}

// Array returns an array holding elems in order. The slice is retained, not copied.
func Array(elems ...Value) Value {
	return Value{typ: format.TypeArray, arr: elems}
}

// Object returns an object holding members in construction order. The slice is retained,
// not copied. Duplicate keys are allowed here; the encoder decides how to treat them.
func Object(members ...Member) Value {
	return Value{typ: format.TypeObject, obj: members}
}

// Type returns the variant of v.
func (v Value) Type() format.Type {
	if v.typ == format.TypeInvalid {
		return format.TypeNull
	}

	return v.typ
}

// IsNull reports whether v is Null.
func (v Value) IsNull() bool {
	return v.Type() == format.TypeNull
}

// Bool returns the boolean payload; ok is false if v is not a Bool.
func (v Value) Bool() (b bool, ok bool) {
	return v.bits == 1, v.typ == format.TypeBool
}

// Int64 returns the signed integer payload; ok is false if v is not an Int64.
func (v Value) Int64() (int64, bool) {
	return int64(v.bits), v.typ == format.TypeInt64 //nolint:gosec
}

// Uint64 returns the unsigned integer payload; ok is false if v is not a UInt64.
func (v Value) Uint64() (uint64, bool) {
	return v.bits, v.typ == format.TypeUInt64
}

// Double returns the float payload; ok is false if v is not a Double.
func (v Value) Double() (float64, bool) {
	return math.Float64frombits(v.bits), v.typ == format.TypeDouble
}

// Text returns the string payload; ok is false if v is not a String.
func (v Value) Text() (string, bool) {
	return v.str, v.typ == format.TypeString
}

// Elements returns the elements of an Array, or nil for any other variant.
// The returned slice must not be modified.
func (v Value) Elements() []Value {
	return v.arr
}

// Members returns the members of an Object in construction order, or nil for any
// other variant. The returned slice must not be modified.
func (v Value) Members() []Member {
	return v.obj
}

// Len returns the number of elements of an Array or members of an Object, 0 otherwise.
func (v Value) Len() int {
	switch v.typ { //nolint: exhaustive
	case format.TypeArray:
		return len(v.arr)
	case format.TypeObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Get returns the value of the last member named key. ok is false if v is not an
// Object or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.typ != format.TypeObject {
		return Value{}, false
	}

	for i := len(v.obj) - 1; i >= 0; i-- {
		if v.obj[i].Key == key {
			return v.obj[i].Value, true
		}
	}

	return Value{}, false
}

// Index returns the array element at i. Negative indices count from the end.
// ok is false if v is not an Array or i is out of range.
func (v Value) Index(i int) (Value, bool) {
	if v.typ != format.TypeArray {
		return Value{}, false
	}

	if i < 0 {
		i += len(v.arr)
	}
	if i < 0 || i >= len(v.arr) {
		return Value{}, false
	}

	return v.arr[i], true
}

// String returns a compact JSON-like rendering for debugging and test output.
// Use the jsontext package for standards-compliant JSON text.
func (v Value) String() string {
	var sb strings.Builder
	v.writeDebug(&sb)

	return sb.String()
}

func (v Value) writeDebug(sb *strings.Builder) {
	switch v.Type() {
	case format.TypeNull:
		sb.WriteString("null")
	case format.TypeBool:
		b, _ := v.Bool()
		sb.WriteString(strconv.FormatBool(b))
	case format.TypeInt64:
		i, _ := v.Int64()
		sb.WriteString(strconv.FormatInt(i, 10))
	case format.TypeUInt64:
		sb.WriteString(strconv.FormatUint(v.bits, 10))
	case format.TypeDouble:
		f, _ := v.Double()
		sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case format.TypeString:
		sb.WriteString(strconv.Quote(v.str))
	case format.TypeArray:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.writeDebug(sb)
		}
		sb.WriteByte(']')
	case format.TypeObject:
		sb.WriteByte('{')
		for i, m := range v.obj {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(m.Key))
			sb.WriteByte(':')
			m.Value.writeDebug(sb)
		}
		sb.WriteByte('}')
	case format.TypeInvalid:
		sb.WriteString("<invalid>")
	}
}
