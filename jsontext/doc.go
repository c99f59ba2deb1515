// Package jsontext converts between JSON text and bjson values.
//
// Parse reads RFC 8259 JSON (optionally with comments and trailing commas) into
// a value.Value ready for encoding. Marshal renders a value.Value as JSON text,
// and MarshalView renders an encoded document or sub-document directly from its
// bytes without materializing it.
//
// # Numbers
//
// JSON numbers map onto the three numeric kinds of the data model:
//
//   - integers that fit in int64 become Int64
//   - larger non-negative integers that fit in uint64 become UInt64
//   - everything else becomes Double
//
// Doubles are always written with a fraction or exponent, so a Double survives a
// round trip through text as a Double. NaN and infinities have no JSON form and
// fail with errs.ErrUnsupportedValue.
//
// # Strings
//
// Output escapes quotes, backslashes, control characters, U+2028 and U+2029.
// Bytes that are not valid UTF-8 are written as U+FFFD.
package jsontext
