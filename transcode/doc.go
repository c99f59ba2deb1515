// Package transcode converts CBOR and YAML documents to and from the bjson value
// model.
//
// All converters share the number rules of package jsontext: integers that fit
// in int64 become Int64, larger non-negative integers become UInt64, and
// floating point numbers become Double. Inputs with no JSON-shaped equivalent,
// such as CBOR byte strings or tags, fail with errs.ErrUnsupportedValue.
//
// CBOR output uses Core Deterministic Encoding (RFC 8949 section 4.2), so equal
// values always produce identical bytes.
package transcode
