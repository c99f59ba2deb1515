// Package encoding converts value trees into bjson documents.
//
// # Encoding Strategy
//
// Encoding runs in two passes over the value tree:
//
//  1. Plan: sort and deduplicate the members of every object by key bytes, validate
//     strings when strict UTF-8 is enabled, and compute every body size bottom-up.
//  2. Emit: allocate one exactly-sized buffer and write headers, key tables, value
//     tables, key bytes and payloads at their precomputed offsets.
//
// No byte of the output is left uninitialized and no buffer is grown during emit, so
// the same value always produces identical bytes.
//
// # Key Order
//
// Object members are stored in ascending byte order of their keys, NOT in construction
// order. Among duplicate keys the last one in construction order wins, unless the
// encoder is configured with value.DuplicateReject:
//
//	enc, _ := encoding.NewEncoder(encoding.WithDuplicateKeys(value.DuplicateReject))
//	_, err := enc.Encode(value.Object(value.KV("a", value.Null()), value.KV("a", value.Null())))
//	// errors.Is(err, errs.ErrDuplicateKey) == true
//
// # Basic Usage
//
//	doc, err := encoding.Encode(value.Object(
//	    value.KV("name", value.String("bjson")),
//	    value.KV("tags", value.Array(value.String("binary"), value.String("json"))),
//	))
//
// # Thread Safety
//
// An Encoder holds only immutable configuration after construction and is safe for
// concurrent use.
package encoding
