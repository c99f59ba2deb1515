// Package bjson provides a random-access binary encoding for JSON-shaped values.
//
// An encoded document can be navigated in place: object members are found by
// binary search over a sorted key table and array elements by direct index into a
// fixed-width value table, so reading one field never decodes the rest of the
// document. Path expressions select sub-values the same way.
//
// # Core Features
//
//   - Eight value kinds: Null, Bool, Int64, UInt64, Double, String, Array, Object
//   - O(log n) object lookups and O(1) array indexing on the encoded bytes
//   - Zero-copy views that borrow the document buffer
//   - Deterministic encoding: equal values always produce identical bytes
//   - Path queries with wildcards, ranges, negative indices and recursive descent
//   - Bounds-checked reads: corrupt input yields errors, never panics
//   - JSON text, CBOR and YAML bridges, and optional compressed storage frames
//
// # Basic Usage
//
// Encoding a value tree:
//
//	import "github.com/arloliu/bjson"
//
//	doc, err := bjson.Encode(value.Object(
//	    value.KV("name", value.String("ann")),
//	    value.KV("tags", value.Array(value.String("a"), value.String("b"))),
//	))
//
// Converting JSON text:
//
//	doc, err := bjson.FromJSON([]byte(`{"name":"ann","tags":["a","b"]}`))
//
// Reading fields without decoding:
//
//	root, err := bjson.Open(doc)
//	name, ok, err := root.Get("name")
//	s, err := name.Text()
//
// Querying:
//
//	tags, err := bjson.Query(doc, "$.tags[last]")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the encoding, view,
// path and jsontext packages, simplifying the most common use cases. For
// advanced usage and fine-grained control, use those packages directly.
package bjson

import (
	"github.com/arloliu/bjson/encoding"
	"github.com/arloliu/bjson/format"
	"github.com/arloliu/bjson/jsontext"
	"github.com/arloliu/bjson/path"
	"github.com/arloliu/bjson/value"
	"github.com/arloliu/bjson/view"
)

// Encode encodes v into a new document buffer.
//
// Object members are sorted by key; duplicate keys resolve last-wins unless
// encoding.WithDuplicateKeys(value.DuplicateReject) is given.
func Encode(v value.Value, opts ...encoding.EncoderOption) ([]byte, error) {
	return encoding.Encode(v, opts...)
}

// Open returns a view of the root value of doc after checking its version marker.
// The view borrows doc, which must not be modified while the view is in use.
func Open(doc []byte, opts ...view.Option) (view.View, error) {
	return view.Open(doc, opts...)
}

// TopLevelType returns the kind of the root value of doc.
func TopLevelType(doc []byte) (format.Type, error) {
	return view.TopLevelType(doc)
}

// Decode materializes a whole document into a value tree.
func Decode(doc []byte, opts ...view.Option) (value.Value, error) {
	root, err := view.Open(doc, opts...)
	if err != nil {
		return value.Value{}, err
	}

	return root.Materialize()
}

// FromJSON parses JSON text and encodes it.
func FromJSON(text []byte, opts ...encoding.EncoderOption) ([]byte, error) {
	v, err := jsontext.Parse(text)
	if err != nil {
		return nil, err
	}

	return encoding.Encode(v, opts...)
}

// ToJSON renders a document as compact JSON text.
func ToJSON(doc []byte) ([]byte, error) {
	root, err := view.Open(doc)
	if err != nil {
		return nil, err
	}

	return jsontext.MarshalView(root)
}

// Query evaluates a path expression against doc and returns every match in
// document order. An expression that matches nothing returns nil and no error.
func Query(doc []byte, expr string, opts ...path.Option) ([]view.View, error) {
	p, err := path.Parse(expr, opts...)
	if err != nil {
		return nil, err
	}
	root, err := view.Open(doc)
	if err != nil {
		return nil, err
	}

	return p.Select(root)
}

// QueryFirst returns the first match of a path expression. ok is false when the
// expression matches nothing.
func QueryFirst(doc []byte, expr string, opts ...path.Option) (v view.View, ok bool, err error) {
	p, err := path.Parse(expr, opts...)
	if err != nil {
		return view.View{}, false, err
	}
	root, err := view.Open(doc)
	if err != nil {
		return view.View{}, false, err
	}

	return p.First(root)
}
