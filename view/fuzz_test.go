package view

import (
	"testing"

	"github.com/arloliu/bjson/encoding"
	"github.com/arloliu/bjson/value"
)

// walk touches every reachable value through the public API. It must never panic,
// whatever the input bytes, and it visits each payload byte at most once.
func walk(v View) {
	_, _ = v.Scalar()
	_ = v.Bytes()

	n, err := v.Len()
	if err != nil {
		return
	}

	_, _, _ = v.Index(-1)
	_, _, _ = v.Index(n)
	_, _, _ = v.Get("a")
	for m, err := range v.Members() {
		if err != nil {
			break
		}
		walk(m.Value)
	}
	for elem, err := range v.Elements() {
		if err != nil {
			break
		}
		walk(elem)
	}
}

func FuzzOpen(f *testing.F) {
	seeds := []value.Value{
		value.Null(),
		value.String("seed"),
		value.Array(value.Int64(1), value.String("two"), value.Array()),
		value.Object(
			value.KV("a", value.Object(value.KV("b", value.Array(value.Double(1.5), value.Bool(true))))),
			value.KV("c", value.Uint64(7)),
		),
	}
	for _, s := range seeds {
		doc, err := encoding.Encode(s)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(doc)
	}
	f.Add([]byte{0xB1, 0x07, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, strict := range []bool{false, true} {
			root, err := Open(data, WithStrictUTF8(strict))
			if err != nil {
				return
			}

			if root.Validate() == nil {
				got, err := root.Materialize()
				if err != nil {
					t.Fatalf("Validate passed but Materialize failed: %v", err)
				}
				if _, err := root.Standalone(); err != nil {
					t.Fatalf("Standalone failed on a valid document: %v", err)
				}

				// a valid document re-encodes to itself
				doc, err := encoding.Encode(got)
				if err != nil {
					t.Fatalf("re-encode failed: %v", err)
				}
				again, err := Open(doc)
				if err != nil {
					t.Fatalf("re-open failed: %v", err)
				}
				if eq, err := root.Equal(again); err != nil || !eq {
					t.Fatalf("re-encoded document differs: eq=%v err=%v", eq, err)
				}
			}
			walk(root)
		}
	})
}
