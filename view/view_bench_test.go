package view

import (
	"strconv"
	"testing"

	"github.com/arloliu/bjson/encoding"
	"github.com/arloliu/bjson/value"
)

func benchView(b *testing.B, n int) View {
	b.Helper()

	members := make([]value.Member, n)
	elems := make([]value.Value, n)
	for i := range n {
		members[i] = value.KV("key_"+strconv.Itoa(i), value.Int64(int64(i)))
		elems[i] = value.String("elem_" + strconv.Itoa(i))
	}

	doc, err := encoding.Encode(value.Object(
		value.KV("obj", value.Object(members...)),
		value.KV("arr", value.Array(elems...)),
	))
	if err != nil {
		b.Fatal(err)
	}

	root, err := Open(doc)
	if err != nil {
		b.Fatal(err)
	}

	return root
}

func BenchmarkGet(b *testing.B) {
	for _, n := range []int{16, 1024, 65536} {
		root := benchView(b, n)
		obj, _, _ := root.Get("obj")
		key := "key_" + strconv.Itoa(n/2)

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, ok, err := obj.Get(key); err != nil || !ok {
					b.Fatal("lookup failed")
				}
			}
		})
	}
}

func BenchmarkIndex(b *testing.B) {
	root := benchView(b, 65536)
	arr, _, _ := root.Get("arr")

	b.ReportAllocs()
	i := 0
	for b.Loop() {
		if _, ok, err := arr.Index(i & 0xFFFF); err != nil || !ok {
			b.Fatal("index failed")
		}
		i++
	}
}

func BenchmarkMaterialize(b *testing.B) {
	root := benchView(b, 1024)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := root.Materialize(); err != nil {
			b.Fatal(err)
		}
	}
}
