package jsontext

import (
	"fmt"
	"strings"
	"testing"

	"github.com/arloliu/bjson/encoding"
	"github.com/arloliu/bjson/view"
)

func benchmarkJSON(n int) []byte {
	var sb strings.Builder
	sb.WriteString(`{"items":[`)
	for i := range n {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, `{"id":%d,"name":"item-%d","price":%d.25,"tags":["a","b"]}`, i, i, i)
	}
	sb.WriteString(`]}`)

	return []byte(sb.String())
}

func BenchmarkParse(b *testing.B) {
	data := benchmarkJSON(1000)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		_, _ = Parse(data)
	}
}

func BenchmarkMarshalView(b *testing.B) {
	v, err := Parse(benchmarkJSON(1000))
	if err != nil {
		b.Fatal(err)
	}
	doc, err := encoding.Encode(v)
	if err != nil {
		b.Fatal(err)
	}
	root, err := view.Open(doc)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		_, _ = MarshalView(root)
	}
}
