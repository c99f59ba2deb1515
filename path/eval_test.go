package path

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bjson/encoding"
	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/internal/testutil"
	"github.com/arloliu/bjson/value"
	"github.com/arloliu/bjson/view"
)

func openValue(t *testing.T, v value.Value) view.View {
	t.Helper()

	doc, err := encoding.Encode(v)
	require.NoError(t, err)

	root, err := view.Open(doc)
	require.NoError(t, err)

	return root
}

// render evaluates src against root and renders every match.
func render(t *testing.T, root view.View, src string, opts ...Option) []string {
	t.Helper()

	expr, err := Parse(src, opts...)
	require.NoError(t, err)

	matches, err := expr.Select(root)
	require.NoError(t, err)

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.String())
	}

	return out
}

// exampleDocument is {"a": {"b": 1, "c": 2}, "d": [1, 2, 3]}.
func exampleDocument() value.Value {
	return value.Object(
		value.KV("a", value.Object(value.KV("b", value.Int64(1)), value.KV("c", value.Int64(2)))),
		value.KV("d", value.Array(value.Int64(1), value.Int64(2), value.Int64(3))),
	)
}

func TestEvalBasics(t *testing.T) {
	root := openValue(t, exampleDocument())

	tests := []struct {
		src  string
		want []string
	}{
		{"$", []string{`{"a":{"b":1,"c":2},"d":[1,2,3]}`}},
		{".a.b", []string{"1"}},
		{"$.a.b", []string{"1"}},
		{".d[1]", []string{"2"}},
		{".d[*]", []string{"1", "2", "3"}},
		{".d.*", []string{"1", "2", "3"}},
		{"**.b", []string{"1"}},
		{"..b", []string{"1"}},
		{".x", []string{}},
		{".a.x.y", []string{}},
		{".a[0]", []string{}},
		{".d.b", []string{}},
		{".a.b.c", []string{}},
		{".a.b[*]", []string{}},
		{"[*]", []string{`{"b":1,"c":2}`, "[1,2,3]"}},
		{".a[*]", []string{"1", "2"}},
		{`["a"]["b"]`, []string{"1"}},
		{`."a"."c"`, []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, render(t, root, tt.src))
		})
	}
}

func TestEvalSubscripts(t *testing.T) {
	root := openValue(t, value.Array(value.Int64(0), value.Int64(1), value.Int64(2), value.Int64(3), value.Int64(4)))

	tests := []struct {
		src  string
		want []string
	}{
		{"[0]", []string{"0"}},
		{"[4]", []string{"4"}},
		{"[5]", []string{}},
		{"[-1]", []string{"4"}},
		{"[-5]", []string{"0"}},
		{"[-6]", []string{}},
		{"[last]", []string{"4"}},
		{"[last-1]", []string{"3"}},
		{"[last-4]", []string{"0"}},
		{"[last-5]", []string{}},
		{"[1 to 3]", []string{"1", "2", "3"}},
		{"[3 to 1]", []string{"1", "2", "3"}},
		{"[3 to 100]", []string{"3", "4"}},
		{"[-100 to 0]", []string{"0"}},
		{"[last-1 to last]", []string{"3", "4"}},
		{"[7 to 9]", []string{}},
		{"[2, 0, 2]", []string{"2", "0", "2"}},
		{"[last, 0 to 1, -2]", []string{"4", "0", "1", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, render(t, root, tt.src))
		})
	}

	empty := openValue(t, value.Array())
	require.Empty(t, render(t, empty, "[0 to last]"))
	require.Empty(t, render(t, empty, "[last]"))
}

func TestEvalRecursiveDescent(t *testing.T) {
	t.Run("includes the starting node in pre-order", func(t *testing.T) {
		root := openValue(t, exampleDocument())
		got := render(t, root, "**")
		require.Equal(t, []string{
			`{"a":{"b":1,"c":2},"d":[1,2,3]}`,
			`{"b":1,"c":2}`, "1", "2",
			"[1,2,3]", "1", "2", "3",
		}, got)
	})

	t.Run("matches at every depth", func(t *testing.T) {
		root := openValue(t, value.Object(
			value.KV("b", value.Int64(1)),
			value.KV("x", value.Object(value.KV("b", value.Object(value.KV("b", value.Int64(2)))))),
			value.KV("y", value.Array(value.Object(value.KV("b", value.Int64(3))))),
		))
		require.Equal(t, []string{"1", `{"b":2}`, "2", "3"}, render(t, root, "**.b"))
		require.Equal(t, []string{"2"}, render(t, root, ".x**.b.b"))
	})

	t.Run("descent then subscript", func(t *testing.T) {
		root := openValue(t, value.Object(
			value.KV("a", value.Array(value.Int64(1), value.Array(value.Int64(2)))),
		))
		require.Equal(t, []string{"1", "2"}, render(t, root, "**[0]"))
		require.Equal(t, []string{"[2]", "2"}, render(t, root, "**[last]"))
	})
}

func TestEvalLax(t *testing.T) {
	root := openValue(t, value.Object(
		value.KV("items", value.Array(
			value.Object(value.KV("id", value.Int64(1))),
			value.Object(value.KV("id", value.Int64(2))),
			value.Array(value.Object(value.KV("id", value.Int64(3)))),
		)),
		value.KV("one", value.Object(value.KV("id", value.Int64(9)))),
		value.KV("num", value.Int64(5)),
	))

	tests := []struct {
		src    string
		strict []string
		lax    []string
	}{
		{".items.id", []string{}, []string{"1", "2", "3"}},
		{".one[0].id", []string{}, []string{"9"}},
		{".one[last]", []string{}, []string{`{"id":9}`}},
		{".one[0, last]", []string{}, []string{`{"id":9}`}},
		{".one[1]", []string{}, []string{}},
		{".num[*]", []string{}, []string{"5"}},
		{".num[-1]", []string{}, []string{"5"}},
		{"**.id", []string{"1", "2", "3", "9"}, []string{"1", "2", "3", "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.strict, render(t, root, tt.src))
			require.Equal(t, tt.lax, render(t, root, tt.src, WithLax(true)))
		})
	}
}

func TestEvalHelpers(t *testing.T) {
	root := openValue(t, exampleDocument())
	expr := MustParse(".d[*]")

	n, err := expr.Count(root)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	first, ok, err := expr.First(root)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", first.String())

	ok, err = expr.Exists(root)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = MustParse(".nope").Exists(root)
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = MustParse(".nope").First(root)
	require.NoError(t, err)
	require.False(t, ok)

	// early termination
	seen := 0
	for range MustParse("**").Eval(root) {
		seen++
		if seen == 2 {
			break
		}
	}
	require.Equal(t, 2, seen)

	// re-evaluation yields the same matches
	a, err := expr.Select(root)
	require.NoError(t, err)
	b, err := expr.Select(root)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEvalCorruptDocument(t *testing.T) {
	doc, err := encoding.Encode(value.Object(value.KV("a", value.Object(value.KV("b", value.Int64(1))))))
	require.NoError(t, err)

	root, err := view.Open(doc)
	require.NoError(t, err)
	inner, ok, err := root.Get("a")
	require.NoError(t, err)
	require.True(t, ok)

	doc[inner.Offset()]++ // inner totalLength no longer matches

	for _, src := range []string{".a.b", "**", ".a[*]"} {
		t.Run(src, func(t *testing.T) {
			_, err := MustParse(src).Select(root)
			require.ErrorIs(t, err, errs.ErrCorruptEncoding)

			_, err = MustParse(src).Count(root)
			require.ErrorIs(t, err, errs.ErrCorruptEncoding)
		})
	}
}

func TestEvalItemMethods(t *testing.T) {
	root := openValue(t, exampleDocument())

	tests := []struct {
		src  string
		want []string
	}{
		{"$.d.size()", []string{"3"}},
		{"$.*.size()", []string{"1", "3"}},
		{"$.a.b.type()", []string{`"Int64"`}},
		{"$.type()", []string{`"Object"`}},
		{"$.d[*].count()", []string{"3"}},
		{"**.count()", []string{"8"}},
		{"$.count()", []string{"1"}},
		{"$.nope.count()", []string{"0"}},
		{"$.nope.size()", []string{}},
		{"$.d[-0]", []string{"1"}},
		{"$.d[-0 to 1]", []string{"1", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, render(t, root, tt.src))
		})
	}

	t.Run("results are standalone documents", func(t *testing.T) {
		size, ok, err := MustParse("$.d.size()").First(root)
		require.NoError(t, err)
		require.True(t, ok)
		n, err := size.Int64()
		require.NoError(t, err)
		require.Equal(t, int64(3), n)
		require.NoError(t, size.Validate())
	})
}

func TestEvalAliasedPayloads(t *testing.T) {
	root, err := view.Open(testutil.AliasedArrays(64))
	require.NoError(t, err)

	tests := []struct {
		src  string
		opts []Option
	}{
		{"**", nil},
		{"..x", nil},
		{strings.Repeat("[*]", 64), nil},
		{".x", []Option{WithLax(true)}},
		{"**.count()", nil},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := MustParse(tt.src, tt.opts...).Count(root)
			require.ErrorIs(t, err, errs.ErrCorruptEncoding)
		})
	}

	// subscripts read single elements and never walk a whole table
	n, err := MustParse(strings.Repeat("[0]", 64)).Count(root)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestEvalConcurrent(t *testing.T) {
	root := openValue(t, exampleDocument())
	expr := MustParse("**")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				n, err := expr.Count(root)
				if err != nil || n != 8 {
					t.Errorf("Count = %d, %v", n, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func mustFrom(t *testing.T, x any) value.Value {
	t.Helper()

	v, err := value.From(x)
	require.NoError(t, err)

	return v
}
