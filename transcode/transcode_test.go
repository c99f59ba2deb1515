package transcode

import (
	"math"
	"testing"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleValue() value.Value {
	return value.Object(
		value.KV("name", value.String("sensor-7")),
		value.KV("enabled", value.Bool(true)),
		value.KV("offset", value.Int64(-42)),
		value.KV("serial", value.Uint64(math.MaxUint64)),
		value.KV("gain", value.Double(1.5)),
		value.KV("scale", value.Double(3)),
		value.KV("labels", value.Array(value.String("a"), value.Null(), value.Int64(7))),
		value.KV("limits", value.Object(
			value.KV("max", value.Int64(100)),
			value.KV("min", value.Double(-0.125)),
		)),
		value.KV("empty", value.Object()),
	)
}

// =============================================================================
// CBOR
// =============================================================================

func TestCBOR_RoundTrip(t *testing.T) {
	v := sampleValue()

	data, err := ToCBOR(v)
	require.NoError(t, err)

	back, err := FromCBOR(data)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Canonical(v), back), "got %s", back)
}

func TestCBOR_Deterministic(t *testing.T) {
	a, err := ToCBOR(value.Object(value.KV("x", value.Int64(1)), value.KV("a", value.Int64(2))))
	require.NoError(t, err)
	b, err := ToCBOR(value.Object(value.KV("a", value.Int64(2)), value.KV("x", value.Int64(1))))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	data, err := ToCBOR(value.Object(value.KV("a", value.Int64(1))))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa1, 0x61, 'a', 0x01}, data)
}

func TestCBOR_DuplicatesLastWins(t *testing.T) {
	data, err := ToCBOR(value.Object(value.KV("a", value.Int64(1)), value.KV("a", value.Int64(2))))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa1, 0x61, 'a', 0x02}, data)
}

func TestCBOR_Integers(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want value.Value
	}{
		{"small unsigned", []byte{0x18, 0x64}, value.Int64(100)},
		{"negative", []byte{0x38, 0x63}, value.Int64(-100)},
		{"max int64", []byte{0x1b, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, value.Int64(math.MaxInt64)},
		{"above int64", []byte{0x1b, 0x80, 0, 0, 0, 0, 0, 0, 0}, value.Uint64(1 << 63)},
		{"half float", []byte{0xf9, 0x3e, 0x00}, value.Double(1.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromCBOR(tt.data)
			require.NoError(t, err)
			assert.True(t, value.Equal(tt.want, v), "got %s", v)
		})
	}
}

func TestFromCBOR_Errors(t *testing.T) {
	t.Run("byte string", func(t *testing.T) {
		_, err := FromCBOR([]byte{0x42, 0x01, 0x02})
		require.ErrorIs(t, err, errs.ErrUnsupportedValue)
	})

	t.Run("bignum", func(t *testing.T) {
		_, err := FromCBOR([]byte{0xc2, 0x49, 0x01, 0, 0, 0, 0, 0, 0, 0, 0})
		require.ErrorIs(t, err, errs.ErrUnsupportedValue)
	})

	t.Run("integer key", func(t *testing.T) {
		_, err := FromCBOR([]byte{0xa1, 0x01, 0x01})
		require.Error(t, err)
	})

	t.Run("duplicate key", func(t *testing.T) {
		_, err := FromCBOR([]byte{0xa2, 0x61, 'a', 0x01, 0x61, 'a', 0x02})
		require.Error(t, err)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := FromCBOR([]byte{0x82, 0x01})
		require.Error(t, err)
	})
}

// =============================================================================
// YAML
// =============================================================================

const sampleYAML = `
name: demo
count: 3
big: 18446744073709551615
ratio: 0.25
tags: [a, b]
nested:
  z: null
  1: one
  true: ok
`

func TestFromYAML(t *testing.T) {
	v, err := FromYAML([]byte(sampleYAML))
	require.NoError(t, err)

	want := value.Object(
		value.KV("name", value.String("demo")),
		value.KV("count", value.Int64(3)),
		value.KV("big", value.Uint64(math.MaxUint64)),
		value.KV("ratio", value.Double(0.25)),
		value.KV("tags", value.Array(value.String("a"), value.String("b"))),
		value.KV("nested", value.Object(
			value.KV("z", value.Null()),
			value.KV("1", value.String("one")),
			value.KV("true", value.String("ok")),
		)),
	)
	assert.True(t, value.Equal(want, v), "got %s", v)
}

func TestFromYAML_Errors(t *testing.T) {
	_, err := FromYAML([]byte("a: [1, 2"))
	require.Error(t, err)

	_, err = FromYAML([]byte("? [1, 2]\n: x\n"))
	require.Error(t, err)
}

func TestToYAML(t *testing.T) {
	out, err := ToYAML(value.Object(
		value.KV("b", value.Int64(1)),
		value.KV("a", value.String("x")),
	))
	require.NoError(t, err)
	assert.Equal(t, "a: x\nb: 1\n", string(out))
}

func TestYAML_RoundTrip(t *testing.T) {
	v := value.Object(
		value.KV("service", value.String("api")),
		value.KV("replicas", value.Int64(3)),
		value.KV("weight", value.Double(0.75)),
		value.KV("ports", value.Array(value.Int64(80), value.Int64(443))),
		value.KV("env", value.Object(
			value.KV("MODE", value.String("prod")),
			value.KV("DEBUG", value.Bool(false)),
		)),
	)

	out, err := ToYAML(v)
	require.NoError(t, err)

	back, err := FromYAML(out)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Canonical(v), back), "got %s from\n%s", back, out)
}
