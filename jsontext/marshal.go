package jsontext

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/pretty"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
	"github.com/arloliu/bjson/internal/pool"
	"github.com/arloliu/bjson/value"
	"github.com/arloliu/bjson/view"
)

// Marshal renders v as JSON text.
//
// Object members are written in their stored order; a value that has not been
// normalized by value.Canonical may therefore produce duplicate keys.
func Marshal(v value.Value, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	bb := pool.GetTextBuffer()
	defer pool.PutTextBuffer(bb)

	if bb.B, err = appendValue(bb.B, v); err != nil {
		return nil, err
	}

	return cfg.finish(bb), nil
}

// MarshalView renders an encoded value as JSON text, reading directly from the
// document buffer. Object members come out in ascending key order.
func MarshalView(v view.View, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	bb := pool.GetTextBuffer()
	defer pool.PutTextBuffer(bb)

	if bb.B, err = appendView(bb.B, v); err != nil {
		return nil, err
	}

	return cfg.finish(bb), nil
}

// Indent reformats JSON text with the given line prefix and indentation.
// Short arrays are kept on one line. The input is assumed to be valid JSON.
func Indent(data []byte, prefix, indent string) []byte {
	opts := *pretty.DefaultOptions
	opts.Prefix = prefix
	opts.Indent = indent

	return pretty.PrettyOptions(data, &opts)
}

// finish copies the rendered text out of the pooled buffer, indenting it if configured.
func (c *Config) finish(bb *pool.ByteBuffer) []byte {
	if c.indented {
		return Indent(bb.Bytes(), c.prefix, c.indent)
	}

	return bb.Clone()
}

func appendValue(dst []byte, v value.Value) ([]byte, error) {
	var err error
	switch v.Type() {
	case format.TypeNull, format.TypeInvalid:
		return append(dst, "null"...), nil
	case format.TypeBool:
		b, _ := v.Bool()
		return strconv.AppendBool(dst, b), nil
	case format.TypeInt64:
		i, _ := v.Int64()
		return strconv.AppendInt(dst, i, 10), nil
	case format.TypeUInt64:
		u, _ := v.Uint64()
		return strconv.AppendUint(dst, u, 10), nil
	case format.TypeDouble:
		f, _ := v.Double()
		return appendDouble(dst, f)
	case format.TypeString:
		s, _ := v.Text()
		return appendString(dst, s), nil
	case format.TypeArray:
		dst = append(dst, '[')
		for i, elem := range v.Elements() {
			if i > 0 {
				dst = append(dst, ',')
			}
			if dst, err = appendValue(dst, elem); err != nil {
				return dst, fmt.Errorf("index %d: %w", i, err)
			}
		}

		return append(dst, ']'), nil
	case format.TypeObject:
		dst = append(dst, '{')
		for i, m := range v.Members() {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, m.Key)
			dst = append(dst, ':')
			if dst, err = appendValue(dst, m.Value); err != nil {
				return dst, fmt.Errorf("key %q: %w", m.Key, err)
			}
		}

		return append(dst, '}'), nil
	}

	return dst, fmt.Errorf("%w: %s", errs.ErrUnsupportedValue, v.Type())
}

func appendView(dst []byte, v view.View) ([]byte, error) {
	switch v.Type() {
	case format.TypeString:
		raw, err := v.RawText()
		if err != nil {
			return dst, err
		}

		return appendString(dst, raw), nil
	case format.TypeArray:
		dst = append(dst, '[')
		first := true
		for elem, err := range v.Elements() {
			if err != nil {
				return dst, err
			}
			if !first {
				dst = append(dst, ',')
			}
			first = false
			if dst, err = appendView(dst, elem); err != nil {
				return dst, err
			}
		}

		return append(dst, ']'), nil
	case format.TypeObject:
		dst = append(dst, '{')
		first := true
		for m, err := range v.Members() {
			if err != nil {
				return dst, err
			}
			if !first {
				dst = append(dst, ',')
			}
			first = false
			dst = appendString(dst, m.Key)
			dst = append(dst, ':')
			if dst, err = appendView(dst, m.Value); err != nil {
				return dst, err
			}
		}

		return append(dst, '}'), nil
	default:
		s, err := v.Scalar()
		if err != nil {
			return dst, err
		}

		return appendValue(dst, s)
	}
}

// appendDouble formats f so that it reads back as a Double: integral values get
// a ".0" suffix.
func appendDouble(dst []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return dst, fmt.Errorf("%w: %v has no JSON representation", errs.ErrUnsupportedValue, f)
	}

	abs := math.Abs(f)
	verb := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		verb = 'e'
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, f, verb, -1, 64)
	for _, c := range dst[start:] {
		if c == '.' || c == 'e' {
			return dst, nil
		}
	}

	return append(dst, '.', '0'), nil
}
