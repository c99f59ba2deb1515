package transcode

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
	"github.com/arloliu/bjson/value"
)

// maxDepth bounds container nesting of decoded documents.
const maxDepth = 10000

// fromNative converts the output of the CBOR and YAML decoders into a Value.
func fromNative(x any, depth int) (value.Value, error) {
	if depth > maxDepth {
		return value.Value{}, fmt.Errorf("%w: nesting deeper than %d", errs.ErrUnsupportedValue, maxDepth)
	}

	switch t := x.(type) {
	case uint64:
		if t <= math.MaxInt64 {
			return value.Int64(int64(t)), nil
		}

		return value.Uint64(t), nil
	case uint:
		return fromNative(uint64(t), depth)
	case uint8:
		return value.Int64(int64(t)), nil
	case uint16:
		return value.Int64(int64(t)), nil
	case uint32:
		return value.Int64(int64(t)), nil
	case []byte:
		return value.Value{}, fmt.Errorf("%w: byte string", errs.ErrUnsupportedValue)
	case time.Time:
		return value.String(t.Format(time.RFC3339Nano)), nil
	case []any:
		elems := make([]value.Value, len(t))
		for i, e := range t {
			v, err := fromNative(e, depth+1)
			if err != nil {
				return value.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = v
		}

		return value.Array(elems...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, strings.Compare)

		members := make([]value.Member, len(keys))
		for i, k := range keys {
			v, err := fromNative(t[k], depth+1)
			if err != nil {
				return value.Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			members[i] = value.KV(k, v)
		}

		return value.Object(members...), nil
	case yaml.MapSlice:
		members := make([]value.Member, len(t))
		for i, item := range t {
			k, err := scalarKey(item.Key)
			if err != nil {
				return value.Value{}, err
			}
			v, err := fromNative(item.Value, depth+1)
			if err != nil {
				return value.Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			members[i] = value.KV(k, v)
		}

		return value.Object(members...), nil
	case nil, bool, int, int8, int16, int32, int64, float32, float64, string:
		return value.From(t)
	default:
		return value.Value{}, fmt.Errorf("%w: %T", errs.ErrUnsupportedValue, x)
	}
}

// scalarKey renders a YAML mapping key as an object key. Scalar keys such as
// integers and booleans are written in their plain text form.
func scalarKey(k any) (string, error) {
	switch t := k.(type) {
	case string:
		return t, nil
	case nil:
		return "null", nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(t), nil
	default:
		return "", fmt.Errorf("%w: mapping key of type %T", errs.ErrUnsupportedValue, k)
	}
}

// toNative converts a canonical value into plain Go values, with objects as
// yaml.MapSlice when ordered is set and as map[string]any otherwise.
func toNative(v value.Value, ordered bool) any {
	switch v.Type() {
	case format.TypeArray:
		elems := v.Elements()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = toNative(e, ordered)
		}

		return out
	case format.TypeObject:
		members := v.Members()
		if ordered {
			out := make(yaml.MapSlice, len(members))
			for i, m := range members {
				out[i] = yaml.MapItem{Key: m.Key, Value: toNative(m.Value, ordered)}
			}

			return out
		}

		out := make(map[string]any, len(members))
		for _, m := range members {
			out[m.Key] = toNative(m.Value, ordered)
		}

		return out
	default:
		return v.Interface()
	}
}
