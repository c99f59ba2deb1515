package value

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
)

// From converts a Go-native tree into a Value.
//
// Supported inputs: nil, bool, all integer kinds, float32/float64, string, []byte (as
// string), json.Number, []any, map[string]any, map[any]any with string keys (as produced
// by YAML and CBOR decoders), Value, []Value and []Member. Map iteration order does not
// matter because encoding sorts keys.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int64(int64(t)), nil
	case int8:
		return Int64(int64(t)), nil
	case int16:
		return Int64(int64(t)), nil
	case int32:
		return Int64(int64(t)), nil
	case int64:
		return Int64(t), nil
	case uint:
		return Uint64(uint64(t)), nil
	case uint8:
		return Uint64(uint64(t)), nil
	case uint16:
		return Uint64(uint64(t)), nil
	case uint32:
		return Uint64(uint64(t)), nil
	case uint64:
		return Uint64(t), nil
	case float32:
		return Double(float64(t)), nil
	case float64:
		return Double(t), nil
	case string:
		return String(t), nil
	case []byte:
		return String(string(t)), nil
	case json.Number:
		return fromNumber(string(t))
	case []Value:
		return Array(t...), nil
	case []Member:
		return Object(t...), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := From(e)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = v
		}

		return Array(elems...), nil
	case map[string]any:
		members := make([]Member, 0, len(t))
		for k, e := range t {
			v, err := From(e)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			members = append(members, KV(k, v))
		}

		return Object(members...), nil
	case map[any]any:
		members := make([]Member, 0, len(t))
		for k, e := range t {
			key, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("%w: non-string object key %T", errs.ErrUnsupportedValue, k)
			}
			v, err := From(e)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			members = append(members, KV(key, v))
		}

		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", errs.ErrUnsupportedValue, x)
	}
}

// fromNumber picks the narrowest variant that represents s exactly:
// Int64, then UInt64, then Double.
func fromNumber(s string) (Value, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int64(i), nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint64(u), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: number %q", errs.ErrUnsupportedValue, s)
	}

	return Double(f), nil
}

// Interface converts v into a Go-native tree: nil, bool, int64, uint64, float64, string,
// []any and map[string]any. Duplicate object keys collapse last-wins.
func (v Value) Interface() any {
	switch v.Type() {
	case format.TypeNull:
		return nil
	case format.TypeBool:
		return v.bits == 1
	case format.TypeInt64:
		return int64(v.bits) //nolint:gosec
	case format.TypeUInt64:
		return v.bits
	case format.TypeDouble:
		return math.Float64frombits(v.bits)
	case format.TypeString:
		return v.str
	case format.TypeArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}

		return out
	case format.TypeObject:
		out := make(map[string]any, len(v.obj))
		for _, m := range v.obj {
			out[m.Key] = m.Value.Interface()
		}

		return out
	default:
		return nil
	}
}
