package jsontext

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/value"
)

// MaxDepth is the deepest container nesting Parse accepts.
const MaxDepth = 10000

// Parse parses a JSON document into a value.
//
// Object members keep their textual order, duplicates included; the encoder
// applies its duplicate key policy when the value is encoded.
//
// Returns errs.ErrInvalidJSON for malformed input, trailing garbage, numbers out
// of double range, or nesting deeper than MaxDepth.
func Parse(data []byte, opts ...Option) (value.Value, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return value.Value{}, err
	}
	if cfg.comments {
		data = jsonc.ToJSON(data)
	}
	if !gjson.ValidBytes(data) {
		return value.Value{}, fmt.Errorf("%w: malformed document", errs.ErrInvalidJSON)
	}

	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return value.Value{}, fmt.Errorf("%w: %w", errs.ErrInvalidJSON, err)
	}

	return parseValue(dataType, raw, 0)
}

func parseValue(dataType jsonparser.ValueType, data []byte, depth int) (value.Value, error) {
	switch dataType {
	case jsonparser.Null:
		return value.Null(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %w", errs.ErrInvalidJSON, err)
		}

		return value.Bool(b), nil
	case jsonparser.Number:
		return parseNumber(data)
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %w", errs.ErrInvalidJSON, err)
		}

		return value.String(s), nil
	case jsonparser.Array:
		return parseArray(data, depth+1)
	case jsonparser.Object:
		return parseObject(data, depth+1)
	case jsonparser.NotExist, jsonparser.Unknown:
	}

	return value.Value{}, fmt.Errorf("%w: unexpected %s value", errs.ErrInvalidJSON, dataType)
}

func parseNumber(data []byte) (value.Value, error) {
	if i, err := jsonparser.ParseInt(data); err == nil {
		return value.Int64(i), nil
	} else if errors.Is(err, jsonparser.OverflowIntegerError) && data[0] != '-' {
		if u, err := strconv.ParseUint(string(data), 10, 64); err == nil {
			return value.Uint64(u), nil
		}
	}

	// if it's not an integer or too big for uint64, parse it as a floating point number
	f, err := jsonparser.ParseFloat(data)
	if err != nil {
		return value.Value{}, fmt.Errorf("%w: number %q: %w", errs.ErrInvalidJSON, data, err)
	}

	return value.Double(f), nil
}

func parseArray(data []byte, depth int) (value.Value, error) {
	if depth > MaxDepth {
		return value.Value{}, fmt.Errorf("%w: nesting deeper than %d", errs.ErrInvalidJSON, MaxDepth)
	}

	var elems []value.Value
	var perr error
	_, err := jsonparser.ArrayEach(data, func(raw []byte, dataType jsonparser.ValueType, _ int, err error) {
		if perr != nil {
			return
		}
		if err != nil {
			perr = fmt.Errorf("%w: %w", errs.ErrInvalidJSON, err)
			return
		}

		v, err := parseValue(dataType, raw, depth)
		if err != nil {
			perr = err
			return
		}
		elems = append(elems, v)
	})
	if perr != nil {
		return value.Value{}, perr
	}
	if err != nil {
		return value.Value{}, fmt.Errorf("%w: %w", errs.ErrInvalidJSON, err)
	}

	return value.Array(elems...), nil
}

func parseObject(data []byte, depth int) (value.Value, error) {
	if depth > MaxDepth {
		return value.Value{}, fmt.Errorf("%w: nesting deeper than %d", errs.ErrInvalidJSON, MaxDepth)
	}

	var members []value.Member
	err := jsonparser.ObjectEach(data, func(key []byte, raw []byte, dataType jsonparser.ValueType, _ int) error {
		v, err := parseValue(dataType, raw, depth)
		if err != nil {
			return err
		}
		// key aliases a scratch buffer inside jsonparser when it was unescaped
		members = append(members, value.KV(string(key), v))

		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrInvalidJSON) {
			return value.Value{}, err
		}

		return value.Value{}, fmt.Errorf("%w: %w", errs.ErrInvalidJSON, err)
	}

	return value.Object(members...), nil
}
