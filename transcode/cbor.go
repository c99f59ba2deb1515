package transcode

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/bjson/value"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("transcode: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// any-typed targets decode maps as map[string]any; maps with other key
		// types fail to decode.
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		MaxNestedLevels: maxDepth,
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("transcode: CBOR decoder initialization failed: " + err.Error())
	}
}

// FromCBOR decodes a single CBOR data item into a value.
//
// Maps must have text string keys and no duplicates. Byte strings, tags and
// big integers fail with errs.ErrUnsupportedValue.
func FromCBOR(data []byte) (value.Value, error) {
	var x any
	if err := decMode.Unmarshal(data, &x); err != nil {
		return value.Value{}, fmt.Errorf("decode CBOR: %w", err)
	}

	return fromNative(x, 0)
}

// ToCBOR encodes v as deterministic CBOR. Objects are normalized first, so
// duplicate keys resolve last-wins.
func ToCBOR(v value.Value) ([]byte, error) {
	out, err := encMode.Marshal(toNative(value.Canonical(v), false))
	if err != nil {
		return nil, fmt.Errorf("encode CBOR: %w", err)
	}

	return out, nil
}
