package transcode

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/arloliu/bjson/value"
)

// FromYAML decodes the first document of a YAML stream into a value.
//
// Mapping order is preserved. Non-string scalar keys are converted to their text
// form, so `1: a` becomes {"1": "a"}.
func FromYAML(data []byte) (value.Value, error) {
	var x any
	if err := yaml.UnmarshalWithOptions(data, &x, yaml.UseOrderedMap()); err != nil {
		return value.Value{}, fmt.Errorf("decode YAML: %w", err)
	}

	return fromNative(x, 0)
}

// ToYAML renders v as a YAML document with mapping keys in ascending order.
func ToYAML(v value.Value) ([]byte, error) {
	out, err := yaml.Marshal(toNative(value.Canonical(v), true))
	if err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}

	return out, nil
}
