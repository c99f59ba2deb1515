package encoding

import (
	"fmt"

	"github.com/arloliu/bjson/internal/options"
	"github.com/arloliu/bjson/value"
)

// EncoderConfig holds the encoder policy settings.
type EncoderConfig struct {
	duplicates value.DuplicatePolicy
	strictUTF8 bool
}

// NewEncoderConfig returns the default configuration: duplicate keys resolve
// last-wins and strings are not validated.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		duplicates: value.DuplicateLastWins,
	}
}

// Duplicates returns the configured duplicate key policy.
func (c *EncoderConfig) Duplicates() value.DuplicatePolicy {
	return c.duplicates
}

// StrictUTF8 reports whether strings and keys must be valid UTF-8.
func (c *EncoderConfig) StrictUTF8() bool {
	return c.strictUTF8
}

func (c *EncoderConfig) setDuplicates(p value.DuplicatePolicy) error {
	switch p {
	case value.DuplicateLastWins, value.DuplicateReject:
		c.duplicates = p
		return nil
	default:
		return fmt.Errorf("invalid duplicate key policy: %v", p)
	}
}

// EncoderOption represents a functional option for configuring the EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// WithDuplicateKeys sets how duplicate object keys are handled.
// The default is value.DuplicateLastWins.
func WithDuplicateKeys(p value.DuplicatePolicy) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setDuplicates(p)
	})
}

// WithStrictUTF8 makes the encoder fail with errs.ErrInvalidUTF8 on any string or
// key that is not valid UTF-8. Disabled by default; bytes are stored as given.
func WithStrictUTF8(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.strictUTF8 = enabled
	})
}
