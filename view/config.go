package view

import (
	"github.com/arloliu/bjson/internal/options"
)

// Config holds decoder settings shared by every View opened from one buffer.
type Config struct {
	strictUTF8 bool
}

// Option represents a functional option for configuring Open.
type Option = options.Option[*Config]

// WithStrictUTF8 makes string reads, key reads and Validate fail with
// errs.ErrInvalidUTF8 on bytes that are not valid UTF-8.
func WithStrictUTF8(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.strictUTF8 = enabled
	})
}
