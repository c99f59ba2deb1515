package path

import (
	"github.com/arloliu/bjson/internal/options"
)

// Config holds settings fixed at parse time.
type Config struct {
	lax bool
}

// Option represents a functional option for configuring Parse.
type Option = options.Option[*Config]

// WithLax enables lax matching: member selectors map over arrays and subscripts
// accept a non-array value as a one-element array.
func WithLax(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.lax = enabled
	})
}
