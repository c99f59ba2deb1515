package jsontext

import (
	"github.com/arloliu/bjson/internal/options"
)

// Config holds parse and render settings.
type Config struct {
	comments bool
	indented bool
	prefix   string
	indent   string
}

// Option represents a functional option for Parse, Marshal and MarshalView.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	return options.Build(&Config{}, opts...)
}

// WithComments makes Parse accept JSONC input: // and /* */ comments and
// trailing commas are stripped before parsing.
func WithComments(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.comments = enabled
	})
}

// WithIndent makes Marshal and MarshalView produce multi-line output. Each line
// starts with prefix and nesting levels are indented with indent.
func WithIndent(prefix, indent string) Option {
	return options.NoError(func(c *Config) {
		c.indented = true
		c.prefix = prefix
		c.indent = indent
	})
}
