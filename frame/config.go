package frame

import (
	"fmt"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
	"github.com/arloliu/bjson/internal/options"
)

// Config holds frame writer settings.
type Config struct {
	compression format.CompressionType
}

// Option represents a functional option for configuring Pack.
type Option = options.Option[*Config]

func newConfig() *Config {
	return &Config{compression: format.CompressionNone}
}

// WithCompression selects the payload codec. The default is format.CompressionNone.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *Config) error {
		if c.String() == "Unknown" {
			return fmt.Errorf("%w: 0x%02x", errs.ErrUnsupportedCompression, uint8(c))
		}
		cfg.compression = c

		return nil
	})
}
