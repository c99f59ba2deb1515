package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	level   int
	strict  bool
	applied []string
}

var errLevel = errors.New("level out of range")

func withLevel(n int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n < 0 || n > 9 {
			return errLevel
		}
		c.level = n
		c.applied = append(c.applied, "level")

		return nil
	})
}

func withStrict(enabled bool) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.strict = enabled
		c.applied = append(c.applied, "strict")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, withStrict(true), withLevel(3), withLevel(5)))

		assert.Equal(t, 5, cfg.level, "later options override earlier ones")
		assert.True(t, cfg.strict)
		assert.Equal(t, []string{"strict", "level", "level"}, cfg.applied)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withLevel(2), withLevel(10), withStrict(true))

		require.ErrorIs(t, err, errLevel)
		assert.Equal(t, 2, cfg.level)
		assert.False(t, cfg.strict, "options after the failing one are not applied")
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withStrict(true), nil))
		assert.True(t, cfg.strict)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{level: 1}
		require.NoError(t, Apply(cfg))
		assert.Equal(t, 1, cfg.level)
	})
}

func TestBuild(t *testing.T) {
	cfg, err := Build(&testConfig{level: 1}, withStrict(true))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.level, "defaults survive")
	assert.True(t, cfg.strict)

	cfg, err = Build(&testConfig{}, withLevel(-1))
	require.ErrorIs(t, err, errLevel)
	assert.Nil(t, cfg)
}
