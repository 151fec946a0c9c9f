package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// streamConfig mirrors the shape of stream.compressConfig closely enough to
// exercise the option plumbing without importing the stream package here
// (which would create an import cycle, since stream imports options).
type streamConfig struct {
	debug     bool
	batchSize int
	label     string
}

func (c *streamConfig) setBatchSize(n int) error {
	if n <= 0 {
		return errors.New("batch size must be positive")
	}
	c.batchSize = n

	return nil
}

func (c *streamConfig) setDebug(v bool) {
	c.debug = v
}

func (c *streamConfig) setLabel(s string) {
	c.label = s
}

func TestOption_New(t *testing.T) {
	cfg := &streamConfig{}

	t.Run("applies successfully", func(t *testing.T) {
		opt := New(func(c *streamConfig) error {
			return c.setBatchSize(64)
		})

		require.NoError(t, opt.apply(cfg))
		require.Equal(t, 64, cfg.batchSize)
	})

	t.Run("propagates error", func(t *testing.T) {
		opt := New(func(c *streamConfig) error {
			return c.setBatchSize(0)
		})

		err := opt.apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "positive")
	})
}

func TestOption_NoError(t *testing.T) {
	cfg := &streamConfig{}

	opt := NoError(func(c *streamConfig) {
		c.setDebug(true)
	})

	require.NoError(t, opt.apply(cfg))
	require.True(t, cfg.debug)
}

func TestOption_Apply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &streamConfig{}
		opts := []Option[*streamConfig]{
			New(func(c *streamConfig) error { return c.setBatchSize(10) }),
			NoError(func(c *streamConfig) { c.setDebug(true) }),
			NoError(func(c *streamConfig) { c.setLabel("nightly") }),
		}

		require.NoError(t, Apply(cfg, opts...))
		require.Equal(t, 10, cfg.batchSize)
		require.True(t, cfg.debug)
		require.Equal(t, "nightly", cfg.label)
	})

	t.Run("stops at the first error", func(t *testing.T) {
		cfg := &streamConfig{}
		opts := []Option[*streamConfig]{
			New(func(c *streamConfig) error { return c.setBatchSize(5) }),
			New(func(c *streamConfig) error { return c.setBatchSize(-1) }),
			NoError(func(c *streamConfig) { c.setLabel("unreached") }),
		}

		err := Apply(cfg, opts...)
		require.Error(t, err)
		require.Equal(t, 5, cfg.batchSize)
		require.Empty(t, cfg.label)
	})

	t.Run("empty options leave the target unchanged", func(t *testing.T) {
		cfg := &streamConfig{}
		require.NoError(t, Apply(cfg))
		require.Zero(t, cfg.batchSize)
		require.False(t, cfg.debug)
	})
}
