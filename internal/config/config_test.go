package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 200, cfg.Limits.MsgRate)
	assert.InDelta(t, 9.82, cfg.Sim.Gravity, 1e-9)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoopshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  allowed_origins: ["example.com"]
limits:
  max_conns_per_ip: 2
sim:
  rim_height: 1.5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2, cfg.Limits.MaxConnsPerIP)
	assert.InDelta(t, 1.5, cfg.Sim.RimHeight, 1e-9)
	// Untouched values keep their defaults.
	assert.Equal(t, 200, cfg.Limits.MsgRate)
	assert.InDelta(t, 0.19, cfg.Sim.RingInnerRadius, 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvPortOverride(t *testing.T) {
	t.Setenv("PORT", "7777")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Server.Addr)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"zero conns", func(c *Config) { c.Limits.MaxConnsPerIP = 0 }},
		{"zero msg rate", func(c *Config) { c.Limits.MsgRate = 0 }},
		{"negative gravity", func(c *Config) { c.Sim.Gravity = -1 }},
		{"zero lifetime", func(c *Config) { c.Sim.BallLifetime = 0 }},
		{"zero frame delta", func(c *Config) { c.Sim.MaxFrameDelta = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
