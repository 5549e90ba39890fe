// Package config loads server configuration from an optional YAML file,
// layered over built-in defaults, with the listen address overridable
// through the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vladkorolev/hoopshot/internal/sim"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// Origin patterns allowed to open websocket connections; empty
	// means same-origin only.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LimitsConfig struct {
	MaxConnsPerIP int           `yaml:"max_conns_per_ip"`
	MsgRate       int           `yaml:"msg_rate"`
	MsgWindow     time.Duration `yaml:"msg_window"`
	MaxSessions   int64         `yaml:"max_sessions"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Limits LimitsConfig `yaml:"limits"`
	Sim    sim.Tuning   `yaml:"sim"`
}

// Default returns the configuration the server runs with when no file is
// given. Clients report ~60 frame messages a second plus pointer events,
// so the message budget leaves generous headroom.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Limits: LimitsConfig{
			MaxConnsPerIP: 4,
			MsgRate:       200,
			MsgWindow:     time.Second,
			MaxSessions:   500,
		},
		Sim: sim.DefaultTuning(),
	}
}

// Load reads a config file over the defaults. An empty path skips the
// file entirely. The PORT environment variable, when set, overrides the
// listen address.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Limits.MaxConnsPerIP <= 0 {
		return fmt.Errorf("limits.max_conns_per_ip must be positive, got %d", c.Limits.MaxConnsPerIP)
	}
	if c.Limits.MsgRate <= 0 {
		return fmt.Errorf("limits.msg_rate must be positive, got %d", c.Limits.MsgRate)
	}
	if c.Limits.MsgWindow <= 0 {
		return fmt.Errorf("limits.msg_window must be positive, got %s", c.Limits.MsgWindow)
	}
	if c.Sim.Gravity <= 0 {
		return fmt.Errorf("sim.gravity must be positive, got %g", c.Sim.Gravity)
	}
	if c.Sim.BallLifetime <= 0 {
		return fmt.Errorf("sim.ball_lifetime must be positive, got %g", c.Sim.BallLifetime)
	}
	if c.Sim.RingInnerRadius <= 0 {
		return fmt.Errorf("sim.ring_inner_radius must be positive, got %g", c.Sim.RingInnerRadius)
	}
	if c.Sim.MaxFrameDelta <= 0 {
		return fmt.Errorf("sim.max_frame_delta must be positive, got %g", c.Sim.MaxFrameDelta)
	}
	return nil
}
