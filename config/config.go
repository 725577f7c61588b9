// Package config loads runtime settings from VIEWSTATE_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/on-the-ground/viewstate/effects/host"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	HostBufferSize int           `env:"VIEWSTATE_HOST_BUFFER_SIZE" envDefault:"16"`
	HostNumWorkers int           `env:"VIEWSTATE_HOST_NUM_WORKERS" envDefault:"4"`
	LogBufferSize  int           `env:"VIEWSTATE_LOG_BUFFER_SIZE"  envDefault:"64"`
	LogLevel       zapcore.Level `env:"VIEWSTATE_LOG_LEVEL"        envDefault:"info"`
	RippleDuration time.Duration `env:"VIEWSTATE_RIPPLE_DURATION"  envDefault:"600ms"`
	AlertDuration  time.Duration `env:"VIEWSTATE_ALERT_DURATION"   envDefault:"3s"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Host returns the scheduler settings.
func (c Config) Host() host.Config {
	return host.Config{BufferSize: c.HostBufferSize, NumWorkers: c.HostNumWorkers}
}
