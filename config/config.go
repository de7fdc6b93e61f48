package config

import (
	"os"
	"time"

	"github.com/njchilds90/polyrat"
	"github.com/njchilds90/polyrat/logger"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

const (
	BuildVersion = "v0.3.0-BUILD_VERSION"

	DefaultPort         = 8080
	DefaultMaxBodyBytes = 1 << 20
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

type Custom struct {
	Engine struct {
		MultiplyMode string  `toml:"multiply-mode"`
		FFTThreshold int     `toml:"fft-threshold"`
		FFTTolerance float64 `toml:"fft-tolerance"`
		ApproxBound  int64   `toml:"approx-bound"`
	} `toml:"engine"`
	Server struct {
		Port         int `toml:"port"`
		MaxBodyBytes int `toml:"max-body-bytes"`
		ReadTimeout  int `toml:"read-timeout"`
		WriteTimeout int `toml:"write-timeout"`
		IdleTimeout  int `toml:"idle-timeout"`
	} `toml:"server"`
	Log struct {
		Level   string `toml:"level"`
		Filter  string `toml:"filter"`
		Limiter int    `toml:"limiter"`
	} `toml:"log"`
}

// Initialize reads a TOML file and fills defaults. An empty path yields the
// defaults alone.
func Initialize(file string) (*Custom, error) {
	var config Custom
	if file != "" {
		f, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		err = toml.Unmarshal(f, &config)
		if err != nil {
			return nil, errors.Wrapf(err, "config %s", file)
		}
	}
	if err := config.fill(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Custom) fill() error {
	if _, err := polyrat.ParseMulMode(c.Engine.MultiplyMode); err != nil {
		return err
	}
	if c.Engine.FFTThreshold == 0 {
		c.Engine.FFTThreshold = polyrat.DefaultFFTThreshold
	}
	if c.Engine.FFTTolerance == 0 {
		c.Engine.FFTTolerance = polyrat.DefaultFFTTolerance
	}
	if c.Engine.ApproxBound == 0 {
		c.Engine.ApproxBound = polyrat.DefaultApproxBound
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = int(DefaultReadTimeout / time.Second)
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = int(DefaultWriteTimeout / time.Second)
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = int(DefaultIdleTimeout / time.Second)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	_, err := logger.ParseLevel(c.Log.Level)
	return err
}

// Options converts the [engine] section.
func (c *Custom) Options() polyrat.Options {
	mode, _ := polyrat.ParseMulMode(c.Engine.MultiplyMode)
	return polyrat.Options{
		Multiply:     mode,
		FFTThreshold: c.Engine.FFTThreshold,
		FFTTolerance: c.Engine.FFTTolerance,
		ApproxBound:  c.Engine.ApproxBound,
	}
}

// ApplyLog pushes the [log] section into the logger.
func (c *Custom) ApplyLog() error {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logger.SetLimiter(c.Log.Limiter)
	return logger.SetFilter(c.Log.Filter)
}
