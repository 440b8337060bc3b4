// Package config loads brig settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gogpu/brig/verify"
)

// Config is the complete brig configuration.
type Config struct {
	Verify Verify `toml:"verify"`
	Log    Log    `toml:"log"`
	Server Server `toml:"server"`
}

// Verify configures the validator.
type Verify struct {
	Parallel       bool `toml:"parallel"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
	ResolveDepth   int  `toml:"resolve_depth"`
}

// Log configures logging.
type Log struct {
	// Level is a zap level name: debug, info, warn or error.
	Level string `toml:"level"`
	// Format is console or json.
	Format string `toml:"format"`
}

// Server configures brigd.
type Server struct {
	Addr string `toml:"addr"`
	// CachePath is the SQLite verdict cache. Empty disables caching.
	CachePath string `toml:"cache_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Verify: Verify{ResolveDepth: verify.DefaultResolveDepth},
		Log:    Log{Level: "info", Format: "console"},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overrides c with the BRIG_* environment variables that are set.
func (c *Config) ApplyEnv() {
	if env.Has("BRIG_PARALLEL") {
		c.Verify.Parallel = env.Bool("BRIG_PARALLEL")
	}
	c.Verify.MaxDiagnostics = env.Int("BRIG_MAX_DIAGNOSTICS", c.Verify.MaxDiagnostics)
	c.Verify.ResolveDepth = env.Int("BRIG_RESOLVE_DEPTH", c.Verify.ResolveDepth)
	c.Log.Level = env.Str("BRIG_LOG_LEVEL", c.Log.Level)
	c.Log.Format = env.Str("BRIG_LOG_FORMAT", c.Log.Format)
	c.Server.Addr = env.Str("BRIG_ADDR", c.Server.Addr)
	c.Server.CachePath = env.Str("BRIG_CACHE", c.Server.CachePath)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Verify.MaxDiagnostics < 0 {
		err = multierr.Append(err, fmt.Errorf("verify.max_diagnostics must not be negative, got %d", c.Verify.MaxDiagnostics))
	}
	if c.Verify.ResolveDepth < 0 {
		err = multierr.Append(err, fmt.Errorf("verify.resolve_depth must not be negative, got %d", c.Verify.ResolveDepth))
	}
	if _, lerr := zapcore.ParseLevel(c.Log.Level); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("log.level: %w", lerr))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		err = multierr.Append(err, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	if c.Server.Addr == "" {
		err = multierr.Append(err, errors.New("server.addr must not be empty"))
	}
	return err
}

// Options returns the validator options for c. The logger is left unset.
func (c *Config) Options() verify.Options {
	return verify.Options{
		Parallel:       c.Verify.Parallel,
		MaxDiagnostics: c.Verify.MaxDiagnostics,
		ResolveDepth:   c.Verify.ResolveDepth,
	}
}

// Logger builds a zap logger writing to stderr.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	var zc zap.Config
	switch c.Log.Format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
