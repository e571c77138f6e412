// Package config loads the isomers TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/isomers/config.toml (or
// ~/.config/isomers/config.toml) unless --config names another path. A
// missing default file is not an error; every setting has a default.
//
//	[count]
//	degree = 4
//	workers = 8
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	request_timeout = "30s"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/isomers/pkg/errors"
)

const appName = "isomers"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full configuration file.
type Config struct {
	Count  CountConfig  `toml:"count"`
	Limits LimitsConfig `toml:"limits"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CountConfig holds defaults for the count commands.
type CountConfig struct {
	Degree    int `toml:"degree"`
	Branching int `toml:"branching"`
	Workers   int `toml:"workers"` // > 1 enables parallel unrooted counts
}

// LimitsConfig caps user input, see errors.Limits.
type LimitsConfig struct {
	MaxVertices int `toml:"max_vertices"`
	MaxWork     int `toml:"max_work"`
	MaxSum      int `toml:"max_sum"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"` // file backend; empty means the XDG cache dir
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"` // key prefix for shared backends
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	Workers        int      `toml:"workers"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	lim := errors.DefaultLimits
	return Config{
		Count: CountConfig{Degree: 4, Branching: 3},
		Limits: LimitsConfig{
			MaxVertices: lim.MaxVertices,
			MaxWork:     lim.MaxWork,
			MaxSum:      lim.MaxSum,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Prefix:  appName + ":",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: Duration{60 * time.Second},
		},
	}
}

// Load reads the file at path over the defaults. An empty path loads the
// default location, where a missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg and validates the result. Unknown keys
// are rejected so typos do not silently fall back to defaults.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Count.Degree < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "count.degree must be at least 1, got %d", c.Count.Degree)
	}
	if c.Count.Branching < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "count.branching must be at least 1, got %d", c.Count.Branching)
	}
	if c.Count.Workers < 0 || c.Server.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be non-negative")
	}
	if c.Limits.MaxVertices < 1 || c.Limits.MaxWork < 1 || c.Limits.MaxSum < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "limits must be positive")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache.backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Server.RequestTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.request_timeout must be non-negative")
	}
	return nil
}

// ErrorLimits converts the limits section for pkg/errors validation.
func (c *Config) ErrorLimits() errors.Limits {
	return errors.Limits{
		MaxVertices: c.Limits.MaxVertices,
		MaxWork:     c.Limits.MaxWork,
		MaxSum:      c.Limits.MaxSum,
	}
}

// CacheDir returns the file cache directory: the configured one, or
// $XDG_CACHE_HOME/isomers, or ~/.cache/isomers.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the XDG cache directory for isomers.
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
