// Package config loads application configuration for the CLI and server.
//
// Configuration comes from three layers, later layers overriding earlier
// ones: built-in defaults, an optional TOML file, and environment
// variables prefixed with SKEWT_.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/aerolab/skewt/pkg/errors"
)

// Cache backend names.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Archive backend names.
const (
	ArchiveMemory = "memory"
	ArchiveMongo  = "mongo"
)

// Config holds all application settings.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
	Archive ArchiveConfig `toml:"archive"`
	Chart   ChartConfig   `toml:"chart"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file, redis or none
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ArchiveConfig selects and configures the sounding archive backend.
type ArchiveConfig struct {
	Backend    string   `toml:"backend"` // memory or mongo
	MongoURI   string   `toml:"mongo_uri"`
	Database   string   `toml:"database"`
	Collection string   `toml:"collection"`
	TTL        duration `toml:"ttl"`
}

// ChartConfig holds default chart options applied when a request or
// command line leaves them unset.
type ChartConfig struct {
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	SkewAngle float64 `toml:"skew_angle"`
	TMin      float64 `toml:"t_min"`
	TMax      float64 `toml:"t_max"`
	Unit      string  `toml:"unit"`
	BarbSize  float64 `toml:"barb_size"`
	Scale     float64 `toml:"scale"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// duration wraps time.Duration for TOML decoding from strings like "10s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: duration{10 * time.Second},
		},
		Cache: CacheConfig{
			Backend:   CacheFile,
			Dir:       defaultCacheDir(),
			RedisAddr: "localhost:6379",
		},
		Archive: ArchiveConfig{
			Backend: ArchiveMemory,
			TTL:     duration{7 * 24 * time.Hour},
		},
		Chart: ChartConfig{
			Unit: "kmh",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file at
// path, and SKEWT_* environment variables, in that order. An empty path
// skips the file layer; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}

	switch c.Archive.Backend {
	case ArchiveMemory, ArchiveMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid archive backend: %q (must be one of: memory, mongo)", c.Archive.Backend)
	}
	if c.Archive.Backend == ArchiveMongo && c.Archive.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "archive backend mongo requires mongo_uri")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid log format: %q (must be text or json)", c.Log.Format)
	}

	return nil
}

// applyEnv overrides settings from SKEWT_* environment variables.
func applyEnv(c *Config) {
	setString(&c.Server.Addr, "SKEWT_ADDR")
	setDuration(&c.Server.ShutdownTimeout, "SKEWT_SHUTDOWN_TIMEOUT")

	setString(&c.Cache.Backend, "SKEWT_CACHE_BACKEND")
	setString(&c.Cache.Dir, "SKEWT_CACHE_DIR")
	setString(&c.Cache.RedisAddr, "SKEWT_REDIS_ADDR")
	setString(&c.Cache.RedisPassword, "SKEWT_REDIS_PASSWORD")
	setInt(&c.Cache.RedisDB, "SKEWT_REDIS_DB")

	setString(&c.Archive.Backend, "SKEWT_ARCHIVE_BACKEND")
	setString(&c.Archive.MongoURI, "SKEWT_MONGO_URI")
	setString(&c.Archive.Database, "SKEWT_MONGO_DATABASE")
	setString(&c.Archive.Collection, "SKEWT_MONGO_COLLECTION")
	setDuration(&c.Archive.TTL, "SKEWT_ARCHIVE_TTL")

	setString(&c.Chart.Unit, "SKEWT_UNIT")

	setString(&c.Log.Level, "SKEWT_LOG_LEVEL")
	setString(&c.Log.Format, "SKEWT_LOG_FORMAT")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

// defaultCacheDir returns the per-user cache directory.
func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir + "/skewt"
	}
	return ".skewt-cache"
}
