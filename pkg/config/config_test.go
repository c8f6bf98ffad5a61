package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aerolab/skewt/pkg/errors"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != CacheFile {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Archive.Backend != ArchiveMemory {
		t.Errorf("Archive.Backend = %q, want memory", cfg.Archive.Backend)
	}
	if cfg.Archive.TTL.Duration != 7*24*time.Hour {
		t.Errorf("Archive.TTL = %v, want 168h", cfg.Archive.TTL.Duration)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skewt.toml")
	content := `
[server]
addr = ":9090"
shutdown_timeout = "30s"

[cache]
backend = "redis"
redis_addr = "redis.internal:6379"

[chart]
skew_angle = 30.0
unit = "kt"

[log]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout.Duration != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.Server.ShutdownTimeout.Duration)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisAddr != "redis.internal:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Chart.SkewAngle != 30 || cfg.Chart.Unit != "kt" {
		t.Errorf("chart = %+v", cfg.Chart)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}

	// Unset file fields keep their defaults
	if cfg.Archive.Backend != ArchiveMemory {
		t.Errorf("Archive.Backend = %q, want memory default", cfg.Archive.Backend)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.toml")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want code INVALID_CONFIG", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SKEWT_ADDR", ":7070")
	t.Setenv("SKEWT_CACHE_BACKEND", "none")
	t.Setenv("SKEWT_REDIS_DB", "3")
	t.Setenv("SKEWT_ARCHIVE_TTL", "48h")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("Cache.Backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Cache.RedisDB != 3 {
		t.Errorf("RedisDB = %d, want 3", cfg.Cache.RedisDB)
	}
	if cfg.Archive.TTL.Duration != 48*time.Hour {
		t.Errorf("Archive.TTL = %v, want 48h", cfg.Archive.TTL.Duration)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid defaults", func(c *Config) {}, true},
		{"bad cache backend", func(c *Config) { c.Cache.Backend = "memcached" }, false},
		{"bad archive backend", func(c *Config) { c.Archive.Backend = "dynamo" }, false},
		{"mongo without uri", func(c *Config) { c.Archive.Backend = ArchiveMongo }, false},
		{"mongo with uri", func(c *Config) {
			c.Archive.Backend = ArchiveMongo
			c.Archive.MongoURI = "mongodb://localhost:27017"
		}, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
