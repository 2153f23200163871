// Package config loads editor settings from TOML or YAML files.
//
// A minimal cliptower.toml:
//
//	pixels_per_frame = 6
//	snap_threshold_frames = 4
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[store]
//	backend = "sqlite"
//	sqlite_path = "timelines.db"
//
// Unset keys keep their defaults. After the file is read, environment
// variables (optionally loaded from a .env file) override connection
// settings: CLIPTOWER_REDIS_ADDR and CLIPTOWER_MONGO_URI.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/placement"
	"github.com/matzehuels/cliptower/pkg/placement/snap"
	"github.com/matzehuels/cliptower/pkg/placement/zone"
	"github.com/matzehuels/cliptower/pkg/timeline"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

// Environment overrides.
const (
	EnvRedisAddr = "CLIPTOWER_REDIS_ADDR"
	EnvMongoURI  = "CLIPTOWER_MONGO_URI"
)

// Config holds every editor setting.
type Config struct {
	TrackHeight         float64 `toml:"track_height" yaml:"track_height"`
	ItemHeight          float64 `toml:"item_height" yaml:"item_height"`
	PixelsPerFrame      float64 `toml:"pixels_per_frame" yaml:"pixels_per_frame"`
	SnapEnabled         bool    `toml:"snap_enabled" yaml:"snap_enabled"`
	SnapThresholdFrames int     `toml:"snap_threshold_frames" yaml:"snap_threshold_frames"`
	MinDurationFrames   int     `toml:"min_duration_frames" yaml:"min_duration_frames"`
	GridFrames          int     `toml:"grid_frames" yaml:"grid_frames"`
	BoundaryTolerancePx float64 `toml:"boundary_tolerance_px" yaml:"boundary_tolerance_px"`

	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Store  StoreConfig  `toml:"store" yaml:"store"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// CacheConfig selects and configures the replay cache.
type CacheConfig struct {
	Backend   string `toml:"backend" yaml:"backend"`
	Dir       string `toml:"dir" yaml:"dir"`
	RedisAddr string `toml:"redis_addr" yaml:"redis_addr"`
	// TTL is a Go duration string such as "24h".
	TTL string `toml:"ttl" yaml:"ttl"`
}

// StoreConfig selects and configures the timeline document store.
type StoreConfig struct {
	Backend       string `toml:"backend" yaml:"backend"`
	Dir           string `toml:"dir" yaml:"dir"`
	SQLitePath    string `toml:"sqlite_path" yaml:"sqlite_path"`
	MongoURI      string `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database" yaml:"mongo_database"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Default returns the stock settings.
func Default() Config {
	return Config{
		TrackHeight:         placement.DefaultTrackHeight,
		ItemHeight:          placement.DefaultItemHeight,
		PixelsPerFrame:      placement.DefaultPixelsPerFrame,
		SnapEnabled:         true,
		SnapThresholdFrames: placement.DefaultSnapThreshold,
		MinDurationFrames:   timeline.MinDurationInFrames,
		GridFrames:          snap.GridFrames,
		BoundaryTolerancePx: zone.DefaultTolerance,
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     "24h",
		},
		Store: StoreConfig{
			Backend:       StoreFile,
			SQLitePath:    "cliptower.db",
			MongoDatabase: "cliptower",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads the file at path over the defaults. The format is YAML for
// .yaml and .yml files and TOML otherwise. The result is validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", filepath.Base(path))
	}
	return cfg, cfg.Validate()
}

// LoadEnv loads envFile (if it exists) into the process environment and
// applies the connection overrides to cfg. Variables already set in the
// environment win over the file.
func LoadEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", envFile)
		}
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		cfg.Store.MongoURI = v
	}
	return nil
}

// Validate checks ranges and backend names.
func (c Config) Validate() error {
	switch {
	case c.TrackHeight <= 0:
		return invalid("track_height must be positive")
	case c.ItemHeight <= 0 || c.ItemHeight > c.TrackHeight:
		return invalid("item_height must be in (0, track_height]")
	case c.PixelsPerFrame <= 0:
		return invalid("pixels_per_frame must be positive")
	case c.SnapThresholdFrames < 0:
		return invalid("snap_threshold_frames must not be negative")
	case c.MinDurationFrames < 1:
		return invalid("min_duration_frames must be at least 1")
	case c.GridFrames < 1:
		return invalid("grid_frames must be at least 1")
	case c.BoundaryTolerancePx < 0:
		return invalid("boundary_tolerance_px must not be negative")
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return invalid("cache.redis_addr is required for the redis backend")
		}
	default:
		return invalid("unknown cache backend %q", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}

	switch c.Store.Backend {
	case StoreFile, StoreSQLite:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return invalid("store.mongo_uri is required for the mongo backend")
		}
	default:
		return invalid("unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// CacheTTL parses Cache.TTL. An empty value means no expiry.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, invalid("cache.ttl %q is not a non-negative duration", c.Cache.TTL)
	}
	return d, nil
}

// Placement converts the settings to placement options.
func (c Config) Placement() placement.Options {
	return placement.Options{
		PixelsPerFrame: c.PixelsPerFrame,
		TrackHeight:    c.TrackHeight,
		ItemHeight:     c.ItemHeight,
		SnapEnabled:    c.SnapEnabled,
		SnapThreshold:  c.SnapThresholdFrames,
		Grid:           c.GridFrames,
		Tolerance:      c.BoundaryTolerancePx,
		MinDuration:    c.MinDurationFrames,
	}
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
