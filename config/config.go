package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/krisalay/ttl-cache/eviction"
)

const (
	CACHE_SHARDS              = "cache.shards"
	CACHE_CAPACITY            = "cache.capacity"
	CACHE_EVICTION            = "cache.eviction"
	CACHE_ABSOLUTE_EXPIRATION = "cache.absolute_expiration"
	CACHE_IDLE_EXPIRATION     = "cache.idle_expiration"
	CACHE_SWEEP_INTERVAL      = "cache.sweep_interval"
	CACHE_BATCH_CONCURRENCY   = "cache.batch_concurrency"
	LOGGING_LEVEL             = "logging.level"
	LOGGING_FORMAT            = "logging.format"
	LOGGING_FILE_PATH         = "logging.file_path"
)

// EnvPrefix marks environment overrides. A double underscore separates
// path segments: TTLCACHE_CACHE__SWEEP_INTERVAL=5s sets cache.sweep_interval.
const EnvPrefix = "TTLCACHE_"

var ErrInvalid = errors.New("invalid config")

var defaults = map[string]any{
	CACHE_SHARDS:              16,
	CACHE_CAPACITY:            0,
	CACHE_EVICTION:            string(eviction.LRU),
	CACHE_ABSOLUTE_EXPIRATION: "60s",
	CACHE_IDLE_EXPIRATION:     "0s",
	CACHE_SWEEP_INTERVAL:      "30s",
	CACHE_BATCH_CONCURRENCY:   8,
	LOGGING_LEVEL:             "info",
	LOGGING_FORMAT:            "text",
	LOGGING_FILE_PATH:         "",
}

type Config struct {
	Cache   CacheConfig
	Logging LoggingConfig
}

type CacheConfig struct {
	Shards             int
	Capacity           int
	Eviction           eviction.PolicyType
	AbsoluteExpiration time.Duration
	IdleExpiration     time.Duration
	SweepInterval      time.Duration
	BatchConcurrency   int
}

type LoggingConfig struct {
	Level    string
	Format   string
	FilePath string
}

// Default is the configuration used when no file or environment overrides exist.
func Default() *Config {
	cfg, err := load(koanfWithDefaults())
	if err != nil {
		panic(err)
	}
	return cfg
}

/*
Load layers built-in defaults, then the TOML file at path (skipped when
path is empty), then TTLCACHE_ environment variables.
*/
func Load(path string) (*Config, error) {
	k := koanfWithDefaults()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "config file %s", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "error loading config %s", path)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
			"__", ".",
		)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "error loading environment")
	}

	return load(k)
}

func koanfWithDefaults() *koanf.Koanf {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(defaults, "."), nil)
	return k
}

func load(k *koanf.Koanf) (*Config, error) {
	policy, err := eviction.ParsePolicyType(k.String(CACHE_EVICTION))
	if err != nil {
		return nil, errors.Wrap(ErrInvalid, err.Error())
	}

	cfg := &Config{
		Cache: CacheConfig{
			Shards:             k.Int(CACHE_SHARDS),
			Capacity:           k.Int(CACHE_CAPACITY),
			Eviction:           policy,
			AbsoluteExpiration: k.Duration(CACHE_ABSOLUTE_EXPIRATION),
			IdleExpiration:     k.Duration(CACHE_IDLE_EXPIRATION),
			SweepInterval:      k.Duration(CACHE_SWEEP_INTERVAL),
			BatchConcurrency:   k.Int(CACHE_BATCH_CONCURRENCY),
		},
		Logging: LoggingConfig{
			Level:    k.String(LOGGING_LEVEL),
			Format:   k.String(LOGGING_FORMAT),
			FilePath: k.String(LOGGING_FILE_PATH),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	cc := c.Cache
	switch {
	case cc.Shards < 1:
		return errors.Wrapf(ErrInvalid, "%s must be at least 1, got %d", CACHE_SHARDS, cc.Shards)
	case cc.Capacity < 0:
		return errors.Wrapf(ErrInvalid, "%s must not be negative, got %d", CACHE_CAPACITY, cc.Capacity)
	case cc.AbsoluteExpiration < 0:
		return errors.Wrapf(ErrInvalid, "%s must not be negative", CACHE_ABSOLUTE_EXPIRATION)
	case cc.IdleExpiration < 0:
		return errors.Wrapf(ErrInvalid, "%s must not be negative", CACHE_IDLE_EXPIRATION)
	case cc.SweepInterval < 0:
		return errors.Wrapf(ErrInvalid, "%s must not be negative", CACHE_SWEEP_INTERVAL)
	case cc.BatchConcurrency < 1:
		return errors.Wrapf(ErrInvalid, "%s must be at least 1, got %d", CACHE_BATCH_CONCURRENCY, cc.BatchConcurrency)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrapf(ErrInvalid, "%s: %v", LOGGING_LEVEL, err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalid, "%s must be text or json, got %q", LOGGING_FORMAT, c.Logging.Format)
	}
	return nil
}
