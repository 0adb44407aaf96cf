package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/ttl-cache/eviction"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 16, cfg.Cache.Shards)
	assert.Equal(t, 0, cfg.Cache.Capacity)
	assert.Equal(t, eviction.LRU, cfg.Cache.Eviction)
	assert.Equal(t, 60*time.Second, cfg.Cache.AbsoluteExpiration)
	assert.Equal(t, time.Duration(0), cfg.Cache.IdleExpiration)
	assert.Equal(t, 30*time.Second, cfg.Cache.SweepInterval)
	assert.Equal(t, 8, cfg.Cache.BatchConcurrency)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[cache]
shards = 4
capacity = 1000
eviction = "lfu"
absolute_expiration = "5m"
idle_expiration = "30s"

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Cache.Shards)
	assert.Equal(t, 1000, cfg.Cache.Capacity)
	assert.Equal(t, eviction.LFU, cfg.Cache.Eviction)
	assert.Equal(t, 5*time.Minute, cfg.Cache.AbsoluteExpiration)
	assert.Equal(t, 30*time.Second, cfg.Cache.IdleExpiration)
	assert.Equal(t, 30*time.Second, cfg.Cache.SweepInterval, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[cache]\nshards = 4\n")
	t.Setenv("TTLCACHE_CACHE__SHARDS", "2")
	t.Setenv("TTLCACHE_CACHE__SWEEP_INTERVAL", "5s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Cache.Shards)
	assert.Equal(t, 5*time.Second, cfg.Cache.SweepInterval)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "[cache\nshards = \n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading config "+path)
	assert.NotErrorIs(t, err, ErrInvalid)
	assert.NotEqual(t, err, errors.Cause(err), "parser error is wrapped")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero shards", body: "[cache]\nshards = 0\n"},
		{name: "negative capacity", body: "[cache]\ncapacity = -1\n"},
		{name: "unknown eviction", body: "[cache]\neviction = \"random\"\n"},
		{name: "negative idle", body: "[cache]\nidle_expiration = \"-1s\"\n"},
		{name: "zero batch concurrency", body: "[cache]\nbatch_concurrency = 0\n"},
		{name: "bad level", body: "[logging]\nlevel = \"loud\"\n"},
		{name: "bad format", body: "[logging]\nformat = \"xml\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
