package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/narrowphase/internal/core/observability/log"
	"github.com/zeusync/narrowphase/internal/core/systems/narrowphase"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	doc := `
log:
  level: debug
  encoding: console
detector:
  workers: 4
  cache:
    enabled: true
server:
  enable_quic: true
  read_timeout: 2s
`
	cfg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Detector.Workers)
	assert.True(t, cfg.Detector.Cache.Enabled)
	assert.Equal(t, Default().Detector.Cache.Capacity, cfg.Detector.Cache.Capacity, "unset fields keep defaults")
	assert.True(t, cfg.Server.EnableQUIC)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, Default().Server.HTTPAddr, cfg.Server.HTTPAddr)

	lc := cfg.LoggerConfig()
	assert.Equal(t, log.LevelDebug, lc.Level)
	assert.Equal(t, "console", lc.Encoding)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(strings.NewReader(`{"detector": {"workers": 2}, "server": {"http_addr": ":9000"}}`))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Detector.Workers)
	assert.Equal(t, ":9000", cfg.Server.HTTPAddr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{"negative workers", func(c *Config) { c.Detector.Workers = -1 }, ErrInvalidWorkers},
		{"cache without capacity", func(c *Config) { c.Detector.Cache = narrowphase.CacheConfig{Enabled: true} }, ErrInvalidCapacity},
		{"bad encoding", func(c *Config) { c.Log.Encoding = "xml" }, ErrInvalidEncoding},
		{"no http addr", func(c *Config) { c.Server.HTTPAddr = "" }, ErrMissingAddr},
		{"quic without addr", func(c *Config) { c.Server.EnableQUIC = true; c.Server.QUICAddr = "" }, ErrMissingAddr},
		{"negative timeout", func(c *Config) { c.Server.WriteTimeout = -time.Second }, ErrInvalidTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.err)
		})
	}

	cfg := Default()
	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := Load(strings.NewReader("detector: {workers: -3}"))
	assert.ErrorIs(t, err, ErrInvalidWorkers)

	_, err = Load(strings.NewReader("detector: [1, 2]"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "narrowphase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: {level: warn}\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
