// Package config loads the process configuration shared by the commands.
package config

import (
	"errors"
	"io"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/narrowphase/internal/core/observability/log"
	"github.com/zeusync/narrowphase/internal/core/systems/narrowphase"
)

var (
	ErrInvalidWorkers  = errors.New("detector.workers must not be negative")
	ErrInvalidCapacity = errors.New("detector.cache.capacity must be positive when the cache is enabled")
	ErrInvalidEncoding = errors.New("log.encoding must be json or console")
	ErrMissingAddr     = errors.New("server address is empty")
	ErrInvalidTimeout  = errors.New("server timeouts must not be negative")
)

type Config struct {
	Log      LogConfig          `json:"log" yaml:"log"`
	Detector narrowphase.Config `json:"detector" yaml:"detector"`
	Server   ServerConfig       `json:"server" yaml:"server"`
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Encoding    string `json:"encoding" yaml:"encoding"`
	Development bool   `json:"development" yaml:"development"`
}

type ServerConfig struct {
	HTTPAddr     string        `json:"http_addr" yaml:"http_addr"`
	QUICAddr     string        `json:"quic_addr" yaml:"quic_addr"`
	EnableQUIC   bool          `json:"enable_quic" yaml:"enable_quic"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
		Detector: narrowphase.DefaultConfig(),
		Server: ServerConfig{
			HTTPAddr:     "127.0.0.1:8080",
			QUICAddr:     "127.0.0.1:8443",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Load decodes a YAML (or JSON) document over Default and validates it.
// An empty document yields the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, pkgerrors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, pkgerrors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return Config{}, pkgerrors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return pkgerrors.Wrap(err, "log.level")
	}
	switch c.Log.Encoding {
	case "", "json", "console":
	default:
		return pkgerrors.Wrapf(ErrInvalidEncoding, "got %q", c.Log.Encoding)
	}

	if c.Detector.Workers < 0 {
		return ErrInvalidWorkers
	}
	if c.Detector.Cache.Enabled && c.Detector.Cache.Capacity <= 0 {
		return ErrInvalidCapacity
	}

	if c.Server.HTTPAddr == "" {
		return pkgerrors.Wrap(ErrMissingAddr, "server.http_addr")
	}
	if c.Server.EnableQUIC && c.Server.QUICAddr == "" {
		return pkgerrors.Wrap(ErrMissingAddr, "server.quic_addr")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// LoggerConfig converts the log section for log.NewWithConfig. Validate
// must have accepted c.
func (c Config) LoggerConfig() log.Config {
	level, _ := log.ParseLevel(c.Log.Level)
	out := log.DefaultConfig()
	out.Level = level
	if c.Log.Encoding != "" {
		out.Encoding = c.Log.Encoding
	}
	out.Development = c.Log.Development
	return out
}
