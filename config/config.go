// Package config holds the runtime settings of a store host.
//
// Settings can be read from YAML:
//
//	executor:
//	  buffer_size: 16
//	  num_workers: 4
//	log:
//	  buffer_size: 64
//	  level: debug
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML document.
type Config struct {
	Executor ExecutorConfig `yaml:"executor"`
	Log      LogConfig      `yaml:"log"`
}

// ExecutorConfig sizes the worker pool that serializes queued sends.
type ExecutorConfig struct {
	BufferSize int `yaml:"buffer_size,omitempty"` // default: 1
	NumWorkers int `yaml:"num_workers,omitempty"` // default: 1
}

// LogConfig sizes the log effect handler.
type LogConfig struct {
	BufferSize int    `yaml:"buffer_size,omitempty"` // default: 1
	Level      string `yaml:"level,omitempty"`       // default: info
}

func Default() Config {
	return Config{}.normalized()
}

// Load decodes YAML from r. An empty document yields the defaults.
func Load(r io.Reader) (Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := cfg.Log.ZapLevel(); err != nil {
		return Config{}, err
	}
	return cfg.normalized(), nil
}

// LoadFile reads path if present; a missing file yields the defaults.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// ZapLevel parses Level; an empty level is info.
func (c LogConfig) ZapLevel() (zapcore.Level, error) {
	level := strings.TrimSpace(c.Level)
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return l, nil
}

func (c Config) normalized() Config {
	if c.Executor.BufferSize <= 0 {
		c.Executor.BufferSize = 1
	}
	if c.Executor.NumWorkers <= 0 {
		c.Executor.NumWorkers = 1
	}
	if c.Log.BufferSize <= 0 {
		c.Log.BufferSize = 1
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = "info"
	}
	return c
}
