// Package config holds all sigsum configuration: environment variables
// with sensible defaults, optionally overlaid by a TOML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all sigsum configuration.
type Config struct {
	Capture CaptureConfig
	Summary SummaryConfig
	Server  ServerConfig
	Log     LogConfig
}

// CaptureConfig holds acquisition settings.
type CaptureConfig struct {
	Driver     string // sigrok driver name
	SampleRate string // e.g. "1m", "200k"
	StoreDir   string // capture store directory; empty = owned temp dir
}

// SummaryConfig holds formatting bounds.
type SummaryConfig struct {
	MaxItems   int // transactions/lines per report
	WindowSize int // raw sample window size
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	ListenAddr string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() Config {
	return Config{
		Capture: CaptureConfig{
			Driver:     getenv("SIGSUM_DRIVER", "zeroplus-logic-cube"),
			SampleRate: getenv("SIGSUM_SAMPLE_RATE", "1m"),
			StoreDir:   os.Getenv("SIGSUM_STORE_DIR"),
		},
		Summary: SummaryConfig{
			MaxItems:   getenvInt("SIGSUM_MAX_ITEMS", 500),
			WindowSize: getenvInt("SIGSUM_WINDOW_SIZE", 1000),
		},
		Server: ServerConfig{
			ListenAddr: getenv("SIGSUM_LISTEN_ADDR", ":8470"),
		},
		Log: LogConfig{
			Level: getenv("SIGSUM_LOG_LEVEL", "info"),
		},
	}
}

// fileConfig is the TOML key mapping.
type fileConfig struct {
	Driver     string `toml:"driver"`
	SampleRate string `toml:"sample_rate"`
	StoreDir   string `toml:"store_dir"`
	MaxItems   int    `toml:"max_items"`
	WindowSize int    `toml:"window_size"`
	ListenAddr string `toml:"listen_addr"`
	LogLevel   string `toml:"log_level"`
}

// LoadFile overlays a TOML file on the environment defaults. Only keys
// present in the file override.
func LoadFile(path string) (Config, error) {
	cfg := Load()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("driver") {
		cfg.Capture.Driver = strings.TrimSpace(raw.Driver)
	}
	if meta.IsDefined("sample_rate") {
		cfg.Capture.SampleRate = strings.TrimSpace(raw.SampleRate)
	}
	if meta.IsDefined("store_dir") {
		cfg.Capture.StoreDir = strings.TrimSpace(raw.StoreDir)
	}
	if meta.IsDefined("max_items") {
		cfg.Summary.MaxItems = raw.MaxItems
	}
	if meta.IsDefined("window_size") {
		cfg.Summary.WindowSize = raw.WindowSize
	}
	if meta.IsDefined("listen_addr") {
		cfg.Server.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("log_level") {
		cfg.Log.Level = strings.TrimSpace(raw.LogLevel)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
