package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/hcall/internal/channel"
)

type cliConfig struct {
	DevicePath       string
	MaxResponseBytes int64
	LogLevel         string
}

type fileConfig struct {
	Device           string `toml:"device"`
	MaxResponseBytes int64  `toml:"max_response_bytes"`
	LogLevel         string `toml:"log_level"`
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		DevicePath:       channel.DefaultDevicePath,
		MaxResponseBytes: channel.DefaultLimits().MaxResponseBytes,
	}
}

func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load hcall config: %w", err)
	}

	if meta.IsDefined("device") {
		device := strings.TrimSpace(raw.Device)
		if device != "" {
			cfg.DevicePath = device
		}
	}

	if meta.IsDefined("max_response_bytes") {
		if raw.MaxResponseBytes <= 0 {
			return cliConfig{}, fmt.Errorf("max_response_bytes must be positive, got %d", raw.MaxResponseBytes)
		}
		cfg.MaxResponseBytes = raw.MaxResponseBytes
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	return cfg, nil
}
