package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"-"`
}

// UnmarshalYAML decodes the jwt section, parsing expiry as a Go duration
// string such as "24h" or "90m".
func (c *JWTConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Secret string `yaml:"secret"`
		Expiry string `yaml:"expiry"`
	}
	if errDecode := value.Decode(&raw); errDecode != nil {
		return errDecode
	}
	c.Secret = raw.Secret
	if strings.TrimSpace(raw.Expiry) != "" {
		expiry, errParse := time.ParseDuration(strings.TrimSpace(raw.Expiry))
		if errParse != nil {
			return fmt.Errorf("config: parse jwt expiry: %w", errParse)
		}
		c.Expiry = expiry
	}
	return nil
}

// LogConfig holds log output settings.
type LogConfig struct {
	Level    string `yaml:"level"`
	File     string `yaml:"file"`
	MaxSize  int    `yaml:"max-size"`
	MaxAge   int    `yaml:"max-age"`
	Backups  int    `yaml:"backups"`
	Compress bool   `yaml:"compress"`
}

// AppConfig is the process-level configuration loaded from YAML.
type AppConfig struct {
	Listen   string    `yaml:"listen"`
	Database string    `yaml:"database"`
	JWT      JWTConfig `yaml:"jwt"`
	Log      LogConfig `yaml:"log"`
}

// Load reads and validates the YAML config at path.
func Load(path string) (*AppConfig, error) {
	data, errRead := os.ReadFile(path)
	if errRead != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, errRead)
	}

	cfg := &AppConfig{}
	if errDecode := yaml.Unmarshal(data, cfg); errDecode != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, errDecode)
	}

	if strings.TrimSpace(cfg.Listen) == "" {
		cfg.Listen = ":8080"
	}
	if strings.TrimSpace(cfg.Database) == "" {
		return nil, fmt.Errorf("config: database dsn is required")
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, fmt.Errorf("config: jwt secret is required")
	}
	if cfg.JWT.Expiry <= 0 {
		cfg.JWT.Expiry = 24 * time.Hour
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	return cfg, nil
}
