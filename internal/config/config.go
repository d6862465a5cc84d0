package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds server settings. Values come from the YAML file first and
// are then overridden by any environment variable that is set.
type Config struct {
	Port          string        `yaml:"port"`
	StaticDir     string        `yaml:"static_dir"`
	AdminPassword string        `yaml:"admin_password"`
	FleetDataURL  string        `yaml:"fleet_data_url"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	Storage       Storage       `yaml:"storage"`
	Chat          Chat          `yaml:"chat"`
}

type Storage struct {
	Backend    string `yaml:"backend"`
	Path       string `yaml:"path"`
	RedisURL   string `yaml:"redis_url"`
	QuotaBytes int64  `yaml:"quota_bytes"`
}

type Chat struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Port:         "8888",
		StaticDir:    "static",
		FleetDataURL: "static/fleet-data.json",
		SessionTTL:   30 * time.Minute,
		Storage: Storage{
			Backend: "file",
			Path:    "data",
		},
		Chat: Chat{
			Provider: "gemini",
		},
	}
}

// Load reads path (a missing file is not an error) and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.StaticDir, "STATIC_DIR")
	setString(&c.AdminPassword, "ADMIN_PASSWORD")
	setString(&c.FleetDataURL, "FLEET_DATA_URL")
	setString(&c.Storage.Backend, "STORAGE_BACKEND")
	setString(&c.Storage.Path, "STORAGE_PATH")
	setString(&c.Storage.RedisURL, "REDIS_URL")
	setString(&c.Chat.Provider, "CHAT_PROVIDER")
	setString(&c.Chat.Model, "CHAT_MODEL")

	if v := os.Getenv("STORAGE_QUOTA_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid STORAGE_QUOTA_BYTES %q: %w", v, err)
		}
		c.Storage.QuotaBytes = n
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		c.SessionTTL = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
