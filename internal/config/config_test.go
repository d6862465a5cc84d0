package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Port != "8888" || cfg.Storage.Backend != "file" || cfg.SessionTTL != 30*time.Minute {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleetsite.yaml")
	yaml := `port: "9000"
session_ttl: 45m
storage:
  backend: sqlite
  path: /var/lib/fleetsite/gallery.db
  quota_bytes: 1048576
chat:
  provider: ollama
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("PORT", "")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		field    string
		got      interface{}
		expected interface{}
	}{
		{"port", cfg.Port, "9000"},
		{"session ttl", cfg.SessionTTL, 45 * time.Minute},
		{"backend", cfg.Storage.Backend, "redis"},
		{"path", cfg.Storage.Path, "/var/lib/fleetsite/gallery.db"},
		{"redis url", cfg.Storage.RedisURL, "redis://localhost:6379/0"},
		{"quota", cfg.Storage.QuotaBytes, int64(1048576)},
		{"chat provider", cfg.Chat.Provider, "ollama"},
		{"admin password", cfg.AdminPassword, "s3cret"},
		{"static dir", cfg.StaticDir, "static"},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.field, tt.expected, tt.got)
		}
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"STORAGE_QUOTA_BYTES", "lots"},
		{"SESSION_TTL", "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(""); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
