package storage

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func backends(t *testing.T, quota int64) map[string]KV {
	t.Helper()
	ctx := context.Background()

	file, err := NewFile(filepath.Join(t.TempDir(), "kv"), quota)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	db, err := NewSQLite(ctx, filepath.Join(t.TempDir(), "kv.db"), quota)
	if err != nil {
		t.Fatalf("Failed to create sqlite store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return map[string]KV{
		"memory": NewMemory(quota),
		"file":   file,
		"sqlite": db,
	}
}

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t, DefaultQuota) {
		t.Run(name, func(t *testing.T) {
			if _, err := kv.Get(ctx, "fleet-images"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Expected ErrNotFound, got %v", err)
			}

			if err := kv.Set(ctx, "fleet-images", []byte(`[1]`)); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if err := kv.Set(ctx, "fleet-images", []byte(`[1,2]`)); err != nil {
				t.Fatalf("Unexpected error on overwrite: %v", err)
			}
			got, err := kv.Get(ctx, "fleet-images")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !bytes.Equal(got, []byte(`[1,2]`)) {
				t.Errorf("Expected [1,2], got %s", got)
			}

			if err := kv.Delete(ctx, "fleet-images"); err != nil {
				t.Fatalf("Unexpected error on delete: %v", err)
			}
			if _, err := kv.Get(ctx, "fleet-images"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound after delete, got %v", err)
			}
			if err := kv.Delete(ctx, "fleet-images"); err != nil {
				t.Errorf("Expected deleting a missing key to succeed, got %v", err)
			}
		})
	}
}

func TestKVQuota(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t, 10) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Set(ctx, "a", []byte("123456")); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if err := kv.Set(ctx, "b", []byte("12345")); !errors.Is(err, ErrQuotaExceeded) {
				t.Errorf("Expected ErrQuotaExceeded, got %v", err)
			}
			if _, err := kv.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected rejected write to leave no value, got %v", err)
			}

			// replacing a value only counts the new size
			if err := kv.Set(ctx, "a", []byte("123456789")); err != nil {
				t.Errorf("Expected replacement within quota to succeed, got %v", err)
			}
			got, _ := kv.Get(ctx, "a")
			if string(got) != "123456789" {
				t.Errorf("Expected replaced value, got %q", got)
			}
		})
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(DefaultQuota)
	value := []byte("wrecker")
	if err := m.Set(ctx, "k", value); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	value[0] = 'W'

	got, _ := m.Get(ctx, "k")
	if string(got) != "wrecker" {
		t.Errorf("Expected stored value to be isolated from caller, got %q", got)
	}
}

func TestFilePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFile(dir, DefaultQuota)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := first.Set(ctx, "fleet/images", []byte("saved")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	second, err := NewFile(dir, DefaultQuota)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, err := second.Get(ctx, "fleet/images")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(got) != "saved" {
		t.Errorf("Expected saved, got %q", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "default is memory", opts: Options{}},
		{name: "file", opts: Options{Backend: "file", Path: t.TempDir()}},
		{name: "sqlite", opts: Options{Backend: "SQLite", Path: filepath.Join(t.TempDir(), "fleet.db")}},
		{name: "file without path", opts: Options{Backend: "file"}, wantErr: true},
		{name: "redis without url", opts: Options{Backend: "redis"}, wantErr: true},
		{name: "unknown backend", opts: Options{Backend: "s3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, err := Open(ctx, tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			kv.Close()
		})
	}
}
