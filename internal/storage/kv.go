package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultQuota mirrors the ceiling browsers put on local storage.
const DefaultQuota = 5 * 1024 * 1024

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned by Set when the backend refuses the write.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// KV is a small string-keyed byte store with a capacity ceiling.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Options selects and configures a backend
type Options struct {
	Backend  string // memory, file, sqlite, redis
	Path     string // directory for file, database path for sqlite
	RedisURL string
	Quota    int64
}

// Open returns the backend named in opts
func Open(ctx context.Context, opts Options) (KV, error) {
	quota := opts.Quota
	if quota <= 0 {
		quota = DefaultQuota
	}

	backend := strings.ToLower(opts.Backend)
	slog.Debug("Opening key-value store", "backend", backend, "path", opts.Path, "quota", quota)

	switch backend {
	case "", "memory":
		return NewMemory(quota), nil
	case "file":
		if opts.Path == "" {
			return nil, fmt.Errorf("file backend requires a path")
		}
		return NewFile(opts.Path, quota)
	case "sqlite":
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires a path")
		}
		return NewSQLite(ctx, opts.Path, quota)
	case "redis":
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires REDIS_URL")
		}
		return NewRedis(ctx, opts.RedisURL, quota)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", opts.Backend)
	}
}

// checkQuota reports ErrQuotaExceeded when replacing one value of size
// current with size next would push total usage past quota.
func checkQuota(used, current, next, quota int64) error {
	if used-current+next > quota {
		return fmt.Errorf("%w: %d bytes requested, %d of %d bytes in use", ErrQuotaExceeded, next, used-current, quota)
	}
	return nil
}
