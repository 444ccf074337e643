package storage

import (
	"context"
	"errors"
	"fmt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var ErrNotFound = errors.New("key not found")

// KV is a single-slot durable store addressed by key.
type KV interface {
	// Load returns ErrNotFound when nothing was saved under key.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the backend for driver. target is a file path for sqlite and
// a connection string for postgres; memory ignores it.
func Open(ctx context.Context, driver, target string) (KV, error) {
	switch driver {
	case DriverSQLite, "":
		s, err := OpenSQLite(target)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return s, nil
	case DriverPostgres:
		p, err := OpenPostgres(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return p, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
