package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
)

// Cell mirrors one value of type T to a single key of a KV store.
type Cell[T any] struct {
	kv    KV
	key   string
	value T
}

// NewCell loads the value stored under key. A missing or undecodable value
// falls back to def; decode failures are logged, not returned. Only backend
// read errors fail construction.
func NewCell[T any](ctx context.Context, kv KV, key string, def T, logger *log.Logger) (*Cell[T], error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := &Cell[T]{kv: kv, key: key, value: def}
	data, err := kv.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	var loaded T
	if err := json.Unmarshal(data, &loaded); err != nil {
		logger.Printf("storage: discarding unreadable value under %q: %v", key, err)
		return c, nil
	}
	c.value = loaded
	return c, nil
}

func (c *Cell[T]) Key() string {
	return c.key
}

func (c *Cell[T]) Get() T {
	return c.value
}

// Set replaces the value and writes it through. The in-memory value is
// updated even when the write fails.
func (c *Cell[T]) Set(ctx context.Context, v T) error {
	c.value = v
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.kv.Save(ctx, c.key, data); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}
