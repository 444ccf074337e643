package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"taskboard/internal/storage"
)

var fixedNow = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func sequentialIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

func newTestStore(t *testing.T, initial []Task) (*Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	cell, err := storage.NewCell(context.Background(), kv, "tasks", initial, nil)
	if err != nil {
		t.Fatalf("NewCell: %v", err)
	}
	return NewStore(cell, fixedClock, sequentialIDs()), kv
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
