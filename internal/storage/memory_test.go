package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryScopeRoundTrip(t *testing.T) {
	ctx := context.Background()
	scope := NewMemoryScope()

	if _, err := scope.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := scope.Set(ctx, "key", "value"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := scope.Get(ctx, "key")
	if err != nil || got != "value" {
		t.Fatalf("expected stored value back, got %q err %v", got, err)
	}

	if err := scope.Remove(ctx, "key"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := scope.Get(ctx, "key"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
	if scope.Len() != 0 {
		t.Fatalf("expected empty scope, got %d entries", scope.Len())
	}
}
