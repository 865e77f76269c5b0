// Package storage provides the two persistence scopes the kiosk writes
// through: a tab scope mirroring the live (state, session) pair and a
// handoff scope carrying one-shot instructions between routed pages.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value in the scope.
var ErrNotFound = errors.New("storage: key not found")

// Scope is a flat string keyspace. Implementations may fail on any call;
// callers are expected to treat failures as absent data, never as fatal.
type Scope interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
