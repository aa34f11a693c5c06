// Package storage persists small client-side records (session, token,
// onboarding flag) in a local sqlite database, standing in for the device
// key-value storage of the mobile app.
package storage

import (
	"context"
	"errors"
)

// Keys used by the client. KeyToken is kept separate from the serialized
// session so the API client can re-read the bearer token on every request.
const (
	KeyUser       = "user"
	KeyToken      = "userToken"
	KeyOnboarding = "@onboarding_complete"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("not found")

// Store is the persisted key-value storage used by the session store and the
// CLI. Delete removes all given keys in a single transaction.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
	Close() error
}
