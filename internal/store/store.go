package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested key has no stored value.
var ErrNotFound = errors.New("not found")

// Store defines the local persistence interface. Only small client-side
// documents live here; tasks are never cached locally.
type Store interface {
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}
