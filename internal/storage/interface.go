package storage

import (
	"context"
	"errors"
)

// ErrNotLoaded is returned by key-value calls made before Init or Load
var ErrNotLoaded = errors.New("storage not loaded")

// KV is the key-value surface the tip store writes through
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	KV

	// Keys lists every stored key, sorted
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Versioned is implemented by SQL backends that track a schema version
type Versioned interface {
	SchemaVersion() (current, latest int, err error)
}

// HealthChecker is implemented by networked backends that can be pinged
type HealthChecker interface {
	Health(ctx context.Context) error
}
