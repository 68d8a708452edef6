package domain

import (
	"context"
	"errors"
)

var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrGeneratorOffline = errors.New("text generator offline")
	ErrPermissionDenied = errors.New("notification permission denied")
)

// KeyValueStore is a string-keyed document store scoped to the local user.
type KeyValueStore interface {
	// Get returns ErrKeyNotFound when the key was never written.
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte) error

	// SetMany writes all entries together. Stores that support transactions
	// must apply either all of them or none.
	SetMany(ctx context.Context, entries map[string][]byte) error

	Delete(ctx context.Context, keys ...string) error

	// Keys lists every stored key starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Clear removes every key starting with prefix.
	Clear(ctx context.Context, prefix string) error
}

// StateRepository loads and persists the aggregate as one document per key.
type StateRepository interface {
	// Load never fails on malformed documents: each broken or missing key
	// falls back to its default.
	Load(ctx context.Context) (*AppState, error)

	// Save persists only the documents selected by changed, in one write.
	Save(ctx context.Context, state *AppState, changed Change) error

	SaveInsight(ctx context.Context, text string) error
	LastInsight(ctx context.Context) (string, error)

	Clear(ctx context.Context) error
}

type GenerateOptions struct {
	Model       string
	Temperature float64
}

type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
}

type Notifier interface {
	RequestPermission(ctx context.Context) (bool, error)
	Notify(ctx context.Context, n Notification) error
}
