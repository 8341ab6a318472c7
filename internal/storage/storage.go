// Package storage provides abstractions for persistent aggregate storage.
package storage

import "context"

// Aggregate keys. Each key holds one aggregate's full JSON serialization.
const (
	KeyTransactions  = "transactions"
	KeyPeople        = "people"
	KeyGoals         = "goals"
	KeyBudget        = "budget"
	KeySettings      = "settings"
	KeyCategories    = "categories"
	KeyRecurring     = "recurring"
	KeyNotifications = "notifications"
)

// Keys lists every aggregate key.
var Keys = []string{
	KeyTransactions,
	KeyPeople,
	KeyGoals,
	KeyBudget,
	KeySettings,
	KeyCategories,
	KeyRecurring,
	KeyNotifications,
}

// Store defines the interface for string-keyed aggregate blob storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the store layer.
type Store interface {
	// Get retrieves the blob stored under key. A missing key returns
	// (nil, nil); the caller falls back to the aggregate's typed default.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores blob under key, replacing any previous value.
	Put(ctx context.Context, key string, blob []byte) error

	// Reset removes every stored aggregate.
	Reset(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
