// Package store is the single source of truth for all aggregates. It exposes
// named mutation operations to the API layer, applies each atomically to
// in-memory state, and coordinates persistence: high-churn aggregates are
// written through a debounce window, low-churn correctness-critical ones
// synchronously on every change.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/npatel/finledger/internal/budget"
	"github.com/npatel/finledger/internal/metrics"
	"github.com/npatel/finledger/internal/models"
	"github.com/npatel/finledger/internal/storage"
)

// DefaultDebounce is the write-coalescing window for high-churn aggregates.
const DefaultDebounce = 500 * time.Millisecond

// syncKeys are written synchronously on every change; losing their most
// recent value is less tolerable relative to their low write frequency.
var syncKeys = map[string]bool{
	storage.KeySettings:      true,
	storage.KeyBudget:        true,
	storage.KeyNotifications: true,
}

// Store owns every aggregate. One mutex serializes all mutations, so no two
// mutations interleave mid-update; persistence and engine passes observe
// committed state only.
type Store struct {
	mu       sync.Mutex
	backend  storage.Store
	debounce *Debouncer

	transactions  []models.Transaction
	people        []models.Person
	goals         []models.Goal
	categories    []models.Category
	recurring     []models.RecurringTransaction
	notifications []models.Notification
	settings      models.AppSettings
	budget        models.BudgetConfig
}

// New loads every aggregate from backend and returns a ready store. Missing or
// corrupt blobs fall back to typed defaults; backend I/O errors fail startup.
func New(ctx context.Context, backend storage.Store, debounceDelay time.Duration) (*Store, error) {
	s := &Store{backend: backend}
	s.debounce = NewDebouncer(debounceDelay, s.writeAggregate)

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	var err error
	if s.transactions, err = loadList[models.Transaction](ctx, s.backend, storage.KeyTransactions); err != nil {
		return err
	}
	if s.people, err = loadList[models.Person](ctx, s.backend, storage.KeyPeople); err != nil {
		return err
	}
	if s.goals, err = loadList[models.Goal](ctx, s.backend, storage.KeyGoals); err != nil {
		return err
	}
	if s.recurring, err = loadList[models.RecurringTransaction](ctx, s.backend, storage.KeyRecurring); err != nil {
		return err
	}
	if s.notifications, err = loadList[models.Notification](ctx, s.backend, storage.KeyNotifications); err != nil {
		return err
	}

	s.categories, err = loadList[models.Category](ctx, s.backend, storage.KeyCategories)
	if err != nil {
		return err
	}
	if s.categories == nil {
		s.categories = DefaultCategories()
	}

	blob, err := s.backend.Get(ctx, storage.KeySettings)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	s.settings = DefaultSettings()
	if len(blob) > 0 {
		if uerr := json.Unmarshal(blob, &s.settings); uerr != nil {
			slog.Warn("corrupt settings blob, using defaults", "error", uerr)
			s.settings = DefaultSettings()
		}
	}

	// Budget runs the legacy-shape migration; it absorbs missing and corrupt
	// blobs itself.
	rawBudget, err := s.backend.Get(ctx, storage.KeyBudget)
	if err != nil {
		return fmt.Errorf("load budget: %w", err)
	}
	s.budget = budget.Migrate(rawBudget)

	return nil
}

// loadList reads a list aggregate, falling back to an empty list on a missing
// or unparsable blob.
func loadList[T any](ctx context.Context, backend storage.Store, key string) ([]T, error) {
	blob, err := backend.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if len(blob) == 0 || string(blob) == "null" {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(blob, &out); err != nil {
		slog.Warn("corrupt aggregate blob, using empty default", "aggregate", key, "error", err)
		return nil, nil
	}
	return out, nil
}

// Close flushes pending debounced writes and releases the backend.
func (s *Store) Close() error {
	s.debounce.Flush()
	return s.backend.Close()
}

// dirty collects the aggregate keys a mutation touched; persistence runs after
// the store lock is released.
type dirty struct {
	keys []string
}

func (d *dirty) mark(key string) {
	for _, k := range d.keys {
		if k == key {
			return
		}
	}
	d.keys = append(d.keys, key)
}

// mutate runs fn under the store lock, then persists whatever fn marked dirty:
// debounced for high-churn keys, synchronous for the rest.
func (s *Store) mutate(fn func(d *dirty) error) error {
	var d dirty
	s.mu.Lock()
	err := fn(&d)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	for _, key := range d.keys {
		if syncKeys[key] {
			s.writeAggregate(key)
		} else {
			s.debounce.Schedule(key)
		}
	}
	return nil
}

// writeAggregate marshals one aggregate under the lock and writes it outside
// it. Write failures are logged and counted, never propagated: no persistence
// error is fatal to the process.
func (s *Store) writeAggregate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.writeAggregateCtx(ctx, key)
}

// writeAggregateCtx is writeAggregate bound to a caller-supplied context, for
// request-scoped paths like import.
func (s *Store) writeAggregateCtx(ctx context.Context, key string) {
	s.mu.Lock()
	blob, err := s.marshalLocked(key)
	s.mu.Unlock()
	if err != nil {
		slog.Error("failed to marshal aggregate", "aggregate", key, "error", err)
		return
	}

	if err := s.backend.Put(ctx, key, blob); err != nil {
		metrics.WriteFailures.WithLabelValues(key).Inc()
		slog.Error("failed to persist aggregate", "aggregate", key, "error", err)
		return
	}
	metrics.AggregateWrites.WithLabelValues(key).Inc()
	slog.Debug("aggregate persisted", "aggregate", key, "bytes", len(blob))
}

func (s *Store) marshalLocked(key string) ([]byte, error) {
	switch key {
	case storage.KeyTransactions:
		return json.Marshal(s.transactions)
	case storage.KeyPeople:
		return json.Marshal(s.people)
	case storage.KeyGoals:
		return json.Marshal(s.goals)
	case storage.KeyCategories:
		return json.Marshal(s.categories)
	case storage.KeyRecurring:
		return json.Marshal(s.recurring)
	case storage.KeyNotifications:
		return json.Marshal(s.notifications)
	case storage.KeySettings:
		return json.Marshal(s.settings)
	case storage.KeyBudget:
		return json.Marshal(s.budget)
	}
	return nil, fmt.Errorf("unknown aggregate key %q", key)
}

// Settings returns the current settings.
func (s *Store) Settings() models.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Notifications returns a copy of the notification list.
func (s *Store) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}
