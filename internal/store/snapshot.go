package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/npatel/finledger/internal/budget"
	"github.com/npatel/finledger/internal/debt"
	"github.com/npatel/finledger/internal/metrics"
	"github.com/npatel/finledger/internal/models"
	"github.com/npatel/finledger/internal/storage"
)

// SchemaVersion tags exported snapshots. Version 1 predates budget segments.
const SchemaVersion = 2

// ErrInvalidSnapshot rejects an import whose payload is not a JSON object or
// whose fields fail to parse. The prior state is fully retained.
var ErrInvalidSnapshot = errors.New("snapshot must be a JSON object")

// Snapshot is the composite export document and the store's read model.
// Notifications are device-local and deliberately not part of the export.
type Snapshot struct {
	Transactions          []models.Transaction          `json:"transactions"`
	People                []models.Person               `json:"people"`
	Goals                 []models.Goal                 `json:"goals"`
	Budget                models.BudgetConfig           `json:"budget"`
	Settings              models.AppSettings            `json:"settings"`
	Categories            []models.Category             `json:"categories"`
	RecurringTransactions []models.RecurringTransaction `json:"recurringTransactions"`
	Version               int                           `json:"version"`
}

// Snapshot returns a copy of the current state as an export-shaped document.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Transactions:          make([]models.Transaction, len(s.transactions)),
		People:                make([]models.Person, len(s.people)),
		Goals:                 make([]models.Goal, len(s.goals)),
		Categories:            make([]models.Category, len(s.categories)),
		RecurringTransactions: make([]models.RecurringTransaction, len(s.recurring)),
		Budget:                s.budget,
		Settings:              s.settings,
		Version:               SchemaVersion,
	}
	copy(snap.Transactions, s.transactions)
	copy(snap.Goals, s.goals)
	copy(snap.Categories, s.categories)
	copy(snap.RecurringTransactions, s.recurring)
	for i, p := range s.people {
		debts := make([]models.DebtItem, len(p.Debts))
		copy(debts, p.Debts)
		p.Debts = debts
		snap.People[i] = p
	}
	return snap
}

// ExportJSON serializes the full snapshot for file backup.
func (s *Store) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s.Snapshot(), "", "  ")
}

// Import replaces state from a composite snapshot. Every exported aggregate is
// replaced independently: a field absent from the snapshot resets that
// aggregate to its default, except budget, which runs the same legacy-shape
// migration as the load path. Parsing is all-or-nothing; a payload that fails
// validation leaves current state untouched. Pending debounced writes for the
// touched aggregates are canceled before the new state is persisted.
func (s *Store) Import(ctx context.Context, data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		metrics.ImportFailures.Inc()
		return ErrInvalidSnapshot
	}

	var (
		transactions []models.Transaction
		people       []models.Person
		goals        []models.Goal
		categories   []models.Category
		templates    []models.RecurringTransaction
		settings     = DefaultSettings()
	)
	if err := parseField(fields, "transactions", &transactions); err != nil {
		return err
	}
	if err := parseField(fields, "people", &people); err != nil {
		return err
	}
	if err := parseField(fields, "goals", &goals); err != nil {
		return err
	}
	if err := parseField(fields, "categories", &categories); err != nil {
		return err
	}
	if err := parseField(fields, "recurringTransactions", &templates); err != nil {
		return err
	}
	if err := parseField(fields, "settings", &settings); err != nil {
		return err
	}
	normalizeImport(people)
	if categories == nil {
		categories = DefaultCategories()
	}
	cfg := budget.Migrate(fields["budget"])

	touched := []string{
		storage.KeyTransactions, storage.KeyPeople, storage.KeyGoals,
		storage.KeyCategories, storage.KeyRecurring, storage.KeySettings,
		storage.KeyBudget,
	}
	s.debounce.Cancel(touched...)

	s.mu.Lock()
	s.transactions = transactions
	s.people = people
	s.goals = goals
	s.categories = categories
	s.recurring = templates
	s.settings = settings
	s.budget = cfg
	s.mu.Unlock()

	for _, key := range touched {
		s.writeAggregateCtx(ctx, key)
	}

	// The debt set just changed wholesale; re-evaluate reminders now rather
	// than waiting for the next scheduler tick.
	s.RunReminderPass(time.Now())
	return nil
}

func parseField(fields map[string]json.RawMessage, name string, dst any) error {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.ImportFailures.Inc()
		return fmt.Errorf("%w: field %q: %v", ErrInvalidSnapshot, name, err)
	}
	return nil
}

// normalizeImport re-establishes derived invariants on imported records
// rather than trusting the file: debt statuses are reconciled from amounts.
func normalizeImport(people []models.Person) {
	for i := range people {
		for j := range people[i].Debts {
			people[i].Debts[j] = debt.Reconcile(people[i].Debts[j])
		}
	}
}

// Reset clears all durable storage and reinitializes every in-memory
// aggregate to its default in one step.
func (s *Store) Reset(ctx context.Context) error {
	s.debounce.CancelAll()

	if err := s.backend.Reset(ctx); err != nil {
		return fmt.Errorf("reset storage: %w", err)
	}

	s.mu.Lock()
	s.transactions = nil
	s.people = nil
	s.goals = nil
	s.recurring = nil
	s.notifications = nil
	s.categories = DefaultCategories()
	s.settings = DefaultSettings()
	s.budget = budget.Default()
	s.mu.Unlock()

	s.RunReminderPass(time.Now())
	return nil
}
