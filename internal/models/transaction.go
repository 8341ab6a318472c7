package models

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single realized income or expense entry.
// Transactions are immutable once created; the only mutation is deletion.
type Transaction struct {
	// ID is the unique identifier (UUID format).
	ID string `json:"id"`

	// Amount is the transaction value. Always positive; Type carries the sign.
	Amount float64 `json:"amount"`

	Type TransactionType `json:"type"`

	// Category is the display label of the transaction's category.
	// This is a string reference, not an id: deleting a category leaves
	// existing transactions' labels untouched.
	Category string `json:"category"`

	// Date is the instant the transaction applies to. For scheduler-created
	// transactions this is the scheduled run date, not the wall clock at
	// materialization time.
	Date time.Time `json:"date"`

	Notes string `json:"notes,omitempty"`

	// IsRecurring marks transactions materialized from a recurring template.
	IsRecurring bool `json:"isRecurring,omitempty"`
}

// Frequency is the cadence of a recurring template.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// RecurringTransaction is a rule describing a transaction that should be
// auto-created on a schedule.
type RecurringTransaction struct {
	// ID is the unique identifier (UUID format).
	ID string `json:"id"`

	Amount   float64         `json:"amount"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Notes    string          `json:"notes,omitempty"`

	Frequency Frequency `json:"frequency"`

	// StartDate is the first scheduled occurrence. Immutable after creation.
	StartDate time.Time `json:"startDate"`

	// NextRunDate is the next occurrence the scheduler will materialize.
	// Invariant: NextRunDate >= StartDate at creation, and it only moves
	// forward (one whole period per scheduler pass).
	NextRunDate time.Time `json:"nextRunDate"`

	// Active templates are considered by the scheduler; inactive ones are
	// kept but skipped.
	Active bool `json:"active"`
}
