package models

import "time"

// RelationType describes the direction of a person's debts relative to the user.
type RelationType string

const (
	RelationOwesMe RelationType = "owes_me"
	RelationIOwe   RelationType = "i_owe"
)

// Valid reports whether r is a known relation type.
func (r RelationType) Valid() bool {
	return r == RelationOwesMe || r == RelationIOwe
}

// Person is someone the user tracks debts with. A person exclusively owns its
// debts: deleting the person deletes every DebtItem with it.
type Person struct {
	// ID is the unique identifier (UUID format).
	ID string `json:"id"`

	Name string `json:"name"`

	RelationType RelationType `json:"relationType"`

	// Debts are owned children; no debt exists outside a person.
	Debts []DebtItem `json:"debts"`

	Phone string `json:"phone,omitempty"`
}

// DebtStatus is the lifecycle state of a single debt.
type DebtStatus string

const (
	DebtUnpaid  DebtStatus = "unpaid"
	DebtPartial DebtStatus = "partial"
	DebtPaid    DebtStatus = "paid"
)

// DebtItem is one debt owed between the user and a person.
//
// Status is a pure function of PaidAmount vs Amount and must be recomputed on
// every change to either; see the debt package.
type DebtItem struct {
	// ID is the unique identifier (UUID format).
	ID string `json:"id"`

	// Amount is the full debt value. Always positive.
	Amount float64 `json:"amount"`

	// PaidAmount is the total paid so far, never negative.
	PaidAmount float64 `json:"paidAmount"`

	DueDate time.Time `json:"dueDate"`

	Status DebtStatus `json:"status"`

	Notes string `json:"notes,omitempty"`

	// LastPaymentDate anchors the next payment reminder. It is set exactly
	// when a payment strictly increases PaidAmount without settling the debt.
	// A terminal payment leaves it untouched; reminders are suppressed for
	// paid debts instead.
	LastPaymentDate *time.Time `json:"lastPaymentDate,omitempty"`
}

// Remaining returns the unpaid balance of the debt.
func (d DebtItem) Remaining() float64 {
	return d.Amount - d.PaidAmount
}
