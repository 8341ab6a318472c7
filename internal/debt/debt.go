// Package debt implements the debt lifecycle state machine.
//
// A DebtItem moves between unpaid, partial and paid purely as a function of
// paidAmount vs amount. Callers never set status directly; every operation
// here reconciles it.
package debt

import (
	"errors"
	"time"

	"github.com/npatel/finledger/internal/models"
)

var (
	// ErrNonPositivePayment rejects zero or negative payment amounts.
	ErrNonPositivePayment = errors.New("payment amount must be positive")

	// ErrAlreadySettled rejects payments against a debt with no remaining
	// balance.
	ErrAlreadySettled = errors.New("debt is already fully paid")
)

// DueDateExtension is how far a payment pushes the due date out, measured from
// the payment instant. Any strictly positive payment resets the due date,
// whether or not it settles the debt.
const DueDateExtension = 30 * 24 * time.Hour

// Reconcile recomputes Status from PaidAmount vs Amount. All other fields pass
// through unchanged.
func Reconcile(d models.DebtItem) models.DebtItem {
	switch {
	case d.PaidAmount >= d.Amount:
		d.Status = models.DebtPaid
	case d.PaidAmount > 0:
		d.Status = models.DebtPartial
	default:
		d.Status = models.DebtUnpaid
	}
	return d
}

// ApplyPayment applies a payment of amount to d at instant now and returns the
// updated debt plus the amount actually applied after clamping to the
// remaining balance.
//
// Side effects on the debt:
//   - PaidAmount increases by the clamped amount and Status is reconciled
//   - DueDate moves to now + DueDateExtension, unconditionally
//   - LastPaymentDate is set to now only when the debt is not fully settled
//     by this payment; a terminal payment leaves the previous anchor in place
//     (reminders are suppressed for paid debts, so the stale anchor is inert)
func ApplyPayment(d models.DebtItem, amount float64, now time.Time) (models.DebtItem, float64, error) {
	if amount <= 0 {
		return d, 0, ErrNonPositivePayment
	}
	remaining := d.Remaining()
	if remaining <= 0 {
		return d, 0, ErrAlreadySettled
	}

	applied := amount
	if applied > remaining {
		applied = remaining
	}

	d.PaidAmount += applied
	d = Reconcile(d)
	d.DueDate = now.Add(DueDateExtension)
	if d.Status != models.DebtPaid {
		t := now
		d.LastPaymentDate = &t
	}
	return d, applied, nil
}

// Patch is a partial update to a debt's caller-editable fields. Nil fields are
// left unchanged. Status is deliberately absent: it is derived, never patched.
type Patch struct {
	Amount     *float64
	PaidAmount *float64
	DueDate    *time.Time
	Notes      *string
}

// ApplyUpdate applies a generic field update to d at instant now, reconciling
// status and maintaining the reminder anchor. Unlike ApplyPayment it does not
// touch DueDate unless the patch sets it explicitly.
func ApplyUpdate(d models.DebtItem, p Patch, now time.Time) models.DebtItem {
	prevPaid := d.PaidAmount

	if p.Amount != nil {
		d.Amount = *p.Amount
	}
	if p.PaidAmount != nil {
		d.PaidAmount = *p.PaidAmount
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}

	d = Reconcile(d)
	if d.PaidAmount > prevPaid && d.Status != models.DebtPaid {
		t := now
		d.LastPaymentDate = &t
	}
	return d
}
