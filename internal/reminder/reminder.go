// Package reminder derives debt payment reminders from the current debt set.
//
// Reminders dedup by construction: the notification id is a deterministic
// composite of person, debt and the lastPaymentDate that triggered it, so
// re-running the engine over unchanged state emits nothing new. A fresh
// reminder becomes possible only after another payment moves the anchor.
package reminder

import (
	"fmt"
	"time"

	"github.com/npatel/finledger/internal/currency"
	"github.com/npatel/finledger/internal/models"
)

// ID builds the deterministic dedup key for a debt payment reminder.
func ID(personID, debtID string, anchor time.Time) string {
	return fmt.Sprintf("debt-payment-reminder-%s-%s-%s",
		personID, debtID, anchor.UTC().Format(time.RFC3339))
}

// Evaluate returns the reminders newly due at instant now, given the existing
// notification set. Callers append the result to their notifications; nothing
// is mutated here.
//
// A debt is considered when it has a reminder anchor and is not fully paid.
// The reminder fires once now is strictly past anchor + 1 calendar month.
func Evaluate(people []models.Person, existing []models.Notification, now time.Time, f currency.Formatter) []models.Notification {
	seen := make(map[string]bool, len(existing))
	for _, n := range existing {
		seen[n.ID] = true
	}

	var out []models.Notification
	for _, person := range people {
		for _, d := range person.Debts {
			if d.LastPaymentDate == nil || d.Status == models.DebtPaid {
				continue
			}
			reminderDate := d.LastPaymentDate.AddDate(0, 1, 0)
			if !now.After(reminderDate) {
				continue
			}
			id := ID(person.ID, d.ID, *d.LastPaymentDate)
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, models.Notification{
				ID:      id,
				Title:   "Debt payment reminder",
				Message: message(person, d, f),
				Date:    now,
				Type:    models.NotificationWarning,
			})
		}
	}
	return out
}

func message(p models.Person, d models.DebtItem, f currency.Formatter) string {
	balance := f.Format(d.Remaining())
	if p.RelationType == models.RelationIOwe {
		return fmt.Sprintf("It's been a month since your last payment to %s. Remaining balance: %s.", p.Name, balance)
	}
	return fmt.Sprintf("It's been a month since %s last paid you. Remaining balance: %s.", p.Name, balance)
}
