// Package recurring materializes due recurring templates into transactions.
package recurring

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/npatel/finledger/internal/models"
)

// Result is the outcome of one scheduler pass. Transactions holds the newly
// materialized entries (newest-first order is the store's concern), Templates
// holds the full template set with due ones advanced, and Materialized counts
// the emissions.
type Result struct {
	Transactions []models.Transaction
	Templates    []models.RecurringTransaction
	Materialized int
}

// Materialize runs one scheduler pass over templates at instant now.
//
// For each active template whose nextRunDate is not after now, exactly one
// transaction is emitted, dated at the scheduled nextRunDate (not now), and
// nextRunDate advances one whole period from its previous value. A template
// several periods behind catches up one period per pass; backlogs drain across
// passes rather than being collapsed or fast-forwarded to now.
func Materialize(templates []models.RecurringTransaction, now time.Time) Result {
	res := Result{Templates: make([]models.RecurringTransaction, len(templates))}
	copy(res.Templates, templates)

	for i, tpl := range res.Templates {
		// A template with an unknown frequency can't advance; skip it so it
		// doesn't re-emit every pass.
		if !tpl.Active || !tpl.Frequency.Valid() || tpl.NextRunDate.After(now) {
			continue
		}

		notes := tpl.Notes
		if notes == "" {
			notes = tpl.Category
		}
		res.Transactions = append(res.Transactions, models.Transaction{
			ID:          uuid.New().String(),
			Amount:      tpl.Amount,
			Type:        tpl.Type,
			Category:    tpl.Category,
			Date:        tpl.NextRunDate,
			Notes:       "Auto: " + notes,
			IsRecurring: true,
		})

		tpl.NextRunDate = Advance(tpl.NextRunDate, tpl.Frequency)
		res.Templates[i] = tpl
		res.Materialized++
	}
	return res
}

// Advance returns t plus one period of f. Monthly and yearly use calendar
// arithmetic, so Jan 31 + 1 month normalizes the way time.AddDate does.
func Advance(t time.Time, f models.Frequency) time.Time {
	switch f {
	case models.FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	case models.FrequencyYearly:
		return t.AddDate(1, 0, 0)
	}
	// Unknown frequency: leave the schedule untouched rather than guessing.
	return t
}

// SummaryNotification builds the single aggregate notification emitted when a
// pass materializes at least one transaction.
func SummaryNotification(count int, now time.Time) models.Notification {
	msg := fmt.Sprintf("%d recurring transactions were added automatically.", count)
	if count == 1 {
		msg = "1 recurring transaction was added automatically."
	}
	return models.Notification{
		ID:      uuid.New().String(),
		Title:   "Recurring transactions",
		Message: msg,
		Date:    now,
		Type:    models.NotificationInfo,
	}
}
