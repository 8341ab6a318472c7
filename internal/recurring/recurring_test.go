package recurring

import (
	"strings"
	"testing"
	"time"

	"github.com/npatel/finledger/internal/models"
)

func tpl(id string, freq models.Frequency, next time.Time) models.RecurringTransaction {
	return models.RecurringTransaction{
		ID:          id,
		Amount:      50,
		Type:        models.TransactionExpense,
		Category:    "Bills",
		Frequency:   freq,
		StartDate:   next.AddDate(0, -1, 0),
		NextRunDate: next,
		Active:      true,
	}
}

func TestMaterialize(t *testing.T) {
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)

	t.Run("due template emits one transaction dated at the scheduled run", func(t *testing.T) {
		due := now.AddDate(0, 0, -3)
		res := Materialize([]models.RecurringTransaction{tpl("r1", models.FrequencyMonthly, due)}, now)

		if res.Materialized != 1 {
			t.Fatalf("Materialized = %d, want 1", res.Materialized)
		}
		tx := res.Transactions[0]
		if !tx.Date.Equal(due) {
			t.Errorf("Date = %v, want the scheduled %v, not now", tx.Date, due)
		}
		if !tx.IsRecurring {
			t.Error("IsRecurring not set")
		}
		if tx.Amount != 50 || tx.Type != models.TransactionExpense || tx.Category != "Bills" {
			t.Errorf("template fields not copied: %+v", tx)
		}
		if tx.Notes != "Auto: Bills" {
			t.Errorf("Notes = %q, want \"Auto: Bills\" (category fallback)", tx.Notes)
		}
		if want := due.AddDate(0, 1, 0); !res.Templates[0].NextRunDate.Equal(want) {
			t.Errorf("NextRunDate = %v, want advanced from previous run: %v", res.Templates[0].NextRunDate, want)
		}
	})

	t.Run("notes take precedence over category", func(t *testing.T) {
		template := tpl("r1", models.FrequencyDaily, now)
		template.Notes = "Gym membership"
		res := Materialize([]models.RecurringTransaction{template}, now)
		if res.Transactions[0].Notes != "Auto: Gym membership" {
			t.Errorf("Notes = %q", res.Transactions[0].Notes)
		}
	})

	t.Run("same-day counts as due", func(t *testing.T) {
		res := Materialize([]models.RecurringTransaction{tpl("r1", models.FrequencyWeekly, now)}, now)
		if res.Materialized != 1 {
			t.Errorf("Materialized = %d, want 1", res.Materialized)
		}
	})

	t.Run("future template is skipped", func(t *testing.T) {
		res := Materialize([]models.RecurringTransaction{tpl("r1", models.FrequencyDaily, now.AddDate(0, 0, 1))}, now)
		if res.Materialized != 0 {
			t.Errorf("Materialized = %d, want 0", res.Materialized)
		}
	})

	t.Run("inactive template is skipped", func(t *testing.T) {
		template := tpl("r1", models.FrequencyDaily, now.AddDate(0, 0, -1))
		template.Active = false
		res := Materialize([]models.RecurringTransaction{template}, now)
		if res.Materialized != 0 {
			t.Errorf("Materialized = %d, want 0", res.Materialized)
		}
		if !res.Templates[0].NextRunDate.Equal(template.NextRunDate) {
			t.Error("inactive template schedule moved")
		}
	})

	t.Run("backlog drains one period per pass", func(t *testing.T) {
		// Five days behind on a daily template: each pass emits exactly one
		// transaction and advances one day; no fast-forward to now.
		templates := []models.RecurringTransaction{tpl("r1", models.FrequencyDaily, now.AddDate(0, 0, -5))}
		for pass := 0; pass < 5; pass++ {
			res := Materialize(templates, now)
			if res.Materialized != 1 {
				t.Fatalf("pass %d: Materialized = %d, want 1", pass, res.Materialized)
			}
			templates = res.Templates
		}
		// Sixth pass: the template has caught up to now (same-day due).
		res := Materialize(templates, now)
		if res.Materialized != 1 {
			t.Fatalf("catch-up pass: Materialized = %d, want 1", res.Materialized)
		}
		res = Materialize(res.Templates, now)
		if res.Materialized != 0 {
			t.Errorf("after catch-up: Materialized = %d, want 0", res.Materialized)
		}
	})
}

func TestAdvance(t *testing.T) {
	base := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		freq models.Frequency
		want time.Time
	}{
		{"daily", models.FrequencyDaily, base.AddDate(0, 0, 1)},
		{"weekly", models.FrequencyWeekly, base.AddDate(0, 0, 7)},
		{"monthly normalizes Jan 31", models.FrequencyMonthly, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"yearly", models.FrequencyYearly, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Advance(base, tt.freq); !got.Equal(tt.want) {
				t.Errorf("Advance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummaryNotification(t *testing.T) {
	now := time.Now()

	n := SummaryNotification(1, now)
	if n.Type != models.NotificationInfo {
		t.Errorf("Type = %q, want info", n.Type)
	}
	if !strings.Contains(n.Message, "1 recurring transaction was") {
		t.Errorf("singular message = %q", n.Message)
	}

	n = SummaryNotification(3, now)
	if !strings.Contains(n.Message, "3 recurring transactions") {
		t.Errorf("plural message = %q", n.Message)
	}
}
