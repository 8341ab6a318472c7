// Package models defines the core domain records for the finance ledger.
//
// # Aggregates
//
// The store owns eight aggregates, each persisted as one JSON blob:
//   - Transaction: a realized income or expense entry
//   - RecurringTransaction: a template the scheduler materializes on a cadence
//   - Person: someone who owes the user money (or vice versa), owning DebtItems
//   - Goal: a savings goal with a target amount
//   - Category: a display label for classifying transactions
//   - BudgetConfig: the percentage-based monthly budget plan
//   - Notification: an in-app message, some system-generated
//   - AppSettings: currency, theme and notification toggles
//
// # Design Principles
//
// 1. **Value records**: no cross-aggregate pointers. Debts are owned children of
// their Person; everything else links by string key (a transaction references
// its category by label, not id).
// 2. **Blob compatibility**: JSON tags match the historical storage blobs, so
// legacy data and old exports load unchanged.
// 3. **Derived state stays derived**: DebtItem.Status is always recomputed from
// paidAmount vs amount, never trusted from a caller or a stored blob.
package models
