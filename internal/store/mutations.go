package store

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/npatel/finledger/internal/budget"
	"github.com/npatel/finledger/internal/currency"
	"github.com/npatel/finledger/internal/debt"
	"github.com/npatel/finledger/internal/metrics"
	"github.com/npatel/finledger/internal/models"
	"github.com/npatel/finledger/internal/recurring"
	"github.com/npatel/finledger/internal/reminder"
	"github.com/npatel/finledger/internal/storage"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidType       = errors.New("unknown transaction type")
	ErrInvalidFrequency  = errors.New("unknown frequency")
	ErrInvalidRelation   = errors.New("unknown relation type")
	ErrEmptyName         = errors.New("name can't be empty")
	ErrUnknownCurrency   = errors.New("unsupported currency")
	ErrDuplicateCategory = errors.New("category label already exists")
	ErrInvalidSchedule   = errors.New("nextRunDate can't precede startDate")
)

// AddTransaction records a new transaction at the head of the list.
func (s *Store) AddTransaction(t models.Transaction) (models.Transaction, error) {
	err := s.mutate(func(d *dirty) error {
		if t.Amount <= 0 {
			return ErrInvalidAmount
		}
		if !t.Type.Valid() {
			return ErrInvalidType
		}
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if t.Date.IsZero() {
			t.Date = time.Now()
		}
		s.transactions = append([]models.Transaction{t}, s.transactions...)
		d.mark(storage.KeyTransactions)
		return nil
	})
	return t, err
}

// DeleteTransaction removes a transaction by id.
func (s *Store) DeleteTransaction(id string) error {
	return s.mutate(func(d *dirty) error {
		for i, t := range s.transactions {
			if t.ID == id {
				s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
				d.mark(storage.KeyTransactions)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddPerson registers a person. Any debts supplied with the person get ids and
// a reconciled status.
func (s *Store) AddPerson(p models.Person) (models.Person, error) {
	err := s.mutate(func(d *dirty) error {
		if strings.TrimSpace(p.Name) == "" {
			return ErrEmptyName
		}
		if !p.RelationType.Valid() {
			return ErrInvalidRelation
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		for i, item := range p.Debts {
			if item.Amount <= 0 || item.PaidAmount < 0 {
				return ErrInvalidAmount
			}
			if item.ID == "" {
				item.ID = uuid.New().String()
			}
			p.Debts[i] = debt.Reconcile(item)
		}
		s.people = append(s.people, p)
		d.mark(storage.KeyPeople)
		return nil
	})
	return p, err
}

// DeletePerson removes a person and, with it, every debt the person owns.
func (s *Store) DeletePerson(id string) error {
	return s.mutate(func(d *dirty) error {
		for i, p := range s.people {
			if p.ID == id {
				s.people = append(s.people[:i], s.people[i+1:]...)
				d.mark(storage.KeyPeople)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddDebt appends a debt to a person.
func (s *Store) AddDebt(personID string, item models.DebtItem) (models.DebtItem, error) {
	err := s.mutate(func(d *dirty) error {
		if item.Amount <= 0 || item.PaidAmount < 0 {
			return ErrInvalidAmount
		}
		p := s.findPersonLocked(personID)
		if p == nil {
			return ErrNotFound
		}
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item = debt.Reconcile(item)
		p.Debts = append(p.Debts, item)
		d.mark(storage.KeyPeople)
		s.runRemindersLocked(time.Now(), d)
		return nil
	})
	return item, err
}

// UpdateDebt applies a generic field update to a debt. Status is always
// recomputed; a caller-supplied status is ignored by construction.
func (s *Store) UpdateDebt(personID, debtID string, patch debt.Patch) (models.DebtItem, error) {
	var updated models.DebtItem
	err := s.mutate(func(d *dirty) error {
		if patch.Amount != nil && *patch.Amount <= 0 {
			return ErrInvalidAmount
		}
		if patch.PaidAmount != nil && *patch.PaidAmount < 0 {
			return ErrInvalidAmount
		}
		item := s.findDebtLocked(personID, debtID)
		if item == nil {
			return ErrNotFound
		}
		*item = debt.ApplyUpdate(*item, patch, time.Now())
		updated = *item
		d.mark(storage.KeyPeople)
		s.runRemindersLocked(time.Now(), d)
		return nil
	})
	return updated, err
}

// RecordPayment applies a payment to a debt, clamped to the remaining balance,
// and returns the updated debt plus the amount actually applied.
func (s *Store) RecordPayment(personID, debtID string, amount float64) (models.DebtItem, float64, error) {
	var (
		updated models.DebtItem
		applied float64
	)
	err := s.mutate(func(d *dirty) error {
		item := s.findDebtLocked(personID, debtID)
		if item == nil {
			return ErrNotFound
		}
		next, got, err := debt.ApplyPayment(*item, amount, time.Now())
		if err != nil {
			return err
		}
		*item = next
		updated, applied = next, got
		d.mark(storage.KeyPeople)
		s.runRemindersLocked(time.Now(), d)
		return nil
	})
	return updated, applied, err
}

// AddGoal creates a savings goal.
func (s *Store) AddGoal(g models.Goal) (models.Goal, error) {
	err := s.mutate(func(d *dirty) error {
		if strings.TrimSpace(g.Name) == "" {
			return ErrEmptyName
		}
		if g.TargetAmount <= 0 || g.CurrentAmount < 0 {
			return ErrInvalidAmount
		}
		if g.ID == "" {
			g.ID = uuid.New().String()
		}
		s.goals = append(s.goals, g)
		d.mark(storage.KeyGoals)
		return nil
	})
	return g, err
}

// UpdateGoal replaces a goal's editable fields, keeping its id.
func (s *Store) UpdateGoal(id string, g models.Goal) (models.Goal, error) {
	err := s.mutate(func(d *dirty) error {
		if strings.TrimSpace(g.Name) == "" {
			return ErrEmptyName
		}
		if g.TargetAmount <= 0 || g.CurrentAmount < 0 {
			return ErrInvalidAmount
		}
		for i, cur := range s.goals {
			if cur.ID == id {
				g.ID = id
				s.goals[i] = g
				d.mark(storage.KeyGoals)
				return nil
			}
		}
		return ErrNotFound
	})
	return g, err
}

// DeleteGoal removes a goal by id.
func (s *Store) DeleteGoal(id string) error {
	return s.mutate(func(d *dirty) error {
		for i, g := range s.goals {
			if g.ID == id {
				s.goals = append(s.goals[:i], s.goals[i+1:]...)
				d.mark(storage.KeyGoals)
				return nil
			}
		}
		return ErrNotFound
	})
}

// UpdateBudget commits a user-edited budget. Ratios must sum to 100; a
// rejected edit leaves the stored budget untouched so the caller can retain
// its draft for correction.
func (s *Store) UpdateBudget(cfg models.BudgetConfig) error {
	return s.mutate(func(d *dirty) error {
		if err := budget.Validate(cfg); err != nil {
			return err
		}
		for i := range cfg.Segments {
			if cfg.Segments[i].ID == "" {
				cfg.Segments[i].ID = uuid.New().String()
			}
		}
		s.budget = cfg
		d.mark(storage.KeyBudget)
		return nil
	})
}

// UpdateSettings replaces the settings and re-evaluates reminders, since the
// notificationsEnabled gate may just have flipped.
func (s *Store) UpdateSettings(st models.AppSettings) error {
	return s.mutate(func(d *dirty) error {
		if !currency.IsSupported(st.Currency) {
			return ErrUnknownCurrency
		}
		s.settings = st
		d.mark(storage.KeySettings)
		s.runRemindersLocked(time.Now(), d)
		return nil
	})
}

// MarkNotificationRead flags a notification as read.
func (s *Store) MarkNotificationRead(id string) error {
	return s.mutate(func(d *dirty) error {
		for i := range s.notifications {
			if s.notifications[i].ID == id {
				s.notifications[i].Read = true
				d.mark(storage.KeyNotifications)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddCategory creates a custom category. Labels are unique display keys.
func (s *Store) AddCategory(c models.Category) (models.Category, error) {
	err := s.mutate(func(d *dirty) error {
		if strings.TrimSpace(c.Label) == "" {
			return ErrEmptyName
		}
		for _, cur := range s.categories {
			if strings.EqualFold(cur.Label, c.Label) {
				return ErrDuplicateCategory
			}
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if c.Icon == "" {
			c.Icon = models.IconOther
		}
		c.IsCustom = true
		s.categories = append(s.categories, c)
		d.mark(storage.KeyCategories)
		return nil
	})
	return c, err
}

// DeleteCategory removes a category. Transactions referencing its label keep
// their category strings; the reference is by label, not id.
func (s *Store) DeleteCategory(id string) error {
	return s.mutate(func(d *dirty) error {
		for i, c := range s.categories {
			if c.ID == id {
				s.categories = append(s.categories[:i], s.categories[i+1:]...)
				d.mark(storage.KeyCategories)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddRecurring registers a recurring template. Templates are created active;
// a zero nextRunDate defaults to the start date.
func (s *Store) AddRecurring(rt models.RecurringTransaction) (models.RecurringTransaction, error) {
	err := s.mutate(func(d *dirty) error {
		if rt.Amount <= 0 {
			return ErrInvalidAmount
		}
		if !rt.Type.Valid() {
			return ErrInvalidType
		}
		if !rt.Frequency.Valid() {
			return ErrInvalidFrequency
		}
		if rt.StartDate.IsZero() {
			rt.StartDate = time.Now()
		}
		if rt.NextRunDate.IsZero() {
			rt.NextRunDate = rt.StartDate
		}
		if rt.NextRunDate.Before(rt.StartDate) {
			return ErrInvalidSchedule
		}
		if rt.ID == "" {
			rt.ID = uuid.New().String()
		}
		rt.Active = true
		s.recurring = append(s.recurring, rt)
		d.mark(storage.KeyRecurring)
		return nil
	})
	return rt, err
}

// DeleteRecurring removes a recurring template by id.
func (s *Store) DeleteRecurring(id string) error {
	return s.mutate(func(d *dirty) error {
		for i, rt := range s.recurring {
			if rt.ID == id {
				s.recurring = append(s.recurring[:i], s.recurring[i+1:]...)
				d.mark(storage.KeyRecurring)
				return nil
			}
		}
		return ErrNotFound
	})
}

// RunRecurringPass materializes due recurring templates: emitted transactions
// are prepended, advanced templates replace their prior versions, and a single
// info notification summarizes the pass — all in one atomic update. Returns
// the number of transactions materialized.
func (s *Store) RunRecurringPass(now time.Time) int {
	var count int
	_ = s.mutate(func(d *dirty) error {
		res := recurring.Materialize(s.recurring, now)
		count = res.Materialized
		if count == 0 {
			return nil
		}
		s.transactions = append(res.Transactions, s.transactions...)
		s.recurring = res.Templates
		s.notifications = append(s.notifications, recurring.SummaryNotification(count, now))
		metrics.TransactionsMaterialized.Add(float64(count))
		d.mark(storage.KeyTransactions)
		d.mark(storage.KeyRecurring)
		d.mark(storage.KeyNotifications)
		return nil
	})
	return count
}

// RunReminderPass evaluates debt payment reminders against the current state.
// Returns the number of reminders emitted.
func (s *Store) RunReminderPass(now time.Time) int {
	var count int
	_ = s.mutate(func(d *dirty) error {
		count = s.runRemindersLocked(now, d)
		return nil
	})
	return count
}

// runRemindersLocked is the reminder pass body; callers hold the store lock.
func (s *Store) runRemindersLocked(now time.Time, d *dirty) int {
	if !s.settings.NotificationsEnabled {
		return 0
	}
	fresh := reminder.Evaluate(s.people, s.notifications, now, currency.NewFormatter(s.settings.Currency))
	if len(fresh) == 0 {
		return 0
	}
	s.notifications = append(s.notifications, fresh...)
	metrics.RemindersEmitted.Add(float64(len(fresh)))
	d.mark(storage.KeyNotifications)
	return len(fresh)
}

func (s *Store) findPersonLocked(id string) *models.Person {
	for i := range s.people {
		if s.people[i].ID == id {
			return &s.people[i]
		}
	}
	return nil
}

func (s *Store) findDebtLocked(personID, debtID string) *models.DebtItem {
	p := s.findPersonLocked(personID)
	if p == nil {
		return nil
	}
	for i := range p.Debts {
		if p.Debts[i].ID == debtID {
			return &p.Debts[i]
		}
	}
	return nil
}
