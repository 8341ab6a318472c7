package models

import "time"

// Goal is a savings goal with a target amount.
type Goal struct {
	// ID is the unique identifier (UUID format).
	ID string `json:"id"`

	Name string `json:"name"`

	// TargetAmount is the amount to save. Always positive.
	TargetAmount float64 `json:"targetAmount"`

	// CurrentAmount is the amount saved so far, never negative. It is not
	// clamped to the target; only Progress clamps, and only for display.
	CurrentAmount float64 `json:"currentAmount"`

	Deadline *time.Time `json:"deadline,omitempty"`

	Color string `json:"color"`
}

// Progress returns currentAmount/targetAmount clamped to [0, 1].
func (g Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
