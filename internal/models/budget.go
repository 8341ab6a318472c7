package models

// BudgetSegment is one named slice of the percentage-based budget plan.
type BudgetSegment struct {
	// ID is the unique identifier (UUID format).
	ID string `json:"id"`

	Name string `json:"name"`

	// Ratio is the segment's share of monthly income, 0..100.
	Ratio float64 `json:"ratio"`

	Color string `json:"color"`
}

// BudgetConfig is the percentage-based monthly budget plan.
//
// The sum(Ratio) == 100 invariant is enforced only when a user edit is
// committed; legacy or imported configs that violate it are accepted as-is.
type BudgetConfig struct {
	MonthlyIncome float64         `json:"monthlyIncome"`
	Segments      []BudgetSegment `json:"segments"`
}
