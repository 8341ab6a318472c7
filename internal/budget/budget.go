// Package budget normalizes stored budget configurations and validates edits.
//
// The on-disk budget blob has two historical shapes: the current segmented
// form ({monthlyIncome, segments}) and the legacy three-ratio form
// ({monthlyIncome, needsRatio, wantsRatio, savingsRatio}). Migrate converts
// either (or garbage) into the segmented form; both the initial load path and
// snapshot import call it with identical semantics.
package budget

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/npatel/finledger/internal/models"
)

// ErrRatioSum rejects a user-initiated budget edit whose segment ratios do not
// sum to 100.
var ErrRatioSum = errors.New("budget segment ratios must sum to 100")

// ErrNegativeIncome rejects a budget edit with a negative monthly income.
var ErrNegativeIncome = errors.New("monthly income must not be negative")

// Default segment slots. The legacy migration and the hardcoded default budget
// share names and colors; only the ratios differ.
var defaultSlots = [3]struct {
	name  string
	ratio float64
	color string
}{
	{"Essentials", 50, "#4F8EF7"},
	{"Discretionary", 30, "#F7B84F"},
	{"Savings", 20, "#4FC97A"},
}

// Default returns the hardcoded fallback budget: zero income, 50/30/20.
func Default() models.BudgetConfig {
	cfg := models.BudgetConfig{Segments: make([]models.BudgetSegment, 0, len(defaultSlots))}
	for _, slot := range defaultSlots {
		cfg.Segments = append(cfg.Segments, models.BudgetSegment{
			ID:    uuid.New().String(),
			Name:  slot.name,
			Ratio: slot.ratio,
			Color: slot.color,
		})
	}
	return cfg
}

// probe distinguishes the two historical shapes. Segments stays raw so a
// present-but-empty array is still "segmented shape".
type probe struct {
	MonthlyIncome *float64        `json:"monthlyIncome"`
	Segments      json.RawMessage `json:"segments"`
	NeedsRatio    *float64        `json:"needsRatio"`
	WantsRatio    *float64        `json:"wantsRatio"`
	SavingsRatio  *float64        `json:"savingsRatio"`
}

// Migrate normalizes an arbitrary stored budget value to the segmented shape.
//
//   - segmented input passes through unchanged, even if ratios don't sum to 100
//   - legacy three-ratio input becomes exactly three segments (Essentials,
//     Discretionary, Savings) with fresh ids and the fixed slot colors
//   - absent, null, or malformed input yields Default()
//
// Segment ids are regenerated on every legacy conversion; callers must not
// rely on them being stable across calls.
func Migrate(raw json.RawMessage) models.BudgetConfig {
	if len(raw) == 0 || string(raw) == "null" {
		return Default()
	}

	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return Default()
	}

	// A segments key holding JSON null is not a segments array; fall through
	// to the legacy probe so its ratios aren't dropped.
	if p.Segments != nil && string(p.Segments) != "null" {
		var cfg models.BudgetConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return Default()
		}
		return cfg
	}

	if p.NeedsRatio == nil && p.WantsRatio == nil && p.SavingsRatio == nil {
		// Neither shape matches.
		return Default()
	}

	cfg := models.BudgetConfig{}
	if p.MonthlyIncome != nil {
		cfg.MonthlyIncome = *p.MonthlyIncome
	}
	ratios := [3]*float64{p.NeedsRatio, p.WantsRatio, p.SavingsRatio}
	for i, slot := range defaultSlots {
		ratio := slot.ratio
		if ratios[i] != nil {
			ratio = *ratios[i]
		}
		cfg.Segments = append(cfg.Segments, models.BudgetSegment{
			ID:    uuid.New().String(),
			Name:  slot.name,
			Ratio: ratio,
			Color: slot.color,
		})
	}
	return cfg
}

// Validate checks a user-initiated budget edit before it is committed.
// Loaded or imported configs are never validated; display accepts them as-is.
func Validate(cfg models.BudgetConfig) error {
	if cfg.MonthlyIncome < 0 {
		return ErrNegativeIncome
	}
	var sum float64
	for _, seg := range cfg.Segments {
		sum += seg.Ratio
	}
	if math.Abs(sum-100) > 1e-6 {
		return ErrRatioSum
	}
	return nil
}
