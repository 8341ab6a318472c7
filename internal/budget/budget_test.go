package budget

import (
	"encoding/json"
	"testing"

	"github.com/npatel/finledger/internal/models"
)

func TestMigrateLegacy(t *testing.T) {
	raw := json.RawMessage(`{"monthlyIncome":1000,"needsRatio":60,"wantsRatio":25,"savingsRatio":15}`)

	got := Migrate(raw)

	if got.MonthlyIncome != 1000 {
		t.Errorf("MonthlyIncome = %v, want 1000", got.MonthlyIncome)
	}
	if len(got.Segments) != 3 {
		t.Fatalf("segment count = %d, want 3", len(got.Segments))
	}

	wantNames := []string{"Essentials", "Discretionary", "Savings"}
	wantRatios := []float64{60, 25, 15}
	for i, seg := range got.Segments {
		if seg.Name != wantNames[i] {
			t.Errorf("segment %d name = %q, want %q", i, seg.Name, wantNames[i])
		}
		if seg.Ratio != wantRatios[i] {
			t.Errorf("segment %d ratio = %v, want %v", i, seg.Ratio, wantRatios[i])
		}
		if seg.Color == "" {
			t.Errorf("segment %d has no color", i)
		}
		// Ids are regenerated per call; assert presence only.
		if seg.ID == "" {
			t.Errorf("segment %d has no id", i)
		}
	}
}

func TestMigrateIsIdempotentOnItsOwnOutput(t *testing.T) {
	legacy := json.RawMessage(`{"monthlyIncome":1000,"needsRatio":60,"wantsRatio":25,"savingsRatio":15}`)
	first := Migrate(legacy)

	blob, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal migrated config: %v", err)
	}
	second := Migrate(blob)

	// The segmented shape passes through unchanged, ids included.
	if second.MonthlyIncome != first.MonthlyIncome {
		t.Errorf("MonthlyIncome changed: %v -> %v", first.MonthlyIncome, second.MonthlyIncome)
	}
	if len(second.Segments) != len(first.Segments) {
		t.Fatalf("segment count changed: %d -> %d", len(first.Segments), len(second.Segments))
	}
	for i := range first.Segments {
		if second.Segments[i] != first.Segments[i] {
			t.Errorf("segment %d changed: %+v -> %+v", i, first.Segments[i], second.Segments[i])
		}
	}
}

func TestMigrateFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  json.RawMessage
	}{
		{"absent", nil},
		{"null", json.RawMessage(`null`)},
		{"malformed", json.RawMessage(`{not json`)},
		{"neither shape", json.RawMessage(`{"monthlyIncome":500}`)},
		{"wrong types", json.RawMessage(`{"segments":"nope"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Migrate(tt.raw)
			if got.MonthlyIncome != 0 {
				t.Errorf("MonthlyIncome = %v, want 0", got.MonthlyIncome)
			}
			if len(got.Segments) != 3 {
				t.Fatalf("segment count = %d, want 3", len(got.Segments))
			}
			wantRatios := []float64{50, 30, 20}
			for i, seg := range got.Segments {
				if seg.Ratio != wantRatios[i] {
					t.Errorf("segment %d ratio = %v, want %v", i, seg.Ratio, wantRatios[i])
				}
			}
		})
	}
}

func TestMigrateLegacyWithNullSegments(t *testing.T) {
	// A null segments key is not a segments array; the legacy ratios next to
	// it still convert.
	raw := json.RawMessage(`{"monthlyIncome":1000,"segments":null,"needsRatio":60,"wantsRatio":25,"savingsRatio":15}`)
	got := Migrate(raw)

	if got.MonthlyIncome != 1000 {
		t.Errorf("MonthlyIncome = %v, want 1000", got.MonthlyIncome)
	}
	if len(got.Segments) != 3 {
		t.Fatalf("segment count = %d, want 3", len(got.Segments))
	}
	wantRatios := []float64{60, 25, 15}
	for i, seg := range got.Segments {
		if seg.Ratio != wantRatios[i] {
			t.Errorf("segment %d ratio = %v, want %v", i, seg.Ratio, wantRatios[i])
		}
	}
}

func TestMigrateLegacyPartialRatios(t *testing.T) {
	// Missing legacy ratios take the slot defaults.
	got := Migrate(json.RawMessage(`{"monthlyIncome":200,"needsRatio":70}`))
	wantRatios := []float64{70, 30, 20}
	for i, seg := range got.Segments {
		if seg.Ratio != wantRatios[i] {
			t.Errorf("segment %d ratio = %v, want %v", i, seg.Ratio, wantRatios[i])
		}
	}
}

func TestMigratePassThroughKeepsBadRatios(t *testing.T) {
	// Segmented configs are accepted as-is even when ratios don't sum to 100.
	raw := json.RawMessage(`{"monthlyIncome":100,"segments":[{"id":"a","name":"Only","ratio":40,"color":"#fff"}]}`)
	got := Migrate(raw)
	if len(got.Segments) != 1 || got.Segments[0].Ratio != 40 {
		t.Errorf("pass-through altered segments: %+v", got.Segments)
	}
}

func TestValidate(t *testing.T) {
	seg := func(ratio float64) models.BudgetSegment {
		return models.BudgetSegment{ID: "x", Name: "seg", Ratio: ratio, Color: "#000"}
	}

	tests := []struct {
		name    string
		cfg     models.BudgetConfig
		wantErr error
	}{
		{"valid 50/30/20", models.BudgetConfig{MonthlyIncome: 1000, Segments: []models.BudgetSegment{seg(50), seg(30), seg(20)}}, nil},
		{"sum 90 rejected", models.BudgetConfig{Segments: []models.BudgetSegment{seg(50), seg(40)}}, ErrRatioSum},
		{"negative income rejected", models.BudgetConfig{MonthlyIncome: -1, Segments: []models.BudgetSegment{seg(100)}}, ErrNegativeIncome},
		{"empty segments rejected", models.BudgetConfig{}, ErrRatioSum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.cfg); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
