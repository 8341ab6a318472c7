package store

import (
	"github.com/google/uuid"

	"github.com/npatel/finledger/internal/currency"
	"github.com/npatel/finledger/internal/models"
)

// DefaultSettings returns the settings a fresh (or corrupt) install starts with.
func DefaultSettings() models.AppSettings {
	return models.AppSettings{
		Currency:             currency.DefaultCode,
		DarkMode:             false,
		NotificationsEnabled: true,
	}
}

// DefaultCategories returns the built-in category set. Ids are regenerated per
// call; transactions reference categories by label, so this is harmless.
func DefaultCategories() []models.Category {
	seed := []struct {
		label string
		icon  models.IconRef
		color string
	}{
		{"Food", models.IconFood, "#F76E4F"},
		{"Transport", models.IconTransport, "#4F8EF7"},
		{"Shopping", models.IconShopping, "#B44FF7"},
		{"Bills", models.IconBills, "#F7B84F"},
		{"Health", models.IconHealth, "#F74F8E"},
		{"Entertainment", models.IconEntertainment, "#4FC9F7"},
		{"Salary", models.IconSalary, "#4FC97A"},
		{"Savings", models.IconSavings, "#2FA45E"},
		{"Other", models.IconOther, "#9AA0A6"},
	}

	out := make([]models.Category, 0, len(seed))
	for _, c := range seed {
		out = append(out, models.Category{
			ID:    uuid.New().String(),
			Label: c.label,
			Icon:  c.icon,
			Color: c.color,
		})
	}
	return out
}
