package models

// IconRef is a closed tag identifying a category icon. The presentation layer
// resolves tags through IconGlyphs; unknown tags fall back to IconOther.
type IconRef string

const (
	IconFood          IconRef = "food"
	IconTransport     IconRef = "transport"
	IconShopping      IconRef = "shopping"
	IconBills         IconRef = "bills"
	IconHealth        IconRef = "health"
	IconEntertainment IconRef = "entertainment"
	IconSalary        IconRef = "salary"
	IconSavings       IconRef = "savings"
	IconOther         IconRef = "other"
)

// IconGlyphs is the static mapping from icon tag to display glyph.
var IconGlyphs = map[IconRef]string{
	IconFood:          "🍽",
	IconTransport:     "🚌",
	IconShopping:      "🛍",
	IconBills:         "🧾",
	IconHealth:        "🩺",
	IconEntertainment: "🎬",
	IconSalary:        "💼",
	IconSavings:       "🐖",
	IconOther:         "🏷",
}

// Glyph resolves the icon tag to its display glyph.
func (i IconRef) Glyph() string {
	if g, ok := IconGlyphs[i]; ok {
		return g
	}
	return IconGlyphs[IconOther]
}

// Category is a display label for classifying transactions. Transactions
// reference categories by Label, so categories can be deleted without
// rewriting transaction history.
type Category struct {
	// ID is the unique identifier (UUID format).
	ID string `json:"id"`

	// Label is the unique display key transactions reference.
	Label string `json:"label"`

	Icon  IconRef `json:"icon"`
	Color string  `json:"color"`

	// IsCustom marks user-created categories; defaults ship with the app.
	IsCustom bool `json:"isCustom,omitempty"`
}
