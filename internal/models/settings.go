package models

// AppSettings holds the user-tunable knobs the engines consume.
type AppSettings struct {
	// Currency is an ISO 4217 code from the supported set (see the currency
	// package).
	Currency string `json:"currency"`

	DarkMode bool `json:"darkMode"`

	// NotificationsEnabled gates the reminder engine entirely.
	NotificationsEnabled bool `json:"notificationsEnabled"`
}
