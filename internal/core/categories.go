package core

import "strings"

// Category is a fixed label classifying a receipt's spending type.
type Category string

const (
	Dining        Category = "dining"
	Groceries     Category = "groceries"
	Transport     Category = "transport"
	Entertainment Category = "entertainment"
	Shopping      Category = "shopping"
	Utilities     Category = "utilities"
	Travel        Category = "travel"
	Health        Category = "health"
	Office        Category = "office"
	Other         Category = "other"
)

// CategoryInfo carries the display attributes of a category. The catalog is
// read-only reference data, not user-editable.
type CategoryInfo struct {
	ID    Category
	Label string
	Color string
}

var catalog = []CategoryInfo{
	{Dining, "Dining", "#e76f51"},
	{Groceries, "Groceries", "#2a9d8f"},
	{Transport, "Transport", "#264653"},
	{Entertainment, "Entertainment", "#9b5de5"},
	{Shopping, "Shopping", "#f4a261"},
	{Utilities, "Utilities", "#457b9d"},
	{Travel, "Travel", "#00b4d8"},
	{Health, "Health", "#e63946"},
	{Office, "Office", "#6d6875"},
	{Other, "Other", "#8d99ae"},
}

// Catalog returns the fixed category catalog in display order.
func Catalog() []CategoryInfo {
	out := make([]CategoryInfo, len(catalog))
	copy(out, catalog)
	return out
}

func (c Category) Valid() bool {
	for _, ci := range catalog {
		if ci.ID == c {
			return true
		}
	}
	return false
}

// Label returns the display name, falling back to the raw value for
// categories outside the catalog.
func (c Category) Label() string {
	for _, ci := range catalog {
		if ci.ID == c {
			return ci.Label
		}
	}
	return string(c)
}

// Color returns the color tag for the category, empty when unknown.
func (c Category) Color() string {
	for _, ci := range catalog {
		if ci.ID == c {
			return ci.Color
		}
	}
	return ""
}

// CanonicalCategory maps free-form input onto the catalog, defaulting to
// Other when the value is unrecognized.
func CanonicalCategory(input string) Category {
	normalized := Category(strings.ToLower(strings.TrimSpace(input)))
	if normalized.Valid() {
		return normalized
	}
	return Other
}
