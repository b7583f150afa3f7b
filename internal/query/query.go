// Package query implements the filter/sort engine behind the receipts
// table. Every function is a pure transform over a snapshot: inputs are
// never mutated and results are recomputed on each call.
package query

import (
	"sort"
	"strings"
	"time"

	"spendview/internal/core"
)

// DateWindow restricts receipts to a trailing span measured against "now"
// at evaluation time.
type DateWindow string

const (
	WindowAll    DateWindow = ""
	Window30Days DateWindow = "30d"
	Window90Days DateWindow = "90d"
	WindowYear   DateWindow = "year" // current calendar year
)

func (w DateWindow) Valid() bool {
	switch w {
	case WindowAll, Window30Days, Window90Days, WindowYear:
		return true
	}
	return false
}

// SortKey selects the column receipts are ordered by.
type SortKey string

const (
	SortDate     SortKey = "date"
	SortAmount   SortKey = "amount"
	SortVendor   SortKey = "vendor"
	SortCategory SortKey = "category"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortDate, SortAmount, SortVendor, SortCategory:
		return true
	}
	return false
}

type Sort struct {
	Key  SortKey
	Desc bool
}

// DefaultSort is the order the table opens with: newest receipts first.
var DefaultSort = Sort{Key: SortDate, Desc: true}

// Filter is the conjunction of all active predicate families. Zero values
// deactivate a family.
type Filter struct {
	Search   string        // case-insensitive substring over vendor+category
	Category core.Category // empty means all categories
	Window   DateWindow
	MinCents *int64 // inclusive, nil means unbounded
	MaxCents *int64 // inclusive, nil means unbounded
}

// Toggle flips direction when the active key is selected again and resets
// to ascending when a new key is chosen.
func Toggle(cur Sort, key SortKey) Sort {
	if cur.Key == key {
		return Sort{Key: key, Desc: !cur.Desc}
	}
	return Sort{Key: key}
}

// Apply returns the subsequence of recs satisfying every active predicate,
// ordered by s. Ties keep the input order (stable sort); now anchors the
// date-window predicates.
func Apply(recs []core.Receipt, f Filter, s Sort, now time.Time) []core.Receipt {
	out := make([]core.Receipt, 0, len(recs))
	for _, r := range recs {
		if f.matches(r, now) {
			out = append(out, r)
		}
	}

	less := lessFunc(s.Key)
	sort.SliceStable(out, func(i, j int) bool {
		if s.Desc {
			i, j = j, i
		}
		return less(out[i], out[j])
	})
	return out
}

func (f Filter) matches(r core.Receipt, now time.Time) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		haystack := strings.ToLower(r.Vendor + " " + string(r.Category))
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	switch f.Window {
	case Window30Days:
		if r.Date.Before(core.DateOf(now.AddDate(0, 0, -30))) {
			return false
		}
	case Window90Days:
		if r.Date.Before(core.DateOf(now.AddDate(0, 0, -90))) {
			return false
		}
	case WindowYear:
		if r.Date.Year() != now.Year() {
			return false
		}
	}
	if f.MinCents != nil && r.Amount.Cents < *f.MinCents {
		return false
	}
	if f.MaxCents != nil && r.Amount.Cents > *f.MaxCents {
		return false
	}
	return true
}

func lessFunc(key SortKey) func(a, b core.Receipt) bool {
	switch key {
	case SortAmount:
		return func(a, b core.Receipt) bool { return a.Amount.Cents < b.Amount.Cents }
	case SortVendor:
		return func(a, b core.Receipt) bool {
			return strings.ToLower(a.Vendor) < strings.ToLower(b.Vendor)
		}
	case SortCategory:
		return func(a, b core.Receipt) bool {
			return strings.ToLower(string(a.Category)) < strings.ToLower(string(b.Category))
		}
	default: // SortDate
		return func(a, b core.Receipt) bool { return a.Date.Before(b.Date) }
	}
}
