package http

import (
	"net/http"
	"strings"

	"spendview/internal/core"
	"spendview/internal/query"
)

// parseFilter reads the table's filter parameters. Unknown or malformed
// values fall back to the inactive predicate rather than erroring: the
// filter bar is driven by the UI and should stay forgiving.
func parseFilter(r *http.Request) query.Filter {
	q := r.URL.Query()
	f := query.Filter{
		Search: strings.TrimSpace(q.Get("search")),
	}

	if cat := strings.TrimSpace(q.Get("category")); cat != "" && cat != "all" {
		c := core.Category(cat)
		if c.Valid() {
			f.Category = c
		}
	}

	if w := query.DateWindow(strings.TrimSpace(q.Get("window"))); w.Valid() {
		f.Window = w
	}

	if v := strings.TrimSpace(q.Get("min")); v != "" {
		if cents, err := core.ParseDecimalToCents(v); err == nil {
			f.MinCents = &cents
		}
	}
	if v := strings.TrimSpace(q.Get("max")); v != "" {
		if cents, err := core.ParseDecimalToCents(v); err == nil {
			f.MaxCents = &cents
		}
	}
	return f
}

// parseSort reads the requested sort column and direction, defaulting to
// newest-first.
func parseSort(r *http.Request) query.Sort {
	q := r.URL.Query()
	key := query.SortKey(strings.TrimSpace(q.Get("sort")))
	if !key.Valid() {
		return query.DefaultSort
	}
	return query.Sort{Key: key, Desc: q.Get("dir") == "desc"}
}
