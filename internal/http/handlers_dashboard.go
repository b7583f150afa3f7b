package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"spendview/internal/core"
	"spendview/internal/stats"
)

type (
	categorySlice struct {
		Label   string
		Color   string
		Amount  string
		Percent float64
	}

	trendBar struct {
		Label   string
		Amount  string
		Percent float64
	}

	statsView struct {
		Count         int
		Total         string
		Average       string
		Median        string
		TopVendor     string
		CurrentMonth  string
		PreviousMonth string
		Categories    []categorySlice
		Trend         []trendBar
	}

	indexView struct {
		Categories       []core.CategoryInfo
		MaxUploadDisplay string
	}
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view := indexView{
		Categories:       core.Catalog(),
		MaxUploadDisplay: "10MB",
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Index template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleStats renders the summary panel partial. Snapshots are cached per
// store version so repeated polls between uploads hit the cache.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	now := time.Now()
	cacheKey := s.statsCacheKey(r, now)
	if html, ok := s.statsCache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
		return
	}

	recs, err := s.lister.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list receipts", "error", err)
		http.Error(w, "failed to load receipts", http.StatusInternalServerError)
		return
	}

	view := statsViewOf(stats.Compute(recs, now))

	var rec strings.Builder
	if err := s.templates.ExecuteTemplate(&rec, "stats_panel", view); err != nil {
		slog.ErrorContext(r.Context(), "Stats template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	html := rec.String()
	s.statsCache.Set(cacheKey, html)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

func (s *Server) statsCacheKey(r *http.Request, now time.Time) string {
	count, err := s.lister.Count(r.Context())
	if err != nil {
		count = -1
	}
	// The key includes the day so month buckets roll over at midnight.
	return fmt.Sprintf("stats:%d:%s", count, now.Format(core.DateFormat))
}

func statsViewOf(sum stats.Summary) statsView {
	view := statsView{
		Count:         sum.Count,
		Total:         money(sum.Total),
		Average:       money(sum.Average),
		Median:        money(sum.Median),
		TopVendor:     sum.TopVendor,
		CurrentMonth:  money(sum.CurrentMonth),
		PreviousMonth: money(sum.PreviousMonth),
	}
	if view.TopVendor == "" {
		view.TopVendor = "-"
	}

	for _, info := range core.Catalog() {
		amount, ok := sum.ByCategory[info.ID]
		if !ok {
			continue
		}
		pct := 0.0
		if sum.Total.Cents > 0 {
			pct = float64(amount.Cents) / float64(sum.Total.Cents) * 100
		}
		view.Categories = append(view.Categories, categorySlice{
			Label:   info.Label,
			Color:   info.Color,
			Amount:  money(amount),
			Percent: pct,
		})
	}

	var maxCents int64
	for _, p := range sum.Trend {
		if p.Total.Cents > maxCents {
			maxCents = p.Total.Cents
		}
	}
	for _, p := range sum.Trend {
		pct := 0.0
		if maxCents > 0 {
			pct = float64(p.Total.Cents) / float64(maxCents) * 100
		}
		view.Trend = append(view.Trend, trendBar{
			Label:   p.Label,
			Amount:  money(p.Total),
			Percent: pct,
		})
	}
	return view
}
