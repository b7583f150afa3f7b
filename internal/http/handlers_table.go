package http

import (
	"log/slog"
	"net/http"
	"time"

	"spendview/internal/core"
	"spendview/internal/query"
)

type (
	receiptRow struct {
		ID            string
		Date          string
		Vendor        string
		Amount        string
		CategoryID    string
		CategoryLabel string
		CategoryColor string
		File          string
		Confidence    string
	}

	columnHeader struct {
		Key    string
		Label  string
		Active bool
		Desc   bool
		// NextDir is the direction a click on this header requests
		NextDir string
	}

	tableView struct {
		Rows    []receiptRow
		Shown   int
		Total   int
		Columns []columnHeader
		SortKey string
		SortDir string
	}
)

var tableColumns = []struct {
	Key   query.SortKey
	Label string
}{
	{query.SortDate, "Date"},
	{query.SortVendor, "Vendor"},
	{query.SortAmount, "Amount"},
	{query.SortCategory, "Category"},
}

// handleReceiptsTable renders the filtered, sorted receipts table partial.
func (s *Server) handleReceiptsTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	recs, err := s.lister.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list receipts", "error", err)
		http.Error(w, "failed to load receipts", http.StatusInternalServerError)
		return
	}

	f := parseFilter(r)
	f.Search = sanitizeInput(f.Search)
	sortState := parseSort(r)

	visible := query.Apply(recs, f, sortState, time.Now())

	view := tableView{
		Rows:    make([]receiptRow, 0, len(visible)),
		Shown:   len(visible),
		Total:   len(recs),
		SortKey: string(sortState.Key),
		SortDir: dirString(sortState.Desc),
	}
	for _, rec := range visible {
		view.Rows = append(view.Rows, rowView(rec))
	}
	for _, col := range tableColumns {
		next := query.Toggle(sortState, col.Key)
		view.Columns = append(view.Columns, columnHeader{
			Key:     string(col.Key),
			Label:   col.Label,
			Active:  sortState.Key == col.Key,
			Desc:    sortState.Desc,
			NextDir: dirString(next.Desc),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "receipts_table", view); err != nil {
		slog.ErrorContext(r.Context(), "Receipts table template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func rowView(rec core.Receipt) receiptRow {
	return receiptRow{
		ID:            rec.ID,
		Date:          rec.Date.String(),
		Vendor:        rec.Vendor,
		Amount:        money(rec.Amount),
		CategoryID:    string(rec.Category),
		CategoryLabel: rec.Category.Label(),
		CategoryColor: rec.Category.Color(),
		File:          rec.FileName,
		Confidence:    formatConfidence(rec.Confidence),
	}
}

func dirString(desc bool) string {
	if desc {
		return "desc"
	}
	return "asc"
}
