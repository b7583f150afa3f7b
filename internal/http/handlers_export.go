package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"spendview/internal/export"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
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

	data, err := export.CSV(recs)
	if errors.Is(err, export.ErrNoReceipts) {
		http.Error(w, "no receipts to export", http.StatusConflict)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	name := fmt.Sprintf("receipts-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	fmt.Fprint(w, data)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
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

	data, err := export.XLSX(recs)
	if errors.Is(err, export.ErrNoReceipts) {
		http.Error(w, "no receipts to export", http.StatusConflict)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "XLSX export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	name := fmt.Sprintf("receipts-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(data)
}
