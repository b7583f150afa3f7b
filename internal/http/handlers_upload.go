package http

import (
	"log/slog"
	"net/http"

	"spendview/internal/core"
	"spendview/internal/services"
)

// multipartMemoryLimit bounds how much of the request body is held in
// memory while parsing. Oversized files still reach validation so they
// can be rejected individually.
const multipartMemoryLimit = 32 << 20

type uploadView struct {
	BatchID   string
	Accepted  int
	Rejected  []services.FileRejection
	HasErrors bool
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		slog.WarnContext(r.Context(), "Malformed upload request", "error", err)
		http.Error(w, "malformed multipart request", http.StatusBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		http.Error(w, "no files provided", http.StatusBadRequest)
		return
	}

	files := make([]core.FileMeta, 0, len(headers))
	for _, h := range headers {
		ct := h.Header.Get("Content-Type")
		files = append(files, core.FileMeta{
			Name:        h.Filename,
			ContentType: ct,
			Size:        h.Size,
		})
	}

	result := s.uploads.Submit(r.Context(), files)

	slog.InfoContext(r.Context(), "Upload accepted",
		"batch_id", result.BatchID,
		"accepted", result.Accepted,
		"rejected", len(result.Rejected))

	view := uploadView{
		BatchID:   result.BatchID,
		Accepted:  result.Accepted,
		Rejected:  result.Rejected,
		HasErrors: len(result.Rejected) > 0,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if result.Accepted == 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if err := s.templates.ExecuteTemplate(w, "upload_result", view); err != nil {
		slog.ErrorContext(r.Context(), "Upload result template failed", "error", err)
	}
}
