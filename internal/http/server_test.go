package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"spendview/internal/core"
	"spendview/internal/mockextract"
	"spendview/internal/records/memory"
	"spendview/internal/services"
)

type stubLister struct {
	recs []core.Receipt
	err  error
}

func (s *stubLister) List(context.Context) ([]core.Receipt, error) { return s.recs, s.err }
func (s *stubLister) Count(context.Context) (int, error)           { return len(s.recs), s.err }

func sampleReceipts() []core.Receipt {
	return []core.Receipt{
		{
			ID: "aaaa1111", Vendor: "Starbucks", Date: core.NewDate(2026, 8, 20),
			Amount: core.Money{Cents: 550}, Category: core.Dining,
			FileName: "latte.jpg", FileType: "image/jpeg", Confidence: 0.91,
		},
		{
			ID: "bbbb2222", Vendor: "Amazon", Date: core.NewDate(2026, 7, 2),
			Amount: core.Money{Cents: 4999}, Category: core.Shopping,
			FileName: "order.pdf", FileType: "application/pdf", Confidence: 0.84,
		},
	}
}

func newTestServer(t *testing.T, lister *stubLister) *Server {
	t.Helper()
	store := memory.New()
	gen := mockextract.New(42, nil)
	uploads := services.NewUploadService(store, gen, nil, services.DefaultMaxUploadBytes, 0)
	srv := NewServer(":0", lister, uploads)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func TestIndexServesDashboard(t *testing.T) {
	srv := newTestServer(t, &stubLister{})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Spendview") {
		t.Errorf("page missing title, got: %.120s", body)
	}
	if !strings.Contains(body, "/ui/receipts") || !strings.Contains(body, "/ui/stats") {
		t.Error("page missing partial endpoints")
	}
}

func TestIndexRejectsUnknownPath(t *testing.T) {
	srv := newTestServer(t, &stubLister{})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestReceiptsTableRendersRows(t *testing.T) {
	srv := newTestServer(t, &stubLister{recs: sampleReceipts()})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui/receipts", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"Starbucks", "Amazon", "$5.50", "$49.99", "91%", "latte.jpg"} {
		if !strings.Contains(body, want) {
			t.Errorf("table missing %q", want)
		}
	}
	// Default sort is newest first.
	if strings.Index(body, "Starbucks") > strings.Index(body, "Amazon") {
		t.Error("expected Starbucks (newer) before Amazon")
	}
}

func TestReceiptsTableHonorsSortParams(t *testing.T) {
	srv := newTestServer(t, &stubLister{recs: sampleReceipts()})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui/receipts?sort=vendor&dir=asc", nil))

	body := rr.Body.String()
	if strings.Index(body, "Amazon") > strings.Index(body, "Starbucks") {
		t.Error("expected Amazon before Starbucks when sorting by vendor ascending")
	}
	if !strings.Contains(body, `name="sort" value="vendor"`) {
		t.Error("sort state input missing current key")
	}
}

func TestReceiptsTableAppliesFilter(t *testing.T) {
	srv := newTestServer(t, &stubLister{recs: sampleReceipts()})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui/receipts?search=star", nil))

	body := rr.Body.String()
	if !strings.Contains(body, "Starbucks") {
		t.Error("expected matching row")
	}
	if strings.Contains(body, "Amazon") {
		t.Error("expected non-matching row to be filtered out")
	}
	if !strings.Contains(body, "Showing 1 of 2") {
		t.Errorf("wrong counts line in %q", body)
	}
}

func TestStatsPanel(t *testing.T) {
	srv := newTestServer(t, &stubLister{recs: sampleReceipts()})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ui/stats", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"$55.49", "Last 6 months", "Top vendor"} {
		if !strings.Contains(body, want) {
			t.Errorf("stats panel missing %q", want)
		}
	}

	// A second request is served from the cache and must render identically.
	rr2 := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr2, httptest.NewRequest(http.MethodGet, "/ui/stats", nil))
	if rr2.Body.String() != body {
		t.Error("cached stats panel differs from first render")
	}
}

func multipartBody(t *testing.T, files []core.FileMeta) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
		h.Set("Content-Type", f.ContentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("creating part: %v", err)
		}
		if _, err := io.CopyN(part, zeroReader{}, f.Size); err != nil {
			t.Fatalf("writing part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestUploadAcceptsAndRejectsPerFile(t *testing.T) {
	srv := newTestServer(t, &stubLister{})

	body, ct := multipartBody(t, []core.FileMeta{
		{Name: "receipt.jpg", ContentType: "image/jpeg", Size: 128},
		{Name: "archive.zip", ContentType: "application/zip", Size: 128},
	})
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ct)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	got := rr.Body.String()
	if !strings.Contains(got, "Queued 1 file") {
		t.Errorf("expected one accepted file, got: %s", got)
	}
	if !strings.Contains(got, "archive.zip") {
		t.Errorf("expected rejection to name the file, got: %s", got)
	}
}

func TestUploadAllRejected(t *testing.T) {
	srv := newTestServer(t, &stubLister{})

	body, ct := multipartBody(t, []core.FileMeta{
		{Name: "archive.zip", ContentType: "application/zip", Size: 64},
	})
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ct)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rr.Body.String(), "No files were accepted") {
		t.Errorf("unexpected body: %s", rr.Body.String())
	}
}

func TestUploadRequiresFiles(t *testing.T) {
	srv := newTestServer(t, &stubLister{})

	body, ct := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", ct)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestUploadMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &stubLister{})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

func TestExportCSV(t *testing.T) {
	srv := newTestServer(t, &stubLister{recs: sampleReceipts()})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/export.csv", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	lines := strings.Split(strings.TrimRight(rr.Body.String(), "\n"), "\n")
	if lines[0] != "Date,Vendor,Amount,Category,File,Confidence" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Errorf("got %d lines, want 3", len(lines))
	}
}

func TestExportCSVEmptyStore(t *testing.T) {
	srv := newTestServer(t, &stubLister{})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/export.csv", nil))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestExportXLSXEmptyStore(t *testing.T) {
	srv := newTestServer(t, &stubLister{})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/export.xlsx", nil))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t, &stubLister{})

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("Content-Security-Policy"); got == "" {
		t.Error("missing Content-Security-Policy header")
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, &stubLister{})

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("%s status = %d, want %d", path, rr.Code, http.StatusOK)
		}
	}
}
