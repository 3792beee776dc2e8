package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mallkiprint/calc3d/internal/config"
	"github.com/mallkiprint/calc3d/internal/quotes"
)

func newQuotesTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.Exec(`
		CREATE TABLE quotes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			public_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			client_name TEXT,
			inputs_json TEXT NOT NULL,
			results_json TEXT NOT NULL,
			total REAL NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed creating quotes table: %v", err)
	}

	srv := &server{
		cfg:    config.Config{Currency: "BRL"},
		db:     db,
		quotes: quotes.NewStore(db),
		logger: zap.NewNop(),
	}

	r := chi.NewRouter()
	r.Get("/api/quotes", srv.handleQuotesList)
	r.Post("/api/quotes", srv.handleQuotesCreate)
	r.Get("/api/quotes/{id}", srv.handleQuoteDetail)
	r.Get("/api/quotes/{id}/export", srv.handleQuoteExport)

	return r
}

func TestQuoteLifecycle(t *testing.T) {
	router := newQuotesTestServer(t)

	body, err := json.Marshal(quoteCreateRequest{Inputs: referenceInputs()})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var created quotes.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode created quote: %v", err)
	}
	if created.ID == "" || created.Title != "Vaso" {
		t.Fatalf("unexpected created quote: %+v", created)
	}
	if created.Results.ProductionCost == 0 {
		t.Fatal("results were not computed server-side")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quotes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var items []quotes.ListItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", items)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quotes/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status = %d, want 200", rec.Code)
	}
	var detail quotes.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("failed to decode detail: %v", err)
	}
	if detail.Inputs != created.Inputs || detail.Results != created.Results {
		t.Fatalf("detail snapshot differs from created one:\n%+v\n%+v", detail, created)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quotes/"+created.ID+"/export", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("export content type = %q", ct)
	}
	if raw := rec.Body.Bytes(); len(raw) < 2 || raw[0] != 'P' || raw[1] != 'K' {
		t.Fatal("export body does not look like an xlsx archive")
	}
}

func TestQuoteDetailUnknownIDReturns404(t *testing.T) {
	router := newQuotesTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quotes/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestQuoteCreateRejectsEmptyPieceName(t *testing.T) {
	router := newQuotesTestServer(t)

	in := referenceInputs()
	in.PieceName = ""
	body, err := json.Marshal(quoteCreateRequest{Inputs: in})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
