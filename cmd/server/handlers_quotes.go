package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mallkiprint/calc3d/internal/export"
	"github.com/mallkiprint/calc3d/internal/pricing"
	"github.com/mallkiprint/calc3d/internal/quotes"
)

const companyName = "Mallki Print"

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := s.quotes.List(r.Context(), query)
	if err != nil {
		s.logger.Error("failed to list quotes", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}

	s.writeJSON(w, http.StatusOK, items)
}

type quoteCreateRequest struct {
	Inputs pricing.Inputs `json:"inputs"`
}

func (s *server) handleQuotesCreate(w http.ResponseWriter, r *http.Request) {
	var req quoteCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := normalizeInputs(&req.Inputs); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Results are recomputed server-side so the stored snapshot is always
	// internally consistent with its inputs.
	snap, err := s.quotes.Save(r.Context(), req.Inputs, pricing.Compute(req.Inputs))
	if err != nil {
		s.logger.Error("failed to save quote", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save quote")
		return
	}

	s.writeJSON(w, http.StatusCreated, snap)
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, err := s.quotes.Get(r.Context(), id)
	if errors.Is(err, quotes.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "quote not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to load quote", zap.String("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load quote")
		return
	}

	s.writeJSON(w, http.StatusOK, snap)
}

func (s *server) handleQuoteExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, err := s.quotes.Get(r.Context(), id)
	if errors.Is(err, quotes.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "quote not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to load quote for export", zap.String("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load quote")
		return
	}

	doc := export.Document{
		Company:  companyName,
		Client:   snap.Client,
		Currency: s.cfg.Currency,
		IssuedAt: snap.CreatedAt,
		Items: []export.Item{
			{Inputs: snap.Inputs, Results: snap.Results},
		},
	}

	filename := fmt.Sprintf("quote_%s_%s.xlsx", snap.ID, snap.CreatedAt.Format("20060102_1504"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteQuote(w, doc); err != nil {
		s.logger.Error("failed to export quote", zap.String("id", id), zap.Error(err))
	}
}
