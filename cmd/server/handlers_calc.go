package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mallkiprint/calc3d/internal/pricing"
)

var errPieceNameRequired = errors.New("pieceName is required")

// normalizeInputs enforces the calculator's preconditions: a non-empty piece
// name and a quantity of at least one. The calculator itself never validates.
func normalizeInputs(in *pricing.Inputs) error {
	in.PieceName = strings.TrimSpace(in.PieceName)
	if in.PieceName == "" {
		return errPieceNameRequired
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	if in.Complexity == "" {
		in.Complexity = pricing.ComplexitySimple
	}
	return nil
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var in pricing.Inputs
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := normalizeInputs(&in); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, pricing.Compute(in))
}

type summaryRequest struct {
	Inputs       pricing.Inputs `json:"inputs"`
	Markup       *float64       `json:"markup,omitempty"`
	ManualPrice  *float64       `json:"manualPrice,omitempty"`
	DesiredPrice *float64       `json:"desiredPrice,omitempty"`
}

type summaryResponse struct {
	pricing.Summary
	DesiredPriceBand        pricing.PriceBand `json:"desiredPriceBand,omitempty"`
	DesiredPriceDiffPercent *float64          `json:"desiredPriceDiffPercent,omitempty"`
}

func (s *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := normalizeInputs(&req.Inputs); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	markup := req.Inputs.ProfitMargin
	if req.Markup != nil {
		markup = *req.Markup
	}
	manualPrice := req.ManualPrice
	if manualPrice == nil {
		manualPrice = req.Inputs.DesiredPrice
	}

	resp := summaryResponse{Summary: pricing.Adjust(req.Inputs, markup, manualPrice)}

	if req.DesiredPrice != nil {
		band, diff := pricing.ClassifyDesiredPrice(*req.DesiredPrice, resp.Summary.Results.FinalPriceWithFee)
		resp.DesiredPriceBand = band
		resp.DesiredPriceDiffPercent = &diff
	}

	s.writeJSON(w, http.StatusOK, resp)
}
