package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// material is a filament preset: pick one in the form and its price per kg
// feeds the calculator's filamentPrice field.
type material struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	CostPerKg float64 `json:"costPerKg"`
	Notes     string  `json:"notes,omitempty"`
	Active    bool    `json:"active"`
}

func validateMaterial(m material) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if m.CostPerKg <= 0 {
		return fmt.Errorf("costPerKg must be greater than 0")
	}
	return nil
}

func (s *server) handleMaterialsList(w http.ResponseWriter, r *http.Request) {
	materials, err := s.listMaterials(r)
	if err != nil {
		s.logger.Error("failed to list materials", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load materials")
		return
	}

	s.writeJSON(w, http.StatusOK, materials)
}

func (s *server) handleMaterialsCreate(w http.ResponseWriter, r *http.Request) {
	var m material
	if err := decodeJSON(r, &m); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.Name = strings.TrimSpace(m.Name)
	if err := validateMaterial(m); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.db.ExecContext(r.Context(), `
		INSERT INTO materials (name, cost_per_kg, notes, active)
		VALUES (?, ?, ?, TRUE)
	`, m.Name, m.CostPerKg, strings.TrimSpace(m.Notes))
	if err != nil {
		s.logger.Error("failed to create material", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to create material")
		return
	}

	m.ID, _ = result.LastInsertId()
	m.Active = true
	s.writeJSON(w, http.StatusCreated, m)
}

func (s *server) handleMaterialsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid material id")
		return
	}

	var m material
	if err := decodeJSON(r, &m); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.ID = id
	m.Name = strings.TrimSpace(m.Name)
	if err := validateMaterial(m); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.db.ExecContext(r.Context(), `
		UPDATE materials
		SET
			name = ?,
			cost_per_kg = ?,
			notes = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, m.Name, m.CostPerKg, strings.TrimSpace(m.Notes), m.Active, id)
	if err != nil {
		s.logger.Error("failed to update material", zap.Int64("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to update material")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		s.logger.Error("failed to update material", zap.Int64("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to update material")
		return
	}
	if affected == 0 {
		s.writeError(w, http.StatusNotFound, "material not found")
		return
	}

	s.writeJSON(w, http.StatusOK, m)
}

func (s *server) listMaterials(r *http.Request) ([]material, error) {
	rows, err := s.db.QueryContext(r.Context(), `
		SELECT id, name, cost_per_kg, COALESCE(notes, ''), active
		FROM materials
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]material, 0)
	for rows.Next() {
		var m material
		if err := rows.Scan(&m.ID, &m.Name, &m.CostPerKg, &m.Notes, &m.Active); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}

	return materials, nil
}
