package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// calcDefaults is the singleton row of starting values the form is
// pre-filled with.
type calcDefaults struct {
	FilamentPrice    float64 `json:"filamentPrice"`
	FilamentUsed     float64 `json:"filamentUsed"`
	PrintTimeHours   float64 `json:"printTimeHours"`
	PrintTimeMinutes float64 `json:"printTimeMinutes"`
	PrinterPower     float64 `json:"printerPower"`
	EnergyRate       float64 `json:"energyRate"`
	PrinterValue     float64 `json:"printerValue"`
	PrinterLifespan  float64 `json:"printerLifespan"`
	HourlyRate       float64 `json:"hourlyRate"`
	ActiveWorkTime   float64 `json:"activeWorkTime"`
	MaintenanceCost  float64 `json:"maintenanceCost"`
	FailureRate      float64 `json:"failureRate"`
	ProfitMargin     float64 `json:"profitMargin"`
	AdditionalFee    float64 `json:"additionalFee"`
}

func validateDefaults(d calcDefaults) error {
	fields := map[string]float64{
		"filamentPrice":    d.FilamentPrice,
		"filamentUsed":     d.FilamentUsed,
		"printTimeHours":   d.PrintTimeHours,
		"printTimeMinutes": d.PrintTimeMinutes,
		"printerPower":     d.PrinterPower,
		"energyRate":       d.EnergyRate,
		"printerValue":     d.PrinterValue,
		"printerLifespan":  d.PrinterLifespan,
		"hourlyRate":       d.HourlyRate,
		"activeWorkTime":   d.ActiveWorkTime,
		"maintenanceCost":  d.MaintenanceCost,
		"profitMargin":     d.ProfitMargin,
		"additionalFee":    d.AdditionalFee,
	}
	for name, value := range fields {
		if value < 0 {
			return fmt.Errorf("%s must be greater than or equal to 0", name)
		}
	}
	if d.FailureRate < 0 || d.FailureRate > 100 {
		return fmt.Errorf("failureRate must be between 0 and 100")
	}
	return nil
}

func (s *server) handleDefaultsGet(w http.ResponseWriter, r *http.Request) {
	defaults, err := s.getCalcDefaults(r)
	if err != nil {
		s.logger.Error("failed to load calc defaults", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load defaults")
		return
	}

	s.writeJSON(w, http.StatusOK, defaults)
}

func (s *server) handleDefaultsUpdate(w http.ResponseWriter, r *http.Request) {
	var d calcDefaults
	if err := decodeJSON(r, &d); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateDefaults(d); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.updateCalcDefaults(r, d); err != nil {
		s.logger.Error("failed to update calc defaults", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save defaults")
		return
	}

	s.writeJSON(w, http.StatusOK, d)
}

func (s *server) getCalcDefaults(r *http.Request) (calcDefaults, error) {
	var d calcDefaults
	err := s.db.QueryRowContext(r.Context(), `
		SELECT
			filament_price,
			filament_used,
			print_time_hours,
			print_time_minutes,
			printer_power,
			energy_rate,
			printer_value,
			printer_lifespan,
			hourly_rate,
			active_work_time,
			maintenance_cost,
			failure_rate,
			profit_margin,
			additional_fee
		FROM calc_defaults
		WHERE id = 1
	`).Scan(
		&d.FilamentPrice,
		&d.FilamentUsed,
		&d.PrintTimeHours,
		&d.PrintTimeMinutes,
		&d.PrinterPower,
		&d.EnergyRate,
		&d.PrinterValue,
		&d.PrinterLifespan,
		&d.HourlyRate,
		&d.ActiveWorkTime,
		&d.MaintenanceCost,
		&d.FailureRate,
		&d.ProfitMargin,
		&d.AdditionalFee,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calcDefaults{}, fmt.Errorf("calc_defaults singleton not found")
		}
		return calcDefaults{}, fmt.Errorf("query calc_defaults: %w", err)
	}
	return d, nil
}

func (s *server) updateCalcDefaults(r *http.Request, d calcDefaults) error {
	_, err := s.db.ExecContext(r.Context(), `
		UPDATE calc_defaults
		SET
			filament_price = ?,
			filament_used = ?,
			print_time_hours = ?,
			print_time_minutes = ?,
			printer_power = ?,
			energy_rate = ?,
			printer_value = ?,
			printer_lifespan = ?,
			hourly_rate = ?,
			active_work_time = ?,
			maintenance_cost = ?,
			failure_rate = ?,
			profit_margin = ?,
			additional_fee = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		d.FilamentPrice,
		d.FilamentUsed,
		d.PrintTimeHours,
		d.PrintTimeMinutes,
		d.PrinterPower,
		d.EnergyRate,
		d.PrinterValue,
		d.PrinterLifespan,
		d.HourlyRate,
		d.ActiveWorkTime,
		d.MaintenanceCost,
		d.FailureRate,
		d.ProfitMargin,
		d.AdditionalFee,
	)
	if err != nil {
		return fmt.Errorf("update calc_defaults: %w", err)
	}

	return nil
}
