package seed

import (
	"database/sql"
	"fmt"
)

const defaultMaterialName = "PLA (Genérico)"

// calcDefaults are the starting calculator values offered to a new
// installation: a 50g PLA piece, 3h print on a 250W machine, 5% failure
// allowance and 30% margin.
var calcDefaults = struct {
	FilamentPrice    float64
	FilamentUsed     float64
	PrintTimeHours   float64
	PrintTimeMinutes float64
	PrinterPower     float64
	EnergyRate       float64
	PrinterValue     float64
	PrinterLifespan  float64
	HourlyRate       float64
	ActiveWorkTime   float64
	MaintenanceCost  float64
	FailureRate      float64
	ProfitMargin     float64
	AdditionalFee    float64
}{
	FilamentPrice:    80,
	FilamentUsed:     50,
	PrintTimeHours:   3,
	PrintTimeMinutes: 0,
	PrinterPower:     250,
	EnergyRate:       0.75,
	PrinterValue:     3000,
	PrinterLifespan:  5000,
	HourlyRate:       50,
	ActiveWorkTime:   0.5,
	MaintenanceCost:  2,
	FailureRate:      5,
	ProfitMargin:     30,
	AdditionalFee:    0,
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way: a default material and
// the calculator defaults singleton are created once and never overwritten.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureMaterial(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureCalcDefaults(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureMaterial(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM materials WHERE name = ? LIMIT 1)`, defaultMaterialName).Scan(&exists); err != nil {
		return fmt.Errorf("check default material existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO materials (name, cost_per_kg, notes, active)
		VALUES (?, ?, ?, ?)
	`, defaultMaterialName, calcDefaults.FilamentPrice, "", true); err != nil {
		return fmt.Errorf("insert default material: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureCalcDefaults(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM calc_defaults WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check calc defaults existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO calc_defaults (
			id,
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
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		calcDefaults.FilamentPrice,
		calcDefaults.FilamentUsed,
		calcDefaults.PrintTimeHours,
		calcDefaults.PrintTimeMinutes,
		calcDefaults.PrinterPower,
		calcDefaults.EnergyRate,
		calcDefaults.PrinterValue,
		calcDefaults.PrinterLifespan,
		calcDefaults.HourlyRate,
		calcDefaults.ActiveWorkTime,
		calcDefaults.MaintenanceCost,
		calcDefaults.FailureRate,
		calcDefaults.ProfitMargin,
		calcDefaults.AdditionalFee,
	); err != nil {
		return fmt.Errorf("insert calc defaults singleton: %w", err)
	}
	stats.Inserts++
	return nil
}
