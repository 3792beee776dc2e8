// Package quotes stores immutable pricing snapshots: the exact inputs and the
// results computed from them at a point in time. Rows are written once and
// never updated; a new calculation produces a new snapshot.
package quotes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mallkiprint/calc3d/internal/pricing"
)

// ErrNotFound is returned when no snapshot exists for the requested id.
var ErrNotFound = errors.New("quote not found")

// Snapshot is one saved quote: the inputs, the results derived from them and
// the moment they were captured.
type Snapshot struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Client    string          `json:"client,omitempty"`
	Inputs    pricing.Inputs  `json:"inputs"`
	Results   pricing.Results `json:"results"`
	Total     float64         `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListItem is the summary row shown in the saved-quotes list.
type ListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Client    string    `json:"client,omitempty"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists quote snapshots in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save captures an immutable snapshot and returns it with its assigned id and
// timestamp. The stored total is the wholesale total when the inputs prefer
// the wholesale price, otherwise the final price with fee.
func (s *Store) Save(ctx context.Context, in pricing.Inputs, res pricing.Results) (Snapshot, error) {
	inputsJSON, err := json.Marshal(in)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode quote inputs: %w", err)
	}
	resultsJSON, err := json.Marshal(res)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode quote results: %w", err)
	}

	snap := Snapshot{
		ID:        uuid.NewString(),
		Title:     in.PieceName,
		Client:    in.ClientName,
		Inputs:    in,
		Results:   res,
		Total:     SnapshotTotal(in, res),
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (public_id, title, client_name, inputs_json, results_json, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Title, snap.Client, string(inputsJSON), string(resultsJSON), snap.Total, snap.CreatedAt.Format(timeLayout))
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert quote snapshot: %w", err)
	}

	return snap, nil
}

// SnapshotTotal picks the headline total for a snapshot.
func SnapshotTotal(in pricing.Inputs, res pricing.Results) float64 {
	if in.UseWholesalePrice {
		return res.WholesalePrice
	}
	return res.FinalPriceWithFee
}

const timeLayout = "2006-01-02 15:04:05"

// List returns snapshot summaries, newest first. A non-empty query filters by
// title or client name.
func (s *Store) List(ctx context.Context, query string) ([]ListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT public_id, title, COALESCE(client_name, ''), total, created_at
		FROM quotes
		WHERE (? = '' OR title LIKE ? OR COALESCE(client_name, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		var item ListItem
		var createdAt string
		if err := rows.Scan(&item.ID, &item.Title, &item.Client, &item.Total, &createdAt); err != nil {
			return nil, fmt.Errorf("scan quote row: %w", err)
		}
		item.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return items, nil
}

// Get loads one full snapshot, inputs and results included.
func (s *Store) Get(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	var inputsJSON, resultsJSON, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT public_id, title, COALESCE(client_name, ''), inputs_json, results_json, total, created_at
		FROM quotes
		WHERE public_id = ?
	`, id).Scan(&snap.ID, &snap.Title, &snap.Client, &inputsJSON, &resultsJSON, &snap.Total, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("query quote %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(inputsJSON), &snap.Inputs); err != nil {
		return Snapshot{}, fmt.Errorf("decode quote inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(resultsJSON), &snap.Results); err != nil {
		return Snapshot{}, fmt.Errorf("decode quote results: %w", err)
	}
	snap.CreatedAt, _ = time.Parse(timeLayout, createdAt)

	return snap, nil
}
