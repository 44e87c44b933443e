package store

import (
	"context"
	"fmt"
)

// DecisionRecord is one row of swipe history.
type DecisionRecord struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	ItemID    string  `json:"item_id"`
	Cuisine   string  `json:"cuisine"`
	Status    string  `json:"status"` // "accepted" | "exhausted"
	Energy    float64 `json:"energy"` // energy after the decision
	CreatedAt int64   `json:"created_at"`
}

// History is an append-only log of decisions, newest read first.
type History interface {
	RecordDecision(ctx context.Context, rec DecisionRecord) error
	RecentDecisions(ctx context.Context, limit int) ([]DecisionRecord, error)
}

// RecordDecision appends a decision to the history.
func (db *DB) RecordDecision(ctx context.Context, rec DecisionRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO decisions (id, kind, item_id, cuisine, status, energy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Kind, rec.ItemID, rec.Cuisine, rec.Status, rec.Energy, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// RecentDecisions returns the most recent decisions, newest first.
func (db *DB) RecentDecisions(ctx context.Context, limit int) ([]DecisionRecord, error) {
	// SQLite reads a negative LIMIT as unbounded.
	if limit <= 0 {
		return nil, nil
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, kind, item_id, COALESCE(cuisine, ''), status, energy, created_at
		FROM decisions ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent decisions: %w", err)
	}
	defer rows.Close()

	var out []DecisionRecord
	for rows.Next() {
		var r DecisionRecord
		if err := rows.Scan(&r.ID, &r.Kind, &r.ItemID, &r.Cuisine, &r.Status, &r.Energy, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
