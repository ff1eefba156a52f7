package repository

import (
	"context"
	"database/sql"
)

// AssertionRepo handles identity proofs.
type AssertionRepo struct {
	db *sql.DB
}

func NewAssertionRepo(db *sql.DB) *AssertionRepo { return &AssertionRepo{db: db} }

// Upsert inserts a proof or updates its state; added_at is kept from the first insert.
func (r *AssertionRepo) Upsert(ctx context.Context, a Assertion) error {
	state := a.State
	if state == "" {
		state = AssertionValid
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO assertions(user_id, assertion_key, state) VALUES (?, ?, ?)
	ON CONFLICT(user_id, assertion_key) DO UPDATE SET state=excluded.state;
	`, a.UserID, a.Key, state)
	return err
}

func (r *AssertionRepo) ForUser(ctx context.Context, userID string) ([]Assertion, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id, assertion_key, state, added_at FROM assertions WHERE user_id = ? ORDER BY assertion_key`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Assertion
	for rows.Next() {
		var a Assertion
		if err := rows.Scan(&a.UserID, &a.Key, &a.State, &a.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
