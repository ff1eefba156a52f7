package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// TrackRepo records a viewer's decisions about another user's proofs: temporary
// ignores and accepted snapshots.
type TrackRepo struct {
	db *sql.DB
}

func NewTrackRepo(db *sql.DB) *TrackRepo { return &TrackRepo{db: db} }

func (r *TrackRepo) IgnoreUntil(ctx context.Context, viewerID, userID string, until time.Time) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO ignores(viewer_id, user_id, until) VALUES (?, ?, ?)
	ON CONFLICT(viewer_id, user_id) DO UPDATE SET until=excluded.until;
	`, viewerID, userID, until.UTC())
	return err
}

// IgnoredUntil returns the zero time when no ignore was recorded.
func (r *TrackRepo) IgnoredUntil(ctx context.Context, viewerID, userID string) (time.Time, error) {
	return r.scanTime(ctx, `SELECT until FROM ignores WHERE viewer_id = ? AND user_id = ?`, viewerID, userID)
}

// Accept records userID's proofs, with their current states, as seen by the
// viewer and clears any pending ignore.
func (r *TrackRepo) Accept(ctx context.Context, viewerID, userID string, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO accepted(viewer_id, user_id, accepted_at) VALUES (?, ?, ?)
		ON CONFLICT(viewer_id, user_id) DO UPDATE SET accepted_at=excluded.accepted_at;`, []any{viewerID, userID, at.UTC()}},
		{`DELETE FROM accepted_proofs WHERE viewer_id = ? AND user_id = ?`, []any{viewerID, userID}},
		{`INSERT INTO accepted_proofs(viewer_id, user_id, assertion_key, state)
		SELECT ?, user_id, assertion_key, state FROM assertions WHERE user_id = ?`, []any{viewerID, userID}},
		{`DELETE FROM ignores WHERE viewer_id = ? AND user_id = ?`, []any{viewerID, userID}},
	}
	for _, st := range stmts {
		if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AcceptedProofs maps assertion key to the state the viewer last accepted.
func (r *TrackRepo) AcceptedProofs(ctx context.Context, viewerID, userID string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT assertion_key, state FROM accepted_proofs WHERE viewer_id = ? AND user_id = ?`, viewerID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, state string
		if err := rows.Scan(&key, &state); err != nil {
			return nil, err
		}
		out[key] = state
	}
	return out, rows.Err()
}

// AcceptedAt returns the zero time when the viewer never accepted userID's proofs.
func (r *TrackRepo) AcceptedAt(ctx context.Context, viewerID, userID string) (time.Time, error) {
	return r.scanTime(ctx, `SELECT accepted_at FROM accepted WHERE viewer_id = ? AND user_id = ?`, viewerID, userID)
}

func (r *TrackRepo) scanTime(ctx context.Context, query string, args ...any) (time.Time, error) {
	var t time.Time
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
