package repository

import (
	"context"
	"database/sql"
)

// FollowRepo handles the follow graph.
type FollowRepo struct {
	db *sql.DB
}

func NewFollowRepo(db *sql.DB) *FollowRepo {
	return &FollowRepo{db: db}
}

// Follow is idempotent.
func (r *FollowRepo) Follow(ctx context.Context, followerID, followeeID string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO follows(follower_id, followee_id) VALUES (?, ?)
	ON CONFLICT(follower_id, followee_id) DO NOTHING;
	`, followerID, followeeID)
	return err
}

func (r *FollowRepo) Unfollow(ctx context.Context, followerID, followeeID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`, followerID, followeeID)
	return err
}

func (r *FollowRepo) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = ? AND followee_id = ?`, followerID, followeeID).Scan(&n)
	return n > 0, err
}

// Followers lists usernames following userID, newest first.
func (r *FollowRepo) Followers(ctx context.Context, userID string) ([]string, error) {
	return queryStrings(ctx, r.db, `
	SELECT u.username FROM follows f
	JOIN users u ON u.id = f.follower_id
	WHERE f.followee_id = ?
	ORDER BY f.created_at DESC, u.username`, userID)
}

// Following lists usernames userID follows, newest first.
func (r *FollowRepo) Following(ctx context.Context, userID string) ([]string, error) {
	return queryStrings(ctx, r.db, `
	SELECT u.username FROM follows f
	JOIN users u ON u.id = f.followee_id
	WHERE f.follower_id = ?
	ORDER BY f.created_at DESC, u.username`, userID)
}
