package repository

import (
	"context"
	"database/sql"
	"errors"
)

// UserRepo handles users.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Upsert(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO users(id, username, full_name, bio, location)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 username=excluded.username,
	 full_name=excluded.full_name,
	 bio=excluded.bio,
	 location=excluded.location;
	`, u.ID, u.Username, u.FullName, u.Bio, u.Location)
	return err
}

// ByUsername returns nil, nil when no such user exists.
func (r *UserRepo) ByUsername(ctx context.Context, username string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, full_name, bio, location, created_at FROM users WHERE username = ?`, username)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.Bio, &u.Location, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Usernames lists every known username alphabetically.
func (r *UserRepo) Usernames(ctx context.Context) ([]string, error) {
	return queryStrings(ctx, r.db, `SELECT username FROM users ORDER BY username`)
}

func queryStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
