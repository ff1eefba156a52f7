package repository

import (
	"context"
	"database/sql"
)

// TeamRepo handles teams and the teams users showcase on their profile.
type TeamRepo struct {
	db *sql.DB
}

func NewTeamRepo(db *sql.DB) *TeamRepo { return &TeamRepo{db: db} }

func (r *TeamRepo) Upsert(ctx context.Context, t Team) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO teams(id, name, description, member_count) VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 description=excluded.description,
	 member_count=excluded.member_count;
	`, t.ID, t.Name, t.Description, t.MemberCount)
	return err
}

// Showcase pins teamID on userID's profile at position order.
func (r *TeamRepo) Showcase(ctx context.Context, teamID, userID string, order int) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO team_showcase(team_id, user_id, sort_order) VALUES (?, ?, ?)
	ON CONFLICT(team_id, user_id) DO UPDATE SET sort_order=excluded.sort_order;
	`, teamID, userID, order)
	return err
}

func (r *TeamRepo) ShowcaseFor(ctx context.Context, userID string) ([]Team, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT t.id, t.name, t.description, t.member_count FROM team_showcase s
	JOIN teams t ON t.id = s.team_id
	WHERE s.user_id = ?
	ORDER BY s.sort_order, t.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.MemberCount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
