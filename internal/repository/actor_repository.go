package repository

import (
	"context"
	"database/sql"
)

// ActorCredit is one show a given actor is credited on, either as main or
// recurring cast.
type ActorCredit struct {
	ShowID    string `json:"show_id"`
	Title     string `json:"title"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ActorRepo manages read access to actor credits.
type ActorRepo struct {
	db *sql.DB
}

// NewActorRepo constructs an ActorRepo with the given DB handle.
func NewActorRepo(db *sql.DB) *ActorRepo {
	return &ActorRepo{db: db}
}

// Credits returns the actor's main-cast and recurring-cast credits as two
// independent lists. Both may be empty; an unknown actor simply yields two
// empty lists.
func (r *ActorRepo) Credits(ctx context.Context, actorID string) (main, recurring []ActorCredit, err error) {
	main, err = r.credits(ctx, `SELECT DISTINCT s.showid, s.title, m.role, a.fname, a.lname
		FROM shows s
		JOIN main_cast m ON m.showid = s.showid
		JOIN actor a ON a.actID = m.actID
		WHERE a.actID = ?`, actorID)
	if err != nil {
		return nil, nil, err
	}
	recurring, err = r.credits(ctx, `SELECT DISTINCT s.showid, s.title, rc.role, a.fname, a.lname
		FROM shows s
		JOIN recurring_cast rc ON rc.showid = s.showid
		JOIN actor a ON a.actID = rc.actID
		WHERE a.actID = ?`, actorID)
	if err != nil {
		return nil, nil, err
	}
	return main, recurring, nil
}

func (r *ActorRepo) credits(ctx context.Context, q, actorID string) ([]ActorCredit, error) {
	rows, err := r.db.QueryContext(ctx, q, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ActorCredit
	for rows.Next() {
		var cr ActorCredit
		if err := rows.Scan(&cr.ShowID, &cr.Title, &cr.Role, &cr.FirstName, &cr.LastName); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}
