// This file defines the Show model and repository methods for show detail
// pages: the show row itself, its main cast and its recurring cast. Cast
// rows are read-only reference data seeded outside this service.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Show represents one row of the 'shows' table.
type Show struct {
	ShowID      string
	Title       string
	Network     string
	Description string
}

// CastMember is one credited actor/role pair on a show or episode.
type CastMember struct {
	ActorID   string `json:"actor_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// RecurringCastMember aggregates a recurring actor's appearances on a show.
type RecurringCastMember struct {
	ActorID      string `json:"actor_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"role"`
	EpisodeCount int    `json:"episode_count"`
}

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

// ShowRepo manages read access to shows and their cast tables.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// GetByID retrieves a show by its ID. It returns ErrShowNotFound if there
// is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, showID string) (*Show, error) {
	const q = `SELECT showid, title, network, description FROM shows WHERE showid = ?`
	var s Show
	err := r.db.QueryRowContext(ctx, q, showID).Scan(&s.ShowID, &s.Title, &s.Network, &s.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// MainCast returns the distinct (actor, role) assignments credited on every
// episode of the show.
func (r *ShowRepo) MainCast(ctx context.Context, showID string) ([]CastMember, error) {
	const q = `SELECT DISTINCT a.actID, a.fname, a.lname, m.role
               FROM main_cast m
               JOIN actor a ON a.actID = m.actID
               WHERE m.showid = ?`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cast []CastMember
	for rows.Next() {
		var m CastMember
		if err := rows.Scan(&m.ActorID, &m.FirstName, &m.LastName, &m.Role); err != nil {
			return nil, err
		}
		cast = append(cast, m)
	}
	return cast, rows.Err()
}

// RecurringCast returns one row per recurring (actor, role) assignment on
// the show with the count of episodes the actor appears in.
func (r *ShowRepo) RecurringCast(ctx context.Context, showID string) ([]RecurringCastMember, error) {
	const q = `SELECT a.actID, a.fname, a.lname, rc.role, COUNT(rc.episodeID) AS episodes
               FROM recurring_cast rc
               JOIN actor a ON a.actID = rc.actID
               WHERE rc.showid = ?
               GROUP BY a.actID, a.fname, a.lname, rc.role`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cast []RecurringCastMember
	for rows.Next() {
		var m RecurringCastMember
		if err := rows.Scan(&m.ActorID, &m.FirstName, &m.LastName, &m.Role, &m.EpisodeCount); err != nil {
			return nil, err
		}
		cast = append(cast, m)
	}
	return cast, rows.Err()
}
