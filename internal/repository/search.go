package repository

import (
	"context"
	"errors"
	"strings"
)

// ShowHit is a show matched by a catalog search.
type ShowHit struct {
	Title  string `json:"title"`
	ShowID string `json:"show_id"`
}

// ActorHit is an actor matched by a catalog search.
type ActorHit struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ActorID   string `json:"actor_id"`
}

// ErrEmptyQuery is returned when the search term is blank; callers should
// re-prompt instead of running the query.
var ErrEmptyQuery = errors.New("empty search query")

// Search runs a case-insensitive substring match of term against show
// titles, and independently against actor first OR last names. Actors
// matching on both name fields appear once (UNION dedup).
func (r *ShowRepo) Search(ctx context.Context, term string) ([]ShowHit, []ActorHit, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil, ErrEmptyQuery
	}
	pattern := "%" + strings.ToLower(term) + "%"

	rows, err := r.db.QueryContext(ctx,
		`SELECT title, showid FROM shows WHERE LOWER(title) LIKE ?`, pattern)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	var shows []ShowHit
	for rows.Next() {
		var h ShowHit
		if err := rows.Scan(&h.Title, &h.ShowID); err != nil {
			return nil, nil, err
		}
		shows = append(shows, h)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	arows, err := r.db.QueryContext(ctx,
		`SELECT fname, lname, actID FROM actor WHERE LOWER(fname) LIKE ?
		 UNION
		 SELECT fname, lname, actID FROM actor WHERE LOWER(lname) LIKE ?`,
		pattern, pattern)
	if err != nil {
		return nil, nil, err
	}
	defer arows.Close()
	var people []ActorHit
	for arows.Next() {
		var h ActorHit
		if err := arows.Scan(&h.FirstName, &h.LastName, &h.ActorID); err != nil {
			return nil, nil, err
		}
		people = append(people, h)
	}
	return shows, people, arows.Err()
}
