package repository

import (
	"context"
	"database/sql"
)

// WatchedRow is one episode in a customer's watch history for a show,
// carrying the most recent watch date.
type WatchedRow struct {
	ShowID       string `json:"show_id"`
	ShowTitle    string `json:"show_title"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EpisodeID    string `json:"episode_id"`
	EpisodeTitle string `json:"episode_title"`
	LastWatched  string `json:"last_watched"`
}

// WatchedRepo manages the watched table.
type WatchedRepo struct {
	db *sql.DB
}

// NewWatchedRepo constructs a WatchedRepo with the given DB handle.
func NewWatchedRepo(db *sql.DB) *WatchedRepo {
	return &WatchedRepo{db: db}
}

// MarkWatched records that the customer watched the episode today, unless a
// record for today already exists. It reports whether a row was written.
// The check compares the most recent watch date against today; the unique
// key on (custID, showid, episodeID, datewatched) backstops concurrent
// calls, and a duplicate-key failure is treated as "already recorded".
func (r *WatchedRepo) MarkWatched(ctx context.Context, custID, showID, episodeID, today string) (bool, error) {
	var last sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(datewatched) FROM watched WHERE custID = ? AND showid = ? AND episodeID = ?`,
		custID, showID, episodeID).Scan(&last)
	if err != nil {
		return false, err
	}
	if last.Valid && last.String == today {
		return false, nil
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO watched (custID, showid, episodeID, datewatched) VALUES (?, ?, ?, ?)`,
		custID, showID, episodeID, today)
	if err != nil {
		if isDuplicateKey(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// History returns the customer's watch history for a show, one row per
// episode with its most recent watch date, ordered by that date.
func (r *WatchedRepo) History(ctx context.Context, custID, showID string) ([]WatchedRow, error) {
	const q = `SELECT s.showid, s.title, c.fname, c.lname, e.episodeID, e.title, MAX(w.datewatched) AS lastwatched
               FROM watched w
               JOIN shows s ON s.showid = w.showid
               JOIN episode e ON e.showid = w.showid AND e.episodeID = w.episodeID
               JOIN cust c ON c.custID = w.custID
               WHERE w.custID = ? AND w.showid = ?
               GROUP BY s.showid, s.title, c.fname, c.lname, e.episodeID, e.title
               ORDER BY lastwatched`
	rows, err := r.db.QueryContext(ctx, q, custID, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []WatchedRow
	for rows.Next() {
		var w WatchedRow
		if err := rows.Scan(&w.ShowID, &w.ShowTitle, &w.FirstName, &w.LastName, &w.EpisodeID, &w.EpisodeTitle, &w.LastWatched); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
