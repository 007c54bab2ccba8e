package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Episode is one row of the 'episode' table. The first character of the
// episode ID encodes the season number, so episodes of season 2 carry IDs
// like "201". AirDate is a "YYYY-MM-DD" string.
type Episode struct {
	ShowID    string `json:"show_id"`
	EpisodeID string `json:"episode_id"`
	Title     string `json:"title"`
	AirDate   string `json:"air_date"`
	Season    string `json:"season"`
}

// EpisodeDetail is an episode together with its owning show's title.
type EpisodeDetail struct {
	Episode
	ShowTitle string `json:"show_title"`
}

// ErrEpisodeNotFound indicates the (show, episode) pair does not exist.
var ErrEpisodeNotFound = errors.New("episode not found")

// EpisodeRepo manages read access to episodes.
type EpisodeRepo struct {
	db *sql.DB
}

// NewEpisodeRepo constructs an EpisodeRepo with the given DB handle.
func NewEpisodeRepo(db *sql.DB) *EpisodeRepo {
	return &EpisodeRepo{db: db}
}

// ListByShow returns the show's episodes ordered by air date ascending.
func (r *EpisodeRepo) ListByShow(ctx context.Context, showID string) ([]Episode, error) {
	const q = `SELECT e.showid, e.episodeID, e.title, e.airdate, SUBSTR(e.episodeID, 1, 1) AS season
               FROM episode e
               WHERE e.showid = ?
               ORDER BY e.airdate ASC`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var eps []Episode
	for rows.Next() {
		var e Episode
		if err := rows.Scan(&e.ShowID, &e.EpisodeID, &e.Title, &e.AirDate, &e.Season); err != nil {
			return nil, err
		}
		eps = append(eps, e)
	}
	return eps, rows.Err()
}

// GetDetail retrieves one episode with its show title. It returns
// ErrEpisodeNotFound when the pair does not match a row.
func (r *EpisodeRepo) GetDetail(ctx context.Context, showID, episodeID string) (*EpisodeDetail, error) {
	const q = `SELECT e.showid, e.episodeID, e.title, e.airdate, SUBSTR(e.episodeID, 1, 1) AS season, s.title
               FROM episode e
               JOIN shows s ON s.showid = e.showid
               WHERE e.showid = ? AND e.episodeID = ?`
	var d EpisodeDetail
	err := r.db.QueryRowContext(ctx, q, showID, episodeID).Scan(
		&d.ShowID, &d.EpisodeID, &d.Title, &d.AirDate, &d.Season, &d.ShowTitle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEpisodeNotFound
		}
		return nil, err
	}
	return &d, nil
}

// RecurringCast returns the recurring actors credited on one specific
// episode of the show.
func (r *EpisodeRepo) RecurringCast(ctx context.Context, showID, episodeID string) ([]CastMember, error) {
	const q = `SELECT DISTINCT a.actID, a.fname, a.lname, rc.role
               FROM recurring_cast rc
               JOIN actor a ON a.actID = rc.actID
               WHERE rc.showid = ? AND rc.episodeID = ?`
	rows, err := r.db.QueryContext(ctx, q, showID, episodeID)
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
