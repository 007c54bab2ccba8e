package repository

import (
	"context"
	"database/sql"
)

// QueueEntry is one row of a customer's queue listing, joined with the show
// title and the customer's contact columns.
type QueueEntry struct {
	Title      string `json:"title"`
	ShowID     string `json:"show_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	DateQueued string `json:"date_queued"`
}

// QueueRepo manages the cust_queue table.
type QueueRepo struct {
	db *sql.DB
}

// NewQueueRepo constructs a QueueRepo with the given DB handle.
func NewQueueRepo(db *sql.DB) *QueueRepo {
	return &QueueRepo{db: db}
}

// Add inserts a queue entry for the customer dated today. The table carries
// no uniqueness constraint: queuing the same show twice inserts two rows.
func (r *QueueRepo) Add(ctx context.Context, custID, showID, dateQueued string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cust_queue (custID, showid, datequeued) VALUES (?, ?, ?)`,
		custID, showID, dateQueued)
	return err
}

// ListByCustomer returns every queued show for the customer.
func (r *QueueRepo) ListByCustomer(ctx context.Context, custID string) ([]QueueEntry, error) {
	const q = `SELECT s.title, s.showid, c.fname, c.lname, c.email, q.datequeued
               FROM cust_queue q
               JOIN shows s ON s.showid = q.showid
               JOIN cust c ON c.custID = q.custID
               WHERE c.custID = ?`
	rows, err := r.db.QueryContext(ctx, q, custID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []QueueEntry
	for rows.Next() {
		var e QueueEntry
		if err := rows.Scan(&e.Title, &e.ShowID, &e.FirstName, &e.LastName, &e.Email, &e.DateQueued); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// IsQueued reports whether the customer has the show in their queue.
func (r *QueueRepo) IsQueued(ctx context.Context, custID, showID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cust_queue WHERE custID = ? AND showid = ?`,
		custID, showID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
