package repository

// Test fixtures run the repositories against an in-memory sqlite database
// executing the same SQL the MySQL production path uses: '?' placeholders,
// dates bound as "YYYY-MM-DD" strings and portable functions only.

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE cust (
    custID      TEXT PRIMARY KEY,
    username    TEXT NOT NULL UNIQUE,
    password    TEXT NOT NULL,
    fname       TEXT NOT NULL,
    lname       TEXT NOT NULL,
    email       TEXT NOT NULL,
    creditcard  TEXT NOT NULL,
    membersince TEXT NOT NULL,
    renewaldate TEXT NOT NULL
);
CREATE TABLE shows (
    showid      TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    network     TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE episode (
    showid    TEXT NOT NULL,
    episodeID TEXT NOT NULL,
    title     TEXT NOT NULL,
    airdate   TEXT NOT NULL,
    PRIMARY KEY (showid, episodeID)
);
CREATE TABLE actor (
    actID TEXT PRIMARY KEY,
    fname TEXT NOT NULL,
    lname TEXT NOT NULL
);
CREATE TABLE main_cast (
    showid TEXT NOT NULL,
    actID  TEXT NOT NULL,
    role   TEXT NOT NULL
);
CREATE TABLE recurring_cast (
    showid    TEXT NOT NULL,
    actID     TEXT NOT NULL,
    episodeID TEXT NOT NULL,
    role      TEXT NOT NULL
);
CREATE TABLE cust_queue (
    custID     TEXT NOT NULL,
    showid     TEXT NOT NULL,
    datequeued TEXT NOT NULL
);
CREATE TABLE watched (
    custID      TEXT NOT NULL,
    showid      TEXT NOT NULL,
    episodeID   TEXT NOT NULL,
    datewatched TEXT NOT NULL,
    UNIQUE (custID, showid, episodeID, datewatched)
);`

// newTestDB opens a fresh in-memory database with the schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

// seedCatalog loads a small catalog: two shows whose titles contain "marsh",
// one that doesn't, three episodes across two seasons, a main cast of two
// and a recurring clerk appearing in two episodes.
func seedCatalog(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []struct {
		q    string
		args [][]any
	}{
		{`INSERT INTO shows (showid, title, network, description) VALUES (?, ?, ?, ?)`, [][]any{
			{"show001", "The Marsh", "HBC", "A slow-burning swamp procedural."},
			{"show002", "Marsh Lights", "HBC", "Spin-off anthology."},
			{"show003", "Night Court", "CBN", "Courtroom comedy."},
		}},
		{`INSERT INTO episode (showid, episodeID, title, airdate) VALUES (?, ?, ?, ?)`, [][]any{
			{"show001", "101", "Pilot", "2020-01-05"},
			{"show001", "102", "The Reeds", "2020-01-12"},
			{"show001", "201", "High Water", "2021-01-10"},
			{"show003", "101", "First Session", "2019-09-01"},
		}},
		{`INSERT INTO actor (actID, fname, lname) VALUES (?, ?, ?)`, [][]any{
			{"act001", "Alice", "Stone"},
			{"act002", "Bob", "Marsh"},
			{"act003", "Cara", "Marshall"},
			{"act004", "Marsha", "Marshman"},
		}},
		{`INSERT INTO main_cast (showid, actID, role) VALUES (?, ?, ?)`, [][]any{
			{"show001", "act001", "Detective Reyes"},
			{"show001", "act002", "Captain Holt"},
			{"show003", "act001", "Judge"},
		}},
		{`INSERT INTO recurring_cast (showid, actID, episodeID, role) VALUES (?, ?, ?, ?)`, [][]any{
			{"show001", "act003", "101", "Clerk"},
			{"show001", "act003", "102", "Clerk"},
			{"show001", "act004", "201", "Ferryman"},
		}},
	}
	for _, s := range stmts {
		for _, args := range s.args {
			_, err := db.Exec(s.q, args...)
			require.NoError(t, err)
		}
	}
}

// seedCustomer inserts a customer row directly, bypassing registration.
func seedCustomer(t *testing.T, db *sql.DB, custID, username string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO cust (custID, username, password, fname, lname, email, creditcard, membersince, renewaldate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		custID, username, "x", "Seed", "Customer", username+"@example.com", "4111111111", "2024-01-01", "2024-01-01")
	require.NoError(t, err)
}

func ctx() context.Context { return context.Background() }
