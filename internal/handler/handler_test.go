package handler_test

// Shared fixtures for handler tests: an in-memory sqlite database running
// the production SQL, and an in-memory session store standing in for redis.
// Tests go through the full router so session middleware is exercised too.

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/streamtv/internal/config"
	"github.com/iliyamo/streamtv/internal/middleware"
	"github.com/iliyamo/streamtv/internal/session"
	"github.com/iliyamo/streamtv/internal/utils"
)

const testSecret = "handler-test-secret"

var testCfg = config.Config{
	Env:           "test",
	SessionSecret: testSecret,
	SessionTTLHrs: 1,
	BcryptCost:    4,
}

const handlerTestSchema = `
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
CREATE TABLE actor (actID TEXT PRIMARY KEY, fname TEXT NOT NULL, lname TEXT NOT NULL);
CREATE TABLE main_cast (showid TEXT NOT NULL, actID TEXT NOT NULL, role TEXT NOT NULL);
CREATE TABLE recurring_cast (showid TEXT NOT NULL, actID TEXT NOT NULL, episodeID TEXT NOT NULL, role TEXT NOT NULL);
CREATE TABLE cust_queue (custID TEXT NOT NULL, showid TEXT NOT NULL, datequeued TEXT NOT NULL);
CREATE TABLE watched (
    custID TEXT NOT NULL, showid TEXT NOT NULL, episodeID TEXT NOT NULL, datewatched TEXT NOT NULL,
    UNIQUE (custID, showid, episodeID, datewatched)
);`

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(handlerTestSchema)
	require.NoError(t, err)
	return db
}

func seedCatalog(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, q := range []string{
		`INSERT INTO shows VALUES ('show001', 'The Marsh', 'HBC', 'A slow-burning swamp procedural.')`,
		`INSERT INTO shows VALUES ('show042', 'Night Court', 'CBN', 'Courtroom comedy.')`,
		`INSERT INTO episode VALUES ('show001', '101', 'Pilot', '2020-01-05')`,
		`INSERT INTO episode VALUES ('show001', '102', 'The Reeds', '2020-01-12')`,
		`INSERT INTO actor VALUES ('act001', 'Alice', 'Stone')`,
		`INSERT INTO main_cast VALUES ('show001', 'act001', 'Detective Reyes')`,
		`INSERT INTO recurring_cast VALUES ('show001', 'act002', '101', 'Clerk')`,
		`INSERT INTO actor VALUES ('act002', 'Cara', 'Marshall')`,
	} {
		_, err := db.Exec(q)
		require.NoError(t, err)
	}
}

// memStore is an in-memory session.Store used in place of redis.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]session.Identity
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]session.Identity{}}
}

func (s *memStore) Set(_ context.Context, sid string, id session.Identity, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = id
	return nil
}

func (s *memStore) Get(_ context.Context, sid string) (session.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[sid]
	if !ok {
		return session.Identity{}, session.ErrNotFound
	}
	return id, nil
}

func (s *memStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

// loginAs installs a session in the store and returns the cookie a browser
// would carry.
func loginAs(t *testing.T, store session.Store, custID, username string) *http.Cookie {
	t.Helper()
	sid, err := utils.NewSessionID()
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), sid, session.Identity{Username: username, CustomerID: custID}, time.Hour))
	tok, err := utils.NewSessionToken(testSecret, sid, custID, username, 1)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookie, Value: tok.Token}
}

func seedCustomer(t *testing.T, db *sql.DB, custID, username string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO cust (custID, username, password, fname, lname, email, creditcard, membersince, renewaldate)
		 VALUES (?, ?, 'x', 'Seed', 'Customer', ?, '4111111111', '2024-01-01', '2024-01-01')`,
		custID, username, username+"@example.com")
	require.NoError(t, err)
}

// doJSON performs a request against a fully routed echo instance.
func doJSON(e *echo.Echo, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
