package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueAllowsDuplicates(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	seedCustomer(t, db, "cust0001", "alice123")
	repo := NewQueueRepo(db)

	today := time.Now().Format("2006-01-02")
	require.NoError(t, repo.Add(ctx(), "cust0001", "show001", today))
	require.NoError(t, repo.Add(ctx(), "cust0001", "show003", today))
	require.NoError(t, repo.Add(ctx(), "cust0001", "show001", today)) // duplicate is kept

	entries, err := repo.ListByCustomer(ctx(), "cust0001")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byShow := map[string]int{}
	for _, e := range entries {
		byShow[e.ShowID]++
		assert.Equal(t, "Seed", e.FirstName)
		assert.Equal(t, "alice123@example.com", e.Email)
		assert.Equal(t, today, e.DateQueued)
	}
	assert.Equal(t, 2, byShow["show001"])
	assert.Equal(t, 1, byShow["show003"])
}

func TestQueueScopedToCustomer(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	seedCustomer(t, db, "cust0001", "alice123")
	seedCustomer(t, db, "cust0002", "bobby456")
	repo := NewQueueRepo(db)

	today := time.Now().Format("2006-01-02")
	require.NoError(t, repo.Add(ctx(), "cust0001", "show001", today))

	entries, err := repo.ListByCustomer(ctx(), "cust0002")
	require.NoError(t, err)
	assert.Empty(t, entries)

	queued, err := repo.IsQueued(ctx(), "cust0001", "show001")
	require.NoError(t, err)
	assert.True(t, queued)
	queued, err = repo.IsQueued(ctx(), "cust0002", "show001")
	require.NoError(t, err)
	assert.False(t, queued)
}

func TestMarkWatchedOncePerDay(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	seedCustomer(t, db, "cust0001", "alice123")
	repo := NewWatchedRepo(db)

	today := time.Now().Format("2006-01-02")
	recorded, err := repo.MarkWatched(ctx(), "cust0001", "show001", "101", today)
	require.NoError(t, err)
	assert.True(t, recorded)

	// Same calendar day: no second row.
	recorded, err = repo.MarkWatched(ctx(), "cust0001", "show001", "101", today)
	require.NoError(t, err)
	assert.False(t, recorded)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM watched`).Scan(&n))
	assert.Equal(t, 1, n)

	// The next day a fresh row is written.
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	recorded, err = repo.MarkWatched(ctx(), "cust0001", "show001", "101", tomorrow)
	require.NoError(t, err)
	assert.True(t, recorded)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM watched`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestMarkWatchedSurvivesConstraintCollision(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	seedCustomer(t, db, "cust0001", "alice123")
	repo := NewWatchedRepo(db)

	// Simulate the losing side of a concurrent double-insert: the row
	// already exists when the insert runs.
	today := time.Now().Format("2006-01-02")
	_, err := db.Exec(`INSERT INTO watched (custID, showid, episodeID, datewatched) VALUES (?, ?, ?, ?)`,
		"cust0001", "show001", "102", "1999-01-01")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO watched (custID, showid, episodeID, datewatched) VALUES (?, ?, ?, ?)`,
		"cust0001", "show001", "102", today)
	require.NoError(t, err)

	recorded, err := repo.MarkWatched(ctx(), "cust0001", "show001", "102", today)
	require.NoError(t, err)
	assert.False(t, recorded)
}

func TestHistoryGroupsByEpisodeWithLatestDate(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	seedCustomer(t, db, "cust0001", "alice123")
	repo := NewWatchedRepo(db)

	require.NoError(t, insertWatched(db, "cust0001", "show001", "101", "2024-03-01"))
	require.NoError(t, insertWatched(db, "cust0001", "show001", "101", "2024-03-08"))
	require.NoError(t, insertWatched(db, "cust0001", "show001", "102", "2024-03-05"))
	// Another customer's rows must not appear.
	seedCustomer(t, db, "cust0002", "bobby456")
	require.NoError(t, insertWatched(db, "cust0002", "show001", "201", "2024-03-06"))

	rows, err := repo.History(ctx(), "cust0001", "show001")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by last watched date: 102 (03-05) before 101 (03-08).
	assert.Equal(t, "102", rows[0].EpisodeID)
	assert.Equal(t, "2024-03-05", rows[0].LastWatched)
	assert.Equal(t, "101", rows[1].EpisodeID)
	assert.Equal(t, "2024-03-08", rows[1].LastWatched)
	assert.Equal(t, "The Marsh", rows[0].ShowTitle)
	assert.Equal(t, "The Reeds", rows[0].EpisodeTitle)
}

func insertWatched(db *sql.DB, custID, showID, episodeID, date string) error {
	_, err := db.Exec(`INSERT INTO watched (custID, showid, episodeID, datewatched) VALUES (?, ?, ?, ?)`,
		custID, showID, episodeID, date)
	return err
}
