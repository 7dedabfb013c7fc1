package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nihaocards/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The pool is pinned to one connection so every statement sees the same
// in-memory database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Wrap(sqlDB).Migrate(context.Background()))
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SeedUser inserts a user row and returns its id.
func SeedUser(t *testing.T, sqlDB *sql.DB, id, name string) string {
	t.Helper()
	_, err := sqlDB.Exec(`INSERT INTO users (id, email, display_name, created_at) VALUES (?, ?, ?, ?)`,
		id, id+"@example.com", name, time.Now().UTC())
	require.NoError(t, err)
	return id
}

// SeedCards inserts catalog cards with the given ids. Text fields are derived
// from the id so tests can predict them.
func SeedCards(t *testing.T, sqlDB *sql.DB, ids ...int64) {
	t.Helper()
	for _, id := range ids {
		_, err := sqlDB.Exec(`
INSERT INTO flashcards (id, hanzi, pinyin, translation, test_sentence, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
			id, fmt.Sprintf("字%d", id), fmt.Sprintf("zi%d", id), fmt.Sprintf("word %d", id),
			fmt.Sprintf("Sentence %d", id), time.Now().UTC())
		require.NoError(t, err)
	}
}

// FixedClock returns a clock stuck at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
