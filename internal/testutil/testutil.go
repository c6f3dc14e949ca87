package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/birdguide/internal/db"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// It runs on a single connection, so the database lives until Close.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	logger.SetDefault(logger.Discard())

	d, err := db.Open(db.DriverSQLite, ":memory:", 1)
	require.NoError(t, err)
	return d
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// InsertUser adds a user row with the given external id.
func InsertUser(t *testing.T, d *db.DB, auth0ID string) models.User {
	t.Helper()

	var u models.User
	err := d.QueryRowxContext(context.Background(), d.Rebind(`
INSERT INTO users (auth0_id, email, username, locale)
VALUES (?, ?, ?, 'en')
RETURNING id, auth0_id, email, username, locale, xp, current_streak, longest_streak, last_active_on, is_admin, created_at, updated_at, deleted_at
`), auth0ID, auth0ID+"@example.com", auth0ID).StructScan(&u)
	require.NoError(t, err)
	return u
}

// InsertSpecies adds a species row and returns its id.
func InsertSpecies(t *testing.T, d *db.DB, scientificName, ebirdID string) int64 {
	t.Helper()

	var id int64
	err := d.QueryRowxContext(context.Background(), d.Rebind(`
INSERT INTO species (scientific_name, ebird_id) VALUES (?, ?) RETURNING id
`), scientificName, ebirdID).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertCommonName adds a common name for a species.
func InsertCommonName(t *testing.T, d *db.DB, speciesID int64, lang, name string) {
	t.Helper()

	_, err := d.ExecContext(context.Background(), d.Rebind(`
INSERT INTO species_common_names (species_id, lang_code, common_name) VALUES (?, ?, ?)
`), speciesID, lang, name)
	require.NoError(t, err)
}

// CountRows returns the number of rows in table matching where.
func CountRows(t *testing.T, d *db.DB, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, d.GetContext(context.Background(), &n, d.Rebind(query), args...))
	return n
}
