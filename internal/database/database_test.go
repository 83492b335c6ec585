package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ladder.db")
	db, teardown, err := InitDB(path, "", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	assert.Equal(t, DialectSQLite, db.Dialect)
	for _, table := range []string{"leaderboards", "leaderboard_players"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}

	_, err = os.Stat(path)
	assert.NoError(t, err, "the database file should exist")
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ladder.db")

	_, teardown, err := InitDB(path, "", "", "")
	require.NoError(t, err)
	teardown()

	_, teardown, err = InitDB(path, "", "", "")
	require.NoError(t, err, "running migrations twice should be a no-op")
	teardown()
}

func TestRebind(t *testing.T) {
	sqlite := &DB{Dialect: DialectSQLite}
	postgres := &DB{Dialect: DialectPostgres}

	query := "INSERT INTO t (a, b, c) VALUES (?, ?, ?)"
	assert.Equal(t, query, sqlite.Rebind(query))
	assert.Equal(t, "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)", postgres.Rebind(query))
}
