package database

import (
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Dialect is the SQL flavour behind a DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DB wraps a connection pool together with its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Rebind rewrites ? placeholders into the dialect's native form.
func (db *DB) Rebind(query string) string {
	if db.Dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// InitDB opens the configured database and migrates it to the latest schema.
//
// A postgres:// URL in databaseURL wins; otherwise a Turso primaryURL is used;
// otherwise dbName is opened as a local SQLite file (":memory:" works for tests).
func InitDB(dbName, primaryURL, authToken, databaseURL string) (*DB, func(), error) {
	var (
		db      *sql.DB
		dialect Dialect
		err     error
	)
	switch {
	case databaseURL != "":
		log.Info("Initializing Postgres database")
		db, err = sql.Open("pgx", databaseURL)
		dialect = DialectPostgres
	case primaryURL != "":
		log.Info("Initializing Turso database", "url", primaryURL)
		db, err = sql.Open("libsql", primaryURL+"?authToken="+authToken)
		dialect = DialectSQLite
	default:
		log.Info("Initializing local-only SQLite database", "path", dbName)
		db, err = sql.Open("sqlite3", dbName+"?_foreign_keys=on")
		dialect = DialectSQLite
		// One connection keeps ":memory:" databases alive and serializes SQLite writers.
		db.SetMaxOpenConns(1)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db, dialect); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	log.Info("Database initialized successfully", "dialect", dialect)
	return &DB{DB: db, Dialect: dialect}, teardown, nil
}

func migrate(db *sql.DB, dialect Dialect) error {
	gooseDialect := "sqlite3"
	if dialect == DialectPostgres {
		gooseDialect = "postgres"
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(log.Default())
	if err := goose.SetDialect(gooseDialect); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}
