package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

// sqliteBusyTimeout is how long a writer waits on a locked database before SQLITE_BUSY
const sqliteBusyTimeout = 5 * time.Second

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (d *SQLiteDialect) DSN(config DialectConfig) string {
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", config.Path, sqliteBusyTimeout.Milliseconds())
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	return query
}

// ConfigureConnection keeps a small pool; WAL lets readers run beside the single writer
func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	poolSettings{maxOpen: 8, maxIdle: 4, maxLifetime: time.Hour, maxIdleTime: 10 * time.Minute}.apply(db)

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		return fmt.Errorf("failed to enable WAL: %w", err)
	}
	return nil
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite"
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT UNIQUE NOT NULL,
		executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
}

func (d *SQLiteDialect) UpsertStateQuery() string {
	return insertState + "ON CONFLICT(user_id) DO UPDATE SET " + excludedStateColumns("excluded")
}
