package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/civreg/civreg/internal/domain"
	"github.com/civreg/civreg/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection and hands out repositories bound to it.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies any unapplied schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Users returns a user repository bound to this database.
func (db *DB) Users() domain.UserRepository {
	return NewUserRepository(db)
}

// Citizens returns a citizen repository bound to this database.
func (db *DB) Citizens() domain.CitizenRepository {
	return NewCitizenRepository(db)
}
