package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/parkhaus/parkhaus/internal/domain"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store bundles the per-entity repositories over a single SQLite database,
// so the claim path and the uniqueness constraints share one consistency
// domain.
type Store struct {
	db *sql.DB

	Tenants    *TenantRepository
	Apartments *ApartmentRepository
	Parking    *ParkingRepository
}

// Compile-time checks: the repositories implement their domain ports.
var (
	_ domain.TenantRepository    = (*TenantRepository)(nil)
	_ domain.ApartmentRepository = (*ApartmentRepository)(nil)
	_ domain.ParkingRepository   = (*ParkingRepository)(nil)
)

// New opens a SQLite database, runs migrations, and returns a ready store.
func New(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign keys (off by default in SQLite).
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and
// returns a ready store. Use this when the *sql.DB has been pre-configured
// (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*Store, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		Tenants:    &TenantRepository{db: db},
		Apartments: &ApartmentRepository{db: db},
		Parking:    &ParkingRepository{db: db},
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for use by other adapters
// (e.g., river).
func (s *Store) DB() *sql.DB {
	return s.db
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

const timeFormat = "2006-01-02T15:04:05Z"

// uniqueViolation extracts the violated column from a SQLite UNIQUE
// constraint error. The message names the column as "table.column"; the
// modernc driver appends the extended result code, e.g.
// "UNIQUE constraint failed: tenants.username (2067)".
func uniqueViolation(err error) (column string, ok bool) {
	msg := err.Error()
	idx := strings.Index(msg, "UNIQUE constraint failed: ")
	if idx < 0 {
		return "", false
	}
	qualified := strings.TrimSpace(msg[idx+len("UNIQUE constraint failed: "):])
	if dot := strings.LastIndex(qualified, "."); dot >= 0 {
		qualified = qualified[dot+1:]
	}
	if sp := strings.IndexByte(qualified, ' '); sp >= 0 {
		qualified = qualified[:sp]
	}
	return qualified, true
}

// isBusy reports whether an error is a transient SQLITE_BUSY/locked
// condition, surfaced to callers as domain.ErrStoreUnavailable.
func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// writeErr maps low-level write errors to the domain taxonomy.
func writeErr(op string, err error) error {
	if isBusy(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullable converts an empty string to NULL for weak references.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
