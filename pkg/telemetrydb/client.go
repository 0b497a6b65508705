package telemetrydb

import (
	"context"

	dbpkg "sensor-telemetry/internal/db"
)

// Client exposes a stable API for third-party packages to access the store.
// Every method maps to one storage transaction.
type Client struct{ db *dbpkg.DB }

// Options configure Open. See db.Options.
type Options = dbpkg.Options

// Page is an offset/limit window; zero Limit means the default of 100.
type Page = dbpkg.Page

// ReadingFilter selects readings; nil fields are not applied.
type ReadingFilter = dbpkg.ReadingFilter

var (
	ErrNotFound            = dbpkg.ErrNotFound
	ErrConstraintViolation = dbpkg.ErrConstraintViolation
	ErrConnectivity        = dbpkg.ErrConnectivity
)

const (
	DialectPostgres = dbpkg.DialectPostgres
	DialectSQLite   = dbpkg.DialectSQLite

	// DefaultLimit is the page size applied when Page.Limit is unset.
	DefaultLimit = dbpkg.DefaultLimit
)

// Open opens the store (creating missing tables) and returns a client.
func Open(opts Options) (*Client, error) {
	d, err := dbpkg.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Client{db: d}, nil
}

// OpenSQLite is a convenience wrapper for a file-backed SQLite store.
func OpenSQLite(path string) (*Client, error) {
	return Open(Options{Dialect: DialectSQLite, DSN: path})
}

// Close closes the underlying connection pool.
func (c *Client) Close() error { return c.db.Close() }

// Ping checks connectivity to the store.
func (c *Client) Ping(ctx context.Context) error { return c.db.Ping(ctx) }
