package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the storage handle. It owns the connection pool; every operation
// borrows one session for its duration.
type DB struct {
	ORM *gorm.DB
}

// Options configure Open.
type Options struct {
	Dialect string // postgres | sqlite
	DSN     string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// SkipMigrate leaves the schema untouched on open.
	SkipMigrate bool
	// Now overrides the clock used for created_at and timestamp.
	Now      func() time.Time
	LogLevel logger.LogLevel
}

// Open connects to the store and creates missing tables.
func Open(opts Options) (*DB, error) {
	g, err := openORM(opts)
	if err != nil {
		return nil, classify("open", err)
	}
	if err := configurePool(g, opts); err != nil {
		_ = closeORM(g)
		return nil, classify("open", err)
	}
	d := &DB{ORM: g}
	if !opts.SkipMigrate {
		if err := d.Migrate(); err != nil {
			_ = closeORM(g)
			return nil, err
		}
	}
	return d, nil
}

// Migrate creates the schema if absent. Safe to call repeatedly.
func (d *DB) Migrate() error {
	if err := migrateORM(d.ORM); err != nil {
		return classify("migrate", err)
	}
	return nil
}

// Ping checks that the store is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if err := pingORM(ctx, d.ORM); err != nil {
		return fmt.Errorf("ping: %w: %w", ErrConnectivity, err)
	}
	return nil
}

func (d *DB) Close() error { return closeORM(d.ORM) }

// transaction runs fn in one transaction bound to ctx.
func (d *DB) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.ORM.WithContext(ctx).Transaction(fn)
}

func deleted(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
