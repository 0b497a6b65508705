package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sensor-telemetry/internal/model"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// openORM opens a GORM connection for the configured dialect.
func openORM(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts.Dialect, opts.DSN)
	if err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	level := opts.LogLevel
	if level == 0 {
		level = logger.Warn
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
		TranslateError: true,
		// timestamps round-trip through postgres at microsecond precision
		NowFunc: func() time.Time { return now().UTC().Truncate(time.Microsecond) },
	})
}

func dialectorFor(dialect, dsn string) (gorm.Dialector, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%w: empty dsn", ErrConnectivity)
	}
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case DialectPostgres, "postgresql", "pg":
		return postgres.Open(dsn), nil
	case DialectSQLite, "sqlite3":
		return sqlite.Open(sqliteDSN(dsn)), nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// sqliteDSN turns on foreign key enforcement for every pooled connection.
func sqliteDSN(dsn string) string {
	params := []string{}
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk=") {
		params = append(params, "_foreign_keys=on")
	}
	if !strings.Contains(dsn, "_busy_timeout") {
		params = append(params, "_busy_timeout=5000")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// configurePool applies pool limits; sqlite is pinned to a single connection.
func configurePool(g *gorm.DB, opts Options) error {
	sqlDB, err := g.DB()
	if err != nil {
		return err
	}
	maxOpen := opts.MaxOpenConns
	if g.Dialector.Name() == "sqlite" {
		maxOpen = 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return nil
}

// migrateORM creates missing tables and indices; existing data is left alone.
func migrateORM(db *gorm.DB) error {
	return db.AutoMigrate(model.AllModels()...)
}

// closeORM closes the underlying SQL DB associated with the GORM connection.
func closeORM(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func pingORM(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
