// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping: driver
// selection (pure-Go SQLite for dev/test, MySQL for production), pool
// settings, schema migration, and baseline seeding.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/supportgen/go-helpdesk-backend/internal/config"
	"github.com/supportgen/go-helpdesk-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// Open connects to the database selected by cfg.Driver and configures the
// connection pool. The pool replaces the connection-per-request discipline of
// earlier revisions without changing observable behavior: no two operations
// ever share a connection-scoped state.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return openMySQL(cfg.DSN())
	case config.DriverSQLite:
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	configurePool(db)
	return db, nil
}

func openMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	configurePool(db)
	return db, nil
}

// EnableTracing registers the GORM OpenTelemetry plugin so each query emits
// a span nested under the request span from otelgin. Must run after the
// global tracer provider is installed.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

func configurePool(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
}

// AutoMigrate creates or updates the helpdesk schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.IssueType{},
		&domain.Keyword{},
		&domain.Chat{},
		&domain.Department{},
		&domain.Ticket{},
	)
}

// Seed inserts baseline lookup rows (issue types, keywords, departments, and
// a couple of demo users) when their tables are empty. It is idempotent and
// intended for local development; production schemas are populated out of band.
func Seed(db *gorm.DB) error {
	seedIfEmpty := func(model any, rows any) error {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		return db.Create(rows).Error
	}

	if err := seedIfEmpty(&domain.IssueType{}, &[]domain.IssueType{
		{Description: "Hardware"},
		{Description: "Software"},
		{Description: "Network"},
		{Description: "Account access"},
	}); err != nil {
		return err
	}
	if err := seedIfEmpty(&domain.Keyword{}, &[]domain.Keyword{
		{Text: "cannot login"},
		{Text: "printer"},
		{Text: "vpn"},
		{Text: "password reset"},
	}); err != nil {
		return err
	}
	if err := seedIfEmpty(&domain.Department{}, &[]domain.Department{
		{Name: "IT"},
		{Name: "Finance"},
		{Name: "Human Resources"},
	}); err != nil {
		return err
	}
	return seedIfEmpty(&domain.User{}, &[]domain.User{
		{Name: "Demo User", Email: "demo@example.com"},
		{Name: "Second User", Email: "second@example.com"},
	})
}
