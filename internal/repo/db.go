// Package repo implements the data persistence layer for the monitoring
// annotation store, backed by GORM. This file contains database
// bootstrapping helpers for PostgreSQL and schema migrations. Tests use the
// pure-Go SQLite driver against the same repository functions.
package repo

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/prasetyow/wo-ops-backend/internal/domain"
)

// OpenPostgres opens a PostgreSQL connection pool and instruments it for
// tracing. maxConns bounds both open and idle connections; values below 1
// fall back to 5.
func OpenPostgres(dsn string, maxConns int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	if maxConns < 1 {
		maxConns = 5
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(maxConns)
		sqlDB.SetMaxIdleConns(maxConns)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate applies the schema for the monitoring store.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.MonitoringRecord{},
		&domain.Idempotency{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
