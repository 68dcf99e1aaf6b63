// Package repo implements the data persistence layer for the monitoring
// annotation store, backed by GORM. This file provides repository functions
// for the MonitoringRecord model.
//
// The store is append-only: every save inserts a new row, and "the current
// annotation" for a work order is simply the newest row for that wo_id.
// History is the full insertion trail, newest first.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When no row exists for a work order, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/prasetyow/wo-ops-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateMonitoring appends a new annotation row for rec.WoID. The caller has
// already validated the fields; ID and timestamps are assigned here.
func CreateMonitoring(ctx context.Context, db *gorm.DB, rec *domain.MonitoringRecord) (*domain.MonitoringRecord, error) {
	now := time.Now().UTC()
	rec.ID = 0
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// LatestMonitoring returns the newest annotation row for woID, or ErrNotFound
// when the work order has never been annotated. Ties on created_at break on
// the higher id, so two saves within the same timestamp still resolve to the
// later insert.
func LatestMonitoring(ctx context.Context, db *gorm.DB, woID string) (*domain.MonitoringRecord, error) {
	var rec domain.MonitoringRecord
	err := db.WithContext(ctx).
		Where("wo_id = ?", woID).
		Order("created_at DESC, id DESC").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetMonitoring fetches one annotation row by its id, or ErrNotFound. Used to
// replay a previously stored save on an idempotent retry.
func GetMonitoring(ctx context.Context, db *gorm.DB, id uint) (*domain.MonitoringRecord, error) {
	var rec domain.MonitoringRecord
	if err := db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListMonitoringHistory returns every annotation row for woID, newest first.
// It returns an empty slice (not ErrNotFound) when the trail is empty.
func ListMonitoringHistory(ctx context.Context, db *gorm.DB, woID string) ([]domain.MonitoringRecord, error) {
	var out []domain.MonitoringRecord
	err := db.WithContext(ctx).
		Where("wo_id = ?", woID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// MonitoringStats returns aggregate metadata for a work order's annotation
// trail: the row count and the newest CreatedAt. When the trail is empty the
// count is 0 and maxCreatedAt is nil. Used for conditional responses in the
// HTTP layer.
func MonitoringStats(ctx context.Context, db *gorm.DB, woID string) (count int64, maxCreatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.MonitoringRecord{}).Where("wo_id = ?", woID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Select the newest row rather than MAX() (SQLite reports MAX() as TEXT).
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
