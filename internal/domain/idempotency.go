// Package domain – idempotency model.
package domain

import "time"

// Idempotency records a completed monitoring save keyed by (wo_id, key).
// Because saves are append-only, a client retry without deduplication would
// duplicate a history row; replaying the stored record id avoids that.
type Idempotency struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	WoID      string    `gorm:"column:wo_id;type:varchar(64);not null;uniqueIndex:ux_wo_key,priority:1"`
	Key       string    `gorm:"type:varchar(200);not null;uniqueIndex:ux_wo_key,priority:2"`
	RecordID  uint      `gorm:"not null"`
	Status    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
