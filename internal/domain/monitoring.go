// Package domain – monitoring annotation models.
//
// MonitoringRecord is the persisted annotation a dispatcher attaches to a
// work order (problem cause, action plan, PIC, closing date, progress
// category). Saves are append-only: every submit inserts a new row, and the
// "latest" view is the most recent row per wo_id. Rows are never updated in
// place and never deleted, so the table doubles as the full audit history.
package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Progress category labels accepted on a monitoring save. The set is fixed;
// an empty category is allowed and stored as NULL.
const (
	ProgressOpen             = "OPEN"
	ProgressWaitingSparepart = "WAITING SPAREPART"
	ProgressWaitingApproval  = "WAITING APPROVAL"
	ProgressOnRepair         = "ON PROGRESS REPAIR"
	ProgressWaitingDelivery  = "WAITING DELIVERY"
	ProgressDeliveryProcess  = "DELIVERY PROCESS"
	ProgressDone             = "DONE"
	ProgressClosed           = "CLOSED"
	ProgressCancel           = "CANCEL"
)

// ProgressCategories lists every accepted progress label, in display order.
var ProgressCategories = []string{
	ProgressOpen,
	ProgressWaitingSparepart,
	ProgressWaitingApproval,
	ProgressOnRepair,
	ProgressWaitingDelivery,
	ProgressDeliveryProcess,
	ProgressDone,
	ProgressClosed,
	ProgressCancel,
}

// ValidProgressCategory reports whether s is one of the fixed labels.
func ValidProgressCategory(s string) bool {
	for _, c := range ProgressCategories {
		if s == c {
			return true
		}
	}
	return false
}

// DateOnly is a calendar date stored in a SQL DATE column and rendered as
// "YYYY-MM-DD" in JSON. The zero value is invalid; use pointers for optional
// columns.
type DateOnly struct {
	time.Time
}

const dateOnlyLayout = "2006-01-02"

// ParseDateOnly parses a "YYYY-MM-DD" string.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{Time: t}, nil
}

// String returns the date in "YYYY-MM-DD" form.
func (d DateOnly) String() string { return d.Format(dateOnlyLayout) }

// MarshalJSON renders the date as a quoted "YYYY-MM-DD" string.
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted "YYYY-MM-DD" string.
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("dateline: expected quoted YYYY-MM-DD, got %s", b)
	}
	parsed, err := ParseDateOnly(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so GORM writes a bare DATE.
func (d DateOnly) Value() (driver.Value, error) { return d.Time, nil }

// Scan implements sql.Scanner, accepting time values and date strings as
// produced by the Postgres and SQLite drivers.
func (d *DateOnly) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		if len(v) >= len(dateOnlyLayout) {
			v = v[:len(dateOnlyLayout)]
		}
		parsed, err := ParseDateOnly(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("dateline: cannot scan %T", src)
	}
}

// GormDataType tells GORM to migrate DateOnly columns as DATE.
func (DateOnly) GormDataType() string { return "date" }

// MonitoringRecord is one saved annotation for a work order. wo_id is indexed
// but deliberately not unique: history is kept by inserting a new row per
// save.
type MonitoringRecord struct {
	ID               uint      `json:"id"               gorm:"primaryKey;autoIncrement"`
	WoID             string    `json:"woId"             gorm:"column:wo_id;type:varchar(64);not null;index:idx_wo_monitoring_wo_id"`
	ProblemCause     *string   `json:"problemCause"     gorm:"type:varchar(250)"`
	ActionPlan       *string   `json:"actionPlan"       gorm:"type:varchar(250)"`
	Pic              *string   `json:"pic"              gorm:"type:varchar(100)"`
	DatelineClosing  *DateOnly `json:"datelineClosing"  gorm:"type:date"`
	ProgressCategory *string   `json:"progressCategory" gorm:"type:varchar(32)"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// TableName returns the database table name for MonitoringRecord.
func (MonitoringRecord) TableName() string { return "wo_monitoring" }
