// Package services – MonitoringService
//
// This file implements the MonitoringService, which governs how dispatchers
// annotate work orders (problem cause, action plan, PIC, closing date,
// progress category). It enforces the field rules (length limits, date
// format, the fixed category set) and persists each save as a new row so the
// annotation trail is never lost. Service-level errors (e.g. ErrWoIDRequired,
// ErrBadDateline, ErrMonitoringNotFound) are returned for predictable cases
// so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/prasetyow/wo-ops-backend/internal/domain"
	"github.com/prasetyow/wo-ops-backend/internal/repo"
)

// MonitoringService implements the use-cases around work-order annotations.
// It validates the submitted fields and persists them using the provided GORM
// handle. The service is context-aware; the handle may be a plain *gorm.DB or
// a transaction-bound handle.
type MonitoringService struct {
	// DB is the database handle used for all monitoring operations.
	DB *gorm.DB
}

// SubmitInput carries one annotation save as the client sent it. All fields
// except WoID are optional; blank strings mean "not provided" and are stored
// as NULL.
type SubmitInput struct {
	WoID             string `json:"woId"`
	ProblemCause     string `json:"problemCause"`
	ActionPlan       string `json:"actionPlan"`
	Pic              string `json:"pic"`
	DatelineClosing  string `json:"datelineClosing"`
	ProgressCategory string `json:"progressCategory"`
}

// Submit validates in and appends a new annotation row for in.WoID.
//
// Validation:
//   - WoID must be non-blank (ErrWoIDRequired) and at most 64 characters,
//     the wo_id column width (ErrWoIDTooLong).
//   - ProblemCause and ActionPlan are limited to 250 characters.
//   - Pic is limited to 100 characters.
//
// Limits count characters, not bytes, so multibyte annotation text is not
// rejected early.
//   - DatelineClosing, when present, must be a real date in YYYY-MM-DD form;
//     otherwise ErrBadDateline.
//   - ProgressCategory, when present, must be one of the fixed labels;
//     otherwise ErrBadProgressCategory.
//
// Blank optional fields become NULL columns, so a save with only a PIC does
// not overwrite the absent fields with empty strings. Earlier rows are left
// untouched; reads resolve the newest row per work order.
func (s *MonitoringService) Submit(ctx context.Context, in SubmitInput) (*domain.MonitoringRecord, error) {
	woID := strings.TrimSpace(in.WoID)
	if woID == "" {
		return nil, ErrWoIDRequired
	}
	if utf8.RuneCountInString(woID) > 64 {
		return nil, ErrWoIDTooLong
	}
	if utf8.RuneCountInString(in.ProblemCause) > 250 {
		return nil, ErrProblemCauseTooLong
	}
	if utf8.RuneCountInString(in.ActionPlan) > 250 {
		return nil, ErrActionPlanTooLong
	}
	if utf8.RuneCountInString(in.Pic) > 100 {
		return nil, ErrPicTooLong
	}

	rec := &domain.MonitoringRecord{
		WoID:         woID,
		ProblemCause: optional(in.ProblemCause),
		ActionPlan:   optional(in.ActionPlan),
		Pic:          optional(in.Pic),
	}

	if v := strings.TrimSpace(in.DatelineClosing); v != "" {
		d, err := domain.ParseDateOnly(v)
		if err != nil {
			return nil, ErrBadDateline
		}
		rec.DatelineClosing = &d
	}

	if v := strings.TrimSpace(in.ProgressCategory); v != "" {
		if !domain.ValidProgressCategory(v) {
			return nil, ErrBadProgressCategory
		}
		rec.ProgressCategory = &v
	}

	return repo.CreateMonitoring(ctx, s.DB, rec)
}

// Latest returns the current annotation for woID, i.e. the newest saved row.
// It returns ErrWoIDRequired for a blank id and ErrMonitoringNotFound when
// the work order has never been annotated.
func (s *MonitoringService) Latest(ctx context.Context, woID string) (*domain.MonitoringRecord, error) {
	woID = strings.TrimSpace(woID)
	if woID == "" {
		return nil, ErrWoIDRequired
	}
	rec, err := repo.LatestMonitoring(ctx, s.DB, woID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrMonitoringNotFound
	}
	return rec, err
}

// History returns the full annotation trail for woID, newest first. An empty
// trail is an empty slice, not an error.
func (s *MonitoringService) History(ctx context.Context, woID string) ([]domain.MonitoringRecord, error) {
	woID = strings.TrimSpace(woID)
	if woID == "" {
		return nil, ErrWoIDRequired
	}
	return repo.ListMonitoringHistory(ctx, s.DB, woID)
}

// HistoryStats returns the trail length and the newest save time for woID
// without loading the rows. The HTTP layer uses it to answer conditional
// local-history requests. An empty trail yields (0, nil, nil).
func (s *MonitoringService) HistoryStats(ctx context.Context, woID string) (int64, *time.Time, error) {
	woID = strings.TrimSpace(woID)
	if woID == "" {
		return 0, nil, ErrWoIDRequired
	}
	return repo.MonitoringStats(ctx, s.DB, woID)
}

// optional maps a blank string to nil so it is stored as NULL.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
