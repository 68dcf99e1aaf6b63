// Package services defines the business logic for the work-order listing and
// the monitoring annotation store. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Monitoring-related errors.
var (
	// ErrWoIDRequired is returned when a save or lookup is attempted without a
	// work-order id.
	ErrWoIDRequired = errors.New("woId is required")

	// ErrWoIDTooLong is returned when woId exceeds the wo_id column width.
	ErrWoIDTooLong = errors.New("woId exceeds 64 characters")

	// ErrProblemCauseTooLong is returned when problemCause exceeds 250 characters.
	ErrProblemCauseTooLong = errors.New("problemCause exceeds 250 characters")

	// ErrActionPlanTooLong is returned when actionPlan exceeds 250 characters.
	ErrActionPlanTooLong = errors.New("actionPlan exceeds 250 characters")

	// ErrPicTooLong is returned when pic exceeds 100 characters.
	ErrPicTooLong = errors.New("pic exceeds 100 characters")

	// ErrBadDateline is returned when datelineClosing is present but is not a
	// calendar date in YYYY-MM-DD form.
	ErrBadDateline = errors.New("datelineClosing must be YYYY-MM-DD")

	// ErrBadProgressCategory is returned when progressCategory is present but
	// outside the fixed category set.
	ErrBadProgressCategory = errors.New("unknown progressCategory")

	// ErrMonitoringNotFound indicates that a work order has no annotation yet.
	ErrMonitoringNotFound = errors.New("monitoring record not found")
)
