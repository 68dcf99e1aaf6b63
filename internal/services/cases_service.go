// Package services – CasesService
//
// This file implements the CasesService, which produces the outstanding
// work-order listing: it fetches the raw rows from the upstream warehouse
// API, then runs them through the local shaping pipeline (envelope
// extraction, normalization, filtering, sorting, pagination). Upstream
// failures surface as the warehouse package's errors so handlers can map a
// rejected token to a session reset.
package services

import (
	"context"

	"github.com/prasetyow/wo-ops-backend/internal/cases"
	"github.com/prasetyow/wo-ops-backend/internal/warehouse"
)

// OutstandingFetcher is the upstream listing dependency of CasesService.
// *warehouse.Client satisfies it; tests substitute a stub.
type OutstandingFetcher interface {
	FetchOutstanding(ctx context.Context, token string, f warehouse.OutstandingFilters) (body []byte, attempted string, err error)
}

// CasesService implements the outstanding work-order listing use-case.
type CasesService struct {
	Warehouse OutstandingFetcher
}

// ListDebug describes how a listing was produced: the upstream URL that was
// attempted, where in the response the rows were found, and the row counts at
// each pipeline stage.
type ListDebug struct {
	AttemptedURL string         `json:"attemptedUrl"`
	Envelope     cases.Envelope `json:"envelope"`
	Counts       cases.Counts   `json:"counts"`
}

// ListResult is one shaped listing page plus its production diagnostics.
type ListResult struct {
	Page  cases.Page
	Debug ListDebug
}

// List fetches the outstanding rows with the caller's bearer token, forwards
// the upstream-side filters, and shapes the result with q. An unrecognized
// response shape is an empty listing, not an error; upstream transport and
// auth failures are returned as-is (warehouse.ErrUnauthorized for a rejected
// token).
func (s *CasesService) List(ctx context.Context, token string, f warehouse.OutstandingFilters, q cases.Query) (*ListResult, error) {
	body, attempted, err := s.Warehouse.FetchOutstanding(ctx, token, f)
	if err != nil {
		return nil, err
	}

	rows, env := cases.ExtractRows(body)
	normalized := cases.Normalize(rows)
	page, counts := cases.Apply(normalized, q)

	return &ListResult{
		Page: page,
		Debug: ListDebug{
			AttemptedURL: attempted,
			Envelope:     env,
			Counts:       counts,
		},
	}, nil
}
