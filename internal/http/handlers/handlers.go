// Handler wiring.
//
// This file declares the service contracts consumed by the HTTP layer and the
// Handlers aggregate that binds them. Handlers are transport-thin: they
// validate input, call application services, and translate results into HTTP
// responses.
package handlers

import (
	"context"
	"time"

	"github.com/prasetyow/wo-ops-backend/internal/cases"
	"github.com/prasetyow/wo-ops-backend/internal/domain"
	"github.com/prasetyow/wo-ops-backend/internal/services"
	"github.com/prasetyow/wo-ops-backend/internal/session"
	"github.com/prasetyow/wo-ops-backend/internal/warehouse"
)

//
// Service contracts (context-aware)
//

// AuthClient performs the upstream credential exchange.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthClient interface {
	// Login forwards credentials upstream and returns the bearer token plus
	// the user profile.
	Login(ctx context.Context, username, password string) (*warehouse.LoginResult, error)
}

// CasesLister produces the shaped outstanding work-order listing.
type CasesLister interface {
	// List fetches upstream rows with the bearer token and shapes them.
	List(ctx context.Context, token string, f warehouse.OutstandingFilters, q cases.Query) (*services.ListResult, error)
}

// MonitoringService defines the annotation store operations consumed by HTTP
// handlers.
type MonitoringService interface {
	// Submit validates and appends one annotation save.
	Submit(ctx context.Context, in services.SubmitInput) (*domain.MonitoringRecord, error)
	// Latest returns the newest annotation for a work order.
	Latest(ctx context.Context, woID string) (*domain.MonitoringRecord, error)
	// History returns the full annotation trail, newest first.
	History(ctx context.Context, woID string) ([]domain.MonitoringRecord, error)
	// HistoryStats returns the trail length and newest save time, for
	// conditional responses.
	HistoryStats(ctx context.Context, woID string) (int64, *time.Time, error)
}

// UpstreamProxy relays upstream monitoring calls verbatim.
type UpstreamProxy interface {
	// MonitoringHistory fetches the upstream trail for a work order.
	MonitoringHistory(ctx context.Context, token, woID string) (*warehouse.Passthrough, error)
	// SubmitMonitoring forwards a raw save payload to the upstream store.
	SubmitMonitoring(ctx context.Context, token string, body []byte) (*warehouse.Passthrough, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for auth, the cases listing, and the
// monitoring annotation store. It depends on abstract service interfaces to
// keep transport concerns separate from business logic.
type Handlers struct {
	auth    AuthClient
	cases   CasesLister
	monSvc  MonitoringService
	proxy   UpstreamProxy
	cookies session.CookieWriter

	sessionTTL time.Duration // fallback cookie lifetime
	idemTTL    time.Duration // Idempotency-Key validity window
}

// New constructs a Handlers instance bound to the given services.
// sessionTTL is the cookie lifetime used when the bearer carries no usable
// expiry; idemTTL bounds how long an Idempotency-Key replays.
func New(auth AuthClient, lister CasesLister, mon MonitoringService, proxy UpstreamProxy, cookies session.CookieWriter, sessionTTL, idemTTL time.Duration) *Handlers {
	return &Handlers{
		auth:       auth,
		cases:      lister,
		monSvc:     mon,
		proxy:      proxy,
		cookies:    cookies,
		sessionTTL: sessionTTL,
		idemTTL:    idemTTL,
	}
}
