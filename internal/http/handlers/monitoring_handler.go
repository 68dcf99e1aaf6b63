// Monitoring HTTP handlers.
//
// This file exposes the annotation store endpoints:
//   - GET  /pg/wo-monitoring/{woId}               (latest local annotation)
//   - GET  /pg/wo-monitoring/{woId}/local-history (full local trail)
//   - POST /pg/wo-monitoring                      (validated save, idempotent)
//   - GET  /pg/wo-monitoring/{woId}/history       (upstream trail, relayed verbatim)
//   - POST /wo/monitoring                         (upstream save, relayed verbatim)
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// save exists for the same (woId, key), the handler replays the stored row
// and sets `Idempotency-Replayed: true` instead of appending a duplicate.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prasetyow/wo-ops-backend/internal/domain"
	"github.com/prasetyow/wo-ops-backend/internal/http/middleware"
	"github.com/prasetyow/wo-ops-backend/internal/repo"
	"github.com/prasetyow/wo-ops-backend/internal/services"
)

// middlewareGetIdempotencyKey aliases the middleware accessor so handlers can
// be tested with a plain context.
var middlewareGetIdempotencyKey = middleware.GetIdempotencyKey

// LocalHistoryResponse wraps the local annotation trail for a work order.
type LocalHistoryResponse struct {
	WoID    string                    `json:"woId"`
	History []domain.MonitoringRecord `json:"history"`
}

// GetMonitoring godoc
// @ID          getMonitoring
// @Summary     Latest annotation for a work order
// @Description Returns the newest locally stored annotation row for the work order, or {"data":null} when it has never been annotated.
// @Tags        Monitoring
// @Produce     json
//
// @Param       woId  path  string  true  "Work order id"  example(WO-2024-001)
//
// @Success     200  {object}  domain.MonitoringRecord  "Latest row, or {\"data\":null} when none exists"
// @Failure     400  {object}  handlers.ErrorResponse  "Blank work order id"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pg/wo-monitoring/{woId} [get]
func (h *Handlers) GetMonitoring(c *gin.Context) {
	rec, err := h.monSvc.Latest(c.Request.Context(), c.Param("woId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWoIDRequired):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrMonitoringNotFound):
			// Never annotated is an expected state, not an error.
			ok(c, http.StatusOK, gin.H{"data": nil})
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, rec)
}

// GetLocalHistory godoc
// @ID          getLocalHistory
// @Summary     Local annotation trail
// @Description Returns every locally stored annotation row for the work order, newest first. An empty trail is a 200 with an empty array. Supports If-Modified-Since; responses carry Last-Modified when the trail is non-empty.
// @Tags        Monitoring
// @Produce     json
//
// @Param       woId               path    string  true   "Work order id"  example(WO-2024-001)
// @Param       If-Modified-Since  header  string  false  "RFC 1123 timestamp of the client's cached trail"
//
// @Success     200  {object}  handlers.LocalHistoryResponse
// @Success     304  {string}  string  "Trail unchanged since the given time"
// @Failure     400  {object}  handlers.ErrorResponse  "Blank work order id"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pg/wo-monitoring/{woId}/local-history [get]
func (h *Handlers) GetLocalHistory(c *gin.Context) {
	woID := c.Param("woId")
	ctx := c.Request.Context()

	// Conditional fetch: the stats query is a count plus one timestamp, so a
	// fresh client never pays for loading the full trail.
	if ims := c.GetHeader("If-Modified-Since"); ims != "" {
		if since, perr := http.ParseTime(ims); perr == nil {
			count, newest, serr := h.monSvc.HistoryStats(ctx, woID)
			// HTTP dates carry second resolution.
			if serr == nil && count > 0 && newest != nil && !newest.Truncate(time.Second).After(since) {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	trail, err := h.monSvc.History(ctx, woID)
	if err != nil {
		if errors.Is(err, services.ErrWoIDRequired) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if trail == nil {
		trail = []domain.MonitoringRecord{}
	}
	if len(trail) > 0 {
		c.Header("Last-Modified", trail[0].CreatedAt.UTC().Format(http.TimeFormat))
	}
	ok(c, http.StatusOK, LocalHistoryResponse{WoID: woID, History: trail})
}

// SaveMonitoring godoc
// @ID          saveMonitoring
// @Summary     Save an annotation
// @Description Validates and appends a new annotation row. Supports idempotency via the Idempotency-Key header (same woId+key → same stored row).
// @Tags        Monitoring
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    services.SubmitInput  true  "Annotation payload"
//
// @Success     201  {object}  domain.MonitoringRecord
// @Success     200  {object}  domain.MonitoringRecord  "Replayed earlier save"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid JSON, missing woId, or a field rule violation"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pg/wo-monitoring [post]
func (h *Handlers) SaveMonitoring(c *gin.Context) {
	ctx := c.Request.Context()

	var in services.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := middlewareGetIdempotencyKey(c)
	if idemKey != "" {
		if svc, okSvc := h.monSvc.(*services.MonitoringService); okSvc && svc.DB != nil {
			if rec, err := repo.GetIdempotency(ctx, svc.DB, in.WoID, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if prev, err2 := repo.GetMonitoring(ctx, svc.DB, rec.RecordID); err2 == nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, http.StatusOK, prev)
					return
				}
			}
		}
	}

	saved, err := h.monSvc.Submit(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWoIDRequired):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrWoIDTooLong),
			errors.Is(err, services.ErrProblemCauseTooLong),
			errors.Is(err, services.ErrActionPlanTooLong),
			errors.Is(err, services.ErrPicTooLong),
			errors.Is(err, services.ErrBadDateline),
			errors.Is(err, services.ErrBadProgressCategory):
			fail(c, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeSaveFailed, err.Error())
		}
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" {
		if svc, okSvc := h.monSvc.(*services.MonitoringService); okSvc && svc.DB != nil {
			_, _ = repo.CreateIdempotency(ctx, svc.DB, saved.WoID, idemKey, saved.ID, http.StatusCreated, h.idemTTL)
		}
	}

	ok(c, http.StatusCreated, saved)
}

// UpstreamHistory godoc
// @ID          upstreamHistory
// @Summary     Upstream monitoring history
// @Description Relays the upstream history for the work order verbatim: status, content type, and body come straight from the warehouse API. Requires a session.
// @Tags        Monitoring
// @Produce     json
//
// @Param       woId  path  string  true  "Work order id"  example(WO-2024-001)
//
// @Success     200  {string}  string  "Upstream body, relayed"
// @Failure     401  {object}  handlers.ErrorResponse  "No session"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream unreachable"
// @Router      /pg/wo-monitoring/{woId}/history [get]
func (h *Handlers) UpstreamHistory(c *gin.Context) {
	token, okTok := middleware.BearerFrom(c)
	if !okTok {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "login required")
		return
	}

	pt, err := h.proxy.MonitoringHistory(c.Request.Context(), token, c.Param("woId"))
	if err != nil {
		fail(c, http.StatusBadGateway, ErrCodeUpstreamError, "upstream history unreachable")
		return
	}
	c.Data(pt.Status, pt.ContentType, pt.Body)
}

// UpstreamSubmit godoc
// @ID          upstreamSubmit
// @Summary     Mirror a save to the upstream store
// @Description Forwards the raw save payload to the warehouse monitoring API and relays the answer verbatim. The local annotation store is not touched. Requires a session.
// @Tags        Monitoring
// @Accept      json
// @Produce     json
//
// @Param       body  body  services.SubmitInput  true  "Payload, forwarded as-is"
//
// @Success     200  {string}  string  "Upstream body, relayed"
// @Failure     401  {object}  handlers.ErrorResponse  "No session"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream unreachable"
// @Router      /wo/monitoring [post]
func (h *Handlers) UpstreamSubmit(c *gin.Context) {
	token, okTok := middleware.BearerFrom(c)
	if !okTok {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "login required")
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable body")
		return
	}

	pt, err := h.proxy.SubmitMonitoring(c.Request.Context(), token, body)
	if err != nil {
		fail(c, http.StatusBadGateway, ErrCodeUpstreamError, "upstream save unreachable")
		return
	}
	c.Data(pt.Status, pt.ContentType, pt.Body)
}
