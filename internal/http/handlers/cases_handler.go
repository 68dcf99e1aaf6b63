// Cases HTTP handlers.
//
// This file exposes the outstanding work-order listing:
//   - GET /cases  (fetch upstream rows, then filter/sort/paginate locally)
//
// The endpoint is session-gated: the bearer cookie authorizes the upstream
// call, and an upstream rejection resets the session cookies so the UI drops
// straight back to the login screen.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasetyow/wo-ops-backend/internal/cases"
	"github.com/prasetyow/wo-ops-backend/internal/http/middleware"
	"github.com/prasetyow/wo-ops-backend/internal/services"
	"github.com/prasetyow/wo-ops-backend/internal/utils"
	"github.com/prasetyow/wo-ops-backend/internal/warehouse"
)

// ListCasesResponse is one listing page. The diagnostics block is only
// attached when the caller asked for it with ?debug; the attempted upstream
// URL stays out of normal responses.
type ListCasesResponse struct {
	cases.Page
	Debug *services.ListDebug `json:"debug,omitempty"`
}

// firstQuery returns the first non-empty value among the given query names.
// The upstream filter parameters are documented camelCase, but older clients
// sent them lowercased.
func firstQuery(c *gin.Context, names ...string) string {
	for _, n := range names {
		if v := c.Query(n); v != "" {
			return v
		}
	}
	return ""
}

// ListCases godoc
// @ID          listCases
// @Summary     List outstanding work orders
// @Description Fetches the outstanding rows upstream, then filters, sorts, and paginates them locally. Requires a session.
// @Tags        Cases
// @Produce     json
//
// @Param       page       query  int     false "Page number (1-based)"            minimum(1) default(1)
// @Param       limit      query  int     false "Rows per page"                     default(50)
// @Param       q          query  string  false "Free-text needle across the text columns"
// @Param       brand      query  string  false "Brand substring filter"
// @Param       status     query  string  false "Exact status filter; ALL disables"
// @Param       ageBucket  query  string  false "Ageing bucket filter (0-30, 31-60, 61-120, +120, UNKNOWN); ALL disables"
// @Param       orderBy    query  string  false "Sort field (canonical row field name)" default(createdAt)
// @Param       orderDir   query  string  false "asc or desc"                       default(desc)
// @Param       caseId     query  string  false "Upstream case id filter"
// @Param       ageingType query  string  false "Upstream ageing type filter; ALL disables"
// @Param       site       query  string  false "Upstream site filter; ALL disables"
// @Param       debug      query  string  false "Attach the pipeline diagnostics block"
//
// @Success     200  {object}  handlers.ListCasesResponse
// @Failure     401  {object}  handlers.ErrorResponse  "No session, or the upstream rejected the token"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream unreachable; upstream non-2xx statuses are relayed as-is"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /cases [get]
func (h *Handlers) ListCases(c *gin.Context) {
	token, okTok := middleware.BearerFrom(c)
	if !okTok {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "login required")
		return
	}

	filters := warehouse.OutstandingFilters{
		CaseID:     firstQuery(c, "caseId", "caseid"),
		AgeingType: firstQuery(c, "ageingType", "ageingtype"),
		Site:       c.Query("site"),
	}
	query := cases.Query{
		Page:      utils.AtoiDefault(c.Query("page"), 1),
		Limit:     utils.AtoiDefault(c.Query("limit"), 50),
		Q:         c.Query("q"),
		Brand:     c.Query("brand"),
		Status:    c.Query("status"),
		AgeBucket: c.Query("ageBucket"),
		OrderBy:   c.Query("orderBy"),
		OrderDir:  c.Query("orderDir"),
	}

	res, err := h.cases.List(c.Request.Context(), token, filters, query)
	if err != nil {
		if errors.Is(err, warehouse.ErrUnauthorized) {
			// The stored bearer is stale; drop the session so the next
			// request starts from the login screen.
			h.cookies.Clear(c)
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "session expired")
			return
		}
		var ue *warehouse.UpstreamError
		if errors.As(err, &ue) {
			// The upstream status is relayed verbatim, with the attempted URL
			// and upstream body attached for diagnostics.
			c.AbortWithStatusJSON(ue.Status, gin.H{
				"request_id":   requestID(c),
				"code":         ErrCodeUpstreamError,
				"message":      fmt.Sprintf("upstream listing failed with status %d", ue.Status),
				"attemptedUrl": ue.URL,
				"upstreamBody": ue.Body,
			})
			return
		}
		fail(c, http.StatusBadGateway, ErrCodeListFailed, "upstream listing unreachable")
		return
	}

	resp := ListCasesResponse{Page: res.Page}
	if _, withDebug := c.GetQuery("debug"); withDebug {
		resp.Debug = &res.Debug
	}
	ok(c, http.StatusOK, resp)
}
