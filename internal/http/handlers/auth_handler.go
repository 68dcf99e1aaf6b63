// Auth HTTP handlers.
//
// This file exposes the session endpoints:
//   - POST /auth/login   (exchange credentials upstream, set session cookies)
//   - POST /auth/logout  (clear session cookies)
//   - GET  /auth/me      (report the session state from the guard cookie)
//
// The session is cookie-only: the guard cookie tells the UI who is logged in,
// the bearer cookie authorizes upstream calls. Both cookies share one
// lifetime derived from the bearer token's expiry claim.
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prasetyow/wo-ops-backend/internal/http/middleware"
	"github.com/prasetyow/wo-ops-backend/internal/session"
	"github.com/prasetyow/wo-ops-backend/internal/warehouse"
)

//
// DTOs
//

// LoginRequest is the JSON payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" example:"budi"`
	Password string `json:"password" example:"secret"`
}

// LoginResponse confirms a successful login with the upstream profile.
type LoginResponse struct {
	Success bool           `json:"success"`
	User    warehouse.User `json:"user"`
}

// MeResponse reports the session state derived from the guard cookie.
type MeResponse struct {
	Authenticated bool   `json:"authenticated"`
	Reason        string `json:"reason,omitempty" example:"expired"`
	User          *MeUser `json:"user,omitempty"`
}

// MeUser is the identity snapshot carried by the guard cookie.
type MeUser struct {
	Sub  any    `json:"sub"`
	Name string `json:"name"`
}

//
// Handlers
//

// Login godoc
// @ID          login
// @Summary     Log in against the warehouse API
// @Description Forwards credentials upstream and, on success, sets the session cookie pair.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.LoginResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing credentials or upstream rejection"
// @Failure     401  {object}  handlers.ErrorResponse  "Wrong credentials"
// @Failure     500  {object}  handlers.ErrorResponse  "Upstream contract violation"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		// Rejected here; the upstream is never contacted without credentials.
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username and password are required")
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		var ae *warehouse.AuthError
		if errors.As(err, &ae) {
			code := ErrCodeLoginFailed
			if ae.Status == http.StatusUnauthorized {
				code = ErrCodeUnauthorized
			}
			if ae.Status >= http.StatusInternalServerError {
				code = ErrCodeUpstreamError
			}
			fail(c, ae.Status, code, ae.Message)
			return
		}
		fail(c, http.StatusBadGateway, ErrCodeUpstreamError, "upstream login unreachable")
		return
	}

	sub := any(req.Username)
	if res.User.ID != nil {
		sub = *res.User.ID
	}
	name := res.User.Name
	if name == "" {
		name = req.Username
	}
	guard, err := session.Encode(session.GuardPayload{
		Sub:  sub,
		Name: name,
		Iat:  time.Now().Unix(),
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not issue session")
		return
	}

	ttl := session.TTLFromBearer(res.AccessToken, h.sessionTTL)
	h.cookies.Set(c, guard, res.AccessToken, ttl)

	ok(c, http.StatusOK, LoginResponse{Success: true, User: res.User})
}

// Logout godoc
// @ID          logout
// @Summary     Log out
// @Description Clears both session cookies. Always succeeds, even without a session.
// @Tags        Auth
// @Produce     json
//
// @Success     204  {string} string "No Content"
// @Router      /auth/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	h.cookies.Clear(c)
	noContent(c)
}

// Me godoc
// @ID          me
// @Summary     Session state
// @Description Reports whether a session exists based on the guard cookie. Never 401s: an absent or expired session is a 200 with authenticated=false.
// @Tags        Auth
// @Produce     json
//
// @Success     200  {object}  handlers.MeResponse
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	guard, err := c.Cookie(session.GuardCookie)
	if err != nil || guard == "" {
		ok(c, http.StatusOK, MeResponse{Authenticated: false})
		return
	}

	p, derr := session.Decode(guard)
	switch {
	case derr == nil:
		ok(c, http.StatusOK, MeResponse{
			Authenticated: true,
			User:          &MeUser{Sub: p.Sub, Name: p.Name},
		})
	case errors.Is(derr, session.ErrExpired):
		ok(c, http.StatusOK, MeResponse{Authenticated: false, Reason: "expired"})
	default:
		lg := middleware.LoggerFrom(c)
		lg.Warn().Err(derr).Msg("undecodable guard cookie")
		ok(c, http.StatusOK, MeResponse{Authenticated: false, Reason: "invalid"})
	}
}
