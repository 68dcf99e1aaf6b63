// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the session gate for endpoints that call the upstream
// warehouse API on the user's behalf. The session lives entirely in two
// cookies (see the session package); this middleware only checks that the
// bearer cookie is present, stashes it for handlers, and derives a user
// identity from the guard cookie so rate limiting can key on the user rather
// than the client IP. The upstream remains the authority on token validity:
// a stale bearer is only discovered when the upstream rejects it.
package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasetyow/wo-ops-backend/internal/session"
)

// ctxKeyBearer is the Gin context key holding the upstream bearer token.
const ctxKeyBearer = "session.bearer"

// BearerFrom returns the upstream bearer token stashed by SessionAuth.
func BearerFrom(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyBearer)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// SessionAuth aborts with 401 when the bearer cookie is absent. On success it
// stores the token under ctxKeyBearer and, when the guard cookie decodes, the
// user identity under "userID" (the key KeyByUserOrIP reads).
//
// An expired guard still yields an identity: the request will fail at the
// upstream anyway, and keeping the user key stable avoids punishing the IP
// bucket for one user's stale session.
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(session.BearerCookie)
		if err != nil || tok == "" {
			abortEnvelope(c, http.StatusUnauthorized, "unauthorized", "login required")
			return
		}
		c.Set(ctxKeyBearer, tok)

		if guard, err := c.Cookie(session.GuardCookie); err == nil && guard != "" {
			p, derr := session.Decode(guard)
			if derr == nil || errors.Is(derr, session.ErrExpired) {
				if p.Sub != nil {
					c.Set("userID", fmt.Sprint(p.Sub))
				}
			}
		}

		c.Next()
	}
}
