// Package session implements the cookie-based session model: a lightweight
// app guard token plus the forwarded upstream bearer token.
//
// The guard token is not a signed JWT. It is a base64url-encoded JSON payload
// (subject, display name, issued-at, optional expiry) that only tells the UI
// "someone is logged in"; every upstream call is still authorized by the
// bearer cookie. Neither token is stored server-side: the cookie is the
// session store, and both cookies share one lifetime derived from the bearer
// token's expiry claim.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Cookie names shared by every handler that touches the session.
const (
	GuardCookie  = "token"  // app guard token
	BearerCookie = "wtoken" // upstream bearer token, forwarded as-is
)

// Lifetime policy for the shared cookie max-age.
const (
	MinTTL      = 5 * time.Minute
	MaxTTL      = 24 * time.Hour
	FallbackTTL = 8 * time.Hour

	// expiryBuffer shaves a minute off the bearer expiry so cookies never
	// outlive the token they carry.
	expiryBuffer = 60 * time.Second
)

// ErrExpired is returned by Decode when the guard payload carries an expiry
// claim in the past.
var ErrExpired = errors.New("session: guard token expired")

// GuardPayload is the JSON payload embedded in the guard cookie.
type GuardPayload struct {
	Sub  any    `json:"sub"` // upstream user id (number) or username (string)
	Name string `json:"name"`
	Iat  int64  `json:"iat"`
	Exp  int64  `json:"exp,omitempty"`
}

// Encode serializes the payload and base64url-encodes it (no padding, like
// the JWT convention the upstream uses).
func Encode(p GuardPayload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode parses a guard token back into its payload. It accepts both padded
// and unpadded base64url. A payload with exp in the past yields ErrExpired
// alongside the decoded payload so callers can distinguish "expired" from
// "garbage".
func Decode(token string) (GuardPayload, error) {
	var p GuardPayload
	b, err := decodeB64URL(token)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, err
	}
	if p.Exp > 0 && p.Exp < time.Now().Unix() {
		return p, ErrExpired
	}
	return p, nil
}

// TTLFromBearer derives the shared cookie lifetime from the bearer token's
// exp claim. The JWT payload is decoded without signature verification (the
// upstream remains the authority; we only need the timestamp). The result is
// clamped to [MinTTL, MaxTTL]; a missing or unparseable claim falls back to
// fallback.
func TTLFromBearer(token string, fallback time.Duration) time.Duration {
	if fallback <= 0 {
		fallback = FallbackTTL
	}
	if token == "" {
		return fallback
	}
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return fallback
	}
	raw, err := decodeB64URL(parts[1])
	if err != nil {
		return fallback
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(raw, &claims); err != nil || claims.Exp == 0 {
		return fallback
	}
	ttl := time.Until(time.Unix(claims.Exp, 0)) - expiryBuffer
	if ttl < MinTTL {
		return MinTTL
	}
	if ttl > MaxTTL {
		return MaxTTL
	}
	return ttl
}

// decodeB64URL decodes base64url input with or without padding.
func decodeB64URL(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "=")); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}
