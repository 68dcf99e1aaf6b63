package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieWriter issues and clears the session cookie pair with one shared
// policy: HttpOnly, SameSite=Lax, path "/", Secure when running behind TLS
// in production.
type CookieWriter struct {
	Secure bool
}

// Set writes both cookies with the shared max-age.
func (w CookieWriter) Set(c *gin.Context, guardToken, bearerToken string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	w.write(c, GuardCookie, guardToken, maxAge)
	w.write(c, BearerCookie, bearerToken, maxAge)
}

// Clear expires both cookies. Idempotent: clearing an absent cookie is fine.
func (w CookieWriter) Clear(c *gin.Context) {
	w.write(c, GuardCookie, "", 0)
	w.write(c, BearerCookie, "", 0)
}

func (w CookieWriter) write(c *gin.Context, name, value string, maxAge int) {
	if maxAge <= 0 {
		// MaxAge: -1 serializes as Max-Age=0, deleting the cookie.
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   w.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
