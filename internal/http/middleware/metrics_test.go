package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountersAndPathFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())

	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "hello")
	})
	// 204 without a body leaves c.Writer.Size() at -1, so the size
	// histogram must be skipped on this route.
	r.GET("/statusonly", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// Collectors are package-global, so diff against the current values
	// instead of asserting absolutes.
	baseOK := testutil.ToFloat64(reqCount.WithLabelValues("GET", "/ok", "200"))
	base404 := testutil.ToFloat64(reqCount.WithLabelValues("GET", "/does-not-exist", "404"))

	for _, tc := range []struct {
		path string
		want int
	}{
		{"/ok", http.StatusOK},
		{"/does-not-exist", http.StatusNotFound},
		{"/statusonly", http.StatusNoContent},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.want {
			t.Fatalf("GET %s -> %d; want %d", tc.path, w.Code, tc.want)
		}
	}

	if got := testutil.ToFloat64(reqCount.WithLabelValues("GET", "/ok", "200")); got != baseOK+1 {
		t.Fatalf("counter /ok 200 = %v; want %v", got, baseOK+1)
	}
	// Unmatched routes fall back to the raw URL path label.
	if got := testutil.ToFloat64(reqCount.WithLabelValues("GET", "/does-not-exist", "404")); got != base404+1 {
		t.Fatalf("counter 404 fallback = %v; want %v", got, base404+1)
	}
	if inFlight := testutil.ToFloat64(reqInFlight); inFlight != 0 {
		t.Fatalf("reqInFlight = %v; want 0", inFlight)
	}
}

func Test_routeLabel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	var matched, unmatched string
	r.GET("/items/:id", func(c *gin.Context) {
		matched = routeLabel(c)
		c.Status(http.StatusOK)
	})
	r.NoRoute(func(c *gin.Context) {
		unmatched = routeLabel(c)
		c.Status(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	if matched != "/items/:id" {
		t.Fatalf("matched route label = %q; want /items/:id", matched)
	}
	if unmatched != "/nope" {
		t.Fatalf("fallback route label = %q; want /nope", unmatched)
	}
}
