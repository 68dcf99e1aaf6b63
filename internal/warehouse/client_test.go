package warehouse

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, casesPath string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, casesPath, 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestNew_RejectsRelativeBase(t *testing.T) {
	if _, err := New("not-a-url", "/x", time.Second); err == nil {
		t.Fatalf("expected error for relative base")
	}
	if _, err := New("://bad", "/x", time.Second); err == nil {
		t.Fatalf("expected error for unparseable base")
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct{ base, add, want string }{
		{"", "/workorder/outstanding/itr", "/workorder/outstanding/itr"},
		{"/api/", "/v2", "/api/v2"},
		{"/api", "v2", "/api/v2"},
		{"/api/", "v2", "/api/v2"},
	}
	for _, tc := range tests {
		if got := joinPath(tc.base, tc.add); got != tc.want {
			t.Fatalf("joinPath(%q,%q) = %q, want %q", tc.base, tc.add, got, tc.want)
		}
	}
}

func TestLogin_Success(t *testing.T) {
	var gotBody map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"accessToken": "tok-123",
			"user":        map[string]any{"id": 7, "username": "budi", "name": "Budi"},
		})
	}, "/cases")

	res, err := c.Login(context.Background(), "budi", "rahasia")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotBody["username"] != "budi" || gotBody["password"] != "rahasia" {
		t.Fatalf("forwarded credentials: %v", gotBody)
	}
	if res.AccessToken != "tok-123" || res.User.Username != "budi" {
		t.Fatalf("result: %+v", res)
	}
	if res.User.ID == nil || *res.User.ID != 7 {
		t.Fatalf("user id: %v", res.User.ID)
	}
}

func TestLogin_Upstream401(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "wrong password"})
	}, "/cases")

	_, err := c.Login(context.Background(), "budi", "salah")
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if ae.Status != http.StatusUnauthorized || ae.UpstreamStatus != http.StatusUnauthorized {
		t.Fatalf("status mapping: %+v", ae)
	}
	if ae.Message != "wrong password" {
		t.Fatalf("message: %q", ae.Message)
	}
}

func TestLogin_SuccessFalseOn200(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "account locked"})
	}, "/cases")

	_, err := c.Login(context.Background(), "a", "b")
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	// A 200 with success=false maps to a 400 for the caller.
	if ae.Status != http.StatusBadRequest {
		t.Fatalf("status: %d", ae.Status)
	}
}

func TestLogin_MissingAccessToken(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}, "/cases")

	_, err := c.Login(context.Background(), "a", "b")
	var ae *AuthError
	if !errors.As(err, &ae) || ae.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500 AuthError, got %v", err)
	}
}

func TestFetchOutstanding_ForwardsFiltersAndToken(t *testing.T) {
	var gotAuth string
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/workorder/outstanding/itr" {
			t.Errorf("path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[{"CASEID":"WO-1"}]}`))
	}, "/workorder/outstanding/itr")

	body, attempted, err := c.FetchOutstanding(context.Background(), "tok", OutstandingFilters{
		CaseID:     "WO-1",
		AgeingType: "ALL", // must be dropped
		Site:       "JKT",
	})
	if err != nil {
		t.Fatalf("FetchOutstanding: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("auth header: %q", gotAuth)
	}
	if gotQuery.Get("caseid") != "WO-1" || gotQuery.Get("site") != "JKT" {
		t.Fatalf("query: %v", gotQuery)
	}
	if gotQuery.Has("ageingtype") {
		t.Fatalf("ALL filter must not be forwarded: %v", gotQuery)
	}
	if len(body) == 0 || attempted == "" {
		t.Fatalf("body/url missing")
	}
}

func TestFetchOutstanding_Unauthorized(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "/cases")

	_, _, err := c.FetchOutstanding(context.Background(), "stale", OutstandingFilters{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestFetchOutstanding_UpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"oops":true}`))
	}, "/cases")

	_, attempted, err := c.FetchOutstanding(context.Background(), "tok", OutstandingFilters{})
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusBadGateway || ue.URL != attempted {
		t.Fatalf("upstream error fields: %+v", ue)
	}
	body, ok := ue.Body.(map[string]any)
	if !ok || body["oops"] != true {
		t.Fatalf("body should be parsed JSON: %#v", ue.Body)
	}
}

func TestMonitoringHistory_Passthrough(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/workorder/monitoring/WO%2F9/history" {
			t.Errorf("woID must be path-escaped, got %s", r.URL.EscapedPath())
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"rows":[]}`))
	}, "/cases")

	pt, err := c.MonitoringHistory(context.Background(), "tok", "WO/9")
	if err != nil {
		t.Fatalf("MonitoringHistory: %v", err)
	}
	// Verbatim relay: even a 418 goes straight through.
	if pt.Status != http.StatusTeapot || string(pt.Body) != `{"rows":[]}` {
		t.Fatalf("passthrough: %+v", pt)
	}
	if pt.ContentType != "application/json; charset=utf-8" {
		t.Fatalf("content type: %q", pt.ContentType)
	}
}

func TestSubmitMonitoring_Passthrough(t *testing.T) {
	var gotBody string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(b)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}, "/cases")

	pt, err := c.SubmitMonitoring(context.Background(), "tok", []byte(`{"woId":"WO-1"}`))
	if err != nil {
		t.Fatalf("SubmitMonitoring: %v", err)
	}
	if pt.Status != http.StatusCreated || gotBody != `{"woId":"WO-1"}` {
		t.Fatalf("relay: status=%d body=%q", pt.Status, gotBody)
	}
}
