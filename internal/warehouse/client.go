// Package warehouse is the HTTP client for the upstream warehouse API. It
// covers the three upstream surfaces this app fronts: login, the outstanding
// work-order listing, and the per-WO monitoring endpoints. The client passes
// upstream status codes and bodies through to callers; interpretation beyond
// "2xx or not" happens at the handler layer.
package warehouse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnauthorized signals an upstream 401: the forwarded bearer token was
// rejected and the caller must invalidate the session cookies.
var ErrUnauthorized = errors.New("warehouse: unauthorized")

// UpstreamError carries a non-2xx upstream response for diagnostics: the
// status, the attempted URL, and the body (parsed JSON when possible, raw
// text otherwise).
type UpstreamError struct {
	Status int
	URL    string
	Body   any
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("warehouse: upstream status %d from %s", e.Status, e.URL)
}

// User is the profile the upstream returns on a successful login.
type User struct {
	ID       *int64 `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// LoginResult is a successful login: the bearer token plus the profile.
type LoginResult struct {
	AccessToken string
	User        User
}

// AuthError is a failed upstream login. Status is the status this app should
// answer with (upstream 401 stays 401, every other failure maps to 400).
type AuthError struct {
	Status         int
	Message        string
	UpstreamStatus int
	UpstreamBody   any
	Endpoint       string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("warehouse: login failed (%d): %s", e.UpstreamStatus, e.Message)
}

// Passthrough is a verbatim upstream response relayed to the client.
type Passthrough struct {
	Status      int
	ContentType string
	Body        []byte
}

// Client issues authenticated calls against the warehouse API.
type Client struct {
	base      *url.URL
	casesPath string
	http      *http.Client
}

// New builds a Client for the given base URL. casesPath is the listing path
// joined onto the base; timeout bounds every upstream call.
func New(base, casesPath string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("warehouse: invalid base URL %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("warehouse: base URL %q must be absolute", base)
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base:      u,
		casesPath: casesPath,
		http:      &http.Client{Timeout: timeout},
	}, nil
}

// loginResponse mirrors the upstream login envelope.
type loginResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
	Message     string `json:"message"`
}

// Login forwards credentials to POST {base}/auth/login. It returns an
// *AuthError when the upstream rejects the credentials, reports failure, or
// omits the access token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	endpoint := c.resolve("/auth/login", nil)

	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("warehouse: login call to %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed loginResponse
	decodeOK := json.Unmarshal(raw, &parsed) == nil

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !decodeOK || !parsed.Success {
		msg := "Upstream login failed"
		if decodeOK && parsed.Message != "" {
			msg = parsed.Message
		}
		status := http.StatusBadRequest
		if resp.StatusCode == http.StatusUnauthorized {
			status = http.StatusUnauthorized
		}
		return nil, &AuthError{
			Status:         status,
			Message:        msg,
			UpstreamStatus: resp.StatusCode,
			UpstreamBody:   safeJSON(raw),
			Endpoint:       endpoint,
		}
	}

	if parsed.AccessToken == "" {
		return nil, &AuthError{
			Status:         http.StatusInternalServerError,
			Message:        "No accessToken in upstream response",
			UpstreamStatus: resp.StatusCode,
			UpstreamBody:   safeJSON(raw),
			Endpoint:       endpoint,
		}
	}

	return &LoginResult{AccessToken: parsed.AccessToken, User: parsed.User}, nil
}

// OutstandingFilters are the upstream-side listing filters, forwarded as
// query parameters only when present and not "ALL".
type OutstandingFilters struct {
	CaseID     string
	AgeingType string
	Site       string
}

// FetchOutstanding GETs the outstanding listing with the bearer token and
// returns the raw body plus the URL that was attempted. An upstream 401
// yields ErrUnauthorized; other non-2xx statuses yield *UpstreamError.
func (c *Client) FetchOutstanding(ctx context.Context, token string, f OutstandingFilters) (body []byte, attempted string, err error) {
	params := url.Values{}
	if f.CaseID != "" {
		params.Set("caseid", f.CaseID)
	}
	if f.AgeingType != "" && !strings.EqualFold(f.AgeingType, "ALL") {
		params.Set("ageingtype", f.AgeingType)
	}
	if f.Site != "" && !strings.EqualFold(f.Site, "ALL") {
		params.Set("site", f.Site)
	}
	attempted = c.resolve(c.casesPath, params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, attempted, nil)
	if err != nil {
		return nil, attempted, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, attempted, fmt.Errorf("warehouse: listing call to %s: %w", attempted, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, attempted, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, attempted, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, attempted, &UpstreamError{
			Status: resp.StatusCode,
			URL:    attempted,
			Body:   safeJSON(raw),
		}
	}
	return raw, attempted, nil
}

// MonitoringHistory proxies GET {base}/workorder/monitoring/{woID}/history
// verbatim: whatever status, content type, and body the upstream produced.
func (c *Client) MonitoringHistory(ctx context.Context, token, woID string) (*Passthrough, error) {
	// Built textually: url.URL.Path would re-escape the encoded segment.
	endpoint := strings.TrimSuffix(c.base.String(), "/") +
		"/workorder/monitoring/" + url.PathEscape(woID) + "/history"
	return c.relay(ctx, http.MethodGet, endpoint, token, nil, "")
}

// SubmitMonitoring proxies a raw save payload to the upstream monitoring
// endpoint, mirroring a local save to the system of record.
func (c *Client) SubmitMonitoring(ctx context.Context, token string, body []byte) (*Passthrough, error) {
	endpoint := c.resolve("/workorder/monitoring", nil)
	return c.relay(ctx, http.MethodPost, endpoint, token, body, "application/json")
}

// relay performs a passthrough call: no status interpretation at all.
func (c *Client) relay(ctx context.Context, method, endpoint, token string, body []byte, contentType string) (*Passthrough, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("warehouse: call to %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/json"
	}
	return &Passthrough{Status: resp.StatusCode, ContentType: ct, Body: raw}, nil
}

// resolve joins a path onto the base URL, tolerating stray slashes on either
// side, and attaches query parameters.
func (c *Client) resolve(path string, params url.Values) string {
	u := *c.base
	u.Path = joinPath(u.Path, path)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

// joinPath concatenates two URL path segments with exactly one slash.
func joinPath(base, add string) string {
	base = strings.TrimSuffix(base, "/")
	add = strings.TrimPrefix(add, "/")
	return base + "/" + add
}

// safeJSON decodes a body as JSON when possible, else keeps the raw text.
// Error payloads from the upstream are not reliably JSON.
func safeJSON(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
