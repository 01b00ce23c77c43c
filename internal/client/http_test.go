package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vitrinelabs/vitrine/internal/model"
	"github.com/vitrinelabs/vitrine/internal/profile"
)

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	// captured from the request
	method      string
	path        string
	query       string
	body        string
	contentType string
	authHeader  string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.RawQuery
	h.contentType = r.Header.Get("Content-Type")
	h.authHeader = r.Header.Get("Authorization")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// newTestClient creates an HTTPClient pointed at a test server with the given handler.
func newTestClient(h http.Handler) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := NewHTTPClient(srv.URL, "")
	return c, srv
}

func TestHTTPClient_LoadProfile(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"entitled": true,
			"preferences": {
				"colorTheme": "dark",
				"font": "mono",
				"updatedAt": "2026-01-15T10:00:00Z"
			}
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	res, err := c.LoadProfile(context.Background(), 12345)
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}

	if h.method != http.MethodGet {
		t.Errorf("method = %q, want GET", h.method)
	}
	if h.path != "/v1/profiles/12345" {
		t.Errorf("path = %q, want /v1/profiles/12345", h.path)
	}
	if !res.Entitled {
		t.Error("Entitled = false, want true")
	}
	if res.Preferences == nil || res.Preferences.ColorTheme != "dark" {
		t.Errorf("Preferences = %+v, want colorTheme dark", res.Preferences)
	}
}

func TestHTTPClient_SavePreferences(t *testing.T) {
	h := &testHandler{responseBody: `{"success": true}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	res, err := c.SavePreferences(context.Background(), 7, &model.PreferencesRecord{
		ColorTheme: "dark",
		Font:       "serif",
	})
	if err != nil {
		t.Fatalf("SavePreferences() error = %v", err)
	}

	if h.method != http.MethodPut {
		t.Errorf("method = %q, want PUT", h.method)
	}
	if h.path != "/v1/profiles/7/preferences" {
		t.Errorf("path = %q", h.path)
	}
	if h.contentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", h.contentType)
	}
	if !strings.Contains(h.body, `"colorTheme":"dark"`) {
		t.Errorf("body = %s, missing colorTheme", h.body)
	}
	if !res.Success {
		t.Error("Success = false, want true")
	}
}

func TestHTTPClient_SavePreferencesDenied(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusForbidden,
		responseBody: `{"success": false, "error": "Only minted users can save preferences"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	res, err := c.SavePreferences(context.Background(), 7, &model.PreferencesRecord{})
	if err != nil {
		t.Fatalf("SavePreferences() error = %v, want gate denial as result", err)
	}
	if res.Success {
		t.Error("Success = true, want false")
	}
	if res.Error != profile.ReasonNotMinted {
		t.Errorf("Error = %q, want %q", res.Error, profile.ReasonNotMinted)
	}
}

func TestHTTPClient_UpdatePreferences(t *testing.T) {
	h := &testHandler{responseBody: `{"success": true}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	font := "mono"
	_, err := c.UpdatePreferences(context.Background(), 7, &model.PreferencesPatch{Font: &font})
	if err != nil {
		t.Fatalf("UpdatePreferences() error = %v", err)
	}

	if h.method != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", h.method)
	}
	if !strings.Contains(h.body, `"font":"mono"`) {
		t.Errorf("body = %s, missing font", h.body)
	}
	if strings.Contains(h.body, "colorTheme") {
		t.Errorf("body = %s, unset fields must be omitted", h.body)
	}
}

func TestHTTPClient_UpdatePreferenceField(t *testing.T) {
	h := &testHandler{responseBody: `{"success": true}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.UpdatePreferenceField(context.Background(), 7, "colorTheme", json.RawMessage(`"solarized"`))
	if err != nil {
		t.Fatalf("UpdatePreferenceField() error = %v", err)
	}

	if h.method != http.MethodPut {
		t.Errorf("method = %q, want PUT", h.method)
	}
	if h.path != "/v1/profiles/7/preferences/colorTheme" {
		t.Errorf("path = %q", h.path)
	}
	if !strings.Contains(h.body, `"value":"solarized"`) {
		t.Errorf("body = %s", h.body)
	}
}

func TestHTTPClient_ClearPreferences(t *testing.T) {
	h := &testHandler{responseBody: `{"success": true}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	res, err := c.ClearPreferences(context.Background(), 7)
	if err != nil {
		t.Fatalf("ClearPreferences() error = %v", err)
	}
	if h.method != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", h.method)
	}
	if !res.Success {
		t.Error("Success = false, want true")
	}
}

func TestHTTPClient_RecordMint(t *testing.T) {
	h := &testHandler{responseBody: `{"success": true}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.RecordMint(context.Background(), 12345, "0xabc")
	if err != nil {
		t.Fatalf("RecordMint() error = %v", err)
	}

	if h.method != http.MethodPost {
		t.Errorf("method = %q, want POST", h.method)
	}
	if h.path != "/v1/profiles/12345/mint" {
		t.Errorf("path = %q", h.path)
	}
	if !strings.Contains(h.body, `"txHash":"0xabc"`) {
		t.Errorf("body = %s", h.body)
	}
}

func TestHTTPClient_CheckMint(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"entitled": true,
			"record": {"fid": 12345, "grantedAt": "2026-01-15T10:00:00Z", "txHash": "0xabc"}
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	status, err := c.CheckMint(context.Background(), 12345)
	if err != nil {
		t.Fatalf("CheckMint() error = %v", err)
	}
	if !status.Entitled {
		t.Error("Entitled = false, want true")
	}
	if status.Record == nil || status.Record.FID != 12345 {
		t.Errorf("Record = %+v", status.Record)
	}
}

func TestHTTPClient_Health(t *testing.T) {
	h := &testHandler{responseBody: `{"status": "ok", "store": "available"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if resp.Status != "ok" || resp.Store != "available" {
		t.Errorf("Health() = %+v", resp)
	}
}

func TestHTTPClient_AuthHeader(t *testing.T) {
	h := &testHandler{responseBody: `{"status": "ok", "store": "available"}`}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "secret")
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if h.authHeader != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", h.authHeader)
	}
}

func TestHTTPClient_APIError(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusBadRequest,
		responseBody: `{"error": "fid must be a decimal integer"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.LoadProfile(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Message, "decimal integer") {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
