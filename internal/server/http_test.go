package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/vitrinelabs/vitrine/internal/kv"
	"github.com/vitrinelabs/vitrine/internal/model"
	"github.com/vitrinelabs/vitrine/internal/prefs"
	"github.com/vitrinelabs/vitrine/internal/profile"
)

// capturePublisher records every published event for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	topics []string
	events []any
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

func newTestServer(t *testing.T) (http.Handler, *capturePublisher) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kv.NewClientWithBackend(kv.NewMemory(), logger)
	svc := prefs.NewService(store)
	facade := profile.New(svc)
	pub := &capturePublisher{}
	srv := NewProfileServer(facade, store, pub)
	return srv.NewHTTPHandler(""), pub
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestSaveRejectedBeforeMint(t *testing.T) {
	h, pub := newTestServer(t)

	rec := doRequest(t, h, "PUT", "/v1/profiles/42/preferences",
		map[string]string{"colorTheme": "dark"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	res := decodeBody[profile.SaveResult](t, rec)
	if res.Success {
		t.Error("Success = true, want false")
	}
	if res.Error != profile.ReasonNotMinted {
		t.Errorf("Error = %q, want %q", res.Error, profile.ReasonNotMinted)
	}
	if got := pub.published(); len(got) != 0 {
		t.Errorf("published %v, want none", got)
	}
}

func TestMintThenSaveFlow(t *testing.T) {
	h, pub := newTestServer(t)

	// Record the mint.
	rec := doRequest(t, h, "POST", "/v1/profiles/12345/mint",
		map[string]string{"txHash": "0xabc"})
	if rec.Code != http.StatusOK {
		t.Fatalf("mint status = %d, want 200", rec.Code)
	}

	// Entitlement is now visible.
	rec = doRequest(t, h, "GET", "/v1/profiles/12345/mint", nil)
	status := decodeBody[profile.EntitlementStatus](t, rec)
	if !status.Entitled {
		t.Fatal("Entitled = false after mint")
	}
	if status.Record == nil || status.Record.TxHash != "0xabc" {
		t.Errorf("Record = %+v, want txHash 0xabc", status.Record)
	}

	// Save now succeeds.
	rec = doRequest(t, h, "PUT", "/v1/profiles/12345/preferences",
		model.PreferencesRecord{ColorTheme: "dark", Font: "mono"})
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d, want 200", rec.Code)
	}

	// Load returns what was saved.
	rec = doRequest(t, h, "GET", "/v1/profiles/12345", nil)
	load := decodeBody[profile.LoadResult](t, rec)
	if !load.Entitled {
		t.Error("Entitled = false, want true")
	}
	if load.Preferences == nil || load.Preferences.ColorTheme != "dark" {
		t.Errorf("Preferences = %+v, want colorTheme dark", load.Preferences)
	}
	if load.Preferences.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped")
	}

	want := []string{"vitrine.mint.granted", "vitrine.preferences.updated"}
	got := pub.published()
	if len(got) != len(want) {
		t.Fatalf("published %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("topic[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPatchPreservesOtherFields(t *testing.T) {
	h, _ := newTestServer(t)

	doRequest(t, h, "POST", "/v1/profiles/7/mint", nil)
	doRequest(t, h, "PUT", "/v1/profiles/7/preferences",
		model.PreferencesRecord{ColorTheme: "dark", Font: "serif"})

	rec := doRequest(t, h, "PATCH", "/v1/profiles/7/preferences",
		map[string]string{"font": "mono"})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, h, "GET", "/v1/profiles/7", nil)
	load := decodeBody[profile.LoadResult](t, rec)
	if load.Preferences.Font != "mono" {
		t.Errorf("Font = %q, want mono", load.Preferences.Font)
	}
	if load.Preferences.ColorTheme != "dark" {
		t.Errorf("ColorTheme = %q, want dark (preserved)", load.Preferences.ColorTheme)
	}
}

func TestPatchUnknownFieldRejected(t *testing.T) {
	h, _ := newTestServer(t)
	doRequest(t, h, "POST", "/v1/profiles/7/mint", nil)

	rec := doRequest(t, h, "PATCH", "/v1/profiles/7/preferences",
		map[string]string{"nonsense": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPatchEmptyRejected(t *testing.T) {
	h, _ := newTestServer(t)
	doRequest(t, h, "POST", "/v1/profiles/7/mint", nil)

	rec := doRequest(t, h, "PATCH", "/v1/profiles/7/preferences",
		map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateSingleField(t *testing.T) {
	h, pub := newTestServer(t)

	doRequest(t, h, "POST", "/v1/profiles/9/mint", nil)
	rec := doRequest(t, h, "PUT", "/v1/profiles/9/preferences/colorTheme",
		map[string]any{"value": "solarized"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, h, "GET", "/v1/profiles/9", nil)
	load := decodeBody[profile.LoadResult](t, rec)
	if load.Preferences == nil || load.Preferences.ColorTheme != "solarized" {
		t.Errorf("Preferences = %+v, want colorTheme solarized", load.Preferences)
	}

	topics := pub.published()
	if len(topics) != 2 || topics[1] != "vitrine.preferences.updated" {
		t.Errorf("published %v", topics)
	}
}

func TestUpdateUnknownFieldRejected(t *testing.T) {
	h, _ := newTestServer(t)
	doRequest(t, h, "POST", "/v1/profiles/9/mint", nil)

	rec := doRequest(t, h, "PUT", "/v1/profiles/9/preferences/updatedAt",
		map[string]any{"value": "2020-01-01T00:00:00Z"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestClearPreferences(t *testing.T) {
	h, pub := newTestServer(t)

	doRequest(t, h, "POST", "/v1/profiles/3/mint", nil)
	doRequest(t, h, "PUT", "/v1/profiles/3/preferences",
		model.PreferencesRecord{Bio: "hello"})

	rec := doRequest(t, h, "DELETE", "/v1/profiles/3/preferences", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, h, "GET", "/v1/profiles/3", nil)
	load := decodeBody[profile.LoadResult](t, rec)
	if !load.Entitled {
		t.Error("Entitled = false, want true (entitlement survives clear)")
	}
	if load.Preferences != nil {
		t.Errorf("Preferences = %+v, want nil", load.Preferences)
	}

	topics := pub.published()
	if topics[len(topics)-1] != "vitrine.preferences.deleted" {
		t.Errorf("last topic = %q, want vitrine.preferences.deleted", topics[len(topics)-1])
	}
}

func TestInvalidFID(t *testing.T) {
	h, _ := newTestServer(t)

	for _, path := range []string{
		"/v1/profiles/abc",
		"/v1/profiles/0",
		"/v1/profiles/-5",
	} {
		rec := doRequest(t, h, "GET", path, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, rec.Code)
		}
	}
}

func TestSaveInvalidJSON(t *testing.T) {
	h, _ := newTestServer(t)
	doRequest(t, h, "POST", "/v1/profiles/5/mint", nil)

	req := httptest.NewRequest("PUT", "/v1/profiles/5/preferences",
		bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestStoreUnavailableSoftFails(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kv.NewClient(nil, logger)
	svc := prefs.NewService(store)
	srv := NewProfileServer(profile.New(svc), store, nil)
	h := srv.NewHTTPHandler("")

	// Reads report absence, never an error status.
	rec := doRequest(t, h, "GET", "/v1/profiles/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("load status = %d, want 200", rec.Code)
	}
	load := decodeBody[profile.LoadResult](t, rec)
	if load.Entitled || load.Preferences != nil {
		t.Errorf("LoadResult = %+v, want empty", load)
	}

	// Mint cannot be acknowledged.
	rec = doRequest(t, h, "POST", "/v1/profiles/1/mint", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("mint status = %d, want 503", rec.Code)
	}

	// Health reports the degraded store.
	rec = doRequest(t, h, "GET", "/v1/health", nil)
	health := decodeBody[map[string]string](t, rec)
	if health["store"] != "unavailable" {
		t.Errorf("store = %q, want unavailable", health["store"])
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doRequest(t, h, "GET", "/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	health := decodeBody[map[string]string](t, rec)
	if health["status"] != "ok" || health["store"] != "available" {
		t.Errorf("health = %v", health)
	}
}
