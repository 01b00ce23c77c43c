package server

import (
	"encoding/json"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must
// include a valid Authorization: Bearer <token> header.
func (s *ProfileServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/profiles/{fid}", s.handleLoadProfile)
	mux.HandleFunc("PUT /v1/profiles/{fid}/preferences", s.handleSavePreferences)
	mux.HandleFunc("PATCH /v1/profiles/{fid}/preferences", s.handleUpdateFields)
	mux.HandleFunc("PUT /v1/profiles/{fid}/preferences/{field}", s.handleUpdateField)
	mux.HandleFunc("DELETE /v1/profiles/{fid}/preferences", s.handleClearPreferences)
	mux.HandleFunc("POST /v1/profiles/{fid}/mint", s.handleRecordMint)
	mux.HandleFunc("GET /v1/profiles/{fid}/mint", s.handleCheckMint)
	mux.HandleFunc("GET /v1/health", s.handleHealth)

	var handler http.Handler = mux
	handler = RequestIDMiddleware(handler)
	handler = LoggingMiddleware(handler)
	handler = RecoveryMiddleware(handler)
	return AuthMiddleware(authToken, handler)
}

// handleHealth handles GET /v1/health. Store reachability is reported
// here so operators can tell "no data" apart from "no store" — the
// serving path deliberately cannot.
func (s *ProfileServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	storeState := "available"
	if !s.store.Available() {
		storeState = "unavailable"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"store":  storeState,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
