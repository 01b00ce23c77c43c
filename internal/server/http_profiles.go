package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vitrinelabs/vitrine/internal/events"
	"github.com/vitrinelabs/vitrine/internal/model"
	"github.com/vitrinelabs/vitrine/internal/profile"
)

// fidFromPath parses and validates the {fid} path segment. On failure
// it writes a 400 response and reports ok=false.
func fidFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	fid, err := strconv.ParseInt(r.PathValue("fid"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "fid must be a decimal integer")
		return 0, false
	}
	if err := model.ValidateFID(fid); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return fid, true
}

// writeSaveResult maps a façade SaveResult onto an HTTP response.
// Gate denials are 403 so the front-end can route the user to the mint
// flow; store soft-failures are 503.
func writeSaveResult(w http.ResponseWriter, res profile.SaveResult) {
	switch {
	case res.Success:
		writeJSON(w, http.StatusOK, res)
	case res.Error == profile.ReasonNotMinted:
		writeJSON(w, http.StatusForbidden, res)
	case res.Error == profile.ReasonSaveFailed:
		writeJSON(w, http.StatusServiceUnavailable, res)
	default:
		writeJSON(w, http.StatusBadRequest, res)
	}
}

// handleLoadProfile handles GET /v1/profiles/{fid}.
func (s *ProfileServer) handleLoadProfile(w http.ResponseWriter, r *http.Request) {
	fid, ok := fidFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.facade.LoadPreferences(r.Context(), fid))
}

// handleSavePreferences handles PUT /v1/profiles/{fid}/preferences.
// The body is a whole preferences record; any updatedAt in it is
// ignored.
func (s *ProfileServer) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	fid, ok := fidFromPath(w, r)
	if !ok {
		return
	}

	var rec model.PreferencesRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res := s.facade.SavePreferences(r.Context(), fid, rec)
	if res.Success {
		s.publish(r.Context(), events.TopicPreferencesUpdated, events.PreferencesUpdated{
			EventID: newEventID(),
			FID:     fid,
		})
	}
	writeSaveResult(w, res)
}

// handleUpdateFields handles PATCH /v1/profiles/{fid}/preferences.
// The body is a field-subset patch; unmentioned fields are preserved.
func (s *ProfileServer) handleUpdateFields(w http.ResponseWriter, r *http.Request) {
	fid, ok := fidFromPath(w, r)
	if !ok {
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var patch model.PreferencesPatch
	if err := dec.Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if patch.IsZero() {
		writeError(w, http.StatusBadRequest, "patch names no fields")
		return
	}

	res := s.facade.UpdateFields(r.Context(), fid, &patch)
	if res.Success {
		s.publish(r.Context(), events.TopicPreferencesUpdated, events.PreferencesUpdated{
			EventID: newEventID(),
			FID:     fid,
			Fields:  patch.Fields(),
		})
	}
	writeSaveResult(w, res)
}

// updateFieldRequest is the JSON body for PUT
// /v1/profiles/{fid}/preferences/{field}.
type updateFieldRequest struct {
	Value json.RawMessage `json:"value"`
}

// handleUpdateField handles PUT /v1/profiles/{fid}/preferences/{field}.
func (s *ProfileServer) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	fid, ok := fidFromPath(w, r)
	if !ok {
		return
	}
	field := r.PathValue("field")

	var req updateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Value) == 0 {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	res := s.facade.UpdateField(r.Context(), fid, field, req.Value)
	if res.Success {
		s.publish(r.Context(), events.TopicPreferencesUpdated, events.PreferencesUpdated{
			EventID: newEventID(),
			FID:     fid,
			Fields:  []string{field},
		})
	}
	writeSaveResult(w, res)
}

// handleClearPreferences handles DELETE /v1/profiles/{fid}/preferences.
func (s *ProfileServer) handleClearPreferences(w http.ResponseWriter, r *http.Request) {
	fid, ok := fidFromPath(w, r)
	if !ok {
		return
	}

	res := s.facade.ClearPreferences(r.Context(), fid)
	if res.Success {
		s.publish(r.Context(), events.TopicPreferencesDeleted, events.PreferencesDeleted{
			EventID: newEventID(),
			FID:     fid,
		})
	}
	writeSaveResult(w, res)
}

// recordMintRequest is the JSON body for POST /v1/profiles/{fid}/mint.
type recordMintRequest struct {
	TxHash string `json:"txHash"`
}

// handleRecordMint handles POST /v1/profiles/{fid}/mint.
func (s *ProfileServer) handleRecordMint(w http.ResponseWriter, r *http.Request) {
	fid, ok := fidFromPath(w, r)
	if !ok {
		return
	}

	// An empty body is allowed: the tx hash is optional audit data.
	var req recordMintRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	res := s.facade.RecordEntitlement(r.Context(), fid, req.TxHash)
	if res.Success {
		status := s.facade.CheckEntitlement(r.Context(), fid)
		s.publish(r.Context(), events.TopicMintGranted, events.MintGranted{
			EventID: newEventID(),
			Record:  status.Record,
		})
	}
	writeSaveResult(w, res)
}

// handleCheckMint handles GET /v1/profiles/{fid}/mint.
func (s *ProfileServer) handleCheckMint(w http.ResponseWriter, r *http.Request) {
	fid, ok := fidFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.facade.CheckEntitlement(r.Context(), fid))
}
