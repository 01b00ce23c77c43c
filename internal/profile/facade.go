// Package profile is the boundary the UI layer calls. It enforces the
// mint-entitlement gate in front of every preferences operation and
// presents plain result records instead of errors.
package profile

import (
	"context"
	"encoding/json"

	"github.com/vitrinelabs/vitrine/internal/model"
	"github.com/vitrinelabs/vitrine/internal/prefs"
)

// ReasonNotMinted is the stable, user-visible reason returned when a
// non-entitled fid attempts to persist or clear preferences.
const ReasonNotMinted = "Only minted users can save preferences"

// ReasonSaveFailed is returned when the entitlement gate passes but the
// store does not acknowledge the write (unavailable or faulted).
const ReasonSaveFailed = "Preferences could not be saved"

// LoadResult is the answer to a profile load: whether the fid is
// entitled, and its stored preferences when it is. A nil Preferences
// with Entitled true means "entitled but nothing saved yet".
type LoadResult struct {
	Entitled    bool                     `json:"entitled"`
	Preferences *model.PreferencesRecord `json:"preferences,omitempty"`
}

// SaveResult is the answer to any gated mutation.
type SaveResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// EntitlementStatus is the answer to an entitlement check.
type EntitlementStatus struct {
	Entitled bool                     `json:"entitled"`
	Record   *model.EntitlementRecord `json:"record,omitempty"`
}

// Facade wires the entitlement gate in front of the preferences
// service. Within any single call, the entitlement check strictly
// precedes any access to the preferences key; a non-entitled fid never
// causes a preferences read or write.
type Facade struct {
	svc *prefs.Service
}

// New returns a Facade over the given service.
func New(svc *prefs.Service) *Facade {
	return &Facade{svc: svc}
}

// LoadPreferences returns the fid's entitlement state and, only when
// entitled, its stored preferences. Non-entitled fids are defined to
// have no preferences regardless of what may physically remain in the
// store from an earlier entitlement, so no read is attempted for them.
func (f *Facade) LoadPreferences(ctx context.Context, fid int64) LoadResult {
	if !f.svc.IsEntitled(ctx, fid) {
		return LoadResult{Entitled: false}
	}
	return LoadResult{
		Entitled:    true,
		Preferences: f.svc.GetPreferences(ctx, fid),
	}
}

// SavePreferences replaces the fid's preferences record whole, after
// the entitlement gate.
func (f *Facade) SavePreferences(ctx context.Context, fid int64, rec model.PreferencesRecord) SaveResult {
	if !f.svc.IsEntitled(ctx, fid) {
		return SaveResult{Success: false, Error: ReasonNotMinted}
	}
	if !f.svc.SetPreferences(ctx, fid, rec) {
		return SaveResult{Success: false, Error: ReasonSaveFailed}
	}
	return SaveResult{Success: true}
}

// UpdateField merges a single named field into the fid's preferences,
// after the entitlement gate. The field is named by its JSON key;
// unknown fields fail the call.
func (f *Facade) UpdateField(ctx context.Context, fid int64, field string, value json.RawMessage) SaveResult {
	if !f.svc.IsEntitled(ctx, fid) {
		return SaveResult{Success: false, Error: ReasonNotMinted}
	}
	patch, err := model.PatchForField(field, value)
	if err != nil {
		return SaveResult{Success: false, Error: err.Error()}
	}
	if !f.svc.MergePreferences(ctx, fid, patch) {
		return SaveResult{Success: false, Error: ReasonSaveFailed}
	}
	return SaveResult{Success: true}
}

// UpdateFields merges a field-subset patch into the fid's preferences,
// after the entitlement gate. Fields not named by the patch are
// preserved.
func (f *Facade) UpdateFields(ctx context.Context, fid int64, patch *model.PreferencesPatch) SaveResult {
	if !f.svc.IsEntitled(ctx, fid) {
		return SaveResult{Success: false, Error: ReasonNotMinted}
	}
	if !f.svc.MergePreferences(ctx, fid, patch) {
		return SaveResult{Success: false, Error: ReasonSaveFailed}
	}
	return SaveResult{Success: true}
}

// ClearPreferences deletes the fid's preferences record, after the
// entitlement gate. The entitlement record itself is never deleted.
func (f *Facade) ClearPreferences(ctx context.Context, fid int64) SaveResult {
	if !f.svc.IsEntitled(ctx, fid) {
		return SaveResult{Success: false, Error: ReasonNotMinted}
	}
	if !f.svc.DeletePreferences(ctx, fid) {
		return SaveResult{Success: false, Error: ReasonSaveFailed}
	}
	return SaveResult{Success: true}
}

// RecordEntitlement establishes (or refreshes) the fid's mint
// entitlement. This is the operation that opens the gate, so it is
// itself ungated.
func (f *Facade) RecordEntitlement(ctx context.Context, fid int64, txHash string) SaveResult {
	if !f.svc.GrantEntitlement(ctx, fid, txHash) {
		return SaveResult{Success: false, Error: ReasonSaveFailed}
	}
	return SaveResult{Success: true}
}

// CheckEntitlement reports the fid's entitlement state. Pass-through,
// no gating.
func (f *Facade) CheckEntitlement(ctx context.Context, fid int64) EntitlementStatus {
	rec := f.svc.GetEntitlement(ctx, fid)
	return EntitlementStatus{Entitled: rec != nil, Record: rec}
}
