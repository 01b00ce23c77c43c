// Package prefs implements the domain operations over the key-value
// store: mint entitlements and profile preferences, one record of each
// per fid.
package prefs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/vitrinelabs/vitrine/internal/kv"
	"github.com/vitrinelabs/vitrine/internal/model"
)

// Service encodes the record key layout and read/write/merge semantics.
// Every operation follows the store's soft-failure contract: results
// are values and booleans, never errors, and a missing record is
// indistinguishable from an unavailable store.
type Service struct {
	store *kv.Client
}

// NewService returns a Service over the given store client.
func NewService(store *kv.Client) *Service {
	return &Service{store: store}
}

// GetEntitlement returns the fid's entitlement record, or nil.
func (s *Service) GetEntitlement(ctx context.Context, fid int64) *model.EntitlementRecord {
	raw, ok := s.store.Get(ctx, EntitlementKey(fid))
	if !ok {
		return nil
	}
	var rec model.EntitlementRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		slog.Warn("prefs: undecodable entitlement record", "fid", fid, "error", err)
		return nil
	}
	return &rec
}

// GrantEntitlement writes a fresh entitlement record for the fid. A
// repeat grant overwrites grantedAt and txHash; entitlement itself is
// presence-based, so the repeat is idempotent. There is no revoke.
func (s *Service) GrantEntitlement(ctx context.Context, fid int64, txHash string) bool {
	rec := model.EntitlementRecord{
		FID:       fid,
		GrantedAt: time.Now().UTC(),
		TxHash:    txHash,
	}
	return s.store.Set(ctx, EntitlementKey(fid), rec)
}

// IsEntitled reports whether the fid holds an entitlement record.
func (s *Service) IsEntitled(ctx context.Context, fid int64) bool {
	_, ok := s.store.Get(ctx, EntitlementKey(fid))
	return ok
}

// GetPreferences returns the fid's preferences record, or nil.
func (s *Service) GetPreferences(ctx context.Context, fid int64) *model.PreferencesRecord {
	raw, ok := s.store.Get(ctx, PreferencesKey(fid))
	if !ok {
		return nil
	}
	var rec model.PreferencesRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		slog.Warn("prefs: undecodable preferences record", "fid", fid, "error", err)
		return nil
	}
	return &rec
}

// SetPreferences replaces the fid's preferences record whole. UpdatedAt
// is stamped here; any value supplied by the caller is discarded.
func (s *Service) SetPreferences(ctx context.Context, fid int64, rec model.PreferencesRecord) bool {
	rec.UpdatedAt = time.Now().UTC()
	return s.store.Set(ctx, PreferencesKey(fid), rec)
}

// MergePreferences overlays patch onto the stored record (or an empty
// record when none exists), stamps a fresh UpdatedAt, and writes the
// result.
//
// The read and the write are two separate store operations with no
// lock held between them: two concurrent merges on the same fid race,
// and the later write silently wins on overlapping fields. That
// lost-update window is an accepted trade-off for this data — profile
// preferences are low-frequency, single-author writes.
func (s *Service) MergePreferences(ctx context.Context, fid int64, patch *model.PreferencesPatch) bool {
	rec := model.PreferencesRecord{}
	if existing := s.GetPreferences(ctx, fid); existing != nil {
		rec = *existing
	}
	patch.Apply(&rec)
	rec.UpdatedAt = time.Now().UTC()
	return s.store.Set(ctx, PreferencesKey(fid), rec)
}

// DeletePreferences removes the fid's preferences record. Entitlement
// records have no corresponding delete.
func (s *Service) DeletePreferences(ctx context.Context, fid int64) bool {
	return s.store.Delete(ctx, PreferencesKey(fid))
}
