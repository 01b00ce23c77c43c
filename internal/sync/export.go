// Package sync exports the record store to backup destinations on a
// schedule.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/vitrinelabs/vitrine/internal/kv/postgres"
	"github.com/vitrinelabs/vitrine/internal/prefs"
)

// Source lists stored records by key prefix. *postgres.Store satisfies
// it; tests substitute their own.
type Source interface {
	List(ctx context.Context, prefix string) ([]postgres.Record, error)
}

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version          string    `json:"version"`
	Type             string    `json:"type"`
	Timestamp        time.Time `json:"timestamp"`
	EntitlementCount int       `json:"entitlement_count"`
	PreferenceCount  int       `json:"preference_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type      string          `json:"type"`
	Key       string          `json:"key"`
	UpdatedAt time.Time       `json:"updated_at"`
	Data      json.RawMessage `json:"data"`
}

// ExportJSONL writes every entitlement and preferences record from the
// source as JSONL to w. Records come out ordered by key within each
// type, entitlements first.
func ExportJSONL(ctx context.Context, src Source, w io.Writer) error {
	entitlements, err := src.List(ctx, prefs.KeyPrefixEntitlement)
	if err != nil {
		return fmt.Errorf("list entitlements: %w", err)
	}

	preferences, err := src.List(ctx, prefs.KeyPrefixPreferences)
	if err != nil {
		return fmt.Errorf("list preferences: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:          "1",
		Type:             "header",
		Timestamp:        time.Now().UTC(),
		EntitlementCount: len(entitlements),
		PreferenceCount:  len(preferences),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, r := range entitlements {
		if err := enc.Encode(record{
			Type:      "entitlement",
			Key:       r.Key,
			UpdatedAt: r.UpdatedAt,
			Data:      json.RawMessage(r.Value),
		}); err != nil {
			return fmt.Errorf("encode record %s: %w", r.Key, err)
		}
	}

	for _, r := range preferences {
		if err := enc.Encode(record{
			Type:      "preferences",
			Key:       r.Key,
			UpdatedAt: r.UpdatedAt,
			Data:      json.RawMessage(r.Value),
		}); err != nil {
			return fmt.Errorf("encode record %s: %w", r.Key, err)
		}
	}

	return nil
}
