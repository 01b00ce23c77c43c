// Package client provides a transport-agnostic interface for the vitrine
// service and an HTTP/JSON implementation that talks to the vitrine REST API.
package client

import (
	"context"
	"encoding/json"

	"github.com/vitrinelabs/vitrine/internal/model"
	"github.com/vitrinelabs/vitrine/internal/profile"
)

// ProfileClient is the interface that all vitrine CLI commands use to
// communicate with the vitrine server. It is implemented by HTTPClient
// (default) and can be backed by any transport.
type ProfileClient interface {
	// Profiles
	LoadProfile(ctx context.Context, fid int64) (*profile.LoadResult, error)

	// Preferences
	SavePreferences(ctx context.Context, fid int64, rec *model.PreferencesRecord) (*profile.SaveResult, error)
	UpdatePreferences(ctx context.Context, fid int64, patch *model.PreferencesPatch) (*profile.SaveResult, error)
	UpdatePreferenceField(ctx context.Context, fid int64, field string, value json.RawMessage) (*profile.SaveResult, error)
	ClearPreferences(ctx context.Context, fid int64) (*profile.SaveResult, error)

	// Mint entitlements
	RecordMint(ctx context.Context, fid int64, txHash string) (*profile.SaveResult, error)
	CheckMint(ctx context.Context, fid int64) (*profile.EntitlementStatus, error)

	// Health
	Health(ctx context.Context) (*HealthResponse, error)

	// Lifecycle
	Close() error
}

// HealthResponse is the response from Health.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}
