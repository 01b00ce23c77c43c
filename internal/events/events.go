package events

import (
	"context"

	"github.com/vitrinelabs/vitrine/internal/model"
)

// Event topic constants
const (
	TopicMintGranted        = "vitrine.mint.granted"
	TopicPreferencesUpdated = "vitrine.preferences.updated"
	TopicPreferencesDeleted = "vitrine.preferences.deleted"
)

// Event types

type MintGranted struct {
	EventID string                  `json:"event_id"`
	Record  *model.EntitlementRecord `json:"record"`
}

type PreferencesUpdated struct {
	EventID string `json:"event_id"`
	FID     int64  `json:"fid"`
	// Fields lists the JSON names changed by this write; empty means a
	// whole-record replace.
	Fields []string `json:"fields,omitempty"`
}

type PreferencesDeleted struct {
	EventID string `json:"event_id"`
	FID     int64  `json:"fid"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
