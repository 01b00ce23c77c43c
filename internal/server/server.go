// Package server exposes the profile façade over HTTP/JSON.
package server

import (
	"context"
	"log/slog"

	"github.com/vitrinelabs/vitrine/internal/events"
	"github.com/vitrinelabs/vitrine/internal/idgen"
	"github.com/vitrinelabs/vitrine/internal/kv"
	"github.com/vitrinelabs/vitrine/internal/profile"
)

// ProfileServer serves the gallery profile API.
type ProfileServer struct {
	facade    *profile.Facade
	store     *kv.Client
	publisher events.Publisher
}

// NewProfileServer returns a server over the given façade. The store
// client is used only for health reporting; all data access goes
// through the façade.
func NewProfileServer(f *profile.Facade, store *kv.Client, p events.Publisher) *ProfileServer {
	if p == nil {
		p = &events.NoopPublisher{}
	}
	return &ProfileServer{facade: f, store: store, publisher: p}
}

// publish emits an event to the bus. Best-effort: failures are logged
// and never block or fail the request that triggered them.
func (s *ProfileServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// newEventID returns a fresh event ID, or "" when generation fails
// (the event is still published; consumers treat the ID as optional).
func newEventID() string {
	id, err := idgen.NewEventID()
	if err != nil {
		slog.Warn("failed to generate event id", "error", err)
		return ""
	}
	return id
}
