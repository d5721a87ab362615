package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/groblegark/bingod/internal/engine"
	"github.com/groblegark/bingod/internal/events"
	"github.com/groblegark/bingod/internal/model"
	"github.com/groblegark/bingod/internal/store"
)

// BingoServer exposes the event state engine over HTTP.
//
// All mutating operations are serialized behind mu: there is exactly one
// current-event slot, and load-mutate-persist must be atomic with respect to
// other requests or two simultaneous draws could each read the same pre-draw
// state and silently discard one another's number.
type BingoServer struct {
	store     store.Store
	publisher events.Publisher
	picker    engine.Picker
	sseHub    *sseHub
	now       func() time.Time

	webDir       string
	defaultUI    model.UIConfig
	defaultRules model.RulesConfig

	mu sync.Mutex
}

// Options configures optional server behavior. Zero values select production
// defaults.
type Options struct {
	// WebDir, when non-empty, is served as the static UI under non-API paths.
	WebDir string

	// DefaultUI and DefaultRules are applied to newly created events.
	DefaultUI    *model.UIConfig
	DefaultRules *model.RulesConfig

	// Picker overrides the uniform random number picker (tests).
	Picker engine.Picker

	// Now overrides the clock (tests).
	Now func() time.Time
}

// NewBingoServer returns a new BingoServer backed by the given store and publisher.
func NewBingoServer(s store.Store, p events.Publisher, opts Options) *BingoServer {
	srv := &BingoServer{
		store:        s,
		publisher:    p,
		picker:       opts.Picker,
		sseHub:       newSSEHub(),
		now:          opts.Now,
		webDir:       opts.WebDir,
		defaultUI:    model.DefaultUI(),
		defaultRules: model.DefaultRules(),
	}
	if srv.picker == nil {
		srv.picker = engine.RandomPicker{}
	}
	if srv.now == nil {
		srv.now = func() time.Time { return time.Now().UTC() }
	}
	if opts.DefaultUI != nil {
		srv.defaultUI = *opts.DefaultUI
	}
	if opts.DefaultRules != nil {
		srv.defaultRules = *opts.DefaultRules
	}
	return srv
}

// publishEvent emits an event to NATS and to connected SSE clients.
// Both deliveries are best-effort; failures are logged but never block or
// fail the mutating operation that triggered them.
func (s *BingoServer) publishEvent(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event for SSE broadcast", "topic", topic, "error", err)
		return
	}
	s.sseHub.broadcast(topic, payload)
}
