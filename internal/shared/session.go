package shared

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fnvj/console/internal/platform/kv"
)

// SessionManager tracks the current actor of the console. The design assumes
// a single active session at a time; the bound actor id is mirrored to the
// persistence port so it survives process restarts.
type SessionManager struct {
	store  kv.Store
	key    string
	logger *slog.Logger

	mu      sync.RWMutex
	current string
}

// NewSessionManager constructs a SessionManager and restores any previously
// bound actor from the store. A corrupt persisted value falls back to an
// empty session.
func NewSessionManager(ctx context.Context, store kv.Store, key string, logger *slog.Logger) *SessionManager {
	sm := &SessionManager{store: store, key: key, logger: logger}
	var id string
	if found, err := kv.GetJSON(ctx, store, key, &id); err != nil {
		logger.Warn("restore session", slog.Any("error", err))
	} else if found {
		sm.current = id
	}
	return sm
}

// Bind marks the given actor id as the current session and mirrors it to the
// store. A persistence failure is logged; the in-memory binding stays.
func (sm *SessionManager) Bind(ctx context.Context, actorID string) {
	sm.mu.Lock()
	sm.current = actorID
	sm.mu.Unlock()
	if err := kv.SetJSON(ctx, sm.store, sm.key, actorID); err != nil {
		sm.logger.Warn("persist session", slog.Any("error", err))
	}
}

// Clear removes the current session binding.
func (sm *SessionManager) Clear(ctx context.Context) {
	sm.Bind(ctx, "")
}

// CurrentID returns the bound actor id, empty when nobody is logged in.
func (sm *SessionManager) CurrentID() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}
