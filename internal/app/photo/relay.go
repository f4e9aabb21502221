package photo

import (
	"sync"
	"time"

	"github.com/pbarros/fornecedores/internal/adapter/logger"
)

// Relay is the process-wide handoff channel between a mobile capture flow
// and a desktop session. Entries are keyed by a caller-supplied session id,
// delivered at most once, and dropped after the retention window. The map
// is owned exclusively by the relay; all access goes through Put/Get.
type Relay struct {
	mu        sync.Mutex
	entries   map[string]entry
	retention time.Duration
	now       func() time.Time
	logger    logger.Logger
}

type entry struct {
	payload  string
	storedAt time.Time
}

func NewRelay(retention time.Duration, logger logger.Logger) *Relay {
	return &Relay{
		entries:   make(map[string]entry),
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

// Put stores or overwrites the payload for a session with a fresh
// timestamp. Overwriting an unconsumed entry is not an error: last write
// wins. Eviction of stale entries piggybacks on every put.
func (r *Relay) Put(sessionID, payload string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[sessionID] = entry{payload: payload, storedAt: r.now()}
	r.evictLocked()

	r.logger.Debug("photo_stored", "Photo stored for session", "", map[string]interface{}{
		"session_id": sessionID,
	})
}

// Get returns the payload for a session and removes the entry, so a second
// call reports absence. An entry older than the retention window is treated
// as absent and removed as a side effect. The age check and the delete
// happen under one lock acquisition to rule out double delivery.
func (r *Relay) Get(sessionID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		return "", false
	}

	delete(r.entries, sessionID)
	if r.now().Sub(e.storedAt) > r.retention {
		return "", false
	}

	r.evictLocked()

	r.logger.Debug("photo_retrieved", "Photo retrieved and removed", "", map[string]interface{}{
		"session_id": sessionID,
	})
	return e.payload, true
}

// EvictExpired removes every entry older than the retention window and
// returns how many were dropped. Eviction is opportunistic, not timed:
// entries may linger past expiry when the relay is idle, but Get never
// returns them.
func (r *Relay) EvictExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evictLocked()
}

func (r *Relay) evictLocked() int {
	cutoff := r.now().Add(-r.retention)
	evicted := 0
	for id, e := range r.entries {
		if e.storedAt.Before(cutoff) {
			delete(r.entries, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Debug("photos_evicted", "Expired photo entries removed", "", map[string]interface{}{
			"count": evicted,
		})
	}
	return evicted
}

// Len reports the number of stored entries, expired or not.
func (r *Relay) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
