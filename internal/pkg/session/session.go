// Package session implements the authoritative registry of connected players.
package session

import (
	"sync"
	"time"

	"gameudp/internal/pkg/payload"

	"github.com/google/uuid"
)

// Session is the server-side record of one connected client, keyed by its
// transport address. The address is a weak reference to an endpoint, not an
// owned resource. PlayerNumber is assigned once from a monotonic counter and
// never reused; a reconnect after eviction produces a fresh session with a
// fresh number. The ID exists for log correlation only and never goes on
// the wire.
type Session struct {
	Addr          string
	ID            uuid.UUID
	Position      payload.Position
	LastHeartbeat time.Time
	PlayerNumber  uint32
}

// Store is the set of operations the protocol engine needs from a registry.
type Store interface {
	Upsert(addr string, pos payload.Position) (Session, bool)
	Get(addr string) (Session, error)
	UpdatePosition(addr string, pos payload.Position) error
	TouchHeartbeat(addr string) error
	Remove(addr string) (Session, error)
	Snapshot() map[string]Session
	Addrs() []string
	Expired(timeout time.Duration) []Session
}

// Registry is the in-memory Store implementation. All access is guarded by
// a single lock; sessions are stored and returned by value so callers never
// hold a reference into the map.
type Registry struct {
	mu         sync.RWMutex
	sessions   map[string]Session
	nextNumber uint32
	now        func() time.Time
}

// RegistryCfg configures a Registry.
type RegistryCfg func(*Registry) error

// WithClock sets the registry's time source. Used by tests to simulate
// idle sessions.
func WithClock(now func() time.Time) RegistryCfg {
	return func(r *Registry) error {
		r.now = now
		return nil
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(cfgs ...RegistryCfg) (*Registry, error) {
	r := &Registry{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
	for _, cfg := range cfgs {
		if err := cfg(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Upsert returns the session for addr, creating it at pos with the next
// player number if none exists. The second return value reports whether a
// new session was created.
func (r *Registry) Upsert(addr string, pos payload.Position) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[addr]; ok {
		return sess, false
	}
	sess := Session{
		Addr:          addr,
		ID:            uuid.New(),
		Position:      pos,
		LastHeartbeat: r.now(),
		PlayerNumber:  r.nextNumber,
	}
	r.nextNumber++
	r.sessions[addr] = sess
	return sess, true
}

// Get returns the session for addr.
func (r *Registry) Get(addr string) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[addr]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// UpdatePosition records an accepted move and refreshes the heartbeat.
func (r *Registry) UpdatePosition(addr string, pos payload.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[addr]
	if !ok {
		return ErrSessionNotFound
	}
	sess.Position = pos
	sess.LastHeartbeat = r.now()
	r.sessions[addr] = sess
	return nil
}

// TouchHeartbeat refreshes the session's liveness timestamp.
func (r *Registry) TouchHeartbeat(addr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[addr]
	if !ok {
		return ErrSessionNotFound
	}
	sess.LastHeartbeat = r.now()
	r.sessions[addr] = sess
	return nil
}

// Remove deletes the session for addr and returns its final state.
func (r *Registry) Remove(addr string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[addr]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	delete(r.sessions, addr)
	return sess, nil
}

// Snapshot returns a point-in-time copy of every session.
func (r *Registry) Snapshot() map[string]Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Session, len(r.sessions))
	for addr, sess := range r.sessions {
		out[addr] = sess
	}
	return out
}

// Addrs returns the addresses of all current sessions.
func (r *Registry) Addrs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.sessions))
	for addr := range r.sessions {
		out = append(out, addr)
	}
	return out
}

// Expired returns the sessions whose last heartbeat is older than timeout.
func (r *Registry) Expired(timeout time.Duration) []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := r.now()
	var out []Session
	for _, sess := range r.sessions {
		if now.Sub(sess.LastHeartbeat) > timeout {
			out = append(out, sess)
		}
	}
	return out
}
