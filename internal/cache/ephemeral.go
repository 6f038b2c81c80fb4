// Package cache implements the two-tier evaluation cache: a durable
// Postgres-backed store fronted by an in-process ephemeral tier.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Ephemeral is an in-process key-value store with a fixed time-to-live per
// instance. It holds low-value or non-persistable results that are not worth
// a durable write.
type Ephemeral struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]entry
}

// NewEphemeral creates an ephemeral cache with the given TTL.
func NewEphemeral(ttl time.Duration) *Ephemeral {
	return &Ephemeral{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the value stored under key, ignoring entries older than the TTL.
func (e *Ephemeral) Get(key string) (any, bool) {
	e.mu.RLock()
	ent, ok := e.entries[key]
	e.mu.RUnlock()

	if !ok || time.Since(ent.storedAt) > e.ttl {
		return nil, false
	}
	return ent.value, true
}

// Set stores a value under key, resetting its age.
func (e *Ephemeral) Set(key string, value any) {
	e.mu.Lock()
	e.entries[key] = entry{value: value, storedAt: time.Now()}
	e.mu.Unlock()
}

// Prune removes expired entries and returns how many were dropped.
func (e *Ephemeral) Prune() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	dropped := 0
	for key, ent := range e.entries {
		if time.Since(ent.storedAt) > e.ttl {
			delete(e.entries, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of entries, expired ones included.
func (e *Ephemeral) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.entries)
}
