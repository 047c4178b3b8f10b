package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store holds in-flight sessions. It is an explicitly owned value:
// constructed per server instance, injected where needed, never ambient
// global state.
//
// Eviction: sessions are deleted explicitly once their response is built,
// and the backing expirable LRU caps both count and age so abandoned
// sessions (a caller that crashed mid-call) cannot accumulate unbounded.
type Store struct {
	lru *expirable.LRU[string, *Session]
}

const (
	// DefaultCapacity bounds concurrently tracked sessions.
	DefaultCapacity = 128

	// DefaultTTL evicts sessions abandoned without finalization.
	DefaultTTL = 10 * time.Minute
)

// NewStore creates a session store. Zero or negative arguments fall back to
// the defaults.
func NewStore(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{lru: expirable.NewLRU[string, *Session](capacity, nil, ttl)}
}

// Create allocates a new session for req and tracks it.
func (st *Store) Create(req Request) *Session {
	sess := newSession(req)
	st.lru.Add(sess.ID, sess)
	return sess
}

// Get returns the session for id, if still tracked.
func (st *Store) Get(id string) (*Session, bool) {
	return st.lru.Get(id)
}

// Delete drops the session for id. Deleting an unknown id is a no-op.
func (st *Store) Delete(id string) {
	st.lru.Remove(id)
}

// Len reports the number of tracked sessions.
func (st *Store) Len() int {
	return st.lru.Len()
}
