package service

import (
	"context"
	"sync"
	"time"

	"github.com/makara-hq/portfolio-backend/internal/db"
)

// StateStore holds short-lived OAuth state nonces between the redirect and
// the callback. A state is consumed at most once.
type StateStore interface {
	Put(ctx context.Context, state, intent string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (intent string, ok bool, err error)
	PurgeExpired(ctx context.Context) int
}

// NewStateStore returns a Redis-backed store when a connection is
// available, otherwise an in-memory one.
func NewStateStore(rdb *db.RedisDB) StateStore {
	if rdb != nil {
		return &redisStateStore{rdb: rdb}
	}
	return NewMemoryStateStore()
}

// ============================================
// Redis-backed store
// ============================================

type redisStateStore struct {
	rdb *db.RedisDB
}

func (s *redisStateStore) Put(ctx context.Context, state, intent string, ttl time.Duration) error {
	return s.rdb.SetOAuthState(ctx, state, intent, ttl)
}

func (s *redisStateStore) Consume(ctx context.Context, state string) (string, bool, error) {
	return s.rdb.ConsumeOAuthState(ctx, state)
}

// Redis expires keys on its own.
func (s *redisStateStore) PurgeExpired(ctx context.Context) int {
	return 0
}

// ============================================
// In-memory store
// ============================================

type stateEntry struct {
	intent    string
	expiresAt time.Time
}

type MemoryStateStore struct {
	mu      sync.Mutex
	entries map[string]stateEntry
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{entries: make(map[string]stateEntry)}
}

func (s *MemoryStateStore) Put(ctx context.Context, state, intent string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[state] = stateEntry{intent: intent, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStateStore) Consume(ctx context.Context, state string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[state]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, state)
	if time.Now().After(entry.expiresAt) {
		return "", false, nil
	}
	return entry.intent, true, nil
}

func (s *MemoryStateStore) PurgeExpired(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	purged := 0
	for state, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, state)
			purged++
		}
	}
	return purged
}
