package memory

import (
	"context"
	"sync"
	"time"
)

// TokenBlacklist is the in-process fallback for the Redis blacklist, used in
// dev without Redis and in tests. Entries expire lazily on read.
type TokenBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time // jti -> expiry
}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{entries: make(map[string]time.Time)}
}

func (b *TokenBlacklist) Add(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[jti] = time.Now().Add(ttl)
	return nil
}

func (b *TokenBlacklist) AddIfAbsent(_ context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if exp, ok := b.entries[jti]; ok && time.Now().Before(exp) {
		return false, nil
	}
	b.entries[jti] = time.Now().Add(ttl)
	return true, nil
}

func (b *TokenBlacklist) Contains(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.entries[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(b.entries, jti)
		return false, nil
	}
	return true, nil
}
