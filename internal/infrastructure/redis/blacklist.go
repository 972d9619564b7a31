package redis

import (
	"context"
	"time"
)

// TokenBlacklist stores revoked refresh token ids:
// bl:<jti> -> "1" with TTL = the token's remaining lifetime.
// SET NX gives the atomic check-and-insert that rotation relies on: of any
// number of concurrent refreshes with the same token, exactly one wins.
type TokenBlacklist struct {
	client *Client
	prefix string
}

func NewTokenBlacklist(c *Client) *TokenBlacklist {
	return &TokenBlacklist{client: c, prefix: "bl:"}
}

// ttlOrMinimum guards against a token that expires between verification and
// blacklisting; the key must still outlive the token.
func ttlOrMinimum(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}

func (b *TokenBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	return b.client.rdb.Set(ctx, b.prefix+jti, "1", ttlOrMinimum(ttl)).Err()
}

func (b *TokenBlacklist) AddIfAbsent(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	return b.client.rdb.SetNX(ctx, b.prefix+jti, "1", ttlOrMinimum(ttl)).Result()
}

func (b *TokenBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.rdb.Exists(ctx, b.prefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
