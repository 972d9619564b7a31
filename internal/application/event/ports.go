package event

import (
	"context"
	"time"

	"github.com/culturalite/backend/internal/domain"
)

type EventRepo interface {
	// CountPublic and ListPublic apply the same predicate: status=approved
	// plus the optional case-insensitive city/category substring filters.
	CountPublic(ctx context.Context, f ListFilter) (int, error)
	ListPublic(ctx context.Context, f ListFilter, limit, offset int) ([]domain.Event, error)
}

// Cache is a best-effort TTL cache; a failing store must never fail a request.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
}
