package event

import (
	"context"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/culturalite/backend/internal/domain"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ListFilter struct {
	City     string // case-insensitive substring match on the city field
	Category string // case-insensitive substring match on the category name
	Page     int
	PageSize int
}

func (f *ListFilter) Normalize() {
	f.City = strings.TrimSpace(f.City)
	f.Category = strings.TrimSpace(f.Category)

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

type ListResult struct {
	Items      []domain.Event `json:"items"`
	Count      int            `json:"count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// ListPublic returns one page of approved events, event_date descending.
// Results for a given (city, category, page) triple are cached for ttlList;
// cache failures are logged and otherwise ignored.
func (s *Service) ListPublic(ctx context.Context, f ListFilter) (ListResult, error) {
	f.Normalize()

	cacheKey := ""
	if s.cache != nil {
		cacheKey = cacheKeyPublicList(f)
		var cached ListResult
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", cacheKey).Msg("event list cache get failed")
		} else if found {
			zlog.Debug().Str("key", cacheKey).Msg("event list cache hit")
			return cached, nil
		}
	}

	total, err := s.repo.CountPublic(ctx, f)
	if err != nil {
		return ListResult{}, err
	}

	totalPages := (total + f.PageSize - 1) / f.PageSize
	if totalPages == 0 {
		// an empty result set still serves page 1 as an empty 200
		totalPages = 1
	}
	if f.Page > totalPages {
		return ListResult{}, domain.ErrPageNotFound(f.Page)
	}

	items, err := s.repo.ListPublic(ctx, f, f.PageSize, (f.Page-1)*f.PageSize)
	if err != nil {
		return ListResult{}, err
	}

	res := ListResult{
		Items:      items,
		Count:      total,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: totalPages,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, res, s.ttlList); err != nil {
			zlog.Warn().Err(err).Str("key", cacheKey).Msg("event list cache set failed")
		}
	}

	return res, nil
}
