package event

import "time"

type Service struct {
	repo  EventRepo
	cache Cache

	ttlList time.Duration
}

func New(repo EventRepo, cache Cache, ttlList time.Duration) *Service {
	if ttlList == 0 {
		ttlList = 5 * time.Minute
	}
	return &Service{
		repo:    repo,
		cache:   cache,
		ttlList: ttlList,
	}
}
