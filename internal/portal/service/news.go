package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/store"
	"github.com/aussiebroadwan/acsportal/pkg/cryptox"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

// DefaultNewsCacheTTL applies when NewsService.TTL is unset.
const DefaultNewsCacheTTL = 6 * time.Hour

// NewsFetcher produces fresh news items. CacheKey identifies what would be
// fetched (model and prompt) so a config change misses the cache.
type NewsFetcher interface {
	Fetch(ctx context.Context) ([]domain.NewsItem, error)
	CacheKey() string
}

type NewsService struct {
	Fetcher NewsFetcher
	KV      store.KV
	TTL     time.Duration
}

// Latest returns cached news, fetching when the cache is cold. It never
// fails: any error is logged and an empty list returned.
func (s *NewsService) Latest(ctx context.Context) []domain.NewsItem {
	l := slogx.FromContext(ctx)
	key := "news:" + cryptox.FingerprintToken(s.Fetcher.CacheKey())

	// 1. Serve from cache
	raw, err := s.KV.Get(ctx, key)
	switch {
	case err == nil:
		var items []domain.NewsItem
		if err := json.Unmarshal(raw, &items); err == nil {
			return items
		}
		l.Warn("news cache entry unreadable, refetching")
	case !errors.Is(err, store.ErrNotFound):
		l.Warn("news cache read failed", "err", err)
	}

	// 2. Fetch
	items, err := s.Fetcher.Fetch(ctx)
	if err != nil {
		l.Error("news fetch failed", "err", err)
		return []domain.NewsItem{}
	}
	if len(items) == 0 {
		return []domain.NewsItem{}
	}

	// 3. Cache the good result
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultNewsCacheTTL
	}
	if b, err := json.Marshal(items); err == nil {
		if err := s.KV.Set(ctx, key, b, ttl); err != nil {
			l.Warn("news cache write failed", "err", err)
		}
	}

	return items
}
