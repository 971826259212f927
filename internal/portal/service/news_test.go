package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	items []domain.NewsItem
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(context.Context) ([]domain.NewsItem, error) {
	f.calls++
	return f.items, f.err
}

func (f *fakeFetcher) CacheKey() string { return "test-model" }

func TestNewsLatestCaches(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{items: []domain.NewsItem{{Title: "Vacinação", Date: "2026-01-13"}}}
	svc := &NewsService{Fetcher: f, KV: newTestStore(t).KV(), TTL: time.Hour}

	require.Equal(t, f.items, svc.Latest(ctx))
	require.Equal(t, f.items, svc.Latest(ctx))
	require.Equal(t, 1, f.calls)
}

func TestNewsLatestSwallowsErrors(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{err: errors.New("quota exceeded")}
	svc := &NewsService{Fetcher: f, KV: newTestStore(t).KV()}

	items := svc.Latest(ctx)
	require.NotNil(t, items)
	require.Empty(t, items)

	// Failures are not cached.
	svc.Latest(ctx)
	require.Equal(t, 2, f.calls)
}
