package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"NewsTimeline/internal/domain"
	"NewsTimeline/internal/ports"
)

// CachedSource serves repeated searches from the fetch cache and falls
// through to the wrapped source on a miss. Cache failures never fail a search.
type CachedSource struct {
	next   ports.NewsSource
	cache  ports.FetchCache
	ttl    time.Duration
	scope  string
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.NewsSource = (*CachedSource)(nil)

// NewCachedSource decorates next; scope separates keys of different
// provider settings (language, country).
func NewCachedSource(next ports.NewsSource, cache ports.FetchCache, ttl time.Duration, scope string, logger *slog.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSource{next: next, cache: cache, ttl: ttl, scope: scope, logger: logger, now: time.Now}
}

// CacheKey identifies a search by keyword, days back and result limit.
func CacheKey(scope string, q domain.Query) string {
	keyword := strings.Join(strings.Fields(strings.ToLower(q.Keyword)), " ")
	return fmt.Sprintf("%s|%s|%d|%d", scope, keyword, q.DaysBack, q.MaxResults)
}

// Search returns cached records when fresh, otherwise fetches and stores them.
// Empty results are not cached.
func (s *CachedSource) Search(ctx context.Context, q domain.Query) ([]domain.ArticleRecord, error) {
	key := CacheKey(s.scope, q)
	now := s.now()

	if s.cache != nil {
		records, ok, err := s.cache.Load(ctx, key, now)
		switch {
		case err != nil:
			s.logger.Warn("cache load failed", "key", key, "error", err)
		case ok:
			s.logger.Debug("cache hit", "key", key, "articles", len(records))
			return records, nil
		}
	}

	records, err := s.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(records) > 0 {
		if err := s.cache.Save(ctx, key, records, now.Add(s.ttl)); err != nil {
			s.logger.Warn("cache save failed", "key", key, "error", err)
		}
	}
	return records, nil
}
