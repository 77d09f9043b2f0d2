package ports

import (
	"context"
	"time"

	"NewsTimeline/internal/domain"
)

// NewsSource returns the articles matching a keyword inside a recency window.
type NewsSource interface {
	Search(ctx context.Context, query domain.Query) ([]domain.ArticleRecord, error)
}

// ContentExtractor downloads an article page and returns its readable text.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// FetchCache stores fetched article lists for a limited time.
type FetchCache interface {
	Load(ctx context.Context, key string, now time.Time) ([]domain.ArticleRecord, bool, error)
	Save(ctx context.Context, key string, records []domain.ArticleRecord, expiresAt time.Time) error
	Purge(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler controls when background jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
