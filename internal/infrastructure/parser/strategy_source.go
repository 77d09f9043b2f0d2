package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"NewsTimeline/internal/config"
	"NewsTimeline/internal/domain"
	"NewsTimeline/internal/ports"
	"NewsTimeline/internal/scanner"
)

// StrategySource implements NewsSource via registered scanner strategies.
// Sources are tried in configured order; the next one is consulted when the
// current one fails or returns fewer than minResults records.
type StrategySource struct {
	registry   *scanner.Registry
	sources    []config.SourceConfig
	language   string
	country    string
	minResults int
	logger     *slog.Logger
}

var _ ports.NewsSource = (*StrategySource)(nil)

// NewStrategySource wires scanner registry with config-defined sources.
func NewStrategySource(reg *scanner.Registry, providers config.ProviderConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry:   reg,
		sources:    providers.Sources,
		language:   providers.Language,
		country:    providers.Country,
		minResults: providers.MinResults,
		logger:     log,
	}
}

// Search runs the fallback chain and returns records newest first, undated
// records last, truncated to q.MaxResults. It fails only when every source
// failed.
func (s *StrategySource) Search(ctx context.Context, q domain.Query) ([]domain.ArticleRecord, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}
	if len(s.sources) == 0 {
		return nil, fmt.Errorf("no news sources configured")
	}

	s.debug("search sources", "sources", len(s.sources), "keyword", q.Keyword)

	var (
		best  []domain.ArticleRecord
		errs  []error
		anyOK bool
	)
	for _, src := range s.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		strategy, err := s.registry.Resolve(src.Scanner)
		if err != nil {
			errs = append(errs, fmt.Errorf("source %s: %w", src.Name, err))
			continue
		}

		results, err := strategy.Scan(ctx, scanner.Request{
			Keyword:    q.Keyword,
			DaysBack:   q.DaysBack,
			Window:     q.Window,
			MaxResults: q.MaxResults,
			Language:   s.language,
			Country:    s.country,
			BaseURL:    src.BaseURL,
			SourceName: src.Name,
			Options:    src.Options,
		})
		if err != nil {
			s.warn("source failed", "source", src.Name, "error", err)
			errs = append(errs, fmt.Errorf("scan source %s: %w", src.Name, err))
			continue
		}

		anyOK = true
		s.debug("source produced articles", "source", src.Name, "count", len(results))
		if len(results) > len(best) {
			best = results
		}
		if len(results) >= s.minResults {
			break
		}
		s.debug("insufficient results, trying next source", "source", src.Name, "min", s.minResults)
	}

	if !anyOK {
		return nil, errors.Join(errs...)
	}

	sortNewestFirst(best)
	if q.MaxResults > 0 && len(best) > q.MaxResults {
		best = best[:q.MaxResults]
	}
	s.debug("strategy source done", "total_articles", len(best))
	return best, nil
}

func sortNewestFirst(records []domain.ArticleRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		return a.PublishedAt.After(b.PublishedAt)
	})
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
