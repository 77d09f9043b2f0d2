package timeline

import (
	"math"
	"strings"
	"time"

	"NewsTimeline/internal/domain"
)

// Coverage computes aggregate statistics over all fetched articles,
// including those the timeline drops for missing dates.
//
// The average divides by the number of calendar days covered
// (DateSpanDays + 1): three articles on Jan 5 and Jan 6 span one day and
// average 1.5 per day.
func (b *Builder) Coverage(articles []domain.ArticleRecord) domain.CoverageStats {
	stats := domain.CoverageStats{TotalArticles: len(articles)}
	if len(articles) == 0 {
		return stats
	}

	sources := map[string]struct{}{}
	var first, last time.Time
	for _, a := range articles {
		key := strings.ToLower(strings.TrimSpace(a.Publisher))
		if key == "" {
			key = "unknown"
		}
		sources[key] = struct{}{}

		if !a.HasDate() {
			continue
		}
		stats.DatedArticles++
		day := b.day(a.PublishedAt)
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if last.IsZero() || day.After(last) {
			last = day
		}
	}
	stats.UniqueSources = len(sources)

	if stats.DatedArticles == 0 {
		return stats
	}

	stats.DateSpanDays = DaysBetween(first, last)
	avg := float64(stats.TotalArticles) / float64(stats.DateSpanDays+1)
	stats.AvgArticlesPerDay = math.Round(avg*10) / 10
	return stats
}
