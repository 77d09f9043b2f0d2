package timeline

import (
	"sort"
	"strings"
	"unicode/utf8"

	"NewsTimeline/internal/domain"
)

const (
	formattedLayout      = "January 02, 2006"
	descriptionLimit     = 200
	untitledHeadline     = "No title"
	unknownSource        = "Unknown"
	missingArticleTarget = "#"
)

// Events selects one display event per bucket holding at least
// MinEventArticles articles. The earliest published article becomes the
// main headline; equal times keep input order.
func (b *Builder) Events(buckets []domain.DayBucket) []domain.TimelineEvent {
	events := make([]domain.TimelineEvent, 0, len(buckets))
	for _, bucket := range buckets {
		if bucket.Count < b.opts.MinEventArticles || len(bucket.Articles) == 0 {
			continue
		}

		ordered := make([]domain.ArticleRecord, len(bucket.Articles))
		copy(ordered, bucket.Articles)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].PublishedAt.Before(ordered[j].PublishedAt)
		})

		main := ordered[0]
		limit := b.opts.EventArticles
		if len(ordered) < limit {
			limit = len(ordered)
		}

		drill := make([]domain.EventArticle, 0, limit)
		for _, a := range ordered[:limit] {
			drill = append(drill, domain.EventArticle{
				Title:       orDefault(a.Title, untitledHeadline),
				Source:      orDefault(a.Publisher, unknownSource),
				URL:         orDefault(a.URL, missingArticleTarget),
				Description: truncate(a.Description, descriptionLimit, ""),
			})
		}

		events = append(events, domain.TimelineEvent{
			Date:          bucket.Date.Format(dateKeyLayout),
			DateFormatted: bucket.Date.Format(formattedLayout),
			MainHeadline:  orDefault(main.Title, untitledHeadline),
			MainSource:    orDefault(main.Publisher, unknownSource),
			ArticleCount:  bucket.Count,
			Articles:      drill,
		})
	}
	return events
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// truncate cuts s to at most limit runes and appends suffix when it cut.
func truncate(s string, limit int, suffix string) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + suffix
}
