package usecase

import (
	"NewsTimeline/internal/domain"
)

const publishedLayout = "2006-01-02 15:04"

// Assembly holds the computed parts of a search result.
type Assembly struct {
	Keyword     string
	Summary     domain.SummaryResult
	Stats       domain.CoverageStats
	Timeline    domain.Timeline
	Articles    []domain.ArticleRecord
	MaxArticles int
	// ArticleSummary produces the per-article summary; nil leaves it empty.
	ArticleSummary func(text string) string
}

// Assemble merges the computed parts into the presentation payload. It has no
// side effects; identical input gives identical output.
func Assemble(in Assembly) domain.Result {
	articles := in.Articles
	if in.MaxArticles > 0 && len(articles) > in.MaxArticles {
		articles = articles[:in.MaxArticles]
	}

	views := make([]domain.ArticleView, 0, len(articles))
	for _, a := range articles {
		view := domain.ArticleView{
			Title:       a.Title,
			Publisher:   a.Publisher,
			URL:         a.URL,
			Description: a.Description,
		}
		if a.HasDate() {
			view.PublishedDate = a.PublishedAt.Format(publishedLayout)
		}
		if in.ArticleSummary != nil {
			view.Summary = in.ArticleSummary(a.Text())
		}
		views = append(views, view)
	}

	summary := in.Summary
	if summary.KeyPoints == nil {
		summary.KeyPoints = []string{}
	}
	if summary.MainSources == nil {
		summary.MainSources = []string{}
	}

	tl := in.Timeline
	if tl.Buckets == nil {
		tl.Buckets = []domain.DayBucket{}
	}
	if tl.Events == nil {
		tl.Events = []domain.TimelineEvent{}
	}

	return domain.Result{
		Keyword:       in.Keyword,
		StorySummary:  summary,
		CoverageStats: in.Stats,
		Timeline:      tl,
		Articles:      views,
	}
}
