package domain

import "time"

// SearchRequest is the inbound search coming from the presentation layer.
type SearchRequest struct {
	Keyword     string `json:"keyword"`
	DaysBack    int    `json:"days_back"`
	MaxArticles int    `json:"max_articles"`
}

// SummaryResult is the story-level extractive summary.
type SummaryResult struct {
	Summary      string   `json:"summary"`
	KeyPoints    []string `json:"key_points"`
	Overview     string   `json:"overview"`
	MainSources  []string `json:"main_sources"`
	ArticleCount int      `json:"article_count"`
	DateRange    string   `json:"date_range"`
}

// ScoredSentence is a candidate sentence during summarization.
type ScoredSentence struct {
	Text               string
	Score              float64
	SourceArticleIndex int
	Position           int
}

// DayBucket groups the articles published on one calendar date.
type DayBucket struct {
	Date     time.Time       `json:"date"`
	Articles []ArticleRecord `json:"-"`
	Count    int             `json:"count"`
}

// EventArticle is the drill-down view of an article inside an event.
type EventArticle struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// TimelineEvent is the display-ready form of one day bucket.
type TimelineEvent struct {
	Date          string         `json:"date"`
	DateFormatted string         `json:"date_formatted"`
	MainHeadline  string         `json:"main_headline"`
	MainSource    string         `json:"main_source"`
	ArticleCount  int            `json:"article_count"`
	Articles      []EventArticle `json:"articles"`
}

// ChartPoint is one labelled point of the coverage chart.
type ChartPoint struct {
	Date     string `json:"date"`
	Count    int    `json:"count"`
	Headline string `json:"headline"`
}

// ChartSeries carries chart-ready parallel sequences.
type ChartSeries struct {
	Labels []string     `json:"labels"`
	Counts []int        `json:"counts"`
	Points []ChartPoint `json:"points"`
}

// Timeline is the bucketed view of a search.
type Timeline struct {
	Buckets   []DayBucket     `json:"buckets"`
	Chart     ChartSeries     `json:"chart"`
	Events    []TimelineEvent `json:"events"`
	DateRange string          `json:"date_range"`
	Dense     bool            `json:"dense"`
}

// CoverageStats aggregates breadth and frequency of coverage.
type CoverageStats struct {
	TotalArticles     int     `json:"total_articles"`
	UniqueSources     int     `json:"unique_sources"`
	DateSpanDays      int     `json:"date_span_days"`
	AvgArticlesPerDay float64 `json:"avg_articles_per_day"`
	DatedArticles     int     `json:"dated_articles"`
}

// ArticleView is an article as rendered in the result list.
type ArticleView struct {
	Title         string `json:"title"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date"`
	URL           string `json:"url"`
	Description   string `json:"description"`
	Summary       string `json:"summary"`
}

// Result is the payload handed to the presentation layer.
type Result struct {
	Keyword       string        `json:"keyword"`
	StorySummary  SummaryResult `json:"story_summary"`
	CoverageStats CoverageStats `json:"coverage_stats"`
	Timeline      Timeline      `json:"timeline"`
	Articles      []ArticleView `json:"articles"`
}
