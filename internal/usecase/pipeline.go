package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"NewsTimeline/internal/domain"
	"NewsTimeline/internal/ports"
	"NewsTimeline/internal/summarize"
	"NewsTimeline/internal/timeline"
)

// Limits bounds and defaults the inbound search parameters.
type Limits struct {
	DefaultDaysBack    int
	MinDaysBack        int
	MaxDaysBack        int
	DefaultMaxArticles int
	MinMaxArticles     int
	MaxMaxArticles     int
}

// DefaultLimits mirrors the search form: 7 to 90 days, 10 to 50 articles.
func DefaultLimits() Limits {
	return Limits{
		DefaultDaysBack:    30,
		MinDaysBack:        7,
		MaxDaysBack:        90,
		DefaultMaxArticles: 20,
		MinMaxArticles:     10,
		MaxMaxArticles:     50,
	}
}

// PipelineDeps wires the collaborators and settings of a search run.
type PipelineDeps struct {
	Source     ports.NewsSource
	Extractor  ports.ContentExtractor
	Summarizer *summarize.Summarizer
	Timeline   *timeline.Builder
	Logger     *slog.Logger
	Limits     Limits
	// ArticleSentences is the length of per-article summaries; 0 disables them.
	ArticleSentences int
	// ExtractMaxChars caps extracted full text; 0 keeps it whole.
	ExtractMaxChars int
	Now             func() time.Time
}

// Pipeline runs one search: validate, fetch, enrich, analyze, assemble.
type Pipeline struct {
	source           ports.NewsSource
	extractor        ports.ContentExtractor
	summarizer       *summarize.Summarizer
	timeline         *timeline.Builder
	logger           *slog.Logger
	limits           Limits
	articleSentences int
	extractMaxChars  int
	now              func() time.Time
}

// NewPipeline constructs the search pipeline. Nil core components fall back
// to their defaults.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		source:           deps.Source,
		extractor:        deps.Extractor,
		summarizer:       deps.Summarizer,
		timeline:         deps.Timeline,
		logger:           deps.Logger,
		limits:           deps.Limits,
		articleSentences: deps.ArticleSentences,
		extractMaxChars:  deps.ExtractMaxChars,
		now:              deps.Now,
	}
	if p.summarizer == nil {
		p.summarizer = summarize.New(summarize.DefaultOptions())
	}
	if p.timeline == nil {
		p.timeline = timeline.New(timeline.DefaultOptions())
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.limits == (Limits{}) {
		p.limits = DefaultLimits()
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Validate normalises req and rejects it when out of bounds. Zero numeric
// fields take the configured defaults.
func (p *Pipeline) Validate(req domain.SearchRequest) (domain.SearchRequest, error) {
	req.Keyword = strings.TrimSpace(req.Keyword)
	if req.Keyword == "" {
		return req, fmt.Errorf("%w: please provide a search keyword", ErrInvalidRequest)
	}

	if req.DaysBack == 0 {
		req.DaysBack = p.limits.DefaultDaysBack
	}
	if req.DaysBack < p.limits.MinDaysBack || req.DaysBack > p.limits.MaxDaysBack {
		return req, fmt.Errorf("%w: days_back must be between %d and %d",
			ErrInvalidRequest, p.limits.MinDaysBack, p.limits.MaxDaysBack)
	}

	if req.MaxArticles == 0 {
		req.MaxArticles = p.limits.DefaultMaxArticles
	}
	if req.MaxArticles < p.limits.MinMaxArticles || req.MaxArticles > p.limits.MaxMaxArticles {
		return req, fmt.Errorf("%w: max_articles must be between %d and %d",
			ErrInvalidRequest, p.limits.MinMaxArticles, p.limits.MaxMaxArticles)
	}

	return req, nil
}

// Search executes one request. Zero matches yield an empty but well-formed
// result; a failed fetch fails the whole request.
func (p *Pipeline) Search(ctx context.Context, req domain.SearchRequest) (domain.Result, error) {
	req, err := p.Validate(req)
	if err != nil {
		return domain.Result{}, err
	}
	if p.source == nil {
		return domain.Result{}, fmt.Errorf("%w: no source configured", ErrUpstream)
	}

	window := domain.WindowFor(p.now(), req.DaysBack)
	log := p.logger.With("keyword", req.Keyword, "days_back", req.DaysBack)
	log.Info("search started", "max_articles", req.MaxArticles)

	articles, err := p.source.Search(ctx, domain.Query{
		Keyword:    req.Keyword,
		DaysBack:   req.DaysBack,
		Window:     window,
		MaxResults: req.MaxArticles,
	})
	if err != nil {
		return domain.Result{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if len(articles) > req.MaxArticles {
		articles = articles[:req.MaxArticles]
	}

	articles, err = p.enrich(ctx, articles)
	if err != nil {
		return domain.Result{}, err
	}

	result := p.Analyze(req.Keyword, articles, window, req.MaxArticles)
	log.Info("search finished",
		"articles", result.CoverageStats.TotalArticles,
		"events", len(result.Timeline.Events))
	return result, nil
}

// Analyze runs the pure core over already fetched articles.
func (p *Pipeline) Analyze(keyword string, articles []domain.ArticleRecord, window domain.Window, maxArticles int) domain.Result {
	var perArticle func(string) string
	if p.articleSentences > 0 {
		n := p.articleSentences
		perArticle = func(text string) string { return p.summarizer.Text(text, n) }
	}

	return Assemble(Assembly{
		Keyword:        keyword,
		Summary:        p.summarizer.Story(articles),
		Stats:          p.timeline.Coverage(articles),
		Timeline:       p.timeline.Build(articles, window),
		Articles:       articles,
		MaxArticles:    maxArticles,
		ArticleSummary: perArticle,
	})
}

// enrich replaces descriptions with extracted full text where possible. A
// failed extraction keeps the feed description for that article only.
func (p *Pipeline) enrich(ctx context.Context, articles []domain.ArticleRecord) ([]domain.ArticleRecord, error) {
	if p.extractor == nil || len(articles) == 0 {
		return articles, nil
	}

	out := make([]domain.ArticleRecord, len(articles))
	copy(out, articles)
	for i := range out {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("extract articles: %w", err)
		}
		if out[i].URL == "" {
			continue
		}
		text, err := p.extractor.Extract(ctx, out[i].URL)
		if err != nil {
			p.logger.Debug("extraction failed, keeping description", "url", out[i].URL, "error", err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if p.extractMaxChars > 0 && utf8.RuneCountInString(text) > p.extractMaxChars {
			text = string([]rune(text)[:p.extractMaxChars])
		}
		out[i].FullText = text
	}
	return out, nil
}
