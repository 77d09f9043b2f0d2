package handler

import "NewsTimeline/internal/domain"

// SearchRequest is the JSON body accepted by POST /search.
type SearchRequest struct {
	Keyword     string `json:"keyword"`
	DaysBack    int    `json:"days_back"`
	MaxArticles int    `json:"max_articles"`
}

// SearchResponse is the JSON body returned by POST /search.
type SearchResponse struct {
	Success       bool                 `json:"success"`
	Keyword       string               `json:"keyword"`
	Message       string               `json:"message,omitempty"`
	StorySummary  domain.SummaryResult `json:"story_summary"`
	CoverageStats domain.CoverageStats `json:"coverage_stats"`
	Timeline      domain.Timeline      `json:"timeline"`
	Articles      []domain.ArticleView `json:"articles"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (r SearchRequest) toDomain() domain.SearchRequest {
	return domain.SearchRequest{
		Keyword:     r.Keyword,
		DaysBack:    r.DaysBack,
		MaxArticles: r.MaxArticles,
	}
}

func toSearchResponse(res domain.Result) SearchResponse {
	out := SearchResponse{
		Success:       true,
		Keyword:       res.Keyword,
		StorySummary:  res.StorySummary,
		CoverageStats: res.CoverageStats,
		Timeline:      res.Timeline,
		Articles:      res.Articles,
	}
	if out.Articles == nil {
		out.Articles = []domain.ArticleView{}
	}
	if res.CoverageStats.TotalArticles == 0 {
		out.Message = "No articles found for this keyword. Try a different search term or a longer time range."
	}
	return out
}
