package domain

import "time"

// ArticleRecord is a single news item as returned by a news source.
// A zero PublishedAt means the source gave no parseable date.
type ArticleRecord struct {
	Title       string    `json:"title"`
	Publisher   string    `json:"publisher"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	Description string    `json:"description"`
	FullText    string    `json:"full_text,omitempty"`
}

// HasDate reports whether the record carries a usable publication time.
func (a ArticleRecord) HasDate() bool {
	return !a.PublishedAt.IsZero()
}

// Text returns the body used for summarization: full text when extracted,
// the feed description otherwise.
func (a ArticleRecord) Text() string {
	if a.FullText != "" {
		return a.FullText
	}
	return a.Description
}

// Window is an inclusive publication-time range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WindowFor returns the window covering the last daysBack days up to now.
func WindowFor(now time.Time, daysBack int) Window {
	return Window{
		Start: now.Add(-time.Duration(daysBack) * 24 * time.Hour),
		End:   now,
	}
}

// Query is what the pipeline asks a news source for.
type Query struct {
	Keyword    string
	DaysBack   int
	Window     Window
	MaxResults int
}
