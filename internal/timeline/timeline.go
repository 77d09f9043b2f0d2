// Package timeline buckets articles by calendar day and derives chart data,
// display events and coverage statistics from the buckets.
package timeline

import (
	"sort"
	"time"

	"NewsTimeline/internal/domain"
)

const dateKeyLayout = "2006-01-02"

// Options controls bucketing.
//
// DenseMaxDays is the gap-fill threshold: when the days between the first and
// the last non-empty bucket number at most DenseMaxDays, missing days are
// emitted as zero-count buckets so the chart axis has no holes. Longer spans
// emit only non-empty days.
type Options struct {
	Location         *time.Location
	DenseMaxDays     int
	MinEventArticles int
	EventArticles    int
}

// DefaultOptions returns UTC, 90-day dense threshold, events for every
// non-empty day with three drill-down articles each.
func DefaultOptions() Options {
	return Options{
		Location:         time.UTC,
		DenseMaxDays:     90,
		MinEventArticles: 1,
		EventArticles:    3,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Location == nil {
		o.Location = def.Location
	}
	if o.DenseMaxDays < 0 {
		o.DenseMaxDays = 0
	}
	if o.MinEventArticles <= 0 {
		o.MinEventArticles = def.MinEventArticles
	}
	if o.EventArticles <= 0 {
		o.EventArticles = def.EventArticles
	}
	return o
}

// Builder turns article lists into timelines.
type Builder struct {
	opts Options
}

// New returns a Builder using opts.
func New(opts Options) *Builder {
	return &Builder{opts: opts.withDefaults()}
}

// Build buckets the articles published inside window and derives the chart
// series and events. Articles without a parseable date or outside the window
// are not bucketed.
func (b *Builder) Build(articles []domain.ArticleRecord, window domain.Window) domain.Timeline {
	buckets, dense := b.Buckets(articles, window)
	events := b.Events(buckets)

	return domain.Timeline{
		Buckets:   buckets,
		Chart:     Chart(buckets, events),
		Events:    events,
		DateRange: dateRange(buckets),
		Dense:     dense,
	}
}

// Buckets groups in-window articles by calendar date, ascending. The second
// return value reports whether gaps were filled.
func (b *Builder) Buckets(articles []domain.ArticleRecord, window domain.Window) ([]domain.DayBucket, bool) {
	byDay := map[time.Time]*domain.DayBucket{}
	for _, a := range articles {
		if !a.HasDate() || !window.Contains(a.PublishedAt) {
			continue
		}
		day := b.day(a.PublishedAt)
		bucket, ok := byDay[day]
		if !ok {
			bucket = &domain.DayBucket{Date: day}
			byDay[day] = bucket
		}
		bucket.Articles = append(bucket.Articles, a)
		bucket.Count++
	}

	if len(byDay) == 0 {
		return []domain.DayBucket{}, false
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	first, last := days[0], days[len(days)-1]
	if DaysBetween(first, last) > b.opts.DenseMaxDays {
		out := make([]domain.DayBucket, 0, len(days))
		for _, day := range days {
			out = append(out, *byDay[day])
		}
		return out, false
	}

	var out []domain.DayBucket
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if bucket, ok := byDay[day]; ok {
			out = append(out, *bucket)
			continue
		}
		out = append(out, domain.DayBucket{Date: day, Articles: []domain.ArticleRecord{}})
	}
	return out, true
}

func (b *Builder) day(t time.Time) time.Time {
	local := t.In(b.opts.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, b.opts.Location)
}

// DaysBetween counts calendar days from a to b, both already truncated to
// midnight in the same location. It is DST-safe.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func dateRange(buckets []domain.DayBucket) string {
	var first, last time.Time
	for _, bucket := range buckets {
		if bucket.Count == 0 {
			continue
		}
		if first.IsZero() {
			first = bucket.Date
		}
		last = bucket.Date
	}
	if first.IsZero() {
		return ""
	}
	return first.Format(formattedLayout) + " - " + last.Format(formattedLayout)
}
