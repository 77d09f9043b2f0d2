// Package summarize builds extractive summaries from article text using
// normalised word frequencies.
package summarize

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"NewsTimeline/internal/domain"
)

const (
	overviewTopics     = 5
	mainSourcesLimit   = 5
	shortTextThreshold = 50
	dateRangeLayout    = "January 02, 2006"
)

// Options tunes the summarizer. Zero fields fall back to defaults.
type Options struct {
	Sentences           int
	KeyTopics           int
	MinWordLength       int
	MinSentenceChars    int
	RedundancyThreshold float64
	StopWords           StopWords
}

// DefaultOptions returns the settings used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		Sentences:           3,
		KeyTopics:           8,
		MinWordLength:       3,
		MinSentenceChars:    20,
		RedundancyThreshold: 0.7,
		StopWords:           DefaultStopWords(),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Sentences <= 0 {
		o.Sentences = def.Sentences
	}
	if o.KeyTopics <= 0 {
		o.KeyTopics = def.KeyTopics
	}
	if o.MinWordLength <= 0 {
		o.MinWordLength = def.MinWordLength
	}
	if o.MinSentenceChars <= 0 {
		o.MinSentenceChars = def.MinSentenceChars
	}
	if o.RedundancyThreshold <= 0 || o.RedundancyThreshold > 1 {
		o.RedundancyThreshold = def.RedundancyThreshold
	}
	if o.StopWords == nil {
		o.StopWords = def.StopWords
	}
	return o
}

// Summarizer ranks sentences by word-frequency score. It holds no mutable
// state and is safe for concurrent use.
type Summarizer struct {
	opts Options
}

// New returns a Summarizer using opts.
func New(opts Options) *Summarizer {
	return &Summarizer{opts: opts.withDefaults()}
}

type candidate struct {
	domain.ScoredSentence
	words map[string]struct{}
}

// Story builds the story-level summary for a set of articles.
func (s *Summarizer) Story(articles []domain.ArticleRecord) domain.SummaryResult {
	result := domain.SummaryResult{
		KeyPoints:    []string{},
		MainSources:  []string{},
		ArticleCount: len(articles),
	}
	if len(articles) == 0 {
		return result
	}

	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = a.Text()
	}

	weights := ScoreWords(texts, s.opts.StopWords, s.opts.MinWordLength)
	candidates := s.candidates(texts, weights)

	result.Summary = joinSentences(s.selectTop(candidates, s.opts.Sentences))
	result.KeyPoints = weights.Top(s.opts.KeyTopics)
	result.MainSources = mainSources(articles, mainSourcesLimit)
	result.DateRange = DateRange(articles)
	result.Overview = overview(articles, result.KeyPoints)

	return result
}

// Text summarizes a single text down to n sentences. Short texts and texts
// with no more than n sentences are returned unchanged.
func (s *Summarizer) Text(text string, n int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < shortTextThreshold || n <= 0 {
		return text
	}

	sentences := SplitSentences(text, s.opts.MinSentenceChars)
	if len(sentences) <= n {
		return text
	}

	weights := ScoreWords(sentences, s.opts.StopWords, s.opts.MinWordLength)
	candidates := s.candidates([]string{text}, weights)
	return joinSentences(s.selectTop(candidates, n))
}

func (s *Summarizer) candidates(texts []string, weights Weights) []candidate {
	var (
		out      []candidate
		position int
	)
	for idx, text := range texts {
		for _, sentence := range SplitSentences(text, s.opts.MinSentenceChars) {
			words := ContentWords(sentence, s.opts.StopWords, s.opts.MinWordLength)
			set := make(map[string]struct{}, len(words))
			var score float64
			for _, w := range words {
				score += weights.Weight(w)
				set[w] = struct{}{}
			}
			if len(words) > 0 {
				score /= float64(len(words))
			}
			out = append(out, candidate{
				ScoredSentence: domain.ScoredSentence{
					Text:               sentence,
					Score:              score,
					SourceArticleIndex: idx,
					Position:           position,
				},
				words: set,
			})
			position++
		}
	}
	return out
}

// selectTop picks up to n non-redundant candidates by score and returns them
// in original order.
func (s *Summarizer) selectTop(candidates []candidate, n int) []candidate {
	ranked := make([]candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Position < ranked[j].Position
	})

	var picked []candidate
	for _, c := range ranked {
		if len(picked) == n {
			break
		}
		if s.redundant(c, picked) {
			continue
		}
		picked = append(picked, c)
	}

	sort.Slice(picked, func(i, j int) bool {
		return picked[i].Position < picked[j].Position
	})
	return picked
}

func (s *Summarizer) redundant(c candidate, picked []candidate) bool {
	for _, p := range picked {
		if strings.EqualFold(c.Text, p.Text) {
			return true
		}
		if jaccard(c.words, p.words) >= s.opts.RedundancyThreshold {
			return true
		}
	}
	return false
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var shared int
	for w := range a {
		if _, ok := b[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(a)+len(b)-shared)
}

func joinSentences(cs []candidate) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}

func mainSources(articles []domain.ArticleRecord, limit int) []string {
	counts := map[string]int{}
	var order []string
	for _, a := range articles {
		name := strings.TrimSpace(a.Publisher)
		if name == "" {
			name = "Unknown"
		}
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

func overview(articles []domain.ArticleRecord, topics []string) string {
	sources := map[string]struct{}{}
	for _, a := range articles {
		key := strings.ToLower(strings.TrimSpace(a.Publisher))
		if key == "" {
			key = "unknown"
		}
		sources[key] = struct{}{}
	}

	text := fmt.Sprintf("Based on %d articles from %d news sources", len(articles), len(sources))
	if len(topics) == 0 {
		return text + "."
	}
	if len(topics) > overviewTopics {
		topics = topics[:overviewTopics]
	}
	return fmt.Sprintf("%s, key topics include: %s.", text, strings.Join(topics, ", "))
}

// DateRange formats the span of publication dates, or "" if none is known.
func DateRange(articles []domain.ArticleRecord) string {
	var first, last time.Time
	for _, a := range articles {
		if !a.HasDate() {
			continue
		}
		if first.IsZero() || a.PublishedAt.Before(first) {
			first = a.PublishedAt
		}
		if last.IsZero() || a.PublishedAt.After(last) {
			last = a.PublishedAt
		}
	}
	if first.IsZero() {
		return ""
	}
	return first.Format(dateRangeLayout) + " - " + last.Format(dateRangeLayout)
}
