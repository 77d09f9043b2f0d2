package summarize

import (
	"strings"
	"testing"
	"time"

	"NewsTimeline/internal/domain"
)

func sampleArticles() []domain.ArticleRecord {
	return []domain.ArticleRecord{
		{
			Title:       "Rover finds water ice",
			Publisher:   "Reuters",
			PublishedAt: time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC),
			Description: "The Mars rover detected water ice near the crater rim. Scientists called the water ice discovery a milestone. The weather on Earth was mild that day.",
		},
		{
			Title:       "Water ice confirmed",
			Publisher:   "BBC",
			PublishedAt: time.Date(2024, time.January, 6, 12, 0, 0, 0, time.UTC),
			Description: "Mission scientists confirmed the rover water ice readings on Saturday. A football match ended in a draw elsewhere in town.",
		},
	}
}

func TestStorySelectsHighestScoringSentences(t *testing.T) {
	t.Parallel()

	s := New(Options{Sentences: 2})
	res := s.Story(sampleArticles())

	if res.Summary == "" {
		t.Fatalf("expected non-empty summary")
	}
	if strings.Contains(res.Summary, "football") || strings.Contains(res.Summary, "weather") {
		t.Fatalf("low scoring sentence selected: %q", res.Summary)
	}
	if !strings.Contains(res.Summary, "water ice") {
		t.Fatalf("expected the water ice sentences, got %q", res.Summary)
	}
	if res.ArticleCount != 2 {
		t.Fatalf("expected article count 2, got %d", res.ArticleCount)
	}
	if res.DateRange != "January 05, 2024 - January 06, 2024" {
		t.Fatalf("unexpected date range: %q", res.DateRange)
	}
}

func TestStoryKeepsOriginalOrder(t *testing.T) {
	t.Parallel()

	articles := []domain.ArticleRecord{{
		Description: "Budget talks stalled in the senate chamber today. " +
			"Budget negotiators said budget talks would resume with budget experts. " +
			"Lunch was served at noon for every attendee present.",
	}}

	res := New(Options{Sentences: 2}).Story(articles)
	first := strings.Index(res.Summary, "stalled")
	second := strings.Index(res.Summary, "negotiators")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("sentences not in original order: %q", res.Summary)
	}
}

func TestStoryReturnsAllSentencesWhenFewerThanRequested(t *testing.T) {
	t.Parallel()

	articles := []domain.ArticleRecord{{Description: "Only one sentence lives in this article body."}}
	res := New(Options{Sentences: 5}).Story(articles)

	if res.Summary != "Only one sentence lives in this article body." {
		t.Fatalf("unexpected summary: %q", res.Summary)
	}
}

func TestStoryIsIdempotent(t *testing.T) {
	t.Parallel()

	s := New(DefaultOptions())
	first := s.Story(sampleArticles())
	second := s.Story(sampleArticles())

	if first.Summary != second.Summary {
		t.Fatalf("summary differs between runs: %q vs %q", first.Summary, second.Summary)
	}
	if strings.Join(first.KeyPoints, ",") != strings.Join(second.KeyPoints, ",") {
		t.Fatalf("key points differ: %v vs %v", first.KeyPoints, second.KeyPoints)
	}
}

func TestStoryWithoutText(t *testing.T) {
	t.Parallel()

	res := New(DefaultOptions()).Story([]domain.ArticleRecord{{Title: "headline only", Publisher: "AP"}})
	if res.Summary != "" {
		t.Fatalf("expected empty summary, got %q", res.Summary)
	}
	if len(res.KeyPoints) != 0 {
		t.Fatalf("expected no key points, got %v", res.KeyPoints)
	}

	empty := New(DefaultOptions()).Story(nil)
	if empty.Summary != "" || len(empty.KeyPoints) != 0 || empty.Overview != "" {
		t.Fatalf("expected empty result for no articles, got %+v", empty)
	}
}

func TestStoryKeyPointsAndSources(t *testing.T) {
	t.Parallel()

	res := New(Options{KeyTopics: 2}).Story(sampleArticles())
	if len(res.KeyPoints) != 2 {
		t.Fatalf("expected 2 key points, got %v", res.KeyPoints)
	}
	if res.KeyPoints[0] != "water" || res.KeyPoints[1] != "ice" {
		t.Fatalf("unexpected key points: %v", res.KeyPoints)
	}
	if len(res.MainSources) != 2 || res.MainSources[0] != "Reuters" {
		t.Fatalf("unexpected main sources: %v", res.MainSources)
	}
	if !strings.HasPrefix(res.Overview, "Based on 2 articles from 2 news sources, key topics include: water, ice") {
		t.Fatalf("unexpected overview: %q", res.Overview)
	}
}

func TestStorySkipsDuplicateSentences(t *testing.T) {
	t.Parallel()

	text := "Central bank raises interest rates again this week."
	articles := []domain.ArticleRecord{
		{Description: text},
		{Description: text},
		{Description: "Markets reacted calmly to the announcement from officials."},
	}

	res := New(Options{Sentences: 2}).Story(articles)
	if strings.Count(res.Summary, "Central bank") != 1 {
		t.Fatalf("duplicate sentence kept: %q", res.Summary)
	}
	if !strings.Contains(res.Summary, "Markets reacted") {
		t.Fatalf("expected second distinct sentence, got %q", res.Summary)
	}
}

func TestTextShortInputUnchanged(t *testing.T) {
	t.Parallel()

	s := New(DefaultOptions())
	if got := s.Text("Too short.", 2); got != "Too short." {
		t.Fatalf("unexpected: %q", got)
	}

	two := "The first sentence is long enough to count. The second one is long enough as well."
	if got := s.Text(two, 2); got != two {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestTextReducesToRequestedSentences(t *testing.T) {
	t.Parallel()

	text := "Artificial intelligence has made significant advances in recent years. " +
		"Machine learning models are now being used in various industries. " +
		"Many experts believe artificial intelligence will continue to revolutionize daily lives. " +
		"Researchers are working on making artificial intelligence more transparent."

	got := New(DefaultOptions()).Text(text, 2)
	if n := len(SplitSentences(got, 20)); n != 2 {
		t.Fatalf("expected 2 sentences, got %d: %q", n, got)
	}
}

func TestCandidatesCarrySourceIndex(t *testing.T) {
	t.Parallel()

	s := New(DefaultOptions())
	var texts []string
	for _, a := range sampleArticles() {
		texts = append(texts, a.Text())
	}
	scored := s.candidates(texts, ScoreWords(texts, s.opts.StopWords, s.opts.MinWordLength))
	if len(scored) != 5 {
		t.Fatalf("expected 5 sentences, got %d", len(scored))
	}
	if scored[0].SourceArticleIndex != 0 || scored[4].SourceArticleIndex != 1 {
		t.Fatalf("unexpected source indexes: %+v", scored)
	}
	for i, c := range scored {
		if c.Position != i {
			t.Fatalf("position %d out of order: %+v", i, c.ScoredSentence)
		}
	}
}
