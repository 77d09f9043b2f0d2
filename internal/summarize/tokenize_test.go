package summarize

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		min  int
		want []string
	}{
		{
			name: "punctuation boundaries",
			in:   "First sentence here! Second sentence here? Third one.",
			min:  1,
			want: []string{"First sentence here!", "Second sentence here?", "Third one."},
		},
		{
			name: "decimal numbers are not boundaries",
			in:   "Shares rose 3.5 percent today. Then they fell.",
			min:  1,
			want: []string{"Shares rose 3.5 percent today.", "Then they fell."},
		},
		{
			name: "short fragments dropped",
			in:   "Ok. This sentence is long enough to keep.",
			min:  20,
			want: []string{"This sentence is long enough to keep."},
		},
		{
			name: "unterminated tail kept",
			in:   "Headline without a period at the end",
			min:  1,
			want: []string{"Headline without a period at the end"},
		},
		{
			name: "whitespace collapsed",
			in:   "Line one\n   continues here...  Next!",
			min:  1,
			want: []string{"Line one continues here...", "Next!"},
		},
		{
			name: "empty",
			in:   "   ",
			min:  1,
			want: nil,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := SplitSentences(tc.in, tc.min)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SplitSentences(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestWordsStripsPunctuation(t *testing.T) {
	t.Parallel()

	got := Words("Hello, World! It's 2024 (again).")
	want := []string{"hello", "world", "it", "s", "2024", "again"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Words = %#v, want %#v", got, want)
	}
}

func TestScoreWordsNormalises(t *testing.T) {
	t.Parallel()

	w := ScoreWords([]string{"Rates rise. Rates fall.", "The rates held at zero."}, DefaultStopWords(), 3)

	if got := w.Weight("rates"); got != 1 {
		t.Fatalf("expected rates weight 1, got %v", got)
	}
	if got := w.Weight("rise"); got < 0.33 || got > 0.34 {
		t.Fatalf("expected rise weight 1/3, got %v", got)
	}
	if got := w.Weight("the"); got != 0 {
		t.Fatalf("stopword should have no weight, got %v", got)
	}
	if got := w.Weight("at"); got != 0 {
		t.Fatalf("short word should have no weight, got %v", got)
	}
	for word := range w.counts {
		if weight := w.Weight(word); weight <= 0 || weight > 1 {
			t.Fatalf("weight of %q out of range: %v", word, weight)
		}
	}
}

func TestScoreWordsEmptyInput(t *testing.T) {
	t.Parallel()

	w := ScoreWords(nil, DefaultStopWords(), 3)
	if len(w.counts) != 0 {
		t.Fatalf("expected empty weights, got %d", len(w.counts))
	}
	if top := w.Top(5); len(top) != 0 {
		t.Fatalf("expected no top words, got %v", top)
	}
}

func TestStopWordsWith(t *testing.T) {
	t.Parallel()

	base := NewStopWords("alpha")
	extended := base.With(" Beta ")

	if !extended.Contains("beta") || !extended.Contains("alpha") {
		t.Fatalf("extended set missing words: %v", extended)
	}
	if base.Contains("beta") {
		t.Fatalf("base set must not be modified")
	}
	var nilSet StopWords
	if nilSet.Contains("alpha") {
		t.Fatalf("nil set must be empty")
	}
}
