package summarize

import "strings"

// StopWords is a set of lowercased words ignored by the scorer.
type StopWords map[string]struct{}

var defaultStopWords = []string{
	"a", "about", "after", "all", "also", "an", "and", "any", "are", "as", "at",
	"be", "because", "been", "before", "being", "but", "by",
	"can", "could", "did", "does", "during", "each", "for", "from",
	"had", "has", "have", "he", "her", "here", "his", "how",
	"i", "if", "in", "into", "is", "it", "its", "just",
	"more", "most", "new", "not", "now", "of", "on", "one", "only", "or", "other", "our", "out", "over",
	"said", "says", "she", "should", "so", "some", "such",
	"than", "that", "the", "their", "them", "then", "there", "these", "they", "this", "those", "through", "to",
	"under", "up", "us", "very", "was", "we", "were", "what", "when", "where", "which", "while", "who", "why",
	"will", "with", "would", "you", "your",
}

// DefaultStopWords returns a fresh copy of the built-in English list.
func DefaultStopWords() StopWords {
	return NewStopWords(defaultStopWords...)
}

// NewStopWords builds a set from the given words.
func NewStopWords(words ...string) StopWords {
	set := make(StopWords, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// With returns a copy of the set extended by extra words.
func (s StopWords) With(extra ...string) StopWords {
	out := make(StopWords, len(s)+len(extra))
	for w := range s {
		out[w] = struct{}{}
	}
	for w := range NewStopWords(extra...) {
		out[w] = struct{}{}
	}
	return out
}

// Contains reports whether w is a stopword. A nil set contains nothing.
func (s StopWords) Contains(w string) bool {
	_, ok := s[w]
	return ok
}
