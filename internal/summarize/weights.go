package summarize

import "sort"

// Weights maps content words to their frequency normalised by the most
// frequent word, so every weight lies in (0, 1].
type Weights struct {
	counts map[string]int
	order  []string
	max    int
}

// ScoreWords counts content words across all texts.
func ScoreWords(texts []string, stop StopWords, minLen int) Weights {
	w := Weights{counts: map[string]int{}}
	for _, text := range texts {
		for _, word := range ContentWords(text, stop, minLen) {
			if _, seen := w.counts[word]; !seen {
				w.order = append(w.order, word)
			}
			w.counts[word]++
			if w.counts[word] > w.max {
				w.max = w.counts[word]
			}
		}
	}
	return w
}

// Weight returns the normalised weight of word, 0 when unknown.
func (w Weights) Weight(word string) float64 {
	if w.max == 0 {
		return 0
	}
	return float64(w.counts[word]) / float64(w.max)
}

// Top returns up to k words by descending weight. Equal weights keep the
// order in which the words first appeared in the corpus.
func (w Weights) Top(k int) []string {
	if k <= 0 || len(w.order) == 0 {
		return []string{}
	}
	ranked := make([]string, len(w.order))
	copy(ranked, w.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return w.counts[ranked[i]] > w.counts[ranked[j]]
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
