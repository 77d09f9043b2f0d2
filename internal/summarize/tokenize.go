package summarize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitSentences breaks text at runs of '.', '!' or '?' that are followed by
// whitespace or the end of the text. Terminal punctuation stays with the
// sentence. Sentences shorter than minChars runes are dropped.
func SplitSentences(text string, minChars int) []string {
	var (
		sentences []string
		start     int
	)

	emit := func(end int) {
		s := strings.Join(strings.Fields(text[start:end]), " ")
		if s != "" && utf8.RuneCountInString(s) >= minChars {
			sentences = append(sentences, s)
		}
		start = end
	}

	for i := 0; i < len(text); i++ {
		if !isTerminator(text[i]) {
			continue
		}
		j := i
		for j+1 < len(text) && isTerminator(text[j+1]) {
			j++
		}
		r, _ := utf8.DecodeRuneInString(text[j+1:])
		if j+1 == len(text) || unicode.IsSpace(r) {
			emit(j + 1)
		}
		i = j
	}
	if start < len(text) {
		emit(len(text))
	}

	return sentences
}

func isTerminator(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// Words returns the lowercased letter/digit tokens of text.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContentWords filters Words down to the tokens that carry weight: not a
// stopword and at least minLen runes long.
func ContentWords(text string, stop StopWords, minLen int) []string {
	words := Words(text)
	out := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) < minLen || stop.Contains(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}
