package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

const articlePage = `<!DOCTYPE html>
<html><head><title>Harbour bridge reopens</title></head>
<body>
<nav><a href="/">Home</a> <a href="/world">World</a></nav>
<article>
  <h1>Harbour bridge reopens after two years of repairs</h1>
  <p>The harbour bridge reopened to traffic on Saturday morning after two years of structural repairs, city officials said in a statement released before dawn.</p>
  <p>Engineers replaced more than four hundred steel cables and resurfaced the entire deck, work that was delayed twice by supply shortages and a winter storm.</p>
  <p>Commuters lined up before sunrise to be among the first to cross, and several local businesses on both banks reported their busiest morning in months.</p>
</article>
<footer><p>Copyright notice and a long list of legal links that should not be part of the article.</p></footer>
</body></html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/article":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(articlePage))
		case "/empty":
			_, _ = w.Write([]byte(`<html><body><div>menu</div></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExtractArticle(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	ex := NewReadabilityExtractor(server.Client(), time.Second, "", 0)

	text, err := ex.Extract(context.Background(), server.URL+"/article")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "four hundred steel cables") {
		t.Fatalf("expected article body, got %q", text)
	}
	if strings.Contains(text, "\n") || strings.Contains(text, "  ") {
		t.Fatalf("expected collapsed whitespace, got %q", text)
	}
}

func TestExtractTruncates(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	ex := NewReadabilityExtractor(server.Client(), time.Second, "", 50)

	text, err := ex.Extract(context.Background(), server.URL+"/article")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if utf8.RuneCountInString(text) != 50 {
		t.Fatalf("expected 50 runes, got %d", utf8.RuneCountInString(text))
	}
}

func TestExtractErrors(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	ex := NewReadabilityExtractor(server.Client(), time.Second, "", 0)

	for _, target := range []string{
		server.URL + "/missing",
		server.URL + "/empty",
		"ftp://example.com/file",
		"#",
	} {
		if _, err := ex.Extract(context.Background(), target); err == nil {
			t.Fatalf("expected error for %s", target)
		}
	}
}

func TestParagraphsSkipsChrome(t *testing.T) {
	t.Parallel()

	got := paragraphs([]byte(articlePage))
	if strings.Contains(got, "Copyright") {
		t.Fatalf("footer text should be removed: %q", got)
	}
	if !strings.HasPrefix(got, "The harbour bridge reopened") {
		t.Fatalf("unexpected paragraphs: %q", got)
	}
}
