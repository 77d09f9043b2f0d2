// Package extractor pulls readable body text out of article pages.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"NewsTimeline/internal/ports"
)

const (
	defaultUserAgent  = "Mozilla/5.0 (compatible; NewsTimeline/1.0)"
	maxPageBytes      = 4 << 20
	minParagraphChars = 40
	// minReadableChars is the shortest readability output accepted before
	// falling back to paragraph scraping.
	minReadableChars  = 200
)

// ReadabilityExtractor fetches a page and extracts its article text.
type ReadabilityExtractor struct {
	client    *http.Client
	userAgent string
	maxChars  int
}

var _ ports.ContentExtractor = (*ReadabilityExtractor)(nil)

// NewReadabilityExtractor creates an extractor with a request timeout;
// maxChars caps the returned text, 0 keeps it whole.
func NewReadabilityExtractor(client *http.Client, timeout time.Duration, userAgent string, maxChars int) *ReadabilityExtractor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &ReadabilityExtractor{client: client, userAgent: userAgent, maxChars: maxChars}
}

// Extract returns the article text of rawURL.
func (e *ReadabilityExtractor) Extract(ctx context.Context, rawURL string) (string, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return "", fmt.Errorf("unsupported article url %q", rawURL)
	}

	body, err := e.fetch(ctx, pageURL.String())
	if err != nil {
		return "", err
	}

	text := ""
	if article, err := readability.FromReader(bytes.NewReader(body), pageURL); err == nil {
		text = normalize(article.TextContent)
	}
	if utf8.RuneCountInString(text) < minReadableChars {
		if fallback := paragraphs(body); utf8.RuneCountInString(fallback) > utf8.RuneCountInString(text) {
			text = fallback
		}
	}
	if utf8.RuneCountInString(text) < minParagraphChars {
		return "", fmt.Errorf("no article text found at %s", rawURL)
	}

	return truncate(text, e.maxChars), nil
}

func (e *ReadabilityExtractor) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("article returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read article: %w", err)
	}
	return body, nil
}

// paragraphs joins the substantial <p> blocks of a page.
func paragraphs(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	doc.Find("script, style, nav, header, footer, aside").Remove()

	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := normalize(p.Text())
		if utf8.RuneCountInString(text) >= minParagraphChars {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(input string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(input) <= limit {
		return input
	}
	return string([]rune(input)[:limit])
}
