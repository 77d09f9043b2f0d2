package parser

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsTimeline/internal/domain"
	"NewsTimeline/internal/scanner"
)

// HTMLScanner scrapes the Google News search page. It is the fallback when
// the feed comes back short.
type HTMLScanner struct {
	http HTTPConfig
	now  func() time.Time
}

// NewHTMLScanner wires the HTTP settings; now defaults to time.Now and
// anchors relative labels such as "2 hours ago".
func NewHTMLScanner(cfg HTTPConfig, now func() time.Time) *HTMLScanner {
	if now == nil {
		now = time.Now
	}
	return &HTMLScanner{http: cfg.withDefaults(), now: now}
}

// Name identifies the strategy inside the registry.
func (s *HTMLScanner) Name() string {
	return "googlenews_html"
}

// Scan fetches the search page and extracts one record per article element.
func (s *HTMLScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.ArticleRecord, error) {
	pageURL, base, err := buildSearchURL(req)
	if err != nil {
		return nil, err
	}

	body, err := fetchBody(ctx, s.http, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch search page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return s.extractArticles(doc, base, req), nil
}

func (s *HTMLScanner) extractArticles(doc *goquery.Document, base *url.URL, req scanner.Request) []domain.ArticleRecord {
	now := s.now()
	seen := map[string]struct{}{}
	var collected []domain.ArticleRecord

	doc.Find("article").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		record, ok := parseArticle(el, base, now)
		if !ok {
			return true
		}
		if !inWindow(record.PublishedAt, req.Window.Start, req.Window.End) {
			return true
		}
		key := record.URL + "|" + record.Title
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		collected = append(collected, record)
		return req.MaxResults <= 0 || len(collected) < req.MaxResults
	})

	return collected
}

func parseArticle(el *goquery.Selection, base *url.URL, now time.Time) (domain.ArticleRecord, bool) {
	link := el.Find("a.gPFEn").First()
	if link.Length() == 0 {
		link = el.Find("h3, h4").First()
	}
	title := cleanText(link.Text())
	if title == "" {
		return domain.ArticleRecord{}, false
	}

	href, ok := link.Attr("href")
	if !ok {
		href, ok = link.Find("a").First().Attr("href")
	}
	articleURL := ""
	if ok && href != "" {
		if ref, err := url.Parse(href); err == nil {
			articleURL = base.ResolveReference(ref).String()
		}
	}

	publisher := cleanText(el.Find("[data-n-tid]").First().Text())
	if publisher == "" {
		publisher = cleanText(el.Find("div.vr1PYe").First().Text())
	}

	var publishedAt time.Time
	timeEl := el.Find("time").First()
	if dt, ok := timeEl.Attr("datetime"); ok {
		if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(dt)); err == nil {
			publishedAt = parsed.UTC()
		}
	}
	if publishedAt.IsZero() {
		label := timeEl.Text()
		if strings.TrimSpace(label) == "" {
			label = el.Find("div.UOVeFe").First().Text()
		}
		publishedAt = parseRelative(label, now)
	}

	description := cleanText(el.Find("p").First().Text())
	if description == "" {
		description = cleanText(el.Find("span.xBbh9").First().Text())
	}

	return domain.ArticleRecord{
		Title:       title,
		Publisher:   publisher,
		URL:         articleURL,
		PublishedAt: publishedAt,
		Description: description,
	}, true
}

func buildSearchURL(req scanner.Request) (string, *url.URL, error) {
	base, err := baseURL(req.BaseURL)
	if err != nil {
		return "", nil, err
	}
	page := *base
	page.Path += "/search"

	hl, gl, ceid := locale(req.Language, req.Country)
	values := url.Values{}
	values.Set("q", strings.TrimSpace(req.Keyword))
	values.Set("hl", hl)
	values.Set("gl", gl)
	values.Set("ceid", ceid)
	page.RawQuery = values.Encode()

	root := *base
	root.Path += "/"
	return page.String(), &root, nil
}
