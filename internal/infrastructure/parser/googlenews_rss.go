package parser

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"NewsTimeline/internal/domain"
	"NewsTimeline/internal/scanner"
)

// RSSScanner queries the Google News RSS search feed.
type RSSScanner struct {
	http HTTPConfig
}

// NewRSSScanner wires the HTTP settings used for feed requests.
func NewRSSScanner(cfg HTTPConfig) *RSSScanner {
	return &RSSScanner{http: cfg.withDefaults()}
}

// Name identifies the strategy inside the registry.
func (s *RSSScanner) Name() string {
	return "googlenews_rss"
}

// Scan fetches the feed for req.Keyword and converts items to records.
func (s *RSSScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.ArticleRecord, error) {
	feedURL, err := buildFeedURL(req)
	if err != nil {
		return nil, err
	}

	body, err := fetchBody(ctx, s.http, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch rss: %w", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse rss: %w", err)
	}

	records := make([]domain.ArticleRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		record := convertItem(item)
		if !inWindow(record.PublishedAt, req.Window.Start, req.Window.End) {
			continue
		}
		records = append(records, record)
		if req.MaxResults > 0 && len(records) >= req.MaxResults {
			break
		}
	}
	return records, nil
}

func convertItem(item *gofeed.Item) domain.ArticleRecord {
	title, publisher := splitTitle(cleanText(item.Title))
	if publisher == "" && item.Author != nil {
		publisher = strings.TrimSpace(item.Author.Name)
	}

	record := domain.ArticleRecord{
		Title:       title,
		Publisher:   publisher,
		URL:         strings.TrimSpace(item.Link),
		Description: cleanText(item.Description),
	}
	if item.PublishedParsed != nil {
		record.PublishedAt = item.PublishedParsed.UTC()
	} else if item.UpdatedParsed != nil {
		record.PublishedAt = item.UpdatedParsed.UTC()
	}

	return record
}

func buildFeedURL(req scanner.Request) (string, error) {
	base, err := baseURL(req.BaseURL)
	if err != nil {
		return "", err
	}
	base.Path += "/rss/search"

	q := strings.TrimSpace(req.Keyword)
	if req.DaysBack > 0 {
		q += " when:" + strconv.Itoa(req.DaysBack) + "d"
	}
	hl, gl, ceid := locale(req.Language, req.Country)

	values := url.Values{}
	values.Set("q", q)
	values.Set("hl", hl)
	values.Set("gl", gl)
	values.Set("ceid", ceid)
	base.RawQuery = values.Encode()
	return base.String(), nil
}
