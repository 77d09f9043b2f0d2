package parser

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"NewsTimeline/internal/retry"
)

const (
	defaultBaseURL   = "https://news.google.com"
	defaultUserAgent = "Mozilla/5.0 (compatible; NewsTimeline/1.0)"
	maxBodyBytes     = 5 << 20
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	numberExpr   = regexp.MustCompile(`\d+`)
)

// HTTPConfig tunes outbound requests of the scanners.
type HTTPConfig struct {
	Client    *http.Client
	UserAgent string
	Retry     retry.Config
}

func (c HTTPConfig) withDefaults() HTTPConfig {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	return c
}

// fetchBody GETs target with retries and returns at most maxBodyBytes.
func fetchBody(ctx context.Context, cfg HTTPConfig, target string) ([]byte, error) {
	var body []byte
	err := retry.WithBackoff(ctx, cfg.Retry, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("User-Agent", cfg.UserAgent)

		resp, err := cfg.Client.Do(req)
		if err != nil {
			return fmt.Errorf("request %s: %w", target, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &retry.StatusError{Code: resp.StatusCode, URL: target}
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	})
	return body, err
}

// locale derives the hl/gl/ceid query values Google News expects.
func locale(language, country string) (hl, gl, ceid string) {
	if language == "" {
		language = "en"
	}
	if country == "" {
		country = "US"
	}
	country = strings.ToUpper(country)
	return language + "-" + country, country, country + ":" + language
}

func baseURL(raw string) (*url.URL, error) {
	if raw == "" {
		raw = defaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %s: %w", raw, err)
	}
	return parsed, nil
}

// cleanText strips markup, decodes entities and collapses whitespace.
func cleanText(s string) string {
	s = strictPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// splitTitle separates the " - Publisher" suffix Google News appends to titles.
func splitTitle(title string) (headline, publisher string) {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 {
		return strings.TrimSpace(title), ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}

// parseRelative turns "3 hours ago" style labels into a time before now.
// Unrecognised labels yield the zero time.
func parseRelative(label string, now time.Time) time.Time {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return time.Time{}
	}
	if label == "yesterday" {
		return now.AddDate(0, 0, -1)
	}

	n := 1
	if m := numberExpr.FindString(label); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil {
			return time.Time{}
		}
		n = v
	}

	switch {
	case strings.Contains(label, "min"):
		return now.Add(-time.Duration(n) * time.Minute)
	case strings.Contains(label, "hour"):
		return now.Add(-time.Duration(n) * time.Hour)
	case strings.Contains(label, "day"):
		return now.AddDate(0, 0, -n)
	case strings.Contains(label, "week"):
		return now.AddDate(0, 0, -7*n)
	case strings.Contains(label, "month"):
		return now.AddDate(0, 0, -30*n)
	default:
		return time.Time{}
	}
}

// inWindow keeps undated records and those published within [start, end].
func inWindow(t time.Time, start, end time.Time) bool {
	if t.IsZero() || start.IsZero() || end.IsZero() {
		return true
	}
	return !t.Before(start) && !t.After(end)
}
