package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(addrEnv, "")
	t.Setenv(cacheDriverEnv, "")

	cfg := Load()

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Search.MinDaysBack != 7 || cfg.Search.MaxDaysBack != 90 || cfg.Search.DefaultMaxArticles != 20 {
		t.Fatalf("unexpected search limits: %+v", cfg.Search)
	}
	if len(cfg.Providers.Sources) != 2 || cfg.Providers.Sources[0].Scanner != "googlenews_rss" {
		t.Fatalf("unexpected sources: %+v", cfg.Providers.Sources)
	}
	if cfg.Cache.Driver != "sqlite" || cfg.Cache.TTL != 24*time.Hour {
		t.Fatalf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Timeline.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", cfg.Timeline.Location())
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
server:
  addr: ":9000"
  allowedOrigins: ["https://news.example.org"]
logging:
  level: debug
providers:
  minResults: 5
  retry:
    baseDelay: 50ms
  sources:
    - name: web
      scanner: googlenews_html
summary:
  sentences: 4
timeline:
  timezone: Europe/Berlin
  eventArticles: 4
  minEventArticles: 2
cache:
  enabled: false
  ttl: 2h
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(addrEnv, ":7000")
	t.Setenv(countryEnv, "GB")

	cfg := Load()

	if cfg.Server.Addr != ":7000" {
		t.Fatalf("env should win over file, got %s", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://news.example.org" {
		t.Fatalf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
	if cfg.Providers.MinResults != 5 || cfg.Providers.Country != "GB" || cfg.Providers.Language != "en" {
		t.Fatalf("unexpected providers: %+v", cfg.Providers)
	}
	if cfg.Providers.Retry.BaseDelay != 50*time.Millisecond || cfg.Providers.Retry.MaxRetries != 2 {
		t.Fatalf("unexpected retry: %+v", cfg.Providers.Retry)
	}
	if len(cfg.Providers.Sources) != 1 || cfg.Providers.Sources[0].Name != "web" {
		t.Fatalf("unexpected sources: %+v", cfg.Providers.Sources)
	}
	if cfg.Summary.Sentences != 4 || cfg.Summary.KeyTopics != 8 {
		t.Fatalf("unexpected summary: %+v", cfg.Summary)
	}
	if cfg.Timeline.Location().String() != "Europe/Berlin" {
		t.Fatalf("unexpected location: %v", cfg.Timeline.Location())
	}
	if cfg.Timeline.EventArticles != 4 || cfg.Timeline.MinEventArticles != 2 || cfg.Timeline.DenseMaxDays != 90 {
		t.Fatalf("unexpected timeline: %+v", cfg.Timeline)
	}
	if cfg.Cache.Enabled || cfg.Cache.TTL != 2*time.Hour || cfg.Cache.Driver != "sqlite" {
		t.Fatalf("unexpected cache: %+v", cfg.Cache)
	}
	if !cfg.Extraction.Enabled {
		t.Fatalf("extraction should stay enabled when its section is absent")
	}
}

func TestLoadDefaultMinEventArticles(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg := Load()
	if cfg.Timeline.MinEventArticles != 1 {
		t.Fatalf("expected events for every day by default, got %d", cfg.Timeline.MinEventArticles)
	}
}

func TestLoadDisableOnlySections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
extraction:
  enabled: false
cache:
  enabled: false
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()

	if cfg.Extraction.Enabled {
		t.Fatalf("extraction should be disabled: %+v", cfg.Extraction)
	}
	if cfg.Cache.Enabled {
		t.Fatalf("cache should be disabled: %+v", cfg.Cache)
	}
	if cfg.Extraction.MaxChars != 5000 || cfg.Cache.TTL != 24*time.Hour {
		t.Fatalf("other section defaults should survive: %+v %+v", cfg.Extraction, cfg.Cache)
	}
}

func TestLoadEnableWithoutOtherKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("cache:\n  enabled: true\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()
	if !cfg.Cache.Enabled || !cfg.Extraction.Enabled {
		t.Fatalf("expected both sections enabled: %+v %+v", cfg.Cache, cfg.Extraction)
	}
}

func TestLoadRejectsInvertedSearchLimits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
search:
  minDaysBack: 60
  maxDaysBack: 14
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()
	if cfg.Search != defaultConfig().Search {
		t.Fatalf("expected default search limits, got %+v", cfg.Search)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*SearchConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*SearchConfig) {}},
		{name: "inverted days", mutate: func(s *SearchConfig) { s.MinDaysBack, s.MaxDaysBack = 90, 7 }, wantErr: true},
		{name: "default days outside range", mutate: func(s *SearchConfig) { s.DefaultDaysBack = 120 }, wantErr: true},
		{name: "inverted articles", mutate: func(s *SearchConfig) { s.MinMaxArticles = 60 }, wantErr: true},
		{name: "default articles below range", mutate: func(s *SearchConfig) { s.DefaultMaxArticles = 5 }, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(&cfg.Search)
			err := validate(&cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadInvalidFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(addrEnv, "")

	cfg := Load()
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected defaults, got %s", cfg.Server.Addr)
	}
}

func TestBindTimezoneUnknown(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Timeline.Timezone = "Mars/Olympus"
	cfg.bindTimezone()

	if cfg.Timeline.Timezone != defaultTimezone || cfg.Timeline.Location() != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", cfg.Timeline.Timezone)
	}
}
