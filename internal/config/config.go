package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"NewsTimeline/internal/retry"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "NEWS_TIMELINE_CONFIG"
	addrEnv         = "NEWS_TIMELINE_ADDR"
	logLevelEnv     = "NEWS_TIMELINE_LOG_LEVEL"
	cacheDSNEnv     = "NEWS_TIMELINE_CACHE_DSN"
	cacheDriverEnv  = "NEWS_TIMELINE_CACHE_DRIVER"
	languageEnv     = "NEWS_TIMELINE_LANGUAGE"
	countryEnv      = "NEWS_TIMELINE_COUNTRY"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Search     SearchConfig     `yaml:"search"`
	Providers  ProviderConfig   `yaml:"providers"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Summary    SummaryConfig    `yaml:"summary"`
	Timeline   TimelineConfig   `yaml:"timeline"`
	Cache      CacheConfig      `yaml:"cache"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// LoggingConfig selects level and handler format (text or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SearchConfig bounds the request parameters accepted by /search.
type SearchConfig struct {
	DefaultDaysBack    int `yaml:"defaultDaysBack"`
	MinDaysBack        int `yaml:"minDaysBack"`
	MaxDaysBack        int `yaml:"maxDaysBack"`
	DefaultMaxArticles int `yaml:"defaultMaxArticles"`
	MinMaxArticles     int `yaml:"minMaxArticles"`
	MaxMaxArticles     int `yaml:"maxMaxArticles"`
}

// ProviderConfig groups settings for news sources.
type ProviderConfig struct {
	Language   string         `yaml:"language"`
	Country    string         `yaml:"country"`
	MinResults int            `yaml:"minResults"`
	Timeout    time.Duration  `yaml:"timeout"`
	UserAgent  string         `yaml:"userAgent"`
	Retry      retry.Config   `yaml:"retry"`
	Sources    []SourceConfig `yaml:"sources"`
}

// SourceConfig describes a single news source with its scanner strategy.
// Sources are tried in order.
type SourceConfig struct {
	Name    string            `yaml:"name"`
	Scanner string            `yaml:"scanner"`
	BaseURL string            `yaml:"baseUrl"`
	Options map[string]string `yaml:"options"`
}

// ExtractionConfig controls full-text extraction from article pages.
type ExtractionConfig struct {
	Enabled          bool          `yaml:"enabled"`
	Timeout          time.Duration `yaml:"timeout"`
	MaxChars         int           `yaml:"maxChars"`
	ArticleSentences int           `yaml:"articleSentences"`
}

// SummaryConfig tunes the extractive summarizer.
type SummaryConfig struct {
	Sentences           int      `yaml:"sentences"`
	KeyTopics           int      `yaml:"keyTopics"`
	MinWordLength       int      `yaml:"minWordLength"`
	MinSentenceChars    int      `yaml:"minSentenceChars"`
	RedundancyThreshold float64  `yaml:"redundancyThreshold"`
	ExtraStopWords      []string `yaml:"extraStopWords"`
}

// TimelineConfig controls day bucketing. Days with fewer than
// MinEventArticles articles get no event.
type TimelineConfig struct {
	Timezone         string         `yaml:"timezone"`
	DenseMaxDays     int            `yaml:"denseMaxDays"`
	EventArticles    int            `yaml:"eventArticles"`
	MinEventArticles int            `yaml:"minEventArticles"`
	location         *time.Location `yaml:"-"`
}

// Location resolves the timeline timezone string to a time.Location.
func (t TimelineConfig) Location() *time.Location {
	if t.location != nil {
		return t.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// CacheConfig describes the fetch cache. Driver is "sqlite" or "postgres".
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Driver    string        `yaml:"driver"`
	DSN       string        `yaml:"dsn"`
	TTL       time.Duration `yaml:"ttl"`
	PurgeCron string        `yaml:"purgeCron"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var (
				fileCfg Config
				toggles sectionToggles
			)
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else if err := yaml.Unmarshal(raw, &toggles); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
				toggles.apply(&cfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Providers.Sources) == 0 {
		cfg.Providers.Sources = defaultConfig().Providers.Sources
	}

	if err := validate(&cfg); err != nil {
		log.Printf("config: %v (reverting search limits to defaults)", err)
		cfg.Search = defaultConfig().Search
	}

	return cfg
}

// sectionToggles reads the on/off switches separately so an explicit
// "enabled: false" is told apart from an absent key.
type sectionToggles struct {
	Extraction struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"extraction"`
	Cache struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"cache"`
}

func (t sectionToggles) apply(cfg *Config) {
	if t.Extraction.Enabled != nil {
		cfg.Extraction.Enabled = *t.Extraction.Enabled
	}
	if t.Cache.Enabled != nil {
		cfg.Cache.Enabled = *t.Cache.Enabled
	}
}

func validate(cfg *Config) error {
	s := cfg.Search
	if s.MinDaysBack > s.MaxDaysBack {
		return fmt.Errorf("search.minDaysBack %d exceeds search.maxDaysBack %d", s.MinDaysBack, s.MaxDaysBack)
	}
	if s.DefaultDaysBack < s.MinDaysBack || s.DefaultDaysBack > s.MaxDaysBack {
		return fmt.Errorf("search.defaultDaysBack %d outside [%d, %d]", s.DefaultDaysBack, s.MinDaysBack, s.MaxDaysBack)
	}
	if s.MinMaxArticles > s.MaxMaxArticles {
		return fmt.Errorf("search.minMaxArticles %d exceeds search.maxMaxArticles %d", s.MinMaxArticles, s.MaxMaxArticles)
	}
	if s.DefaultMaxArticles < s.MinMaxArticles || s.DefaultMaxArticles > s.MaxMaxArticles {
		return fmt.Errorf("search.defaultMaxArticles %d outside [%d, %d]", s.DefaultMaxArticles, s.MinMaxArticles, s.MaxMaxArticles)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(addrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(cacheDSNEnv); v != "" {
		c.Cache.DSN = v
	}

	if v := os.Getenv(cacheDriverEnv); v != "" {
		c.Cache.Driver = strings.ToLower(v)
	}

	if v := os.Getenv(languageEnv); v != "" {
		c.Providers.Language = v
	}

	if v := os.Getenv(countryEnv); v != "" {
		c.Providers.Country = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Timeline.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		tz = defaultTimezone
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Timeline.Timezone = tz
	c.Timeline.location = loc
}

func mergeConfig(base, override Config) Config {
	base.Server = mergeServer(base.Server, override.Server)

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	base.Search = mergeSearch(base.Search, override.Search)
	base.Providers = mergeProviders(base.Providers, override.Providers)

	base.Extraction = mergeExtraction(base.Extraction, override.Extraction)

	base.Summary = mergeSummary(base.Summary, override.Summary)

	if override.Timeline.Timezone != "" {
		base.Timeline.Timezone = override.Timeline.Timezone
	}
	if override.Timeline.DenseMaxDays != 0 {
		base.Timeline.DenseMaxDays = override.Timeline.DenseMaxDays
	}
	if override.Timeline.EventArticles != 0 {
		base.Timeline.EventArticles = override.Timeline.EventArticles
	}
	if override.Timeline.MinEventArticles != 0 {
		base.Timeline.MinEventArticles = override.Timeline.MinEventArticles
	}

	// Enabled flags are applied by sectionToggles.
	base.Cache = mergeCache(base.Cache, override.Cache)

	return base
}

func mergeServer(base, override ServerConfig) ServerConfig {
	if override.Addr != "" {
		base.Addr = override.Addr
	}
	if len(override.AllowedOrigins) > 0 {
		base.AllowedOrigins = override.AllowedOrigins
	}
	if override.ReadTimeout > 0 {
		base.ReadTimeout = override.ReadTimeout
	}
	if override.WriteTimeout > 0 {
		base.WriteTimeout = override.WriteTimeout
	}
	if override.ShutdownTimeout > 0 {
		base.ShutdownTimeout = override.ShutdownTimeout
	}
	return base
}

func mergeSearch(base, override SearchConfig) SearchConfig {
	if override.DefaultDaysBack > 0 {
		base.DefaultDaysBack = override.DefaultDaysBack
	}
	if override.MinDaysBack > 0 {
		base.MinDaysBack = override.MinDaysBack
	}
	if override.MaxDaysBack > 0 {
		base.MaxDaysBack = override.MaxDaysBack
	}
	if override.DefaultMaxArticles > 0 {
		base.DefaultMaxArticles = override.DefaultMaxArticles
	}
	if override.MinMaxArticles > 0 {
		base.MinMaxArticles = override.MinMaxArticles
	}
	if override.MaxMaxArticles > 0 {
		base.MaxMaxArticles = override.MaxMaxArticles
	}
	return base
}

func mergeProviders(base, override ProviderConfig) ProviderConfig {
	if override.Language != "" {
		base.Language = override.Language
	}
	if override.Country != "" {
		base.Country = override.Country
	}
	if override.MinResults > 0 {
		base.MinResults = override.MinResults
	}
	if override.Timeout > 0 {
		base.Timeout = override.Timeout
	}
	if override.UserAgent != "" {
		base.UserAgent = override.UserAgent
	}
	if override.Retry.MaxRetries > 0 {
		base.Retry.MaxRetries = override.Retry.MaxRetries
	}
	if override.Retry.BaseDelay > 0 {
		base.Retry.BaseDelay = override.Retry.BaseDelay
	}
	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}
	return base
}

func mergeExtraction(base, override ExtractionConfig) ExtractionConfig {
	if override.Timeout > 0 {
		base.Timeout = override.Timeout
	}
	if override.MaxChars > 0 {
		base.MaxChars = override.MaxChars
	}
	if override.ArticleSentences > 0 {
		base.ArticleSentences = override.ArticleSentences
	}
	return base
}

func mergeSummary(base, override SummaryConfig) SummaryConfig {
	if override.Sentences > 0 {
		base.Sentences = override.Sentences
	}
	if override.KeyTopics > 0 {
		base.KeyTopics = override.KeyTopics
	}
	if override.MinWordLength > 0 {
		base.MinWordLength = override.MinWordLength
	}
	if override.MinSentenceChars > 0 {
		base.MinSentenceChars = override.MinSentenceChars
	}
	if override.RedundancyThreshold > 0 {
		base.RedundancyThreshold = override.RedundancyThreshold
	}
	if len(override.ExtraStopWords) > 0 {
		base.ExtraStopWords = override.ExtraStopWords
	}
	return base
}

func mergeCache(base, override CacheConfig) CacheConfig {
	if override.Driver != "" {
		base.Driver = strings.ToLower(override.Driver)
	}
	if override.DSN != "" {
		base.DSN = override.DSN
	}
	if override.TTL > 0 {
		base.TTL = override.TTL
	}
	if override.PurgeCron != "" {
		base.PurgeCron = override.PurgeCron
	}
	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Search: SearchConfig{
			DefaultDaysBack:    30,
			MinDaysBack:        7,
			MaxDaysBack:        90,
			DefaultMaxArticles: 20,
			MinMaxArticles:     10,
			MaxMaxArticles:     50,
		},
		Providers: ProviderConfig{
			Language:   "en",
			Country:    "US",
			MinResults: 3,
			Timeout:    15 * time.Second,
			UserAgent:  "Mozilla/5.0 (compatible; NewsTimeline/1.0)",
			Retry:      retry.DefaultConfig(),
			Sources: []SourceConfig{
				{Name: "google-news-rss", Scanner: "googlenews_rss", BaseURL: "https://news.google.com"},
				{Name: "google-news-web", Scanner: "googlenews_html", BaseURL: "https://news.google.com"},
			},
		},
		Extraction: ExtractionConfig{
			Enabled:          true,
			Timeout:          10 * time.Second,
			MaxChars:         5000,
			ArticleSentences: 2,
		},
		Summary: SummaryConfig{
			Sentences:           3,
			KeyTopics:           8,
			MinWordLength:       3,
			MinSentenceChars:    20,
			RedundancyThreshold: 0.7,
		},
		Timeline: TimelineConfig{
			Timezone:         defaultTimezone,
			DenseMaxDays:     90,
			EventArticles:    3,
			MinEventArticles: 1,
			location:         tz,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Driver:    "sqlite",
			DSN:       "file:news_cache.db?_pragma=busy_timeout(5000)",
			TTL:       24 * time.Hour,
			PurgeCron: "@hourly",
		},
	}
}
