// Package config loads the source watchlists and runtime settings
// from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Feed is one syndication feed to scrape.
type Feed struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// Repo is one GitHub repository whose releases are monitored.
type Repo struct {
	Name     string `yaml:"name"`
	Repo     string `yaml:"repo"`
	Category string `yaml:"category"`
}

// HackerNews configures the discussion-story search.
type HackerNews struct {
	Keywords []string `yaml:"keywords"`
	MinScore int      `yaml:"min_score"`
	MaxItems int      `yaml:"max_items"`
}

// Schedules holds the serve-mode run times per report type, HH:MM in
// the configured timezone. Tri-daily lists several times.
type Schedules struct {
	Daily    string   `yaml:"daily"`
	Weekly   string   `yaml:"weekly"`
	TriDaily []string `yaml:"tri_daily"`
}

// Config holds all application configuration.
type Config struct {
	Feeds      []Feed     `yaml:"rss_feeds"`
	Repos      []Repo     `yaml:"github_releases"`
	HackerNews HackerNews `yaml:"hacker_news"`

	Timezone        string    `yaml:"timezone"`
	Schedules       Schedules `yaml:"schedules"`
	OutputDir       string    `yaml:"output_dir"`
	LogLevel        string    `yaml:"log_level"`
	FetchTimeoutSec int       `yaml:"fetch_timeout_secs"`
	// ScrapeMissingSummaries fetches readable article content for feed
	// entries that ship without a summary.
	ScrapeMissingSummaries bool `yaml:"scrape_missing_summaries"`

	// GitHubToken is taken from the environment, never the file.
	GitHubToken string `yaml:"-"`
}

// Defaults returns a Config with all default values set.
func Defaults() Config {
	return Config{
		HackerNews: HackerNews{
			Keywords: []string{"kubernetes", "devops", "terraform", "docker"},
			MinScore: 50,
			MaxItems: 10,
		},
		Timezone: "UTC",
		Schedules: Schedules{
			Daily:  "06:00",
			Weekly: "07:00",
		},
		OutputDir:       "./output",
		LogLevel:        "info",
		FetchTimeoutSec: 10,
	}
}

// Load reads a YAML config file and returns a validated Config.
// DIGEST_CONFIG overrides the file path; GITHUB_TOKEN supplies the
// optional bearer credential for the releases API.
func Load(path string) (Config, error) {
	if envPath := os.Getenv("DIGEST_CONFIG"); envPath != "" {
		path = envPath
	}

	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that required fields are present and values are valid.
func (c *Config) Validate() error {
	if len(c.Feeds) == 0 && len(c.Repos) == 0 && len(c.HackerNews.Keywords) == 0 {
		return fmt.Errorf("config has no sources: need rss_feeds, github_releases, or hacker_news keywords")
	}
	for i, f := range c.Feeds {
		if f.URL == "" {
			return fmt.Errorf("rss_feeds[%d] (%s): url is required", i, f.Name)
		}
	}
	for i, r := range c.Repos {
		if r.Repo == "" {
			return fmt.Errorf("github_releases[%d] (%s): repo is required", i, r.Name)
		}
	}
	if c.HackerNews.MinScore < 0 {
		return fmt.Errorf("hacker_news.min_score must not be negative")
	}
	if c.HackerNews.MaxItems <= 0 {
		return fmt.Errorf("hacker_news.max_items must be positive")
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	for _, t := range c.scheduleTimes() {
		if err := ValidateTime(t); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) scheduleTimes() []string {
	times := make([]string, 0, 2+len(c.Schedules.TriDaily))
	if c.Schedules.Daily != "" {
		times = append(times, c.Schedules.Daily)
	}
	if c.Schedules.Weekly != "" {
		times = append(times, c.Schedules.Weekly)
	}
	times = append(times, c.Schedules.TriDaily...)
	return times
}

// ValidateTime checks that a time string is in valid HH:MM 24-hour format.
func ValidateTime(t string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("invalid time format %q: must be HH:MM", t)
	}

	if t[0] < '0' || t[0] > '9' || t[1] < '0' || t[1] > '9' ||
		t[3] < '0' || t[3] > '9' || t[4] < '0' || t[4] > '9' {
		return fmt.Errorf("invalid time format %q: must be HH:MM", t)
	}

	hour := (int(t[0]-'0') * 10) + int(t[1]-'0')
	minute := (int(t[3]-'0') * 10) + int(t[4]-'0')

	if hour > 23 {
		return fmt.Errorf("invalid time %q: hour must be 0-23", t)
	}
	if minute > 59 {
		return fmt.Errorf("invalid time %q: minute must be 0-59", t)
	}

	return nil
}
