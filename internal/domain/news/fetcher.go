package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const defaultInterval = 12 * time.Hour

// Fetcher periodically pulls health headlines from the configured API and
// caches new articles. Failures are logged; the loop only stops when the
// context is cancelled.
type Fetcher struct {
	repo     Repository
	client   *http.Client
	apiURL   string
	apiKey   string
	interval time.Duration
	logger   zerolog.Logger
}

func NewFetcher(repo Repository, apiURL, apiKey string, interval time.Duration, logger zerolog.Logger) *Fetcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Fetcher{
		repo:     repo,
		client:   &http.Client{Timeout: 30 * time.Second},
		apiURL:   apiURL,
		apiKey:   apiKey,
		interval: interval,
		logger:   logger,
	}
}

// Run fetches once immediately and then on every tick.
func (f *Fetcher) Run(ctx context.Context) {
	if err := f.FetchOnce(ctx); err != nil {
		f.logger.Error().Err(err).Msg("news fetch failed")
	}
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := f.FetchOnce(ctx); err != nil {
				f.logger.Error().Err(err).Msg("news fetch failed")
			}
		}
	}
}

type apiResponse struct {
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Image       string     `json:"image"`
	PublishedAt *time.Time `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// FetchOnce pulls the current headlines and inserts every article whose URL
// is not cached yet.
func (f *Fetcher) FetchOnce(ctx context.Context) error {
	if f.apiURL == "" || f.apiKey == "" {
		return fmt.Errorf("news api not configured")
	}

	q := url.Values{}
	q.Set("topic", "health")
	q.Set("lang", "en")
	q.Set("apikey", f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.apiURL+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("news api returned %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode news response: %w", err)
	}

	inserted := 0
	for _, item := range payload.Articles {
		if item.URL == "" || item.Title == "" {
			continue
		}
		exists, err := f.repo.ExistsByURL(ctx, item.URL)
		if err != nil {
			f.logger.Error().Err(err).Str("url", item.URL).Msg("check article")
			continue
		}
		if exists {
			continue
		}
		a := &Article{Title: item.Title, URL: item.URL, PublishedAt: item.PublishedAt}
		if item.Description != "" {
			a.Description = &item.Description
		}
		if item.Image != "" {
			a.ImageURL = &item.Image
		}
		if item.Source.Name != "" {
			a.Source = &item.Source.Name
		}
		if err := f.repo.Create(ctx, a); err != nil {
			f.logger.Error().Err(err).Str("url", item.URL).Msg("store article")
			continue
		}
		inserted++
	}
	f.logger.Info().Int("fetched", len(payload.Articles)).Int("inserted", inserted).Msg("news fetch complete")
	return nil
}
