package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"covergen/pkg/cache"
)

// LogoDirectory resolves a university name to a logo image URL via an
// external directory API. Results are cached; the directory changes rarely
// and a miss only means the cover renders without a logo.
type LogoDirectory struct {
	baseURL  string
	client   *http.Client
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewLogoDirectory(baseURL string, c *cache.Cache, ttl time.Duration) *LogoDirectory {
	return &LogoDirectory{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		cache:    c,
		cacheTTL: ttl,
	}
}

// Lookup returns the logo URL for the university, or "" when the directory
// has no match or is unavailable.
func (d *LogoDirectory) Lookup(ctx context.Context, university string) (string, error) {
	if d.baseURL == "" || university == "" {
		return "", nil
	}

	key := cache.KeyFromStrings("logo", university)
	if v, ok := d.cache.Get(key); ok {
		return v.(string), nil
	}

	apiURL := fmt.Sprintf("%s/search?name=%s", d.baseURL, url.QueryEscape(university))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("logo directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("logo directory returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var entries []struct {
		Name    string `json:"name"`
		LogoURL string `json:"logo_url"`
	}
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", fmt.Errorf("unmarshal logo directory response: %w", err)
	}

	logoURL := ""
	if len(entries) > 0 {
		logoURL = entries[0].LogoURL
	}
	// cache negative results too, the directory is slow
	d.cache.Set(key, logoURL, d.cacheTTL)
	return logoURL, nil
}
