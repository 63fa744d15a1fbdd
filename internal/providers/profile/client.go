// Package profile wraps the external professional profile provider.
// Lookups are best effort, a failed lookup degrades to fallback text in
// the research reducer.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/common/metrics"
	"conference-outreach/internal/models"
)

const providerName = "profile"

// Config holds the profile provider settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls the profile provider over HTTP.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

// NewClient creates a profile client.
func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.WithFields(map[string]interface{}{
			"provider": providerName,
		}),
	}
}

type profileResponse struct {
	FullName    string `json:"full_name"`
	Headline    string `json:"headline"`
	Summary     string `json:"summary"`
	Experiences []struct {
		Company string `json:"company"`
		Title   string `json:"title"`
	} `json:"experiences"`
}

// Lookup fetches a professional profile by its public URL.
func (c *Client) Lookup(ctx context.Context, profileURL string) (*models.Profile, error) {
	base, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return nil, errors.NewProviderError(providerName, fmt.Sprintf("invalid base URL: %s", err))
	}

	params := url.Values{}
	params.Add("url", profileURL)
	base.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, errors.NewProviderUnavailableError(providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.ProviderRequests.WithLabelValues(providerName, "ok").Inc()
		return nil, errors.NewNotFoundError("profile", fmt.Sprintf("url: %s", profileURL))
	}
	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, errors.NewProviderError(providerName, fmt.Sprintf("profile API returned %d", resp.StatusCode))
	}

	var parsed profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, errors.NewProviderError(providerName, fmt.Sprintf("decode response: %s", err))
	}

	metrics.ProviderRequests.WithLabelValues(providerName, "ok").Inc()

	out := &models.Profile{
		FullName: parsed.FullName,
		Headline: parsed.Headline,
		Summary:  parsed.Summary,
	}
	for _, exp := range parsed.Experiences {
		out.Experiences = append(out.Experiences, models.Experience{
			Company: exp.Company,
			Title:   exp.Title,
		})
	}

	c.logger.Debug("profile lookup completed", map[string]interface{}{
		"url":         profileURL,
		"experiences": len(out.Experiences),
	})
	return out, nil
}
