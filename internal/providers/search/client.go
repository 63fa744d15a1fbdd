// Package search wraps the external web search provider used for
// participant research and event page scraping. All lookups are best
// effort, callers substitute fallback text on failure.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/common/metrics"
	"conference-outreach/internal/models"
)

const providerName = "search"

// Config holds the search provider settings.
type Config struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	ResultsPerQuery int
}

// Client calls the search provider over HTTP.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

// NewClient creates a search client.
func NewClient(config *Config, log logger.Logger) *Client {
	if config.ResultsPerQuery == 0 {
		config.ResultsPerQuery = 3
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.WithFields(map[string]interface{}{
			"provider": providerName,
		}),
	}
}

type searchResponse struct {
	KnowledgeGraph struct {
		Description string `json:"description"`
	} `json:"knowledge_graph"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
}

// Search runs a raw query and returns the top organic results.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	resp, err := c.doSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	return c.topResults(resp), nil
}

// SearchPerson looks up a participant's professional background.
func (c *Client) SearchPerson(ctx context.Context, name, company string) ([]models.SearchResult, error) {
	query := fmt.Sprintf("%s %s professional background", name, company)
	return c.Search(ctx, query)
}

// SearchCompany looks up a company and returns its knowledge graph
// description alongside the top results.
func (c *Client) SearchCompany(ctx context.Context, company string) (*models.CompanyInfo, error) {
	resp, err := c.doSearch(ctx, fmt.Sprintf("%s company about", company))
	if err != nil {
		return nil, err
	}

	return &models.CompanyInfo{
		KnowledgeDescription: resp.KnowledgeGraph.Description,
		Results:              c.topResults(resp),
	}, nil
}

// FindSynergies looks for overlap between the user's company and the
// participant's company.
func (c *Client) FindSynergies(ctx context.Context, companyA, companyB string) ([]models.SearchResult, error) {
	query := fmt.Sprintf("%s %s partnership collaboration synergy", companyA, companyB)
	return c.Search(ctx, query)
}

func (c *Client) doSearch(ctx context.Context, query string) (*searchResponse, error) {
	base, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return nil, errors.NewProviderError(providerName, fmt.Sprintf("invalid base URL: %s", err))
	}

	params := url.Values{}
	params.Add("api_key", c.config.APIKey)
	params.Add("q", query)
	params.Add("num", fmt.Sprintf("%d", c.config.ResultsPerQuery))
	base.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, errors.NewProviderUnavailableError(providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, errors.NewProviderError(providerName, fmt.Sprintf("search API returned %d", resp.StatusCode))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return nil, errors.NewProviderError(providerName, fmt.Sprintf("decode response: %s", err))
	}

	metrics.ProviderRequests.WithLabelValues(providerName, "ok").Inc()
	c.logger.Debug("search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(parsed.OrganicResults),
	})
	return &parsed, nil
}

func (c *Client) topResults(resp *searchResponse) []models.SearchResult {
	out := make([]models.SearchResult, 0, c.config.ResultsPerQuery)
	for _, item := range resp.OrganicResults {
		if strings.TrimSpace(item.Snippet) == "" && strings.TrimSpace(item.Title) == "" {
			continue
		}
		out = append(out, models.SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
		if len(out) >= c.config.ResultsPerQuery {
			break
		}
	}
	return out
}
