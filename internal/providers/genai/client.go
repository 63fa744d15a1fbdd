// Package genai wraps the external text generation provider used for
// synergy refinement, message drafting and report narratives.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/common/metrics"
)

const providerName = "genai"

// Config holds the generation provider settings.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	MaxTokens   int
	Temperature float64
}

// Client calls the generation provider over HTTP.
type Client struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

// NewClient creates a generation client.
func NewClient(config *Config, log logger.Logger) *Client {
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 1024
	}
	if config.Temperature == 0 {
		config.Temperature = 0.7
	}
	return &Client{
		config: config,
		// Timeouts come from the request context, not the client.
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{
			"provider": providerName,
		}),
	}
}

// Generate sends one prompt and returns the generated text. Failed
// requests are retried with exponential backoff until the context
// expires.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"model":       c.config.Model,
		"prompt":      prompt,
		"max_tokens":  c.config.MaxTokens,
		"temperature": c.config.Temperature,
	}
	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", errors.NewProviderUnavailableError(providerName, ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/v1/generate", bytes.NewBuffer(body))
		if err != nil {
			return "", errors.NewProviderError(providerName, err.Error())
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
			return "", errors.NewProviderUnavailableError(providerName, ctx.Err())
		}
	}

	if lastErr != nil || resp == nil {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		if lastErr == nil {
			lastErr = fmt.Errorf("no successful response after retries")
		}
		return "", errors.NewProviderUnavailableError(providerName, lastErr)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return "", errors.NewProviderError(providerName, fmt.Sprintf("decode response: %s", err))
	}

	if strings.TrimSpace(apiResponse.Text) == "" {
		metrics.ProviderRequests.WithLabelValues(providerName, "error").Inc()
		return "", errors.NewProviderError(providerName, "empty generation")
	}

	metrics.ProviderRequests.WithLabelValues(providerName, "ok").Inc()
	return apiResponse.Text, nil
}
