// internal/providers/search/scrape.go
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/models"
)

// ScrapeParticipants fetches the event roster page and decodes the
// participant list. Event pages expose their roster as a JSON array;
// anything else is a scrape failure and intake decides the fallback.
func (c *Client) ScrapeParticipants(ctx context.Context, eventPageURL string) ([]models.Participant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, eventPageURL, nil)
	if err != nil {
		return nil, errors.NewScrapeFailedError(eventPageURL, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewScrapeFailedError(eventPageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewScrapeFailedError(eventPageURL, fmt.Errorf("event page returned %d", resp.StatusCode))
	}

	var participants []models.Participant
	if err := json.NewDecoder(resp.Body).Decode(&participants); err != nil {
		return nil, errors.NewScrapeFailedError(eventPageURL, fmt.Errorf("decode roster: %w", err))
	}

	if len(participants) == 0 {
		return nil, errors.NewScrapeFailedError(eventPageURL, fmt.Errorf("roster is empty"))
	}

	c.logger.Info("scraped event roster", map[string]interface{}{
		"url":   eventPageURL,
		"count": len(participants),
	})
	return participants, nil
}
