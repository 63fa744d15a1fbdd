// internal/stages/intake/handler.go
package intake

import (
	"context"
	"fmt"

	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/common/metrics"
	"conference-outreach/internal/models"
	"conference-outreach/internal/store"
)

const StageName = "intake"

// Scraper fetches the participant roster from an event page.
type Scraper interface {
	ScrapeParticipants(ctx context.Context, eventPageURL string) ([]models.Participant, error)
}

// Approvals registers participants into the approval sheet.
type Approvals interface {
	Register(ctx context.Context, event string) error
	UpsertPending(ctx context.Context, event, name, company string) error
}

type Handler struct {
	config    *Config
	scraper   Scraper
	store     store.Store
	approvals Approvals
	logger    logger.Logger
}

func NewHandler(config *Config, scraper Scraper, st store.Store, approvals Approvals, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		scraper:   scraper,
		store:     st,
		approvals: approvals,
		logger: log.WithFields(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// ParticipantsTable returns the participant table for an event.
func ParticipantsTable(event string) string {
	return fmt.Sprintf("%s - Participants", event)
}

// Execute resolves the participant list from the requested source and
// registers every participant into the store and the approval sheet.
// Scrape failures fall back to placeholder records when the fallback is
// enabled; manual lists pass through as-is.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{}

	switch {
	case len(input.Participants) > 0:
		output.Participants = normalize(input.Participants)

	default:
		url := input.ScrapeURL
		if url == "" {
			url = h.config.EventPageURL
		}

		participants, err := h.scraper.ScrapeParticipants(ctx, url)
		if err != nil {
			if !h.config.AllowPlaceholderFallback {
				return nil, err
			}
			h.logger.Warn("scrape failed, using placeholder participants", map[string]interface{}{
				"event": input.Event,
				"url":   url,
				"error": err.Error(),
			})
			participants = h.placeholders()
			output.FromFallback = true
		}
		output.Participants = normalize(participants)
	}

	if err := h.register(ctx, input.Event, output.Participants); err != nil {
		return nil, err
	}

	metrics.StageParticipantsProcessed.WithLabelValues(StageName).Add(float64(len(output.Participants)))
	h.logger.Info("intake completed", map[string]interface{}{
		"event":        input.Event,
		"count":        len(output.Participants),
		"fromFallback": output.FromFallback,
	})
	return output, nil
}

// register writes participants into the event's participant table and
// the approval sheet. Re-registering an existing name is a no-op in
// both: an approval entry only resets to Pending when a new draft is
// composed, never on intake alone.
func (h *Handler) register(ctx context.Context, event string, participants []models.Participant) error {
	table := ParticipantsTable(event)
	headers := []string{ColName, ColRole, ColCountry, ColCompany, ColLinkedIn, ColNotes}

	if err := h.store.CreateTable(ctx, table, headers); err != nil {
		return err
	}
	if err := h.approvals.Register(ctx, event); err != nil {
		return err
	}

	for _, p := range participants {
		_, found, err := h.store.FindRow(ctx, table, ColName, p.Name)
		if err != nil {
			return err
		}
		if found {
			continue
		}

		if err := h.store.AppendRow(ctx, table, store.Row{
			ColName:     p.Name,
			ColRole:     p.Role,
			ColCountry:  p.Country,
			ColCompany:  p.Company,
			ColLinkedIn: p.LinkedInURL,
			ColNotes:    p.Notes,
		}); err != nil {
			return err
		}

		if err := h.approvals.UpsertPending(ctx, event, p.Name, p.Company); err != nil {
			return err
		}
	}
	return nil
}

// List returns the registered participants for an event.
func (h *Handler) List(ctx context.Context, event string) ([]models.Participant, error) {
	rows, err := h.store.ReadAll(ctx, ParticipantsTable(event))
	if err != nil {
		return nil, err
	}

	out := make([]models.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Participant{
			Name:        row[ColName],
			Role:        row[ColRole],
			Country:     row[ColCountry],
			Company:     row[ColCompany],
			LinkedInURL: row[ColLinkedIn],
			Notes:       row[ColNotes],
		})
	}
	return out, nil
}

func (h *Handler) placeholders() []models.Participant {
	count := h.config.PlaceholderCount
	if count <= 0 {
		count = 1
	}

	out := make([]models.Participant, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, models.Participant{
			Name:    fmt.Sprintf("Speaker %d", i),
			Role:    "Speaker",
			Country: "Unknown",
			Company: fmt.Sprintf("Company %d", i),
		})
	}
	return out
}

// normalize drops records without a name and keeps optional fields as
// empty strings.
func normalize(participants []models.Participant) []models.Participant {
	out := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if p.Name == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
