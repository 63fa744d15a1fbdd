// internal/stages/research/handler.go
package research

import (
	"context"

	"conference-outreach/internal/cache"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/common/metrics"
	"conference-outreach/internal/models"
)

const StageName = "research"

// Searcher issues web lookups against the search provider.
type Searcher interface {
	SearchPerson(ctx context.Context, name, company string) ([]models.SearchResult, error)
	SearchCompany(ctx context.Context, company string) (*models.CompanyInfo, error)
	FindSynergies(ctx context.Context, companyA, companyB string) ([]models.SearchResult, error)
}

// ProfileLookup resolves a professional profile by URL.
type ProfileLookup interface {
	Lookup(ctx context.Context, profileURL string) (*models.Profile, error)
}

type Handler struct {
	searcher Searcher
	profiles ProfileLookup
	cache    *cache.Cache
	logger   logger.Logger
}

func NewHandler(searcher Searcher, profiles ProfileLookup, c *cache.Cache, log logger.Logger) *Handler {
	return &Handler{
		searcher: searcher,
		profiles: profiles,
		cache:    c,
		logger: log.WithFields(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// Execute runs up to four independent best-effort lookups for one
// participant. A failed lookup leaves its field empty and never aborts
// the remaining lookups.
func (h *Handler) Execute(ctx context.Context, participant models.Participant, userCompany string) *models.ResearchRecord {
	record := &models.ResearchRecord{Participant: participant}
	log := h.logger.WithFields(map[string]interface{}{
		"participant": participant.Name,
	})

	if participant.LinkedInURL != "" {
		profile, err := h.profiles.Lookup(ctx, participant.LinkedInURL)
		if err != nil {
			log.Warn("profile lookup failed", map[string]interface{}{"error": err.Error()})
		} else if !profile.Empty() {
			record.Profile = profile
		}
	}

	personInfo, err := h.searcher.SearchPerson(ctx, participant.Name, participant.Company)
	if err != nil {
		log.Warn("person search failed", map[string]interface{}{"error": err.Error()})
	} else {
		record.PersonInfo = personInfo
	}

	companyInfo, err := h.searcher.SearchCompany(ctx, participant.Company)
	if err != nil {
		log.Warn("company search failed", map[string]interface{}{"error": err.Error()})
	} else {
		record.CompanyInfo = companyInfo
	}

	if userCompany != "" {
		synergyResults, err := h.searcher.FindSynergies(ctx, userCompany, participant.Company)
		if err != nil {
			log.Warn("synergy search failed", map[string]interface{}{"error": err.Error()})
		} else {
			record.SynergyInfo = &models.SynergyInfo{Results: synergyResults}
		}
	}

	record.Success = true
	metrics.StageParticipantsProcessed.WithLabelValues(StageName).Inc()
	return record
}

// Research returns the full record for a participant with its Summary
// populated, consulting the cache first so repeated runs avoid
// re-querying providers.
func (h *Handler) Research(ctx context.Context, event string, participant models.Participant, userCompany string) *models.ResearchRecord {
	key := cache.ResearchKey(event, participant.Name)

	var cached models.ResearchRecord
	if found, err := h.cache.GetJSON(ctx, key, &cached); err == nil && found {
		h.logger.Debug("research cache hit", map[string]interface{}{
			"participant": participant.Name,
		})
		return &cached
	}

	record := h.Execute(ctx, participant, userCompany)
	summary := Reduce(record)
	record.Summary = &summary

	_ = h.cache.SetJSON(ctx, key, record)
	return record
}

// Summarize is Research reduced to just the summary.
func (h *Handler) Summarize(ctx context.Context, event string, participant models.Participant, userCompany string) models.ResearchSummary {
	return *h.Research(ctx, event, participant, userCompany).Summary
}
