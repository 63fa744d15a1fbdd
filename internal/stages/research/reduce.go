// internal/stages/research/reduce.go
package research

import (
	"fmt"
	"time"

	"conference-outreach/internal/models"
)

// Fallback text used when a lookup yields nothing. The document
// renderer assumes every summary field is populated, so the reduction
// never emits an empty field.
const (
	FallbackNoCompanyInfo = "No company information available"
	FallbackCompanyThin   = "Company information not detailed enough"
	FallbackNoBackground  = "No detailed background information available"
	FallbackNoLinkedIn    = "LinkedIn Profile not available"
	FallbackNoNotes       = "No additional notes"
)

// GenericSynergyPoints fill in when no synergy list was produced, so
// message drafting always has talking points.
var GenericSynergyPoints = []string{
	"Both companies use technology to solve real-world problems",
	"Potential for knowledge sharing and industry insights",
	"Possibilities for talent exchange or recruitment partnerships",
}

// Reduce collapses a research record into a fixed-shape summary. It is
// a pure function over the record apart from the timestamp; every
// fallback is deterministic.
func Reduce(record *models.ResearchRecord) models.ResearchSummary {
	p := record.Participant

	return models.ResearchSummary{
		Name:               p.Name,
		RoleAtCompany:      fmt.Sprintf("%s at %s", p.Role, p.Company),
		CompanyDescription: extractCompanyDescription(record.CompanyInfo),
		LinkedIn:           orFallback(p.LinkedInURL, FallbackNoLinkedIn),
		Background:         extractBackground(record.Profile, record.PersonInfo),
		SynergyPoints:      extractSynergyPoints(record.SynergyInfo),
		Notes:              orFallback(p.Notes, FallbackNoNotes),
		Timestamp:          time.Now().Format(models.TimestampLayout),
	}
}

func extractCompanyDescription(info *models.CompanyInfo) string {
	if info == nil {
		return FallbackNoCompanyInfo
	}
	if info.KnowledgeDescription != "" {
		return info.KnowledgeDescription
	}
	if len(info.Results) > 0 && info.Results[0].Snippet != "" {
		return info.Results[0].Snippet
	}
	return FallbackCompanyThin
}

func extractBackground(profile *models.Profile, personInfo []models.SearchResult) string {
	if profile != nil {
		if profile.Summary != "" {
			return profile.Summary
		}
		if len(profile.Experiences) > 0 {
			exp := profile.Experiences[0]
			return fmt.Sprintf("Previously worked at %s as %s", exp.Company, exp.Title)
		}
	}

	if len(personInfo) > 0 && personInfo[0].Snippet != "" {
		return personInfo[0].Snippet
	}
	return FallbackNoBackground
}

func extractSynergyPoints(info *models.SynergyInfo) []string {
	if info == nil || len(info.Points) == 0 {
		return append([]string(nil), GenericSynergyPoints...)
	}
	return info.Points
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
