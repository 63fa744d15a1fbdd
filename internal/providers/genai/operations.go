// internal/providers/genai/operations.go
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/models"
)

// ExtractSynergies asks the provider to distill up to three concrete
// synergy statements between the user's company and the participant's.
func (c *Client) ExtractSynergies(ctx context.Context, userCompany, targetCompany string, results []models.SearchResult) ([]string, error) {
	prompt := c.buildSynergyPrompt(userCompany, targetCompany, results)

	text, err := c.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	points := parseLines(text, 3)
	if len(points) == 0 {
		return nil, errors.NewProviderError(providerName, "no synergy points in generation")
	}
	return points, nil
}

// DraftMessage asks the provider for a personalized outreach message.
// An unusable draft is fatal for the participant, there is no canned
// message fallback.
func (c *Client) DraftMessage(ctx context.Context, user models.UserProfile, summary models.ResearchSummary) (string, error) {
	prompt := c.buildDraftPrompt(user, summary)

	text, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	draft := strings.TrimSpace(text)
	if draft == "" {
		return "", errors.NewProviderError(providerName, "empty message draft")
	}
	return draft, nil
}

// ReportNarrative asks the provider for the prose sections of a summary
// report and parses them out of a JSON response.
func (c *Client) ReportNarrative(ctx context.Context, reportMetrics models.ReportMetrics, samples []models.MessageSample) (*models.ReportNarrative, error) {
	prompt := c.buildNarrativePrompt(reportMetrics, samples)

	text, err := c.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var narrative models.ReportNarrative
	if err := json.Unmarshal([]byte(extractJSON(text)), &narrative); err != nil {
		return nil, errors.NewProviderError(providerName, fmt.Sprintf("parse narrative: %s", err))
	}
	if narrative.ExecutiveSummary == "" {
		return nil, errors.NewProviderError(providerName, "narrative missing executive summary")
	}
	return &narrative, nil
}

func (c *Client) buildSynergyPrompt(userCompany, targetCompany string, results []models.SearchResult) string {
	var parts []string

	parts = append(parts, "You are a business development analyst.")
	parts = append(parts, fmt.Sprintf("\nIdentify up to 3 concrete areas of synergy between %s and %s.", userCompany, targetCompany))

	if len(results) > 0 {
		parts = append(parts, "\nResearch findings:")
		for _, r := range results {
			parts = append(parts, fmt.Sprintf("- %s: %s", r.Title, r.Snippet))
		}
	}

	parts = append(parts, "\nInstructions:")
	parts = append(parts, "- One synergy per line, no numbering")
	parts = append(parts, "- Be specific, avoid generic claims")

	return strings.Join(parts, "\n")
}

func (c *Client) buildDraftPrompt(user models.UserProfile, summary models.ResearchSummary) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("You are %s, %s at %s.", user.Name, user.Role, user.CompanyName))
	parts = append(parts, fmt.Sprintf("\nWrite a short, warm outreach message to %s (%s).", summary.Name, summary.RoleAtCompany))

	if summary.Background != "" {
		parts = append(parts, fmt.Sprintf("\nTheir background: %s", summary.Background))
	}
	if summary.CompanyDescription != "" {
		parts = append(parts, fmt.Sprintf("Their company: %s", summary.CompanyDescription))
	}
	if len(summary.SynergyPoints) > 0 {
		parts = append(parts, "\nAreas of synergy to weave in:")
		for _, p := range summary.SynergyPoints {
			parts = append(parts, fmt.Sprintf("- %s", p))
		}
	}

	parts = append(parts, "\nInstructions:")
	parts = append(parts, "- 3 short paragraphs maximum")
	parts = append(parts, "- Reference at least one synergy point")
	parts = append(parts, "- Close with a suggestion to meet at the event")

	return strings.Join(parts, "\n")
}

func (c *Client) buildNarrativePrompt(reportMetrics models.ReportMetrics, samples []models.MessageSample) string {
	var parts []string

	parts = append(parts, "You are summarizing an outreach campaign.")
	parts = append(parts, fmt.Sprintf("\nParticipants: %d, approved messages: %d, sent messages: %d.",
		reportMetrics.TotalParticipants, reportMetrics.ApprovedMessages, reportMetrics.SentMessages))

	if len(samples) > 0 {
		parts = append(parts, "\nSample messages:")
		for _, s := range samples {
			parts = append(parts, fmt.Sprintf("- %s (%s): %s", s.Participant, s.Company, strings.Join(s.SynergyPoints, "; ")))
		}
	}

	parts = append(parts, "\nRespond with JSON only, using the keys:")
	parts = append(parts, `{"key_learnings": [], "suggested_improvements": [], "success_patterns": [], "executive_summary": ""}`)

	return strings.Join(parts, "\n")
}

// parseLines splits generated text into up to max non-empty lines,
// stripping common list markers.
func parseLines(text string, max int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•0123456789. ")
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) >= max {
			break
		}
	}
	return out
}

// extractJSON trims any prose surrounding a JSON object in generated
// text.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
