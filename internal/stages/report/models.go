// internal/stages/report/models.go
package report

import (
	"fmt"
	"strings"
	"time"

	"conference-outreach/internal/models"
)

// ReportName returns the per-event summary report document name.
func ReportName(event string) string {
	return fmt.Sprintf("Summary_Report_%s", event)
}

// fallbackNarrative is the canned prose used when generation fails. A
// report is always produced, with or without a working provider.
func fallbackNarrative(event string, m models.ReportMetrics) *models.ReportNarrative {
	return &models.ReportNarrative{
		KeyLearnings: []string{
			"Personalization increases engagement.",
			"LinkedIn insights were crucial in tailoring the synergy pitch.",
			"Many companies are open to talent partnerships, especially in AI/ML and EdTech intersections.",
		},
		SuggestedImprovements: []string{
			"Automate LinkedIn profile fetching to speed up research.",
			"Create company description templates for quicker messaging.",
			"Implement better tracking for message responses.",
		},
		SuccessPatterns: []string{
			"Messages highlighting specific collaboration opportunities received better engagement.",
			"Brief but personalized intros performed well.",
		},
		ExecutiveSummary: fmt.Sprintf(
			"This report summarizes the outreach campaign for %s. A total of %d participants were reviewed, resulting in %d approved messages and %d sent messages.",
			event, m.TotalParticipants, m.ApprovedMessages, m.SentMessages),
	}
}

// defaultSamples stands in when a report is compiled with no message
// samples to learn from.
func defaultSamples() []models.MessageSample {
	return []models.MessageSample{
		{
			Participant:   "Sample Participant 1",
			Company:       "Sample Company 1",
			SynergyPoints: []string{"Collaboration on technology integration", "Shared target market"},
		},
		{
			Participant:   "Sample Participant 2",
			Company:       "Sample Company 2",
			SynergyPoints: []string{"Joint research opportunities", "Complementary product offerings"},
		},
	}
}

// renderReport lays out the summary report as markdown. Section order
// matches the generated narrative: summary, metrics, learnings,
// improvements, patterns.
func renderReport(event string, user models.UserProfile, m models.ReportMetrics, n *models.ReportNarrative, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Summary Report: %s\n\n", event)
	fmt.Fprintf(&b, "*Generated on %s by %s, %s*\n\n",
		generatedAt.Format(models.DateLayout), user.Name, user.CompanyName)

	b.WriteString("## Executive Summary\n\n")
	b.WriteString(n.ExecutiveSummary)
	b.WriteString("\n\n## Key Metrics\n\n")
	fmt.Fprintf(&b, "- Total Participants Reviewed: %d\n", m.TotalParticipants)
	fmt.Fprintf(&b, "- Total Messages Approved: %d\n", m.ApprovedMessages)
	fmt.Fprintf(&b, "- Total Messages Sent: %d\n", m.SentMessages)

	writeSection(&b, "Key Learnings", n.KeyLearnings)
	writeSection(&b, "Suggested Improvements", n.SuggestedImprovements)
	writeSection(&b, "Success Patterns", n.SuccessPatterns)

	return b.String()
}

func writeSection(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
