// internal/stages/compose/models.go
package compose

import (
	"fmt"
	"strings"

	"conference-outreach/internal/models"
)

// FolderName returns the per-event document folder name.
func FolderName(event string) string {
	return fmt.Sprintf("%s - Messages", event)
}

// DocumentName returns the per-participant document name.
func DocumentName(participant string) string {
	return fmt.Sprintf("%s - Outreach Message", participant)
}

// renderDocument lays out one outreach document as markdown. Section
// order is fixed: research summary, then synergies, then the draft.
func renderDocument(doc *models.MessageDocument) string {
	var b strings.Builder
	s := doc.ResearchSummary

	fmt.Fprintf(&b, "# %s\n\n", DocumentName(doc.ParticipantName))

	b.WriteString("## Research Summary\n\n")
	fmt.Fprintf(&b, "- **Name:** %s\n", s.Name)
	fmt.Fprintf(&b, "- **Role:** %s\n", s.RoleAtCompany)
	fmt.Fprintf(&b, "- **Company:** %s\n", s.CompanyDescription)
	fmt.Fprintf(&b, "- **LinkedIn:** %s\n", s.LinkedIn)
	fmt.Fprintf(&b, "- **Background:** %s\n", s.Background)
	fmt.Fprintf(&b, "- **Additional Notes:** %s\n", s.Notes)
	fmt.Fprintf(&b, "- **Researched:** %s\n", s.Timestamp)

	b.WriteString("\n## Areas of Synergy\n\n")
	if len(doc.SynergyPoints) == 0 {
		b.WriteString("No synergies identified.\n")
	} else {
		for _, p := range doc.SynergyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	b.WriteString("\n## Message Draft\n\n")
	b.WriteString(doc.DraftText)
	b.WriteString("\n")

	return b.String()
}
