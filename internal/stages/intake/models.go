// internal/stages/intake/models.go
package intake

import "conference-outreach/internal/models"

// Participants table column headers.
const (
	ColName     = "Name"
	ColRole     = "Role"
	ColCountry  = "Country"
	ColCompany  = "Company"
	ColLinkedIn = "LinkedIn URL"
	ColNotes    = "Notes"
)

// Input selects the intake source: a scrape request or an explicit
// participant list.
type Input struct {
	Event        string               `json:"event_name"`
	ScrapeURL    string               `json:"scrape_url,omitempty"`
	Credentials  *models.Credentials  `json:"credentials,omitempty"`
	Participants []models.Participant `json:"participants,omitempty"`
}

// Output reports the participants registered for the event.
type Output struct {
	Participants []models.Participant `json:"participants"`
	FromFallback bool                 `json:"from_fallback"`
}
