// internal/models/participant.go
package models

// Participant is one conference attendee targeted for outreach.
// Name is the unique key within an event; everything except Notes is
// immutable after intake.
type Participant struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Country     string `json:"country"`
	Company     string `json:"company"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// UserProfile describes the operator on whose behalf messages are
// drafted and reports are signed.
type UserProfile struct {
	Name               string `json:"user_name"`
	Role               string `json:"user_role"`
	CompanyName        string `json:"user_company_name"`
	CompanyDescription string `json:"user_company_description"`
}

// Credentials for conference sites that gate their participant list.
// Scraping is best effort; credentials are passed through to the
// provider and may be ignored.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
