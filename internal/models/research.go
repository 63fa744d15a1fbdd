// internal/models/research.go
package models

// SearchResult is one organic web-search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// CompanyInfo is the company-search slice of a research record. The
// knowledge-panel description, when present, wins over result snippets.
type CompanyInfo struct {
	KnowledgeDescription string         `json:"knowledge_description,omitempty"`
	Results              []SearchResult `json:"results,omitempty"`
}

// SynergyInfo is the cross-company synergy-search slice.
type SynergyInfo struct {
	Points  []string       `json:"synergy_points,omitempty"`
	Results []SearchResult `json:"results,omitempty"`
}

// Experience is a single position from a profile lookup, most recent
// first.
type Experience struct {
	Company string `json:"company"`
	Title   string `json:"title"`
}

// Profile is the structured result of a profile-by-URL lookup.
type Profile struct {
	FullName    string       `json:"full_name"`
	Headline    string       `json:"headline,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	Experiences []Experience `json:"experiences,omitempty"`
}

// Empty reports whether the lookup produced no usable data.
func (p *Profile) Empty() bool {
	return p == nil || (p.FullName == "" && p.Summary == "" && len(p.Experiences) == 0)
}

// ResearchRecord collects the raw output of the four research lookups
// for one participant. It lives only for the duration of a pipeline
// run; only the reduced Summary is ever persisted (inside a rendered
// document).
type ResearchRecord struct {
	Participant Participant      `json:"participant"`
	Profile     *Profile         `json:"profile,omitempty"`
	PersonInfo  []SearchResult   `json:"person_info,omitempty"`
	CompanyInfo *CompanyInfo     `json:"company_info,omitempty"`
	SynergyInfo *SynergyInfo     `json:"synergy_info,omitempty"`
	Summary     *ResearchSummary `json:"summary,omitempty"`
	Success     bool             `json:"success"`
}

// ResearchSummary is the fixed-shape reduction of a ResearchRecord.
// Every field is always populated; reduction substitutes placeholder
// text where a provider yielded nothing, so document rendering never
// sees an empty field.
type ResearchSummary struct {
	Name               string   `json:"name"`
	RoleAtCompany      string   `json:"role"`
	CompanyDescription string   `json:"company"`
	LinkedIn           string   `json:"linkedin"`
	Background         string   `json:"background"`
	SynergyPoints      []string `json:"areas_of_synergy"`
	Notes              string   `json:"additional_notes"`
	Timestamp          string   `json:"research_timestamp"`
}
