package research

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"conference-outreach/internal/models"
)

// ==========================
// Reduction Fallback Chain
// ==========================

func TestReduce_FullRecord(t *testing.T) {
	record := &models.ResearchRecord{
		Participant: models.Participant{
			Name:        "Ada Lovelace",
			Role:        "Engineer",
			Company:     "Analytical Engines",
			LinkedInURL: "https://linkedin.example/ada",
			Notes:       "met at last year's summit",
		},
		Profile: &models.Profile{
			Summary: "Pioneer of computing",
		},
		PersonInfo: []models.SearchResult{{Snippet: "person snippet"}},
		CompanyInfo: &models.CompanyInfo{
			KnowledgeDescription: "Maker of analytical engines",
			Results:              []models.SearchResult{{Snippet: "first company snippet"}},
		},
		SynergyInfo: &models.SynergyInfo{
			Points: []string{"Shared compiler research"},
		},
	}

	summary := Reduce(record)
	assert.Equal(t, "Ada Lovelace", summary.Name)
	assert.Equal(t, "Engineer at Analytical Engines", summary.RoleAtCompany)
	assert.Equal(t, "Maker of analytical engines", summary.CompanyDescription)
	assert.Equal(t, "https://linkedin.example/ada", summary.LinkedIn)
	assert.Equal(t, "Pioneer of computing", summary.Background)
	assert.Equal(t, []string{"Shared compiler research"}, summary.SynergyPoints)
	assert.Equal(t, "met at last year's summit", summary.Notes)
	assert.NotEmpty(t, summary.Timestamp)
}

func TestReduce_CompanyDescriptionFallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		info     *models.CompanyInfo
		expected string
	}{
		{
			name:     "nil info",
			info:     nil,
			expected: FallbackNoCompanyInfo,
		},
		{
			name:     "knowledge description wins",
			info:     &models.CompanyInfo{KnowledgeDescription: "desc", Results: []models.SearchResult{{Snippet: "snip"}}},
			expected: "desc",
		},
		{
			name:     "first snippet next",
			info:     &models.CompanyInfo{Results: []models.SearchResult{{Snippet: "snip"}}},
			expected: "snip",
		},
		{
			name:     "literal fallback last",
			info:     &models.CompanyInfo{Results: []models.SearchResult{{Title: "no snippet"}}},
			expected: FallbackCompanyThin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Reduce(&models.ResearchRecord{
				Participant: models.Participant{Name: "X", Role: "R", Company: "C"},
				CompanyInfo: tt.info,
			})
			assert.Equal(t, tt.expected, summary.CompanyDescription)
		})
	}
}

func TestReduce_BackgroundFallbackChain(t *testing.T) {
	tests := []struct {
		name       string
		profile    *models.Profile
		personInfo []models.SearchResult
		expected   string
	}{
		{
			name:     "profile summary wins",
			profile:  &models.Profile{Summary: "profile summary", Experiences: []models.Experience{{Company: "A", Title: "B"}}},
			expected: "profile summary",
		},
		{
			name:     "most recent experience next",
			profile:  &models.Profile{Experiences: []models.Experience{{Company: "Analytical Engines", Title: "Engineer"}}},
			expected: "Previously worked at Analytical Engines as Engineer",
		},
		{
			name:       "person snippet next",
			personInfo: []models.SearchResult{{Snippet: "person snippet"}},
			expected:   "person snippet",
		},
		{
			name:     "literal fallback last",
			expected: FallbackNoBackground,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Reduce(&models.ResearchRecord{
				Participant: models.Participant{Name: "X", Role: "R", Company: "C"},
				Profile:     tt.profile,
				PersonInfo:  tt.personInfo,
			})
			assert.Equal(t, tt.expected, summary.Background)
		})
	}
}

func TestReduce_SynergyPointsFallBackToGenericList(t *testing.T) {
	summary := Reduce(&models.ResearchRecord{
		Participant: models.Participant{Name: "X", Role: "R", Company: "C"},
	})
	assert.Equal(t, GenericSynergyPoints, summary.SynergyPoints)

	// The fallback list is a copy, mutating it does not poison later
	// reductions.
	summary.SynergyPoints[0] = "mutated"
	again := Reduce(&models.ResearchRecord{
		Participant: models.Participant{Name: "X", Role: "R", Company: "C"},
	})
	assert.Equal(t, "Both companies use technology to solve real-world problems", again.SynergyPoints[0])
}

func TestReduce_NoFieldIsEverEmpty(t *testing.T) {
	summary := Reduce(&models.ResearchRecord{
		Participant: models.Participant{Name: "Bare Minimum", Role: "Attendee", Company: "Unknown Co"},
	})

	assert.NotEmpty(t, summary.Name)
	assert.NotEmpty(t, summary.RoleAtCompany)
	assert.NotEmpty(t, summary.CompanyDescription)
	assert.NotEmpty(t, summary.LinkedIn)
	assert.NotEmpty(t, summary.Background)
	assert.NotEmpty(t, summary.SynergyPoints)
	assert.NotEmpty(t, summary.Notes)
	assert.NotEmpty(t, summary.Timestamp)
}
