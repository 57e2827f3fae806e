// internal/eligibility/resolver_test.go
package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tender-workers/internal/models"
)

func keywords(words ...string) []models.NegativeKeyword {
	out := make([]models.NegativeKeyword, 0, len(words))
	for _, w := range words {
		out = append(out, models.NegativeKeyword{Keyword: w})
	}
	return out
}

func TestResolveNegativeKeywords_RulePrecedence(t *testing.T) {
	tests := []struct {
		name            string
		tender          models.TenderText
		tags            []string
		keywords        []models.NegativeKeyword
		similarCategory string
		wantRule        string
		wantExcluded    bool
		wantKeyword     string
	}{
		{
			name:     "no keyword present",
			tender:   models.TenderText{Title: "Development of software for land records"},
			keywords: keywords("laptop"),
			wantRule: "no-negative-keyword",
		},
		{
			name:         "keyword in procurement title",
			tender:       models.TenderText{Title: "Supply of Laptops for Office Use"},
			keywords:     keywords("laptop"),
			wantRule:     "title-primary-focus",
			wantExcluded: true,
			wantKeyword:  "laptop",
		},
		{
			name:     "keyword in title of an IT service tender",
			tender:   models.TenderText{Title: "Development and maintenance of web portal including laptop integration"},
			keywords: keywords("laptop"),
			wantRule: "it-service-override",
		},
		{
			name: "procurement title with equipment noun makes any keyword primary",
			tender: models.TenderText{
				Title:               "Supply of computer hardware",
				EligibilityCriteria: "Bidders quoting printers must be authorised dealers",
			},
			keywords:     keywords("printer"),
			wantRule:     "title-primary-focus",
			wantExcluded: true,
			wantKeyword:  "printer",
		},
		{
			name: "procurement title denies the IT service label",
			tender: models.TenderText{
				Title:               "Procurement of laptops",
				EligibilityCriteria: "Includes software development and deployment support",
			},
			keywords:     keywords("laptop"),
			wantRule:     "title-primary-focus",
			wantExcluded: true,
			wantKeyword:  "laptop",
		},
		{
			name: "incidental keyword outside the core domain",
			tender: models.TenderText{
				Title:               "Repair of boundary wall",
				EligibilityCriteria: "Cement and steel to be provided by contractor",
			},
			keywords:     keywords("steel", "cement"),
			wantRule:     "non-core-domain",
			wantExcluded: true,
			wantKeyword:  "steel",
		},
		{
			name: "incidental keyword kept by similar category",
			tender: models.TenderText{
				Title:               "Repair of boundary wall",
				EligibilityCriteria: "Cement and steel to be provided by contractor",
			},
			keywords:        keywords("cement"),
			similarCategory: "IT Services",
			wantRule:        "incidental-mention",
		},
		{
			name: "incidental keyword kept by detected tag",
			tender: models.TenderText{
				Title:               "Repair of boundary wall",
				EligibilityCriteria: "Cement and steel to be provided by contractor",
			},
			tags:     []string{"Software"},
			keywords: keywords("cement"),
			wantRule: "incidental-mention",
		},
		{
			name: "incidental keyword kept by core domain keyword",
			tender: models.TenderText{
				Title:               "Operation of citizen helpdesk",
				EligibilityCriteria: "Agency staff must not carry a printer into the premises",
			},
			keywords: keywords("printer"),
			wantRule: "incidental-mention",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolveNegativeKeywords(tt.tender, tt.tags, tt.keywords, tt.similarCategory)
			assert.Equal(t, tt.wantRule, res.Rule)
			assert.Equal(t, tt.wantExcluded, res.Excluded)
			assert.Equal(t, tt.wantKeyword, res.Keyword)
		})
	}
}

func TestResolveNegativeKeywords_CollectsAllMatches(t *testing.T) {
	tender := models.TenderText{
		Title:               "Painting of office premises",
		EligibilityCriteria: "Cement and paint supply by the agency",
	}

	res := ResolveNegativeKeywords(tender, nil, keywords("steel", "paint", "cement"), "")

	assert.Equal(t, []string{"paint", "cement"}, res.Matched)
	assert.True(t, res.Excluded)
	assert.Equal(t, "paint", res.Keyword)
	assert.Equal(t, "title-primary-focus", res.Rule)
}

func TestResolveNegativeKeywords_KeepsConfiguredSpelling(t *testing.T) {
	tender := models.TenderText{Title: "Supply of Laptops for Office Use"}

	res := ResolveNegativeKeywords(tender, nil, keywords("", "Laptop", "LAPTOP"), "")

	assert.Equal(t, []string{"Laptop"}, res.Matched)
	assert.Equal(t, "Laptop", res.Keyword)
}

func TestIsITService(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		body     string
		expected bool
	}{
		{"verb and noun", "Development of web portal", "", true},
		{"verb only", "Development of boundary wall", "", false},
		{"noun only", "Software licences", "", false},
		{"verb in title noun in body", "Implementation of project", "The database shall be migrated", true},
		{"procurement prefix", "Purchase of software", "including deployment", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title := newCorpus(tt.title)
			full := newCorpus(tt.title, tt.body)
			assert.Equal(t, tt.expected, isITService(title, full))
		})
	}
}
