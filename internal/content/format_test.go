package content_test

import (
	"strings"
	"testing"

	"github.com/codexa-studio/agency-assistant-go/internal/content"
	"github.com/codexa-studio/agency-assistant-go/internal/domain"

	"github.com/stretchr/testify/assert"
)

func sampleProjects() []domain.Project {
	return []domain.Project{
		{
			ID:          "p1",
			Title:       domain.LocaleString{En: "Foodly", Fr: "Foodly FR"},
			Category:    domain.LocaleString{En: "Mobile App", Fr: "Application mobile"},
			Description: domain.LocaleString{En: "A food delivery app."},
			Features:    []domain.LocaleString{{En: "Ordering"}, {En: "Tracking"}},
			Tags:        []string{"food", "mobile"},
		},
		{
			ID:       "p2",
			Title:    domain.LocaleString{En: "ShopMax"},
			Category: domain.LocaleString{En: "E-commerce"},
		},
	}
}

func TestFormatProjects(t *testing.T) {
	got := content.FormatProjects(sampleProjects(), domain.LangEnglish)

	assert.Contains(t, got, "Project: Foodly")
	assert.Contains(t, got, "Category: Mobile App")
	assert.Contains(t, got, "Features: Ordering, Tracking")
	assert.Contains(t, got, "Tags: food, mobile")
	assert.Contains(t, got, "Project: ShopMax")
}

func TestFormatProjectsLocaleFallback(t *testing.T) {
	got := content.FormatProjects(sampleProjects(), domain.LangFrench)

	// French value where present, English where not.
	assert.Contains(t, got, "Projet: Foodly FR")
	assert.Contains(t, got, "Catégorie: Application mobile")
	assert.Contains(t, got, "A food delivery app.")
}

func TestFormatProjectsEmpty(t *testing.T) {
	assert.Equal(t, "", content.FormatProjects(nil, domain.LangEnglish))
}

func TestFormatProjectsTruncatesLongDescriptions(t *testing.T) {
	long := strings.Repeat("word ", 200)
	projects := []domain.Project{{
		Title:       domain.LocaleString{En: "Big"},
		Category:    domain.LocaleString{En: "Web"},
		Description: domain.LocaleString{En: long},
	}}

	got := content.FormatProjects(projects, domain.LangEnglish)
	assert.Less(t, len(got), len(long))
	assert.Contains(t, got, "…")
}

func samplePricing() *domain.PricingSection {
	return &domain.PricingSection{
		Title: domain.LocaleString{En: "Our Packages"},
		Cards: []domain.PricingCard{
			{
				Title:    domain.LocaleString{En: "Professional Websites"},
				Price:    "9000 MAD",
				Features: []domain.LocaleString{{En: "Responsive design"}},
			},
			{
				Title: domain.LocaleString{En: "Mobile App Development"},
				Price: "25000 MAD",
			},
		},
	}
}

func TestFormatPricingAllCards(t *testing.T) {
	got := content.FormatPricing(samplePricing(), domain.LangEnglish, domain.ServiceNone)

	assert.Contains(t, got, "Our Packages")
	assert.Contains(t, got, "Professional Websites")
	assert.Contains(t, got, "9000 MAD")
	assert.Contains(t, got, "Mobile App Development")
	assert.NotContains(t, got, "Other available services")
}

func TestFormatPricingNarrowsToService(t *testing.T) {
	got := content.FormatPricing(samplePricing(), domain.LangEnglish, domain.ServiceMobile)

	assert.Contains(t, got, "Mobile App Development")
	assert.Contains(t, got, "25000 MAD")
	// The skipped card survives only in the one-line mention.
	assert.Contains(t, got, "Other available services: Professional Websites")
	assert.NotContains(t, got, "9000 MAD")
}

func TestFormatPricingUnmatchedServiceKeepsAllCards(t *testing.T) {
	got := content.FormatPricing(samplePricing(), domain.LangEnglish, domain.ServiceAI)

	assert.Contains(t, got, "Professional Websites")
	assert.Contains(t, got, "Mobile App Development")
	assert.NotContains(t, got, "Other available services")
}

func TestFormatPricingNilSection(t *testing.T) {
	assert.Equal(t, "", content.FormatPricing(nil, domain.LangEnglish, domain.ServiceNone))
	assert.Equal(t, "", content.FormatPricing(&domain.PricingSection{}, domain.LangEnglish, domain.ServiceNone))
}

func TestFormatTeam(t *testing.T) {
	sec := &domain.AboutSection{
		Title:   domain.LocaleString{En: "About Us"},
		Content: domain.LocaleString{En: "We are a small team of builders."},
		Info: []domain.InfoPair{
			{Label: domain.LocaleString{En: "Founded"}, Value: domain.LocaleString{En: "2019"}},
			{Label: domain.LocaleString{En: "Team size"}, Value: domain.LocaleString{}},
		},
	}

	got := content.FormatTeam(sec, domain.LangEnglish)

	assert.Contains(t, got, "About Us")
	assert.Contains(t, got, "We are a small team of builders.")
	assert.Contains(t, got, "Founded: 2019")
	// Pairs with a missing value are dropped.
	assert.NotContains(t, got, "Team size")
}
