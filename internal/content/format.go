package content

import (
	"strings"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
)

// maxBlockLen bounds any free-text content block handed to the
// generator.
const maxBlockLen = 500

// Section labels per locale. The formatter output is advisory context
// for the generation service, never shown verbatim to the end user.
type labels struct {
	project, category, description, features, tags string
	price, includes, otherServices                 string
}

var labelSet = map[domain.Language]labels{
	domain.LangEnglish: {"Project", "Category", "Description", "Features", "Tags", "Price", "Includes", "Other available services"},
	domain.LangFrench:  {"Projet", "Catégorie", "Description", "Fonctionnalités", "Mots-clés", "Prix", "Comprend", "Autres services disponibles"},
	domain.LangArabic:  {"المشروع", "الفئة", "الوصف", "الميزات", "الوسوم", "السعر", "يشمل", "خدمات أخرى متاحة"},
}

func labelsFor(lang domain.Language) labels {
	if l, ok := labelSet[lang]; ok {
		return l
	}
	return labelSet[domain.LangEnglish]
}

// FormatProjects renders fetched projects as a labeled text block in
// the detected language, falling back to English per field. Returns ""
// for an empty slice.
func FormatProjects(projects []domain.Project, lang domain.Language) string {
	if len(projects) == 0 {
		return ""
	}
	l := labelsFor(lang)
	var b strings.Builder
	for i, p := range projects {
		if i > 0 {
			b.WriteString("\n")
		}
		writeField(&b, l.project, p.Title.In(lang))
		writeField(&b, l.category, p.Category.In(lang))
		writeField(&b, l.description, truncate(p.Description.In(lang)))
		if len(p.Features) > 0 {
			writeField(&b, l.features, joinLocales(p.Features, lang))
		}
		if len(p.Tags) > 0 {
			writeField(&b, l.tags, strings.Join(p.Tags, ", "))
		}
	}
	return b.String()
}

// FormatPricing renders the pricing section. When a service type was
// detected, cards are narrowed to that service; an empty narrowing
// falls back to all cards, and a successful narrowing appends a
// one-line mention of the other available packages.
func FormatPricing(sec *domain.PricingSection, lang domain.Language, service domain.ServiceType) string {
	if sec == nil || len(sec.Cards) == 0 {
		return ""
	}
	l := labelsFor(lang)

	cards := sec.Cards
	var others []string
	if service != domain.ServiceNone {
		var matched []domain.PricingCard
		for _, c := range sec.Cards {
			if cardMatchesService(c, service) {
				matched = append(matched, c)
			} else {
				others = append(others, c.Title.In(lang))
			}
		}
		if len(matched) == 0 {
			cards = sec.Cards
			others = nil
		} else {
			cards = matched
		}
	}

	var b strings.Builder
	if t := sec.Title.In(lang); t != "" {
		b.WriteString(t)
		b.WriteString("\n")
	}
	for i, c := range cards {
		if i > 0 {
			b.WriteString("\n")
		}
		title := c.Title.In(lang)
		if sub := c.Subtitle.In(lang); sub != "" {
			title += " — " + sub
		}
		b.WriteString("- ")
		b.WriteString(title)
		b.WriteString("\n")
		if c.Price != "" {
			price := c.Price
			if c.Period != "" {
				price += " / " + c.Period
			}
			writeField(&b, "  "+l.price, price)
		}
		if len(c.Features) > 0 {
			writeField(&b, "  "+l.includes, joinLocales(c.Features, lang))
		}
	}
	if len(others) > 0 {
		b.WriteString("\n")
		writeField(&b, l.otherServices, strings.Join(others, ", "))
	}
	return b.String()
}

// FormatTeam renders the about/team section in the detected language.
func FormatTeam(sec *domain.AboutSection, lang domain.Language) string {
	if sec == nil {
		return ""
	}
	var b strings.Builder
	if t := sec.Title.In(lang); t != "" {
		b.WriteString(t)
		b.WriteString("\n")
	}
	if c := sec.Content.In(lang); c != "" {
		b.WriteString(truncate(c))
		b.WriteString("\n")
	}
	for _, pair := range sec.Info {
		label := pair.Label.In(lang)
		value := pair.Value.In(lang)
		if label == "" || value == "" {
			continue
		}
		writeField(&b, label, value)
	}
	return strings.TrimRight(b.String(), "\n")
}

// cardMatchesService checks the card title/subtitle against the service
// name: exact first, then case-insensitive substring in either
// direction (card names and the catalog drift apart in practice).
func cardMatchesService(c domain.PricingCard, service domain.ServiceType) bool {
	name := strings.ToLower(string(service))
	for _, field := range []string{c.Title.En, c.Title.Fr, c.Title.Ar, c.Subtitle.En, c.Subtitle.Fr, c.Subtitle.Ar} {
		if field == "" {
			continue
		}
		f := strings.ToLower(field)
		if f == name || strings.Contains(f, name) || strings.Contains(name, f) {
			return true
		}
	}
	return false
}

func joinLocales(items []domain.LocaleString, lang domain.Language) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if v := it.In(lang); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxBlockLen {
		return s
	}
	return string(runes[:maxBlockLen]) + "…"
}
