// Package content holds the pure content-store mapping layer: building
// GROQ queries from classified turns and rendering fetched records into
// advisory text blocks. No I/O happens here.
package content

import (
	"github.com/codexa-studio/agency-assistant-go/internal/domain"
)

// Query is a GROQ expression plus its bound parameters. User-supplied
// keywords travel ONLY as parameters — they are never interpolated into
// the expression text, which closes the injection hole of naive string
// templating. Same inputs always produce byte-identical output.
type Query struct {
	GROQ   string
	Params map[string]string
}

const projectFields = `{_id, "slug": slug.current, title, category, description, features, tags, featured, order}`

const (
	queryPricing  = `*[_type == "pricingSection"][0]{_id, title, cards}`
	queryTeam     = `*[_type == "aboutSection"][0]{_id, title, content, info}`
	queryAll      = `*[_type == "project"] | order(order asc, _createdAt desc)[0...8]` + projectFields
	queryFeatured = `*[_type == "project" && featured == true] | order(order asc, _createdAt desc)[0...5]` + projectFields
	queryDefault  = `*[_type == "project"] | order(_createdAt desc)[0...6]` + projectFields

	// Category text may have been entered in any locale, so all three
	// fields are matched regardless of the detected language.
	queryCategory = `*[_type == "project" && (category.en match $kw || category.fr match $kw || category.ar match $kw)][0...5]` + projectFields

	querySearch = `*[_type == "project" && (title.en match $kw || title.fr match $kw || title.ar match $kw || description.en match $kw || description.fr match $kw || description.ar match $kw || category.en match $kw || category.fr match $kw || category.ar match $kw || slug.current match $kw || $raw in tags)][0...5]` + projectFields
)

// BuildQuery maps (intent, keyword) to the content-store query for the
// turn. It is pure and total; an empty keyword on a keyword-driven
// intent degrades to the loose default query. All result sets are
// bounded (3-8 records) to cap payload size and formatting cost.
func BuildQuery(intent domain.Intent, keyword string) Query {
	switch intent {
	case domain.IntentPricing:
		return Query{GROQ: queryPricing}
	case domain.IntentTeam:
		return Query{GROQ: queryTeam}
	case domain.IntentListAll, domain.IntentServices:
		return Query{GROQ: queryAll}
	case domain.IntentFeatured, domain.IntentExamples:
		return Query{GROQ: queryFeatured}
	case domain.IntentCategory:
		if keyword == "" {
			return Query{GROQ: queryDefault}
		}
		return Query{GROQ: queryCategory, Params: map[string]string{"kw": "*" + keyword + "*"}}
	case domain.IntentDetails, domain.IntentSearch:
		if keyword == "" {
			return Query{GROQ: queryDefault}
		}
		return Query{
			GROQ: querySearch,
			Params: map[string]string{
				"kw":  "*" + keyword + "*",
				"raw": keyword,
			},
		}
	default:
		return Query{GROQ: queryDefault}
	}
}
