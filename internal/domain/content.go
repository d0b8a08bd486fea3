package domain

// ============================================================
// Content store records (projects, pricing, team)
// ============================================================
//
// Records are fetched fresh every turn, formatted, and discarded.
// Fields are localized: the formatter picks the detected-language
// value and falls back to English when the key is absent.

// LocaleString is a field translated into the three supported locales.
type LocaleString struct {
	En string `json:"en,omitempty"`
	Fr string `json:"fr,omitempty"`
	Ar string `json:"ar,omitempty"`
}

// In returns the value for the given language, falling back to English.
func (l LocaleString) In(lang Language) string {
	switch lang {
	case LangFrench:
		if l.Fr != "" {
			return l.Fr
		}
	case LangArabic:
		if l.Ar != "" {
			return l.Ar
		}
	}
	return l.En
}

// Empty reports whether no locale carries a value.
func (l LocaleString) Empty() bool {
	return l.En == "" && l.Fr == "" && l.Ar == ""
}

// Project is a portfolio entry from the content store.
type Project struct {
	ID          string         `json:"_id"`
	Slug        string         `json:"slug,omitempty"`
	Title       LocaleString   `json:"title"`
	Category    LocaleString   `json:"category"`
	Description LocaleString   `json:"description"`
	Features    []LocaleString `json:"features,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Featured    bool           `json:"featured,omitempty"`
	Order       int            `json:"order,omitempty"`
}

// PricingCard is one package inside the pricing section.
type PricingCard struct {
	Title    LocaleString   `json:"title"`
	Subtitle LocaleString   `json:"subtitle,omitempty"`
	Price    string         `json:"price,omitempty"`
	Period   string         `json:"period,omitempty"`
	Features []LocaleString `json:"features,omitempty"`
	Popular  bool           `json:"popular,omitempty"`
}

// PricingSection is the single pricing-section document.
type PricingSection struct {
	ID    string        `json:"_id"`
	Title LocaleString  `json:"title"`
	Cards []PricingCard `json:"cards,omitempty"`
}

// InfoPair is a labeled fact inside the about section (founded, size, ...).
type InfoPair struct {
	Label LocaleString `json:"label"`
	Value LocaleString `json:"value"`
}

// AboutSection is the single team/about document.
type AboutSection struct {
	ID      string       `json:"_id"`
	Title   LocaleString `json:"title"`
	Content LocaleString `json:"content,omitempty"`
	Info    []InfoPair   `json:"info,omitempty"`
}

// CatalogService is the simplified service entry returned by GET /v1/services.
type CatalogService struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Price string `json:"price,omitempty"`
}
