package conversation

import (
	"regexp"
	"strings"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
)

// intentPattern binds one intent to one multilingual expression.
// Submatch 1 is the trigger phrase; submatch 2, when present and
// non-empty, is the specific keyword and wins over the trigger.
type intentPattern struct {
	intent  domain.Intent
	pattern *regexp.Regexp
}

// intentPatterns is evaluated top to bottom; the first match wins.
// Specific intents (pricing, team, services, featured, examples) sit
// above the generic list/search ones so a broad pattern cannot mask a
// narrow one.
var intentPatterns = []intentPattern{
	{domain.IntentPricing, regexp.MustCompile(`(?i)(pricing|price list|prices?|how much|costs?|rates?|quote|packages?|tarifs?|prix|combien (ça|ca) coûte|combien|devis|forfaits?|الأسعار|أسعاركم|أسعار|السعر|كم التكلفة|التكلفة|بكم|باقات)`)},
	{domain.IntentTeam, regexp.MustCompile(`(?i)(your team|the team|who (are|is) (you|behind)|about (you|us|your (agency|company|studio))|founders?|équipe|qui êtes[- ]vous|à propos de vous|الفريق|فريقكم|من أنتم|من انتم|عن الشركة)`)},
	{domain.IntentServices, regexp.MustCompile(`(?i)(your services|list of services|what (do|can) you (do|offer|build|make)|what services|offerings|vos services|quels services|que (faites|proposez)[- ]vous|الخدمات|خدماتكم|ماذا تقدمون|ما هي خدماتكم)`)},
	{domain.IntentFeatured, regexp.MustCompile(`(?i)(featured (projects?|work)|best (projects?|work)|top (projects?|work)|highlights?|meilleurs? (projets?|travaux)|projets? phares?|أفضل (المشاريع|مشاريعكم|الأعمال)|أبرز (المشاريع|الأعمال))`)},
	{domain.IntentExamples, regexp.MustCompile(`(?i)(examples?|samples?|portfolio|(previous|past) work|what have you (built|done|made)|exemples?|réalisations?|travaux précédents|أمثلة|نماذج من أعمالكم|أعمالكم السابقة|ماذا بنيتم)`)},
	{domain.IntentDetails, regexp.MustCompile(`(?i)(details? (?:of|about|on)|more (?:about|info(?:rmation)? (?:about|on))|tell me (?:more )?about|plus de détails? sur|en savoir plus sur|détails? (?:de|sur)|تفاصيل عن|المزيد عن)\s+(.+)`)},
	{domain.IntentCategory, regexp.MustCompile(`(?i)(category|in the category|type of project|catégorie|dans la catégorie|فئة|صنف)\s*:?\s*(.*)`)},
	{domain.IntentSearch, regexp.MustCompile(`(?i)(find|search(?: for)?|looking for|do you have|je cherche|recherche[rz]?|avez[- ]vous|ابحث عن|أبحث عن|هل لديكم)\s+(.+)`)},
	{domain.IntentListAll, regexp.MustCompile(`(?i)(all (?:your |the )?projects?|list (?:all |your |of )?projects?|show (?:me )?(?:your |all |some )?(?:projects?|work)|see your (?:projects?|work)|your projects?|tous (?:vos|les) projets?|montrez[- ]moi|voir vos projets?|vos projets?|كل المشاريع|جميع (?:المشاريع|الأعمال)|أرني (?:مشاريعكم|أعمالكم)|مشاريعكم)`)},
}

// stopWords are dropped from the fallback keyword, together with any
// token of length <= 2. One flat set covers the three languages.
var stopWords = map[string]struct{}{
	// English
	"the": {}, "and": {}, "for": {}, "with": {}, "you": {}, "your": {},
	"what": {}, "how": {}, "can": {}, "are": {}, "this": {}, "that": {},
	"about": {}, "please": {}, "want": {}, "need": {}, "would": {},
	"like": {}, "have": {}, "hello": {}, "tell": {},
	// French
	"les": {}, "des": {}, "une": {}, "pour": {}, "avec": {}, "vous": {},
	"votre": {}, "vos": {}, "comment": {}, "est": {}, "sont": {},
	"bonjour": {}, "suis": {}, "veux": {}, "quoi": {}, "dans": {},
	// Arabic
	"في": {}, "من": {}, "على": {}, "هل": {}, "انا": {}, "أنا": {},
	"هذا": {}, "أريد": {}, "اريد": {}, "ماذا": {}, "كيف": {},
}

// ExtractIntent classifies the message into exactly one intent and
// extracts an associated keyword. It never fails: when no pattern
// matches, the intent is general and the keyword is the stop-word
// filtered remainder of the message (possibly empty).
func ExtractIntent(message string) (domain.Intent, string) {
	for _, p := range intentPatterns {
		m := p.pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		keyword := ""
		if len(m) > 2 && strings.TrimSpace(m[2]) != "" {
			keyword = strings.TrimSpace(m[2])
		} else if len(m) > 1 {
			keyword = strings.TrimSpace(m[1])
		}
		return p.intent, keyword
	}
	return domain.IntentGeneral, fallbackKeyword(message)
}

// fallbackKeyword lowercases the message, drops short tokens and stop
// words, and rejoins what remains.
func fallbackKeyword(message string) string {
	var kept []string
	for _, tok := range strings.Fields(strings.ToLower(message)) {
		tok = strings.Trim(tok, ".,!?;:\"'()؟،")
		if len([]rune(tok)) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}
