package conversation

import (
	"regexp"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
)

// Signal patterns scan the ENTIRE history, not just the latest message.
// A signal that matched once stays true for the rest of the
// conversation, which makes detailsCollected non-decreasing.
var (
	projectTypeRe = regexp.MustCompile(`(?i)web ?site|landing page|mobile app|application|e-?commerce|online (store|shop)|boutique|platform|plateforme|software|logiciel|chat ?bot|dashboard|portal|site (web|vitrine)|موقع|تطبيق|متجر|منصة|برنامج`)

	featuresRe = regexp.MustCompile(`(?i)features?|functionalit|fonctionnalité|login|sign[- ]?in|auth|payment|checkout|paiement|booking|réservation|notifications?|admin panel|search bar|multi[- ]?language|خاصية|خصائص|ميزة|ميزات|دفع|تسجيل (الدخول|دخول)|حجز`)

	budgetRe = regexp.MustCompile(`(?i)budget|[\$€£]\s?\d|\d+\s?(usd|eur|mad|dh|dhs|dollars?|euros?|dirhams?)|price range|afford|ميزانية|ميزانيتي|درهم|دولار|يورو`)

	timelineRe = regexp.MustCompile(`(?i)timeline|deadline|delivery date|launch (date|by)|(next|in \d+|within \d+|few) (days?|weeks?|months?)|asap|urgent|délai|échéance|semaines?|mois prochain|موعد (التسليم|الإطلاق)|أسبوع|أسابيع|شهر|أشهر|مستعجل`)

	goalsRe = regexp.MustCompile(`(?i)goals?|objectives?|grow (my|our|the) business|more (customers|clients|sales|leads)|increase (sales|revenue|traffic)|visibility|audience|objectifs?|développer|plus de clients|augmenter (les ventes|le trafic)|هدف|أهداف|زيادة (المبيعات|الزبائن)|تطوير (عملي|نشاطي)`)
)

// DeriveSignals scans every user message in the history plus the
// current message and reports which discovery topics were mentioned.
func DeriveSignals(history []domain.Message, current string) domain.Signals {
	var s domain.Signals
	scan := func(text string) {
		if !s.ProjectType && projectTypeRe.MatchString(text) {
			s.ProjectType = true
		}
		if !s.Features && featuresRe.MatchString(text) {
			s.Features = true
		}
		if !s.Budget && budgetRe.MatchString(text) {
			s.Budget = true
		}
		if !s.Timeline && timelineRe.MatchString(text) {
			s.Timeline = true
		}
		if !s.Goals && goalsRe.MatchString(text) {
			s.Goals = true
		}
	}

	for _, m := range history {
		if m.Role != "user" {
			continue
		}
		scan(m.Content)
	}
	scan(current)
	return s
}
