package conversation

import (
	"regexp"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
)

// servicePatterns maps each catalog service to its multilingual trigger
// expressions. Types are evaluated in declared order; within a type any
// pattern qualifies, and the first type with a match wins.
//
// This classifier runs independently of the intent extractor: a message
// can carry both a pricing intent and a "Mobile App Development"
// service reference.
var servicePatterns = []struct {
	service  domain.ServiceType
	patterns []*regexp.Regexp
}{
	{domain.ServiceEcommerce, []*regexp.Regexp{
		regexp.MustCompile(`(?i)e-?commerce|online (store|shop)|web ?shop|sell(ing)? online|boutique en ligne|vente en ligne|متجر (إلكتروني|الكتروني)|تجارة إلكترونية|بيع عبر الإنترنت`),
	}},
	{domain.ServiceMobile, []*regexp.Regexp{
		regexp.MustCompile(`(?i)mobile app|(android|ios|iphone) app|application mobile|appli(cation)? (android|ios)|تطبيق (جوال|موبايل|هاتف|أندرويد|ايفون)`),
		regexp.MustCompile(`(?i)\bapp\b.*\b(phone|mobile|store)\b`),
	}},
	{domain.ServiceAI, []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bAI\b|artificial intelligence|machine learning|chat ?bot|automation|automatis|intelligence artificielle|ذكاء اصطناعي|أتمتة|روبوت محادثة`),
	}},
	{domain.ServiceDesign, []*regexp.Regexp{
		regexp.MustCompile(`(?i)ui/?ux|user (interface|experience)|(re)?design|maquette|charte graphique|تصميم (واجهات|واجهة|تجربة)`),
	}},
	{domain.ServiceSoftware, []*regexp.Regexp{
		regexp.MustCompile(`(?i)custom software|bespoke|(internal|management) (tool|system)|erp|crm|logiciel (sur mesure|métier)|برنامج (مخصص|خاص)|نظام (إدارة|مخصص)`),
	}},
	{domain.ServiceWebsites, []*regexp.Regexp{
		regexp.MustCompile(`(?i)web ?site|landing page|web page|site (web|internet|vitrine)|page web|موقع (إلكتروني|الكتروني|ويب)?`),
	}},
}

// DetectServiceType returns the first catalog service the message
// references, or ServiceNone.
func DetectServiceType(message string) domain.ServiceType {
	for _, entry := range servicePatterns {
		for _, p := range entry.patterns {
			if p.MatchString(message) {
				return entry.service
			}
		}
	}
	return domain.ServiceNone
}
