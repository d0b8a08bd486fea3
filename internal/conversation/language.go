// Package conversation holds the classification and stage-resolution
// core: pure functions over the message text and the caller-supplied
// history. Nothing in this package performs I/O or reads ambient state,
// which keeps every decision deterministic and testable.
package conversation

import (
	"regexp"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
)

// Arabic is script-based and unambiguous, so it is tested first.
// The French word list can false-positive on very short strings, which
// is acceptable because English is only the fallback default.
var (
	arabicScriptRe = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)

	frenchWordsRe = regexp.MustCompile(`(?i)\b(le|la|les|une|des|du|est|sont|je|tu|vous|nous|avec|pour|votre|vos|bonjour|bonsoir|salut|merci|combien|comment|pourquoi|quel|quelle|projet|projets|prix|tarif|tarifs|équipe|equipe)\b`)
)

// DetectLanguage classifies the message into one of {ar, fr, en}.
// It is total: any input yields a value, with English as the default.
func DetectLanguage(message string) domain.Language {
	if arabicScriptRe.MatchString(message) {
		return domain.LangArabic
	}
	if frenchWordsRe.MatchString(message) {
		return domain.LangFrench
	}
	return domain.LangEnglish
}
