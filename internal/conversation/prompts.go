package conversation

import (
	"strings"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
)

// ============================================================
// Prompt assembly — instructions for the generation service
// ============================================================
//
// Instructions are written in English; the reply language is forced by
// an explicit directive so one template set covers all three locales.
// Formatted content-store data is advisory context: the generator is
// told to paraphrase, never to echo it verbatim.

const basePersona = `You are the assistant of Codexa Studio, a digital agency building websites, mobile apps, e-commerce platforms, custom software, AI automation and UI/UX design. You are warm, concise and professional. Keep replies short (2-4 sentences unless listing items). Never invent facts, projects, team members or prices that are not in the provided context.`

var replyLanguage = map[domain.Language]string{
	domain.LangEnglish: "Reply in English.",
	domain.LangFrench:  "Reply in French.",
	domain.LangArabic:  "Reply in Modern Standard Arabic.",
}

var templateInstructions = map[PromptTemplate]string{
	TemplateGreeting:          "The user just greeted you. Greet them back briefly, introduce the agency in one sentence, and ask what they are looking to build. Do not list projects or prices.",
	TemplateNoMatch:           "No matching content was found for the user's request. Acknowledge that you could not find exactly that, do not claim the agency has never done it, and ask one clarifying question about what they need.",
	TemplatePricingNoData:     "The user asked about pricing but no pricing information is available right now. Do NOT state, estimate or invent any price or number. Explain that pricing depends on the project and offer to have the team prepare a tailored quote if they share their contact details.",
	TemplatePresentProjects:   "Use the project data in the context below to answer. Mention at most three projects by name, paraphrase their descriptions, and invite the user to ask for details about any of them.",
	TemplatePresentPricing:    "Use the pricing data in the context below to answer. Paraphrase the relevant packages, mention what each includes, and note that a tailored quote is possible.",
	TemplatePresentTeam:       "Use the team information in the context below to answer. Paraphrase it naturally; do not recite it verbatim.",
	TemplateContactConfirmed:  "The user agreed to share contact details. Thank them warmly and tell them a short form will appear to collect their name, email and phone so the team can reach out.",
	TemplateContactDetails:    "The user asked how to get in touch. Tell them the easiest way is the contact form that will appear, and that the team replies quickly.",
	TemplateAwaitConfirmation: "You already offered to take the user's contact details and they have not agreed yet. Answer their message helpfully and remind them, gently and only once, that the offer stands. Do not pressure them.",
	TemplateAskPermission:     "You now know enough about the user's project. Summarize in one sentence what you understood they need, then explicitly ask whether they would like to leave their contact details so the team can follow up with a proposal. Ask permission; do not assume agreement.",
	TemplateAskProjectType:    "You do not yet know what the user wants to build. Answer their message briefly, then ask one question about what kind of project they have in mind (website, mobile app, online store, custom software...).",
	TemplateAskFeatures:       "You know the project type but not the features. Answer briefly, then ask one question about the key features or functionality they need.",
	TemplateAskBudgetTimeline: "You know the project type and features. Answer briefly, then ask one question about their budget range or their timeline.",
	TemplateKeepDiscovery:     "Continue the conversation naturally and encourage the user to keep describing their needs. Ask at most one question.",
}

// BuildSystemPrompt assembles the system instruction for the turn:
// persona + language directive + the template's instruction + the
// formatted content block, when any.
func BuildSystemPrompt(tmpl PromptTemplate, lang domain.Language, contentBlock string) string {
	var b strings.Builder
	b.WriteString(basePersona)
	b.WriteString("\n\n")
	b.WriteString(replyLanguage[lang])
	b.WriteString("\n\n")
	b.WriteString(templateInstructions[tmpl])
	if contentBlock != "" {
		b.WriteString("\n\nContext (paraphrase, never copy verbatim):\n")
		b.WriteString(contentBlock)
	}
	return b.String()
}

// BuildUserPrompt folds the bounded recent history into the user-side
// prompt so the generator sees the conversational thread.
func BuildUserPrompt(history []domain.Message, message string, window int) string {
	if window <= 0 {
		window = 6
	}
	start := len(history) - window
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for _, m := range history[start:] {
		if m.Role == "assistant" {
			b.WriteString("Assistant: ")
		} else {
			b.WriteString("User: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(message)
	return b.String()
}

// Canned localized replies for paths that never reach the generator.

var emptyMessageReplies = map[domain.Language]string{
	domain.LangEnglish: "Please type a message so I can help you.",
	domain.LangFrench:  "Veuillez écrire un message pour que je puisse vous aider.",
	domain.LangArabic:  "يرجى كتابة رسالة حتى أتمكن من مساعدتك.",
}

var errorReplies = map[domain.Language]string{
	domain.LangEnglish: "Sorry, something went wrong on our side. Please try again in a moment.",
	domain.LangFrench:  "Désolé, une erreur est survenue de notre côté. Veuillez réessayer dans un instant.",
	domain.LangArabic:  "عذراً، حدث خطأ من جهتنا. يرجى المحاولة مرة أخرى بعد قليل.",
}

// EmptyMessageReply returns the localized short-circuit reply for an
// empty inbound message.
func EmptyMessageReply(lang domain.Language) string {
	if r, ok := emptyMessageReplies[lang]; ok {
		return r
	}
	return emptyMessageReplies[domain.LangEnglish]
}

// ErrorReply returns the localized canned apology used when the
// generation service fails. Raw upstream errors are never shown.
func ErrorReply(lang domain.Language) string {
	if r, ok := errorReplies[lang]; ok {
		return r
	}
	return errorReplies[domain.LangEnglish]
}
