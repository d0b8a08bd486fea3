package conversation_test

import (
	"strings"
	"testing"

	"github.com/codexa-studio/agency-assistant-go/internal/conversation"
	"github.com/codexa-studio/agency-assistant-go/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPrompt(t *testing.T) {
	got := conversation.BuildSystemPrompt(conversation.TemplatePresentProjects, domain.LangFrench, "Project: Foodly")

	assert.Contains(t, got, "Codexa Studio")
	assert.Contains(t, got, "Reply in French.")
	assert.Contains(t, got, "Project: Foodly")
	assert.Contains(t, got, "paraphrase")
}

func TestBuildSystemPromptWithoutContent(t *testing.T) {
	got := conversation.BuildSystemPrompt(conversation.TemplateGreeting, domain.LangEnglish, "")
	assert.NotContains(t, got, "Context")
}

func TestPricingNoDataPromptForbidsNumbers(t *testing.T) {
	got := conversation.BuildSystemPrompt(conversation.TemplatePricingNoData, domain.LangEnglish, "")
	assert.Contains(t, got, "Do NOT state, estimate or invent any price")
}

func TestBuildUserPromptWindowsHistory(t *testing.T) {
	history := make([]domain.Message, 0, 10)
	for i := 0; i < 10; i++ {
		history = append(history, domain.Message{Role: "user", Content: "old message"})
	}
	history[0].Content = "the very first message"

	got := conversation.BuildUserPrompt(history, "latest question", 0)

	assert.NotContains(t, got, "the very first message")
	assert.True(t, strings.HasSuffix(got, "User: latest question"))
}

func TestCannedRepliesFallBackToEnglish(t *testing.T) {
	assert.Equal(t,
		conversation.EmptyMessageReply(domain.LangEnglish),
		conversation.EmptyMessageReply(domain.Language("de")),
	)
	assert.Equal(t,
		conversation.ErrorReply(domain.LangEnglish),
		conversation.ErrorReply(domain.Language("xx")),
	)
	assert.NotEqual(t,
		conversation.ErrorReply(domain.LangEnglish),
		conversation.ErrorReply(domain.LangArabic),
	)
}
