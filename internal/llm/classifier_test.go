// In file: internal/llm/classifier_test.go
package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTopic(t *testing.T) {
	assert.Equal(t, TopicLlamaGuide, ClassifyTopic("How to use Llama models"))
	assert.Equal(t, TopicModelComparison, ClassifyTopic("Please compare DeepSeek and Llama for me"))
	assert.Equal(t, TopicWeather, ClassifyTopic("What's the weather in Paris?"))
	assert.Equal(t, TopicWeather, ClassifyTopic("Will it rain tomorrow?"))
	assert.Equal(t, TopicTime, ClassifyTopic("What time is it in Tokyo?"))
	assert.Equal(t, TopicWikipedia, ClassifyTopic("Tell me about Albert Einstein"))
	assert.Equal(t, TopicProducts, ClassifyTopic("buy a laptop under $500"))
	assert.Equal(t, TopicGreeting, ClassifyTopic("hello"))
	assert.Equal(t, TopicDefault, ClassifyTopic("explain quantum entanglement"))
}

func TestClassifyTopic_FirstMatchWins(t *testing.T) {
	// "weather" precedes "time" in the rule order, so a prompt mentioning
	// both classifies as weather.
	assert.Equal(t, TopicWeather, ClassifyTopic("what time does the weather change"))

	// "tell me about" (wikipedia) precedes "product" in the rule order.
	assert.Equal(t, TopicWikipedia, ClassifyTopic("tell me about this product"))
}

func TestClassifyTopic_CaseInsensitive(t *testing.T) {
	assert.Equal(t, ClassifyTopic("WEATHER in london"), ClassifyTopic("weather in london"))
}

func TestFormatReasoningPrompt_MathProblem(t *testing.T) {
	formatted := FormatReasoningPrompt("Calculate 17 times 23")

	assert.True(t, strings.HasPrefix(formatted, "Please answer the following math problem."))
	assert.Contains(t, formatted, "\\boxed{}")
	assert.Contains(t, formatted, "Problem: Calculate 17 times 23")
}

func TestFormatReasoningPrompt_GeneralQuestion(t *testing.T) {
	formatted := FormatReasoningPrompt("Why is the sky blue")

	assert.True(t, strings.HasPrefix(formatted, "Please answer the following question."))
	assert.Contains(t, formatted, "Question: Why is the sky blue")
	assert.NotContains(t, formatted, "\\boxed{}")
}

func TestFormatReasoningPrompt_Idempotent(t *testing.T) {
	once := FormatReasoningPrompt("Why is the sky blue")
	twice := FormatReasoningPrompt(once)
	assert.Equal(t, once, twice)

	once = FormatReasoningPrompt("solve x = 2 + 2")
	twice = FormatReasoningPrompt(once)
	assert.Equal(t, once, twice)
}

func TestBuildMessages_EmptyHistorySeedsPrompt(t *testing.T) {
	messages := BuildMessages("What's the weather in Paris?", nil, DefaultModelID, true)

	require.Len(t, messages, 2)
	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Equal(t, SystemPrompt(TopicWeather, true), messages[0].TextContent())
	assert.Equal(t, RoleUser, messages[1].Role)
	assert.Equal(t, "What's the weather in Paris?", messages[1].TextContent())
}

func TestBuildMessages_QuickModeSelectsPromptVariant(t *testing.T) {
	quick := BuildMessages("What's the weather in Paris?", nil, DefaultModelID, true)
	full := BuildMessages("What's the weather in Paris?", nil, DefaultModelID, false)

	assert.NotEqual(t, quick[0].TextContent(), full[0].TextContent())
	assert.Equal(t, SystemPrompt(TopicWeather, false), full[0].TextContent())
}

func TestBuildMessages_ExistingSystemMessagePreserved(t *testing.T) {
	prior := []Message{
		{Role: RoleSystem, Content: Text("custom instructions")},
		{Role: RoleUser, Content: Text("hello")},
	}

	messages := BuildMessages("hello again", prior, DefaultModelID, true)

	require.Len(t, messages, 2)
	assert.Equal(t, "custom instructions", messages[0].TextContent())
}

func TestBuildMessages_NoPromptNoSystemInsertion(t *testing.T) {
	prior := []Message{{Role: RoleUser, Content: Text("continue the story")}}

	messages := BuildMessages("", prior, DefaultModelID, true)

	require.Len(t, messages, 1)
	assert.Equal(t, RoleUser, messages[0].Role)
}

func TestBuildMessages_ReasoningModelWrapsUserMessages(t *testing.T) {
	reasoningID := ModelCatalog()[1].ID
	require.True(t, IsReasoningModel(reasoningID))

	prior := []Message{
		{Role: RoleUser, Content: Text("Why is the sky blue")},
		{Role: RoleAssistant, Content: Text("Because of Rayleigh scattering.")},
	}

	messages := BuildMessages("", prior, reasoningID, true)

	require.Len(t, messages, 2)
	assert.True(t, strings.HasPrefix(messages[0].TextContent(), "Please answer"))
	assert.Equal(t, "Because of Rayleigh scattering.", messages[1].TextContent())

	// The caller's slice is never mutated.
	assert.Equal(t, "Why is the sky blue", prior[0].TextContent())
}

func TestBuildMessages_ReasoningWrapIsIdempotentAcrossTurns(t *testing.T) {
	reasoningID := ModelCatalog()[1].ID

	first := BuildMessages("Why is the sky blue", nil, reasoningID, true)
	second := BuildMessages("", first[1:], reasoningID, true)

	assert.Equal(t, first[1].TextContent(), second[0].TextContent())
}
