// In file: internal/llm/classifier.go
package llm

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Topic is the behavioral category a prompt classifies into. Exactly one
// topic is selected per conversation.
type Topic string

const (
	TopicLlamaGuide      Topic = "llama_guide"
	TopicModelComparison Topic = "model_comparison"
	TopicWeather         Topic = "weather"
	TopicTime            Topic = "time"
	TopicWikipedia       Topic = "wikipedia"
	TopicProducts        Topic = "products"
	TopicGreeting        Topic = "greeting"
	TopicDefault         Topic = "default"
)

// topicRule pairs a topic with its match predicate. The rules are
// evaluated in order and the first match wins, so later rules are
// unreachable once an earlier one matches; the ordering is deliberate and
// tested directly.
type topicRule struct {
	topic    Topic
	keywords []string
}

var topicRules = []topicRule{
	{TopicLlamaGuide, []string{"how to use llama models"}},
	{TopicModelComparison, []string{"compare deepseek and llama"}},
	{TopicWeather, []string{"weather", "temperature", "forecast", "rain", "sunny", "cloudy"}},
	{TopicTime, []string{"time", "clock", "hour", "timezone", "what time"}},
	{TopicWikipedia, []string{"wikipedia", "wiki", "article", "encyclopedia", "information about", "tell me about", "what is", "who is"}},
	{TopicProducts, []string{"find", "search for", "looking for", "buy", "purchase", "product", "headphones", "laptop", "phone"}},
	{TopicGreeting, []string{"hi", "hello", "hey", "greetings", "good morning", "good afternoon", "good evening", "how are you", "what's up", "nice to meet you"}},
}

// ClassifyTopic selects the behavioral category for a prompt by
// case-insensitive substring matching against the ordered rule list.
func ClassifyTopic(prompt string) Topic {
	lower := strings.ToLower(prompt)
	for _, rule := range topicRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.topic
			}
		}
	}
	return TopicDefault
}

// mathKeywords is the fixed lexical set that routes a reasoning-model
// prompt to the boxed-answer template.
var mathKeywords = []string{
	"calculate", "solve", "equation", "math", "arithmetic", "algebra",
	"geometry", "calculus", "trigonometry", "computation", "formula",
	"+", "-", "*", "/", "=", "^", "square root", "derivative", "integral",
}

func isMathProblem(content string) bool {
	lower := strings.ToLower(content)
	for _, keyword := range mathKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// FormatReasoningPrompt wraps a user prompt in the reasoning-model
// instructional template. It is idempotent: content that already carries
// the template marker is returned unchanged, so reformatting a multi-turn
// history is safe.
func FormatReasoningPrompt(content string) string {
	if strings.HasPrefix(content, reasoningMarkerPrefix) || strings.Contains(content, reasoningMarkerThink) {
		return content
	}
	if isMathProblem(content) {
		return fmt.Sprintf(mathPromptTemplate, content)
	}
	return fmt.Sprintf(generalPromptTemplate, content)
}

// BuildMessages assembles the conversation for one turn. It never mutates
// the caller's slice: each phase produces a new sequence.
//
// Rules:
//   - an empty history is seeded with a single user message from prompt;
//   - for reasoning-style models, every user message is wrapped with the
//     instructional template (idempotently);
//   - a system instruction selected by topic and quick mode is inserted at
//     position 0, but only when no system message already exists and a
//     prompt was supplied.
func BuildMessages(prompt string, prior []Message, modelID string, quick bool) []Message {
	reasoning := IsReasoningModel(modelID)

	messages := make([]Message, 0, len(prior)+2)
	if len(prior) == 0 {
		if prompt != "" {
			content := prompt
			if reasoning {
				content = FormatReasoningPrompt(content)
			}
			messages = append(messages, Message{Role: RoleUser, Content: Text(content)})
		}
	} else {
		for _, m := range prior {
			if reasoning && m.Role == RoleUser && m.Content != nil {
				m.Content = Text(FormatReasoningPrompt(*m.Content))
			}
			messages = append(messages, m)
		}
	}

	if prompt != "" && !HasSystemMessage(messages) {
		topic := ClassifyTopic(prompt)
		log.Debug().Str("topic", string(topic)).Bool("quick", quick).Msg("classified prompt")
		system := Message{Role: RoleSystem, Content: Text(SystemPrompt(topic, quick))}
		messages = append([]Message{system}, messages...)
	}

	return messages
}
