// Package chat serves the dashboard chatbot panel. The Gemini responder
// proxies conversations to the generateContent endpoint; when no key is
// configured or the provider fails, the static responder keeps the panel
// answering instead of erroring.
package chat

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	geminiProviderName = "gemini"
	staticProviderName = "static"
)

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is the generated answer plus the provider that produced it.
type Reply struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
}

// Responder produces a reply for a conversation.
type Responder interface {
	Respond(ctx context.Context, messages []Message) (*Reply, error)
}

// StaticResponder answers with canned farming guidance. It never fails and
// is the fallback behind the Gemini responder.
type StaticResponder struct{}

func NewStaticResponder() *StaticResponder {
	return &StaticResponder{}
}

var staticTopics = map[string]string{
	"water":      "Most field crops need 25-40 mm of water per week; irrigate early in the morning to limit evaporation.",
	"fertilizer": "Split nitrogen applications across the season and always base dosage on a recent soil test.",
	"pest":       "Scout twice a week and prefer targeted treatment over blanket spraying; rotate active ingredients.",
	"weather":    "Check the weather tab before spraying or irrigating; wind above 15 kph makes spraying wasteful.",
}

func (s *StaticResponder) Respond(ctx context.Context, messages []Message) (*Reply, error) {
	last := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			last = messages[i].Content
			break
		}
	}
	lower := strings.ToLower(last)
	for keyword, answer := range staticTopics {
		if strings.Contains(lower, keyword) {
			c := cases.Title(language.English)
			return &Reply{
				Text:     fmt.Sprintf("%s: %s", c.String(keyword), answer),
				Provider: staticProviderName,
			}, nil
		}
	}
	return &Reply{
		Text:     "I can help with watering, fertilizer, pests and weather planning. What would you like to know?",
		Provider: staticProviderName,
	}, nil
}

var _ Responder = (*StaticResponder)(nil)
