// Package translate converts assembled region text into the target
// language.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Translator converts source-language text into the target language. It
// is invoked once per assembled region, synchronously, in page order then
// region order.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// OpenAI is a Translator backed by an OpenAI-compatible chat-completions
// endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
	prompt string
}

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4oMini

// NewOpenAI returns a Translator for the given language pair. baseURL may
// be empty for the public OpenAI endpoint; model may be empty for
// DefaultModel. Language codes are ISO 639-1 ("ja", "en").
func NewOpenAI(apiKey, baseURL, model, source, target string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		prompt: Prompt(source, target),
	}
}

// Prompt builds the system prompt for a source/target language pair.
func Prompt(source, target string) string {
	return fmt.Sprintf(
		"You translate comic dialogue from %s to %s. "+
			"Reply with the translation only, no commentary, no quotes. "+
			"Keep it short and natural for a speech bubble.",
		source, target)
}

// Translate sends one region's text and returns the translation.
func (t *OpenAI) Translate(ctx context.Context, text string) (string, error) {
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: t.prompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("translation returned no choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("translation returned empty text")
	}
	return out, nil
}
