package openai

import (
	"context"
	"fmt"

	openaisdk "github.com/sashabaranov/go-openai"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

// Translator implements the translation port via chat completions.
type Translator struct {
	client *Client
}

// NewTranslator creates an OpenAI-backed translator.
func NewTranslator(client *Client) *Translator {
	return &Translator{client: client}
}

func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) (card.Translation, error) {
	prompt := fmt.Sprintf(
		"Translate this %s text to %s. Respond with only the translation, nothing else.\n\nText: %s",
		sourceLang, targetLang, text)

	content, err := t.client.chat(ctx, openaisdk.ChatCompletionRequest{
		Messages: []openaisdk.ChatCompletionMessage{
			{Role: openaisdk.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return card.Translation{}, err
	}
	if content == "" {
		return card.Translation{}, fmt.Errorf("empty translation for %q", text)
	}

	return card.Translation{
		Text:           content,
		TargetLanguage: targetLang,
		Provider:       "openai-" + t.client.config.Model,
		Confidence:     1.0,
	}, nil
}
