package openai

import (
	"context"
	"fmt"

	openaisdk "github.com/sashabaranov/go-openai"

	"github.com/phrasedeck/phrasedeck/internal/card"
	"github.com/phrasedeck/phrasedeck/internal/provider"
)

// Grammar implements the grammar port via JSON-mode chat completions.
type Grammar struct {
	client *Client
}

// NewGrammar creates an OpenAI-backed grammar explainer.
func NewGrammar(client *Client) *Grammar {
	return &Grammar{client: client}
}

const grammarPromptFormat = `Analyze the following %s sentence:
"%s"

Identify and explain any notable grammar, idioms, metaphors, or cultural phrases.
If the sentence is simple, just explain the main verb tense.

Return a JSON object with a single key "notes", containing an array of objects:
{
  "notes": [
    {
      "title": "short label for the phenomenon",
      "explanation": "a concise explanation",
      "examples": ["optional example of the phrase in another sentence"]
    }
  ]
}

If no notable phrases are found, return {"notes": []}.`

func (g *Grammar) Explain(ctx context.Context, sentence, language string) ([]card.GrammarNote, error) {
	prompt := fmt.Sprintf(grammarPromptFormat, language, sentence)

	content, err := g.client.chat(ctx, openaisdk.ChatCompletionRequest{
		Messages: []openaisdk.ChatCompletionMessage{
			{Role: openaisdk.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openaisdk.ChatCompletionResponseFormat{
			Type: openaisdk.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.4,
	})
	if err != nil {
		return nil, err
	}

	notes, err := provider.ParseGrammarNotes([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("parsing grammar notes for %q: %w", sentence, err)
	}
	return notes, nil
}
