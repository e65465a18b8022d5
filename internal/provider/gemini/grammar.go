// Package gemini provides a grammar explainer backed by the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avast/retry-go"
	"google.golang.org/genai"

	"github.com/phrasedeck/phrasedeck/internal/card"
	"github.com/phrasedeck/phrasedeck/internal/provider"
)

const defaultModel = "gemini-2.0-flash"

// Config holds the Gemini connection settings.
type Config struct {
	APIKey     string
	Model      string
	MaxRetries int
}

// DefaultConfig returns settings suitable for grammar explanations.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:     apiKey,
		Model:      defaultModel,
		MaxRetries: 3,
	}
}

// Grammar implements the grammar port on top of Gemini JSON-mode generation.
type Grammar struct {
	client *genai.Client
	config Config
	logger *slog.Logger
}

// NewGrammar creates a Gemini-backed grammar explainer.
func NewGrammar(ctx context.Context, config Config, logger *slog.Logger) (*Grammar, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Grammar{client: client, config: config, logger: logger}, nil
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

	var notes []card.GrammarNote
	err := retry.Do(
		func() error {
			resp, err := g.client.Models.GenerateContent(ctx, g.config.Model,
				genai.Text(prompt),
				&genai.GenerateContentConfig{
					ResponseMIMEType: "application/json",
					Temperature:      genai.Ptr[float32](0.4),
				})
			if err != nil {
				return fmt.Errorf("gemini request failed: %w", err)
			}

			text := resp.Text()
			if text == "" {
				return retry.Unrecoverable(fmt.Errorf("gemini returned no content for %q", sentence))
			}

			parsed, err := provider.ParseGrammarNotes([]byte(text))
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("parsing grammar notes for %q: %w", sentence, err))
			}
			notes = parsed
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(totalAttempts(g.config.MaxRetries)),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			g.logger.WarnContext(ctx, "retrying gemini call", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// totalAttempts converts the MaxRetries budget into the attempt count
// retry-go expects: the first call plus that many retries.
func totalAttempts(maxRetries int) uint {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return uint(maxRetries) + 1
}
