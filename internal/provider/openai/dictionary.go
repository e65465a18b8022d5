package openai

import (
	"context"
	"encoding/json"
	"fmt"

	openaisdk "github.com/sashabaranov/go-openai"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

// Dictionary implements the dictionary port via JSON-mode chat completions.
// The model's JSON is parsed strictly at this boundary; the assembler never
// sees a raw response.
type Dictionary struct {
	client *Client
}

// NewDictionary creates an OpenAI-backed dictionary.
func NewDictionary(client *Client) *Dictionary {
	return &Dictionary{client: client}
}

const analyzePromptFormat = `Analyze each word in this %s sentence:
"%s"

Return a JSON object with a single key "words", containing an array where each object has:
- "text": the original word
- "lemma": the base form of the word
- "pos": the part of speech
- "definition": a brief %s definition
- "native_definition": a brief monolingual %s definition
- "pronunciation": IPA transcription, if helpful

Skip punctuation. Keep the words in sentence order.`

func (d *Dictionary) AnalyzeSentence(ctx context.Context, sentence, sourceLang, targetLang string) (card.WordBreakdown, error) {
	prompt := fmt.Sprintf(analyzePromptFormat, sourceLang, sentence, targetLang, sourceLang)

	content, err := d.client.chat(ctx, openaisdk.ChatCompletionRequest{
		Messages: []openaisdk.ChatCompletionMessage{
			{Role: openaisdk.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openaisdk.ChatCompletionResponseFormat{
			Type: openaisdk.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return card.WordBreakdown{}, err
	}

	breakdown, err := parseBreakdown([]byte(content))
	if err != nil {
		return card.WordBreakdown{}, fmt.Errorf("parsing word analysis for %q: %w", sentence, err)
	}
	return breakdown, nil
}

func (d *Dictionary) LookupWord(ctx context.Context, word, sourceLang, targetLang string) (card.Word, error) {
	prompt := fmt.Sprintf(`Analyze this %s word: "%s"

Return a JSON object:
{
  "text": "the word",
  "lemma": "base form of the word",
  "pos": "noun/verb/adj/etc",
  "definition": "concise %s definition (max 5 words)"
}`, sourceLang, word, targetLang)

	content, err := d.client.chat(ctx, openaisdk.ChatCompletionRequest{
		Messages: []openaisdk.ChatCompletionMessage{
			{Role: openaisdk.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openaisdk.ChatCompletionResponseFormat{
			Type: openaisdk.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return card.Word{}, err
	}

	var entry wordEntry
	if err := json.Unmarshal([]byte(content), &entry); err != nil {
		return card.Word{}, fmt.Errorf("parsing word lookup for %q: %w", word, err)
	}
	if entry.Text == "" {
		entry.Text = word
	}
	return entry.toWord(), nil
}

type wordEntry struct {
	Text             string `json:"text"`
	Lemma            string `json:"lemma"`
	POS              string `json:"pos"`
	Definition       string `json:"definition"`
	NativeDefinition string `json:"native_definition"`
	Pronunciation    string `json:"pronunciation"`
}

func (e wordEntry) toWord() card.Word {
	return card.Word{
		Text:             e.Text,
		Lemma:            e.Lemma,
		POS:              e.POS,
		Definition:       e.Definition,
		NativeDefinition: e.NativeDefinition,
		Pronunciation:    e.Pronunciation,
	}
}

// breakdownEnvelope covers the envelopes the model is known to produce even
// when asked for a "words" key.
type breakdownEnvelope struct {
	Words    []wordEntry `json:"words"`
	Analysis []wordEntry `json:"analysis"`
	Result   []wordEntry `json:"result"`
}

// parseBreakdown decodes a word analysis response. Either a bare JSON array
// or an object wrapping the array under a known key is accepted; anything
// else is a parse failure.
func parseBreakdown(data []byte) (card.WordBreakdown, error) {
	var entries []wordEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		var envelope breakdownEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			return card.WordBreakdown{}, fmt.Errorf("unexpected response shape: %w", err)
		}
		switch {
		case envelope.Words != nil:
			entries = envelope.Words
		case envelope.Analysis != nil:
			entries = envelope.Analysis
		case envelope.Result != nil:
			entries = envelope.Result
		default:
			return card.WordBreakdown{}, fmt.Errorf("response contains no word list")
		}
	}

	var breakdown card.WordBreakdown
	for _, entry := range entries {
		if entry.Text == "" {
			continue
		}
		breakdown.Words = append(breakdown.Words, entry.toWord())
	}
	return breakdown, nil
}
