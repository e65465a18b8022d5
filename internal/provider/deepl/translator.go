// Package deepl implements the translation port against the DeepL REST API.
package deepl

import (
	"context"
	"fmt"
	"strings"

	"resty.dev/v3"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

const defaultBaseURL = "https://api-free.deepl.com/v2"

// Translator calls the DeepL v2 translate endpoint.
type Translator struct {
	httpClient *resty.Client
}

// NewTranslator creates a DeepL translator. baseURL may be empty to use the
// free-tier endpoint.
func NewTranslator(apiKey, baseURL string) *Translator {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "DeepL-Auth-Key "+apiKey)

	return &Translator{httpClient: client}
}

// Close releases the underlying HTTP client.
func (t *Translator) Close() error {
	return t.httpClient.Close()
}

type translateResponse struct {
	Translations []struct {
		Text                   string `json:"text"`
		DetectedSourceLanguage string `json:"detected_source_language"`
	} `json:"translations"`
}

func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) (card.Translation, error) {
	var result translateResponse
	resp, err := t.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"text":        text,
			"source_lang": strings.ToUpper(sourceLang),
			"target_lang": strings.ToUpper(targetLang),
		}).
		SetResult(&result).
		Post("/translate")
	if err != nil {
		return card.Translation{}, fmt.Errorf("DeepL request failed: %w", err)
	}
	if resp.IsError() {
		return card.Translation{}, fmt.Errorf("DeepL response error %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Translations) == 0 {
		return card.Translation{}, fmt.Errorf("DeepL returned no translations for %q", text)
	}

	return card.Translation{
		Text:           result.Translations[0].Text,
		TargetLanguage: targetLang,
		Provider:       "deepl",
		Confidence:     1.0, // DeepL does not report confidence
	}, nil
}
