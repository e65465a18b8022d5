// Package testutil provides hand-written port mocks shared by tests.
package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

// MockTranslator mocks the translation port.
type MockTranslator struct {
	Translations map[string]string // sentence text -> translation
	Err          error
	FailFor      map[string]error // per-sentence failures
	Calls        []string
}

func (m *MockTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (card.Translation, error) {
	m.Calls = append(m.Calls, text)

	if m.Err != nil {
		return card.Translation{}, m.Err
	}
	if err, ok := m.FailFor[text]; ok {
		return card.Translation{}, err
	}

	translated, ok := m.Translations[text]
	if !ok {
		translated = fmt.Sprintf("translation of %s", text)
	}
	return card.Translation{
		Text:           translated,
		TargetLanguage: targetLang,
		Provider:       "mock",
		Confidence:     1.0,
	}, nil
}

// MockDictionary mocks the dictionary port. By default it splits the
// sentence on whitespace and fabricates one Word per token.
type MockDictionary struct {
	Err     error
	FailFor map[string]error
	Calls   []string
}

func (m *MockDictionary) AnalyzeSentence(ctx context.Context, sentence, sourceLang, targetLang string) (card.WordBreakdown, error) {
	m.Calls = append(m.Calls, sentence)

	if m.Err != nil {
		return card.WordBreakdown{}, m.Err
	}
	if err, ok := m.FailFor[sentence]; ok {
		return card.WordBreakdown{}, err
	}

	stripped := strings.NewReplacer(".", "", ",", "", "!", "", "?", "").Replace(sentence)
	var words []card.Word
	for _, token := range strings.Fields(stripped) {
		words = append(words, card.Word{
			Text:       token,
			Lemma:      strings.ToLower(token),
			POS:        "noun",
			Definition: "def:" + token,
		})
	}
	return card.WordBreakdown{Words: words}, nil
}

func (m *MockDictionary) LookupWord(ctx context.Context, word, sourceLang, targetLang string) (card.Word, error) {
	if m.Err != nil {
		return card.Word{}, m.Err
	}
	return card.Word{
		Text:       word,
		Lemma:      strings.ToLower(word),
		POS:        "noun",
		Definition: "def:" + word,
	}, nil
}

// MockAudio mocks the TTS port.
type MockAudio struct {
	Err   error
	Data  []byte
	Calls []string
}

func (m *MockAudio) Synthesize(ctx context.Context, text, language string) (card.AudioAsset, []byte, error) {
	m.Calls = append(m.Calls, text)

	if m.Err != nil {
		return card.AudioAsset{}, nil, m.Err
	}
	data := m.Data
	if data == nil {
		data = []byte("mock audio data")
	}
	return card.NewAudioAsset(text, language, card.FormatMP3, "mock"), data, nil
}

// MockGrammar mocks the grammar port.
type MockGrammar struct {
	Notes []card.GrammarNote
	Err   error
	Calls []string
}

func (m *MockGrammar) Explain(ctx context.Context, sentence, language string) ([]card.GrammarNote, error) {
	m.Calls = append(m.Calls, sentence)

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Notes, nil
}

// MockStorage mocks the storage port, keeping saved audio in memory.
type MockStorage struct {
	Err   error
	Saved map[string][]byte
	Calls []string
}

func (m *MockStorage) SaveAudio(ctx context.Context, asset card.AudioAsset, data []byte) (string, error) {
	m.Calls = append(m.Calls, asset.Filename)

	if m.Err != nil {
		return "", m.Err
	}
	if m.Saved == nil {
		m.Saved = make(map[string][]byte)
	}
	m.Saved[asset.Filename] = data
	return "mock://" + asset.Filename, nil
}
