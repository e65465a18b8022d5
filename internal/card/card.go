// Package card holds the flashcard domain model and the assembler that
// builds one complete card from the provider ports.
package card

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AudioFormat is the container format of a synthesized audio asset.
type AudioFormat string

const (
	FormatMP3 AudioFormat = "mp3"
	FormatWAV AudioFormat = "wav"
	FormatOGG AudioFormat = "ogg"
)

// Sentence is a sentence in the source language. It is immutable once
// created; the ID is assigned at creation and never changes.
type Sentence struct {
	ID         string
	Text       string
	Language   string
	Source     string // where it came from (URL, book, ...), optional
	Difficulty string // CEFR level (A1..C2), optional
	CreatedAt  time.Time
}

// NewSentence wraps raw text into a Sentence with a fresh stable ID.
func NewSentence(text, language string) Sentence {
	return Sentence{
		ID:        uuid.NewString(),
		Text:      text,
		Language:  language,
		CreatedAt: time.Now().UTC(),
	}
}

// Translation is the target-language rendition of a sentence.
type Translation struct {
	Text           string
	TargetLanguage string
	Provider       string
	Confidence     float64 // 0-1, 1 when the provider reports none
}

// Word is a single analyzed word. Definition is in the target language;
// NativeDefinition is an optional monolingual definition in the source
// language.
type Word struct {
	Text             string
	Lemma            string
	POS              string
	Definition       string
	NativeDefinition string
	Pronunciation    string
}

// WordBreakdown is the word-by-word analysis of a sentence, in sentence
// order. It may be empty.
type WordBreakdown struct {
	Words []Word
}

// AudioAsset describes a stored audio recording of a sentence. The filename
// is derived from the spoken text and language, so the same sentence always
// resolves to the same file.
type AudioAsset struct {
	Filename string
	Format   AudioFormat
	Language string
	Provider string
	URL      string // set after storage for remote backends, optional
}

// NewAudioAsset builds the asset metadata for a synthesized sentence.
func NewAudioAsset(text, language string, format AudioFormat, provider string) AudioAsset {
	return AudioAsset{
		Filename: AudioFilename(text, language, format),
		Format:   format,
		Language: language,
		Provider: provider,
	}
}

// AudioFilename derives the content-addressed filename for a sentence
// recording. Identical text and language always map to the same name.
func AudioFilename(text, language string, format AudioFormat) string {
	sum := md5.Sum([]byte(language + "|" + text))
	return fmt.Sprintf("%s.%s", hex.EncodeToString(sum[:]), format)
}

// GrammarNote is one grammar, idiom or usage explanation for a sentence.
type GrammarNote struct {
	Title       string
	Explanation string
	Examples    []string
}

// Card is one complete flashcard. Translation and Breakdown are required
// content; Audio and GrammarNotes are optional enrichments.
type Card struct {
	ID           string
	Sentence     Sentence
	Translation  Translation
	Breakdown    WordBreakdown
	Audio        *AudioAsset
	GrammarNotes []GrammarNote
	Tags         []string
	CreatedAt    time.Time
}
