package card

import "context"

// Translator translates text between a language pair.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (Translation, error)
}

// Dictionary analyzes sentences and looks up single words.
type Dictionary interface {
	AnalyzeSentence(ctx context.Context, sentence, sourceLang, targetLang string) (WordBreakdown, error)
	LookupWord(ctx context.Context, word, sourceLang, targetLang string) (Word, error)
}

// Audio synthesizes speech for a sentence. It returns the asset metadata
// together with the raw audio bytes; persisting them is the storage port's
// job. Implementations must be safe for concurrent use.
type Audio interface {
	Synthesize(ctx context.Context, text, language string) (AudioAsset, []byte, error)
}

// Grammar explains notable grammar, idioms and phrases in a sentence. An
// empty result is a valid outcome, not a failure.
type Grammar interface {
	Explain(ctx context.Context, sentence, language string) ([]GrammarNote, error)
}

// Storage persists audio data under the asset's filename and returns the
// resulting location (path or URL).
type Storage interface {
	SaveAudio(ctx context.Context, asset AudioAsset, data []byte) (string, error)
}
