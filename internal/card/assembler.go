package card

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Fatal assembly conditions. Translation and word breakdown are the card's
// primary content; audio and grammar notes are best-effort enrichments and
// never abort assembly.
var (
	ErrTranslationFailed = errors.New("translation failed")
	ErrAnalysisFailed    = errors.New("sentence analysis failed")
)

// Assembler builds one Card per sentence by orchestrating the provider
// ports. All ports are passed at construction time; the assembler keeps no
// other state and is safe for concurrent use as long as the ports are.
type Assembler struct {
	translator Translator
	dictionary Dictionary
	audio      Audio
	grammar    Grammar
	storage    Storage
	logger     *slog.Logger
}

// NewAssembler creates an Assembler. The audio, grammar and storage ports
// may be nil, in which case the corresponding enrichment is skipped.
func NewAssembler(translator Translator, dictionary Dictionary, audio Audio, grammar Grammar, storage Storage, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		translator: translator,
		dictionary: dictionary,
		audio:      audio,
		grammar:    grammar,
		storage:    storage,
		logger:     logger,
	}
}

// Request describes one card to assemble.
type Request struct {
	SentenceText   string
	SourceLang     string
	TargetLang     string
	IncludeAudio   bool
	IncludeGrammar bool
}

// Assemble builds a complete Card for one sentence.
//
// Translation and word analysis are required: if either port fails, the
// error wraps ErrTranslationFailed or ErrAnalysisFailed and no card is
// returned. Audio and grammar are optional: their failures are logged and
// the card proceeds without them. An audio asset only ends up on the card
// when both synthesis and storage succeeded.
func (a *Assembler) Assemble(ctx context.Context, req Request) (Card, error) {
	if err := ValidateSentenceText(req.SentenceText); err != nil {
		return Card{}, err
	}

	sentence := NewSentence(req.SentenceText, req.SourceLang)

	translation, err := a.translator.Translate(ctx, sentence.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		return Card{}, fmt.Errorf("%w for %q: %v", ErrTranslationFailed, sentence.Text, err)
	}

	breakdown, err := a.dictionary.AnalyzeSentence(ctx, sentence.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		return Card{}, fmt.Errorf("%w for %q: %v", ErrAnalysisFailed, sentence.Text, err)
	}

	var audio *AudioAsset
	if req.IncludeAudio && a.audio != nil {
		audio = a.enrichAudio(ctx, sentence)
	}

	var notes []GrammarNote
	if req.IncludeGrammar && a.grammar != nil {
		notes, err = a.grammar.Explain(ctx, sentence.Text, req.SourceLang)
		if err != nil {
			a.logger.WarnContext(ctx, "grammar explanation failed",
				"sentence", sentence.Text, "error", err)
			notes = nil
		}
	}

	return Card{
		ID:           sentence.ID,
		Sentence:     sentence,
		Translation:  translation,
		Breakdown:    breakdown,
		Audio:        audio,
		GrammarNotes: notes,
		Tags:         []string{},
		CreatedAt:    sentence.CreatedAt,
	}, nil
}

// enrichAudio synthesizes and stores the sentence recording. Any failure
// along the way yields a nil asset; a card never carries a reference to
// audio that was not persisted.
func (a *Assembler) enrichAudio(ctx context.Context, sentence Sentence) *AudioAsset {
	asset, data, err := a.audio.Synthesize(ctx, sentence.Text, sentence.Language)
	if err != nil {
		a.logger.WarnContext(ctx, "audio synthesis failed, card proceeds without audio",
			"sentence", sentence.Text, "error", err)
		return nil
	}
	if len(data) == 0 {
		a.logger.WarnContext(ctx, "audio provider returned no data",
			"sentence", sentence.Text)
		return nil
	}

	if a.storage == nil {
		a.logger.WarnContext(ctx, "no storage configured, discarding audio",
			"sentence", sentence.Text)
		return nil
	}
	location, err := a.storage.SaveAudio(ctx, asset, data)
	if err != nil {
		a.logger.WarnContext(ctx, "audio storage failed, discarding audio",
			"sentence", sentence.Text, "filename", asset.Filename, "error", err)
		return nil
	}
	asset.URL = location

	return &asset
}
