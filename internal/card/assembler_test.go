package card_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrasedeck/phrasedeck/internal/card"
	"github.com/phrasedeck/phrasedeck/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestAssembler(translator *testutil.MockTranslator, dictionary *testutil.MockDictionary, audio *testutil.MockAudio, grammar *testutil.MockGrammar, storage *testutil.MockStorage) *card.Assembler {
	return card.NewAssembler(translator, dictionary, audio, grammar, storage, discardLogger())
}

func TestAssembleCompleteCard(t *testing.T) {
	translator := &testutil.MockTranslator{
		Translations: map[string]string{"Je mange une pomme.": "I eat an apple."},
	}
	dictionary := &testutil.MockDictionary{}
	audio := &testutil.MockAudio{}
	grammar := &testutil.MockGrammar{
		Notes: []card.GrammarNote{
			{Title: "Present tense", Explanation: "'mange' is the present tense of 'manger'"},
		},
	}
	storage := &testutil.MockStorage{}

	a := newTestAssembler(translator, dictionary, audio, grammar, storage)
	c, err := a.Assemble(context.Background(), card.Request{
		SentenceText:   "Je mange une pomme.",
		SourceLang:     "fr",
		TargetLang:     "en",
		IncludeAudio:   true,
		IncludeGrammar: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Je mange une pomme.", c.Sentence.Text)
	assert.Equal(t, "fr", c.Sentence.Language)
	assert.NotEmpty(t, c.Sentence.ID)
	assert.Equal(t, "I eat an apple.", c.Translation.Text)
	assert.Equal(t, "en", c.Translation.TargetLanguage)
	assert.Len(t, c.Breakdown.Words, 4)
	require.NotNil(t, c.Audio)
	assert.Equal(t, card.AudioFilename("Je mange une pomme.", "fr", card.FormatMP3), c.Audio.Filename)
	assert.Len(t, c.GrammarNotes, 1)
	assert.Empty(t, c.Tags)

	// Audio bytes went through the storage port.
	assert.Contains(t, storage.Saved, c.Audio.Filename)
}

func TestAssembleTranslationFailureIsFatal(t *testing.T) {
	translator := &testutil.MockTranslator{Err: errors.New("quota exceeded")}
	a := newTestAssembler(translator, &testutil.MockDictionary{}, nil, nil, nil)

	_, err := a.Assemble(context.Background(), card.Request{
		SentenceText: "Bonjour", SourceLang: "fr", TargetLang: "en",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, card.ErrTranslationFailed)
	assert.Contains(t, err.Error(), "Bonjour")
}

func TestAssembleAnalysisFailureIsFatal(t *testing.T) {
	dictionary := &testutil.MockDictionary{Err: errors.New("malformed response")}
	a := newTestAssembler(&testutil.MockTranslator{}, dictionary, nil, nil, nil)

	_, err := a.Assemble(context.Background(), card.Request{
		SentenceText: "Bonjour", SourceLang: "fr", TargetLang: "en",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, card.ErrAnalysisFailed)
}

func TestAssembleAudioFailureIsNotFatal(t *testing.T) {
	audio := &testutil.MockAudio{Err: errors.New("voice not configured")}
	a := newTestAssembler(&testutil.MockTranslator{}, &testutil.MockDictionary{}, audio, nil, &testutil.MockStorage{})

	c, err := a.Assemble(context.Background(), card.Request{
		SentenceText: "Bonjour", SourceLang: "fr", TargetLang: "en",
		IncludeAudio: true,
	})
	require.NoError(t, err)
	assert.Nil(t, c.Audio)
	assert.Equal(t, "translation of Bonjour", c.Translation.Text)
}

func TestAssembleStorageFailureDiscardsAudio(t *testing.T) {
	storage := &testutil.MockStorage{Err: errors.New("disk full")}
	a := newTestAssembler(&testutil.MockTranslator{}, &testutil.MockDictionary{}, &testutil.MockAudio{}, nil, storage)

	c, err := a.Assemble(context.Background(), card.Request{
		SentenceText: "Bonjour", SourceLang: "fr", TargetLang: "en",
		IncludeAudio: true,
	})
	require.NoError(t, err)
	assert.Nil(t, c.Audio, "audio must be discarded when storage fails")
}

func TestAssembleGrammarFailureIsNotFatal(t *testing.T) {
	grammar := &testutil.MockGrammar{Err: errors.New("parse error")}
	a := newTestAssembler(&testutil.MockTranslator{}, &testutil.MockDictionary{}, nil, grammar, nil)

	c, err := a.Assemble(context.Background(), card.Request{
		SentenceText: "Bonjour", SourceLang: "fr", TargetLang: "en",
		IncludeGrammar: true,
	})
	require.NoError(t, err)
	assert.Empty(t, c.GrammarNotes)
}

func TestAssembleEmptyGrammarIsValid(t *testing.T) {
	grammar := &testutil.MockGrammar{Notes: nil}
	a := newTestAssembler(&testutil.MockTranslator{}, &testutil.MockDictionary{}, nil, grammar, nil)

	c, err := a.Assemble(context.Background(), card.Request{
		SentenceText: "Bonjour", SourceLang: "fr", TargetLang: "en",
		IncludeGrammar: true,
	})
	require.NoError(t, err)
	assert.Empty(t, c.GrammarNotes)
	assert.Len(t, grammar.Calls, 1)
}

func TestAssembleSkipsDisabledEnrichments(t *testing.T) {
	audio := &testutil.MockAudio{}
	grammar := &testutil.MockGrammar{}
	a := newTestAssembler(&testutil.MockTranslator{}, &testutil.MockDictionary{}, audio, grammar, &testutil.MockStorage{})

	c, err := a.Assemble(context.Background(), card.Request{
		SentenceText: "Bonjour", SourceLang: "fr", TargetLang: "en",
	})
	require.NoError(t, err)
	assert.Nil(t, c.Audio)
	assert.Empty(t, c.GrammarNotes)
	assert.Empty(t, audio.Calls)
	assert.Empty(t, grammar.Calls)
}

func TestAssembleRejectsBlankSentence(t *testing.T) {
	a := newTestAssembler(&testutil.MockTranslator{}, &testutil.MockDictionary{}, nil, nil, nil)

	_, err := a.Assemble(context.Background(), card.Request{
		SentenceText: "   ", SourceLang: "fr", TargetLang: "en",
	})
	assert.Error(t, err)
}

func TestValidateSentenceText(t *testing.T) {
	assert.NoError(t, card.ValidateSentenceText("Je mange une pomme."))
	assert.NoError(t, card.ValidateSentenceText("ябълка"))
	assert.Error(t, card.ValidateSentenceText(""))
	assert.Error(t, card.ValidateSentenceText("12345 !?"))
}

func TestAudioFilenameIsContentDerived(t *testing.T) {
	first := card.AudioFilename("Je mange une pomme.", "fr", card.FormatMP3)
	second := card.AudioFilename("Je mange une pomme.", "fr", card.FormatMP3)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, card.AudioFilename("Je mange une pomme.", "en", card.FormatMP3))
	assert.NotEqual(t, first, card.AudioFilename("Bonjour", "fr", card.FormatMP3))
}
