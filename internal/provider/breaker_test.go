package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrasedeck/phrasedeck/internal/provider"
	"github.com/phrasedeck/phrasedeck/internal/testutil"
)

func TestBreakerTranslatorPassesThrough(t *testing.T) {
	inner := &testutil.MockTranslator{
		Translations: map[string]string{"Bonjour": "Hello"},
	}
	b := provider.NewBreakerTranslator(inner)

	tr, err := b.Translate(context.Background(), "Bonjour", "fr", "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello", tr.Text)
}

func TestBreakerTranslatorOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &testutil.MockTranslator{Err: errors.New("provider down")}
	b := provider.NewBreakerTranslator(inner)

	for i := 0; i < 5; i++ {
		_, err := b.Translate(context.Background(), "Bonjour", "fr", "en")
		require.Error(t, err)
	}

	// Breaker is now open; the inner port is no longer called.
	calls := len(inner.Calls)
	_, err := b.Translate(context.Background(), "Bonjour", "fr", "en")
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, calls, len(inner.Calls))
}

func TestBreakerDictionaryPassesThrough(t *testing.T) {
	b := provider.NewBreakerDictionary(&testutil.MockDictionary{})

	breakdown, err := b.AnalyzeSentence(context.Background(), "Je mange une pomme.", "fr", "en")
	require.NoError(t, err)
	assert.Len(t, breakdown.Words, 4)

	word, err := b.LookupWord(context.Background(), "pomme", "fr", "en")
	require.NoError(t, err)
	assert.Equal(t, "pomme", word.Text)
}

func TestBreakerDictionaryPropagatesFailure(t *testing.T) {
	inner := &testutil.MockDictionary{Err: errors.New("bad response")}
	b := provider.NewBreakerDictionary(inner)

	_, err := b.AnalyzeSentence(context.Background(), "Bonjour", "fr", "en")
	assert.Error(t, err)
}
