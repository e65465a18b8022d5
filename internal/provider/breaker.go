// Package provider contains decorators shared by the concrete provider
// adapters.
package provider

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

// breakerSettings returns the circuit breaker settings used for all
// decorated ports: trip after 5 consecutive failures, probe again after 30s.
func breakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

// BreakerTranslator wraps a translation port in a circuit breaker. Once the
// provider has failed repeatedly, further calls fail fast instead of
// hammering a dead or rate-limited API; the assembler sees an ordinary
// translation failure either way.
type BreakerTranslator struct {
	inner card.Translator
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerTranslator decorates a translator with a circuit breaker.
func NewBreakerTranslator(inner card.Translator) *BreakerTranslator {
	return &BreakerTranslator{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(breakerSettings("translator")),
	}
}

func (b *BreakerTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (card.Translation, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Translate(ctx, text, sourceLang, targetLang)
	})
	if err != nil {
		return card.Translation{}, err
	}
	return result.(card.Translation), nil
}

// BreakerDictionary wraps a dictionary port in a circuit breaker.
type BreakerDictionary struct {
	inner card.Dictionary
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerDictionary decorates a dictionary with a circuit breaker.
func NewBreakerDictionary(inner card.Dictionary) *BreakerDictionary {
	return &BreakerDictionary{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker(breakerSettings("dictionary")),
	}
}

func (b *BreakerDictionary) AnalyzeSentence(ctx context.Context, sentence, sourceLang, targetLang string) (card.WordBreakdown, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.AnalyzeSentence(ctx, sentence, sourceLang, targetLang)
	})
	if err != nil {
		return card.WordBreakdown{}, err
	}
	return result.(card.WordBreakdown), nil
}

func (b *BreakerDictionary) LookupWord(ctx context.Context, word, sourceLang, targetLang string) (card.Word, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.LookupWord(ctx, word, sourceLang, targetLang)
	})
	if err != nil {
		return card.Word{}, err
	}
	return result.(card.Word), nil
}
