package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

// ErrAllCardsFailed is returned when not a single sentence in a batch
// produced a card; there is nothing to export.
var ErrAllCardsFailed = errors.New("all cards failed")

// Assembler fans card assembly out over many sentences and gathers the
// results into one deck.
type Assembler struct {
	cards  *card.Assembler
	logger *slog.Logger

	// maxInFlight caps concurrent card pipelines; zero means no cap.
	maxInFlight int
}

// NewAssembler creates a deck assembler on top of a card assembler.
func NewAssembler(cards *card.Assembler, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{cards: cards, logger: logger}
}

// SetMaxInFlight limits how many card pipelines run at once. Useful when a
// provider enforces tight rate limits; by default all sentences are issued
// concurrently.
func (a *Assembler) SetMaxInFlight(n int) {
	a.maxInFlight = n
}

// Request describes one deck to assemble.
type Request struct {
	Sentences      []string
	DeckName       string
	SourceLang     string
	TargetLang     string
	IncludeAudio   bool
	IncludeGrammar bool
}

// Failure records one sentence that did not become a card.
type Failure struct {
	Index    int
	Sentence string
	Err      error
}

// Report tallies the outcome of a batch.
type Report struct {
	Requested int
	Succeeded int
	Failures  []Failure
}

// Assemble builds one card per sentence, all concurrently, and collects the
// survivors into a deck in input order. A failed sentence is logged and
// reported but never aborts its siblings. Only when every sentence fails
// does Assemble return ErrAllCardsFailed.
func (a *Assembler) Assemble(ctx context.Context, req Request) (Deck, Report, error) {
	report := Report{Requested: len(req.Sentences)}
	if len(req.Sentences) == 0 {
		return Deck{}, report, fmt.Errorf("%w: no sentences given", ErrAllCardsFailed)
	}

	type outcome struct {
		card card.Card
		err  error
	}

	// Each sentence writes only its own slot, so the slice needs no lock
	// and input order is preserved regardless of completion order.
	outcomes := make([]outcome, len(req.Sentences))

	var sem chan struct{}
	if a.maxInFlight > 0 {
		sem = make(chan struct{}, a.maxInFlight)
	}

	var wg sync.WaitGroup
	for i, sentence := range req.Sentences {
		wg.Add(1)
		go func(i int, sentence string) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			c, err := a.cards.Assemble(ctx, card.Request{
				SentenceText:   sentence,
				SourceLang:     req.SourceLang,
				TargetLang:     req.TargetLang,
				IncludeAudio:   req.IncludeAudio,
				IncludeGrammar: req.IncludeGrammar,
			})
			outcomes[i] = outcome{card: c, err: err}
		}(i, sentence)
	}
	wg.Wait()

	d := New(req.DeckName, LanguagePair{Source: req.SourceLang, Target: req.TargetLang})
	for i, out := range outcomes {
		if out.err != nil {
			a.logger.WarnContext(ctx, "skipping sentence",
				"sentence", req.Sentences[i], "error", out.err)
			report.Failures = append(report.Failures, Failure{
				Index:    i,
				Sentence: req.Sentences[i],
				Err:      out.err,
			})
			continue
		}
		if err := a.admit(out.card, d.Languages); err != nil {
			a.logger.WarnContext(ctx, "skipping card",
				"sentence", req.Sentences[i], "error", err)
			report.Failures = append(report.Failures, Failure{
				Index:    i,
				Sentence: req.Sentences[i],
				Err:      err,
			})
			continue
		}
		d.Cards = append(d.Cards, out.card)
		report.Succeeded++
	}

	if report.Succeeded == 0 {
		return Deck{}, report, fmt.Errorf("%w: %d sentence(s), 0 cards", ErrAllCardsFailed, report.Requested)
	}

	a.logger.InfoContext(ctx, "deck assembled",
		"deck", d.Name,
		"languages", d.Languages.String(),
		"cards", report.Succeeded,
		"failed", len(report.Failures))

	return d, report, nil
}

// admit checks that a card actually belongs to the deck's language pair.
func (a *Assembler) admit(c card.Card, languages LanguagePair) error {
	if c.Sentence.Language != languages.Source {
		return fmt.Errorf("card language %q does not match deck source %q",
			c.Sentence.Language, languages.Source)
	}
	if c.Translation.TargetLanguage != languages.Target {
		return fmt.Errorf("translation language %q does not match deck target %q",
			c.Translation.TargetLanguage, languages.Target)
	}
	return nil
}
