// Package deck assembles many cards concurrently into one exportable deck.
package deck

import (
	"context"

	"github.com/phrasedeck/phrasedeck/internal"
	"github.com/phrasedeck/phrasedeck/internal/card"
)

// deckIDSalt keeps deck identifiers from colliding with other ID namespaces
// derived from the same strings.
const deckIDSalt = "phrasedeck.deck"

// LanguagePair is the source and target language of a deck.
type LanguagePair struct {
	Source string
	Target string
}

func (p LanguagePair) String() string {
	return p.Source + "->" + p.Target
}

// Deck is a named, language-pair-scoped collection of cards, the unit of
// export. The ID is derived from the name and language pair, so the same
// deck always exports under the same identifier.
type Deck struct {
	ID        int64
	Name      string
	Languages LanguagePair
	Cards     []card.Card
}

// New creates an empty deck with its stable derived ID.
func New(name string, languages LanguagePair) Deck {
	return Deck{
		ID:        DeriveDeckID(name, languages),
		Name:      name,
		Languages: languages,
	}
}

// DeriveDeckID computes the stable identifier for a deck name and language
// pair.
func DeriveDeckID(name string, languages LanguagePair) int64 {
	return internal.DeriveID(name+"|"+languages.String(), deckIDSalt)
}

// Exporter writes a finished deck to a package file and returns the final
// artifact path.
type Exporter interface {
	ExportDeck(ctx context.Context, d Deck, outputPath string) (string, error)
}
