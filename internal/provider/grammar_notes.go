package provider

import (
	"encoding/json"
	"fmt"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

type grammarEnvelope struct {
	Notes []json.RawMessage `json:"notes"`
}

type grammarNoteEntry struct {
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples"`
}

// ParseGrammarNotes decodes the {"notes": [...]} envelope the grammar
// providers are prompted to produce. Models occasionally return bare
// strings instead of note objects; those become untitled notes. Anything
// else is a parse failure.
func ParseGrammarNotes(data []byte) ([]card.GrammarNote, error) {
	var envelope grammarEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}

	var notes []card.GrammarNote
	for _, raw := range envelope.Notes {
		var entry grammarNoteEntry
		if err := json.Unmarshal(raw, &entry); err == nil && entry.Explanation != "" {
			title := entry.Title
			if title == "" {
				title = "Grammar note"
			}
			notes = append(notes, card.GrammarNote{
				Title:       title,
				Explanation: entry.Explanation,
				Examples:    entry.Examples,
			})
			continue
		}

		var text string
		if err := json.Unmarshal(raw, &text); err == nil && text != "" {
			notes = append(notes, card.GrammarNote{
				Title:       "Grammar note",
				Explanation: text,
			})
			continue
		}

		return nil, fmt.Errorf("note %s is neither an object nor a string", raw)
	}
	return notes, nil
}
