package anki

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrasedeck/phrasedeck/internal/deck"
)

// CSVExporter writes decks as CSV files for Anki's file import dialog.
// Media is referenced by filename only; the user copies the audio files
// into their collection.media directory.
type CSVExporter struct {
	includeHeaders bool
}

// NewCSVExporter creates a CSV exporter. Headers help when mapping columns
// in the import dialog, so they are on by default.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{includeHeaders: true}
}

// ExportDeck writes d as a CSV file at outputPath and returns the absolute
// path of the created file.
func (e *CSVExporter) ExportDeck(ctx context.Context, d deck.Deck, outputPath string) (string, error) {
	if len(d.Cards) == 0 {
		return "", fmt.Errorf("deck %q has no cards to export", d.Name)
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if e.includeHeaders {
		headers := []string{"Sentence", "Translation", "WordBreakdown", "Audio", "GrammarNotes", "Tags"}
		if err := writer.Write(headers); err != nil {
			return "", fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, c := range d.Cards {
		audioField := ""
		if c.Audio != nil && c.Audio.Filename != "" {
			audioField = fmt.Sprintf("[sound:%s]", c.Audio.Filename)
		}

		record := []string{
			c.Sentence.Text,
			c.Translation.Text,
			formatBreakdown(c.Breakdown),
			audioField,
			formatGrammarNotes(c.GrammarNotes),
			strings.Join(c.Tags, " "),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return outputPath, nil
	}
	return abs, nil
}
