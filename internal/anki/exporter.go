// Package anki exports finished decks to Anki-importable files: a full
// .apkg package or a plain CSV for manual import.
package anki

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrasedeck/phrasedeck/internal"
	"github.com/phrasedeck/phrasedeck/internal/deck"
)

// Salts separate the identifier namespaces derived from the same card IDs.
const (
	modelIDSalt = "phrasedeck.model"
	noteIDSalt  = "phrasedeck.note"
	cardIDSalt  = "phrasedeck.card"
)

// APKGExporter writes decks as Anki package files. The package embeds a
// SQLite collection plus the referenced audio files, zipped in the layout
// Anki expects. All identifiers are derived from stable inputs, so
// re-exporting the same deck updates the existing cards in Anki instead of
// duplicating them.
type APKGExporter struct {
	mediaDir string
	logger   *slog.Logger
}

// NewAPKGExporter creates an exporter that resolves audio filenames against
// mediaDir.
func NewAPKGExporter(mediaDir string, logger *slog.Logger) *APKGExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &APKGExporter{mediaDir: mediaDir, logger: logger}
}

// ExportDeck writes d as an .apkg file at outputPath and returns the
// absolute path of the created file. Audio files missing from the media
// directory are skipped with a warning; the cards still export without
// sound.
func (e *APKGExporter) ExportDeck(ctx context.Context, d deck.Deck, outputPath string) (string, error) {
	if len(d.Cards) == 0 {
		return "", fmt.Errorf("deck %q has no cards to export", d.Name)
	}

	tempDir, err := os.MkdirTemp("", "apkg_export_*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	media := e.collectMedia(ctx, d, tempDir)
	if err := writeMediaMapping(tempDir, media); err != nil {
		return "", fmt.Errorf("failed to write media mapping: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := createCollection(dbPath, d, media); err != nil {
		return "", fmt.Errorf("failed to build collection: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := zipPackage(tempDir, outputPath); err != nil {
		return "", fmt.Errorf("failed to create package: %w", err)
	}

	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return outputPath, nil
	}
	return abs, nil
}

// collectMedia copies each card's audio file into tempDir under a numeric
// name and returns the filename-to-number map for the media index and the
// sound fields.
func (e *APKGExporter) collectMedia(ctx context.Context, d deck.Deck, tempDir string) map[string]int {
	media := make(map[string]int)
	counter := 0

	for _, c := range d.Cards {
		if c.Audio == nil || c.Audio.Filename == "" {
			continue
		}
		if _, exists := media[c.Audio.Filename]; exists {
			continue
		}

		src := filepath.Join(e.mediaDir, c.Audio.Filename)
		if _, err := os.Stat(src); err != nil {
			e.logger.WarnContext(ctx, "audio file missing, exporting card without sound",
				"filename", c.Audio.Filename, "sentence", c.Sentence.Text)
			continue
		}

		target := filepath.Join(tempDir, fmt.Sprintf("%d", counter))
		if err := copyFile(src, target); err != nil {
			e.logger.WarnContext(ctx, "failed to copy audio file, exporting card without sound",
				"filename", c.Audio.Filename, "error", err)
			continue
		}
		media[c.Audio.Filename] = counter
		counter++
	}

	return media
}

// writeMediaMapping writes the "media" index file mapping numeric entry
// names back to their original filenames.
func writeMediaMapping(tempDir string, media map[string]int) error {
	mapping := make(map[string]string, len(media))
	for filename, num := range media {
		mapping[fmt.Sprintf("%d", num)] = filename
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(tempDir, "media"), data, 0644)
}

func zipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)
	defer archive.Close()

	return filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}

		writer, err := archive.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// modelID derives the stable note type identifier for a language pair. All
// decks sharing a pair share the note type, so re-imports merge cleanly.
func modelID(languages deck.LanguagePair) int64 {
	return internal.DeriveID("model|"+languages.String(), modelIDSalt)
}

func noteID(cardID string) int64 {
	return internal.DeriveID(cardID, noteIDSalt)
}

func noteGUID(cardID string) string {
	return internal.DeriveGUID(cardID, noteIDSalt)
}

func ankiCardID(cardID string) int64 {
	return internal.DeriveID(cardID, cardIDSalt)
}
