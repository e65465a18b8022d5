// Package storage persists synthesized audio assets.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

// Filesystem stores audio files in a local media directory. Filenames are
// content-addressed, so an already existing file is the same content and is
// never rewritten.
type Filesystem struct {
	dir    string
	logger *slog.Logger
}

// NewFilesystem creates a filesystem store rooted at dir. The directory is
// created on first save.
func NewFilesystem(dir string, logger *slog.Logger) *Filesystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filesystem{dir: dir, logger: logger}
}

// Dir returns the media directory audio files are written to.
func (f *Filesystem) Dir() string {
	return f.dir
}

// SaveAudio writes the audio bytes under the asset's filename and returns
// the absolute path of the stored file.
func (f *Filesystem) SaveAudio(ctx context.Context, asset card.AudioAsset, data []byte) (string, error) {
	if asset.Filename == "" {
		return "", fmt.Errorf("audio asset has no filename")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no audio data for %s", asset.Filename)
	}

	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	path := filepath.Join(f.dir, asset.Filename)
	if _, err := os.Stat(path); err == nil {
		f.logger.DebugContext(ctx, "audio file already stored", "path", path)
		return absolute(path)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	f.logger.DebugContext(ctx, "audio file stored", "path", path, "bytes", len(data))
	return absolute(path)
}

func absolute(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
