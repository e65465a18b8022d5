package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

func TestSaveAudioWritesFile(t *testing.T) {
	dir := t.TempDir()
	fs := NewFilesystem(filepath.Join(dir, "media"), slog.New(slog.DiscardHandler))

	asset := card.NewAudioAsset("Je mange une pomme.", "fr", card.FormatMP3, "test")
	location, err := fs.SaveAudio(context.Background(), asset, []byte("mp3-bytes"))
	require.NoError(t, err)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(data))
	assert.Equal(t, asset.Filename, filepath.Base(location))
}

func TestSaveAudioSkipsExistingFile(t *testing.T) {
	dir := t.TempDir()
	fs := NewFilesystem(dir, slog.New(slog.DiscardHandler))
	asset := card.NewAudioAsset("hola", "es", card.FormatMP3, "test")

	path := filepath.Join(dir, asset.Filename)
	require.NoError(t, os.WriteFile(path, []byte("original"), 0644))

	location, err := fs.SaveAudio(context.Background(), asset, []byte("replacement"))
	require.NoError(t, err)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data), "content-addressed files are never rewritten")
}

func TestSaveAudioRejectsEmptyInput(t *testing.T) {
	fs := NewFilesystem(t.TempDir(), slog.New(slog.DiscardHandler))

	_, err := fs.SaveAudio(context.Background(), card.AudioAsset{}, []byte("data"))
	assert.Error(t, err)

	asset := card.NewAudioAsset("hi", "en", card.FormatMP3, "test")
	_, err = fs.SaveAudio(context.Background(), asset, nil)
	assert.Error(t, err)
}
