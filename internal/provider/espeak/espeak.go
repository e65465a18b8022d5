// Package espeak provides an offline audio port backed by the espeak-ng
// text-to-speech engine. Quality is well below the hosted voices, but it
// works without an API key and is useful for previews and tests.
package espeak

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

// Config holds espeak-ng synthesis settings.
type Config struct {
	Speed     int // words per minute, 80-450
	Pitch     int // 0-99
	Amplitude int // 0-200
}

// DefaultConfig returns settings tuned for language learners: slightly
// slower than espeak's default.
func DefaultConfig() Config {
	return Config{
		Speed:     140,
		Pitch:     50,
		Amplitude: 100,
	}
}

// TTS implements the audio port by shelling out to espeak-ng.
type TTS struct {
	config Config
}

// NewTTS creates an espeak-backed synthesizer. It fails when espeak-ng is
// not installed.
func NewTTS(config Config) (*TTS, error) {
	if err := exec.Command("espeak-ng", "--version").Run(); err != nil {
		return nil, fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return &TTS{config: config}, nil
}

// Synthesize renders the sentence as WAV audio. The language code is passed
// to espeak-ng as the voice.
func (t *TTS) Synthesize(ctx context.Context, text, language string) (card.AudioAsset, []byte, error) {
	if text == "" {
		return card.AudioAsset{}, nil, fmt.Errorf("text cannot be empty")
	}

	tempDir, err := os.MkdirTemp("", "espeak_*")
	if err != nil {
		return card.AudioAsset{}, nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	outputFile := filepath.Join(tempDir, "out.wav")
	args := []string{
		"-v", language,
		"-s", fmt.Sprintf("%d", t.config.Speed),
		"-p", fmt.Sprintf("%d", t.config.Pitch),
		"-a", fmt.Sprintf("%d", t.config.Amplitude),
		"-w", outputFile,
		text,
	}

	cmd := exec.CommandContext(ctx, "espeak-ng", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return card.AudioAsset{}, nil, fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		return card.AudioAsset{}, nil, fmt.Errorf("failed to read synthesized audio: %w", err)
	}

	asset := card.NewAudioAsset(text, language, card.FormatWAV, "espeak-ng")
	return asset, data, nil
}
