package openai

import (
	"context"
	"fmt"
	"io"
	"strings"

	openaisdk "github.com/sashabaranov/go-openai"

	"github.com/phrasedeck/phrasedeck/internal/card"
)

// TTS implements the audio port via the OpenAI speech API.
type TTS struct {
	client *Client
	format card.AudioFormat
}

// NewTTS creates an OpenAI-backed speech synthesizer producing the given
// audio format.
func NewTTS(client *Client, format card.AudioFormat) *TTS {
	if format == "" {
		format = card.FormatMP3
	}
	return &TTS{client: client, format: format}
}

func (t *TTS) Synthesize(ctx context.Context, text, language string) (card.AudioAsset, []byte, error) {
	if strings.TrimSpace(text) == "" {
		return card.AudioAsset{}, nil, fmt.Errorf("nothing to synthesize")
	}

	req := openaisdk.CreateSpeechRequest{
		Model:          openaisdk.SpeechModel(t.client.config.TTSModel),
		Input:          strings.TrimSpace(text),
		Voice:          openaisdk.SpeechVoice(t.client.config.Voice),
		Speed:          t.client.config.Speed,
		ResponseFormat: speechFormat(t.format),
	}
	if t.client.config.Instruction != "" && t.client.config.TTSModel == "gpt-4o-mini-tts" {
		req.Instructions = instructionForLanguage(t.client.config.Instruction, language)
	}

	response, err := t.client.api.CreateSpeech(ctx, req)
	if err != nil {
		return card.AudioAsset{}, nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return card.AudioAsset{}, nil, fmt.Errorf("reading audio stream: %w", err)
	}
	if len(data) == 0 {
		return card.AudioAsset{}, nil, fmt.Errorf("no audio data received")
	}

	asset := card.NewAudioAsset(text, language, t.format, "openai-tts")
	return asset, data, nil
}

func speechFormat(format card.AudioFormat) openaisdk.SpeechResponseFormat {
	switch format {
	case card.FormatWAV:
		return openaisdk.SpeechResponseFormatWav
	case card.FormatOGG:
		return openaisdk.SpeechResponseFormatOpus
	default:
		return openaisdk.SpeechResponseFormatMp3
	}
}

// instructionForLanguage substitutes the language code into the configured
// voice instruction template, if it contains a %s placeholder.
func instructionForLanguage(template, language string) string {
	if strings.Contains(template, "%s") {
		return fmt.Sprintf(template, language)
	}
	return template
}
