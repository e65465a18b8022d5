package models

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister reports which OpenAI models can serve each stage of the card
// pipeline: chat models back translation, word analysis and grammar notes,
// speech models back sentence audio.
type Lister struct {
	apiKey string
	client *openai.Client
	out    io.Writer
}

// NewLister creates a Lister writing to out, or stdout when out is nil.
func NewLister(apiKey string, out io.Writer) *Lister {
	if out == nil {
		out = os.Stdout
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
		out:    out,
	}
}

// stageModels groups model IDs by the pipeline stage they can serve.
type stageModels struct {
	text  []string
	audio []string
}

// categorize sorts model IDs into pipeline stages. Models serving neither
// stage are dropped.
func categorize(ids []string) stageModels {
	var set stageModels
	for _, id := range ids {
		switch {
		case strings.Contains(id, "tts") || strings.Contains(id, "audio"):
			set.audio = append(set.audio, id)
		case strings.Contains(id, "gpt") || strings.Contains(id, "chat"):
			set.text = append(set.text, id)
		}
	}
	sort.Strings(set.text)
	sort.Strings(set.audio)
	return set
}

// ListAvailableModels queries OpenAI and prints the models usable for card
// text and for sentence audio.
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable")
	}

	resp, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		ids = append(ids, m.ID)
	}
	set := categorize(ids)

	fmt.Fprintln(l.out, "Card text models (translation, word analysis, grammar notes):")
	l.printTextModels(set.text)

	fmt.Fprintln(l.out, "\nSentence audio models:")
	printModels(l.out, set.audio)

	return nil
}

// printTextModels trims a long chat-model list down to the GPT-4 family,
// which is what the pipeline defaults draw from.
func (l *Lister) printTextModels(ids []string) {
	if len(ids) <= 10 {
		printModels(l.out, ids)
		return
	}

	var kept []string
	for _, id := range ids {
		if strings.Contains(id, "gpt-4") {
			kept = append(kept, id)
		}
	}
	printModels(l.out, kept)
	fmt.Fprintf(l.out, "  ... and %d more models\n", len(ids)-len(kept))
}

func printModels(out io.Writer, ids []string) {
	if len(ids) == 0 {
		fmt.Fprintln(out, "  none found")
		return
	}
	for _, id := range ids {
		fmt.Fprintf(out, "  %s\n", id)
	}
}
