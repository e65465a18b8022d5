package models

import (
	"context"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key", nil)

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}
	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}
	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
	if lister.out != os.Stdout {
		t.Error("nil writer should default to stdout")
	}
}

func TestCategorize(t *testing.T) {
	set := categorize([]string{
		"gpt-4o-mini",
		"tts-1",
		"whisper-1",
		"gpt-4o-mini-tts",
		"gpt-3.5-turbo",
		"dall-e-3",
		"gpt-4o-audio-preview",
	})

	wantText := []string{"gpt-3.5-turbo", "gpt-4o-mini"}
	if !reflect.DeepEqual(set.text, wantText) {
		t.Errorf("text models: got %v, want %v", set.text, wantText)
	}

	wantAudio := []string{"gpt-4o-audio-preview", "gpt-4o-mini-tts", "tts-1"}
	if !reflect.DeepEqual(set.audio, wantAudio) {
		t.Errorf("audio models: got %v, want %v", set.audio, wantAudio)
	}
}

func TestPrintTextModelsTrimsLongLists(t *testing.T) {
	var buf strings.Builder
	lister := NewLister("test-api-key", &buf)

	ids := []string{
		"chat-a", "chat-b", "chat-c", "chat-d", "chat-e", "chat-f",
		"chat-g", "chat-h", "chat-i", "chat-j",
		"gpt-4o-mini",
	}
	lister.printTextModels(ids)

	out := buf.String()
	if !strings.Contains(out, "gpt-4o-mini") {
		t.Errorf("GPT-4 family model missing from output: %q", out)
	}
	if strings.Contains(out, "chat-a") {
		t.Errorf("long list should be trimmed to the GPT-4 family: %q", out)
	}
	if !strings.Contains(out, "and 10 more models") {
		t.Errorf("trimmed count missing from output: %q", out)
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	var buf strings.Builder
	lister := NewLister("", &buf)

	err := lister.ListAvailableModels(context.Background())
	if err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	var buf strings.Builder
	lister := NewLister(apiKey, &buf)
	if err := lister.ListAvailableModels(context.Background()); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Card text models") {
		t.Errorf("unexpected listing output: %q", buf.String())
	}
}
