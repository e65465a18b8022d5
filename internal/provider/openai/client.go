// Package openai implements the translation, dictionary, grammar and audio
// ports on top of the OpenAI API.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	openaisdk "github.com/sashabaranov/go-openai"
)

// Config holds the settings shared by the OpenAI-backed adapters.
type Config struct {
	APIKey string
	Model  string // chat model for translation/dictionary/grammar

	// TTS settings
	TTSModel    string
	Voice       string
	Speed       float64
	Instruction string // voice instructions, gpt-4o-mini-tts only

	MaxRetries uint
}

// DefaultConfig returns the settings used when the config file says nothing.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:     apiKey,
		Model:      openaisdk.GPT4oMini,
		TTSModel:   "gpt-4o-mini-tts",
		Voice:      "alloy",
		Speed:      1.0,
		MaxRetries: 3,
	}
}

// Client wraps the OpenAI SDK client with retrying chat calls. It is shared
// by the adapters in this package.
type Client struct {
	api    *openaisdk.Client
	config Config
}

// NewClient creates the shared OpenAI client.
func NewClient(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.Model == "" {
		config.Model = openaisdk.GPT4oMini
	}
	return &Client{
		api:    openaisdk.NewClient(config.APIKey),
		config: config,
	}, nil
}

// chat runs one chat completion with retries and returns the first choice's
// content.
func (c *Client) chat(ctx context.Context, req openaisdk.ChatCompletionRequest) (string, error) {
	req.Model = c.config.Model

	var content string
	err := retry.Do(
		func() error {
			resp, err := c.api.CreateChatCompletion(ctx, req)
			if err != nil {
				if !isRetryable(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			if len(resp.Choices) == 0 {
				return retry.Unrecoverable(fmt.Errorf("no choices in response"))
			}
			content = strings.TrimSpace(resp.Choices[0].Message.Content)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.config.MaxRetries+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	return content, nil
}

// isRetryable reports whether an API error is worth retrying. Rate limits
// and server-side errors are transient; everything else is not.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "status code: 429") {
		return true
	}
	if strings.Contains(msg, "status code: 5") {
		return true
	}
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "i/o timeout") {
		return true
	}
	return false
}
