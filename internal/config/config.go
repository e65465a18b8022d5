// Package config loads the application configuration from a YAML file and
// environment variables.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Languages LanguagesConfig `mapstructure:"languages"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Deck      DeckConfig      `mapstructure:"deck"`
	Server    ServerConfig    `mapstructure:"server"`
}

type LanguagesConfig struct {
	Source string `mapstructure:"source"`
	Target string `mapstructure:"target"`
}

type ProvidersConfig struct {
	Translator string       `mapstructure:"translator"` // "deepl" or "openai"
	Grammar    string       `mapstructure:"grammar"`    // "openai" or "gemini"
	Audio      string       `mapstructure:"audio"`      // "openai" or "espeak"
	OpenAI     OpenAIConfig `mapstructure:"openai"`
	DeepL      DeepLConfig  `mapstructure:"deepl"`
	Gemini     GeminiConfig `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKey   string  `mapstructure:"api_key"`
	Model    string  `mapstructure:"model"`
	TTSModel string  `mapstructure:"tts_model"`
	Voice    string  `mapstructure:"voice"`
	Speed    float64 `mapstructure:"speed"`
}

type DeepLConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type StorageConfig struct {
	MediaDirectory  string `mapstructure:"media_directory"`
	OutputDirectory string `mapstructure:"output_directory"`
}

type DeckConfig struct {
	MaxInFlight int  `mapstructure:"max_in_flight"`
	Audio       bool `mapstructure:"audio"`
	Grammar     bool `mapstructure:"grammar"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/phrasedeck")
	}

	v.SetDefault("languages.source", "fr")
	v.SetDefault("languages.target", "en")
	v.SetDefault("providers.translator", "deepl")
	v.SetDefault("providers.grammar", "openai")
	v.SetDefault("providers.audio", "openai")
	v.SetDefault("providers.openai.model", "gpt-4o-mini")
	v.SetDefault("providers.openai.tts_model", "gpt-4o-mini-tts")
	v.SetDefault("providers.openai.voice", "nova")
	v.SetDefault("providers.openai.speed", 0.95)
	v.SetDefault("providers.deepl.base_url", "https://api-free.deepl.com/v2")
	v.SetDefault("providers.gemini.model", "gemini-2.0-flash")
	v.SetDefault("storage.media_directory", filepath.Join("output", "media"))
	v.SetDefault("storage.output_directory", "output")
	v.SetDefault("deck.max_in_flight", 4)
	v.SetDefault("deck.audio", true)
	v.SetDefault("deck.grammar", true)
	v.SetDefault("server.address", ":8080")

	// API keys come from environment variables only, never the config file
	if err := v.BindEnv("providers.openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("providers.deepl.api_key", "DEEPL_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind DEEPL_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("providers.gemini.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	return &cfg, nil
}
