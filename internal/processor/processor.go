package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrasedeck/phrasedeck/internal"
	"github.com/phrasedeck/phrasedeck/internal/anki"
	"github.com/phrasedeck/phrasedeck/internal/card"
	"github.com/phrasedeck/phrasedeck/internal/config"
	"github.com/phrasedeck/phrasedeck/internal/deck"
	"github.com/phrasedeck/phrasedeck/internal/provider"
	"github.com/phrasedeck/phrasedeck/internal/provider/deepl"
	"github.com/phrasedeck/phrasedeck/internal/provider/espeak"
	"github.com/phrasedeck/phrasedeck/internal/provider/gemini"
	"github.com/phrasedeck/phrasedeck/internal/provider/openai"
	"github.com/phrasedeck/phrasedeck/internal/storage"
)

// Export formats supported for finished decks.
const (
	FormatAPKG = "apkg"
	FormatCSV  = "csv"
)

// Ports bundles the provider implementations the assemblers run on.
type Ports struct {
	Translator card.Translator
	Dictionary card.Dictionary
	Audio      card.Audio
	Grammar    card.Grammar
	Storage    card.Storage
}

// Processor drives the flashcard pipeline end to end.
type Processor struct {
	cfg    *config.Config
	cards  *card.Assembler
	decks  *deck.Assembler
	logger *slog.Logger
}

// NewProcessor builds the pipeline from configuration: provider selection,
// circuit breakers around the required ports, the media store, and both
// assemblers.
func NewProcessor(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ports, err := buildPorts(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewWithPorts(cfg, ports, logger), nil
}

// NewWithPorts builds a processor on already constructed providers.
func NewWithPorts(cfg *config.Config, ports Ports, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}

	cards := card.NewAssembler(ports.Translator, ports.Dictionary, ports.Audio, ports.Grammar, ports.Storage, logger)
	decks := deck.NewAssembler(cards, logger)
	decks.SetMaxInFlight(cfg.Deck.MaxInFlight)

	return &Processor{
		cfg:    cfg,
		cards:  cards,
		decks:  decks,
		logger: logger,
	}
}

// buildPorts constructs the providers named in the configuration. The
// translator and dictionary are wrapped in circuit breakers: they are fatal
// per card, so a dead upstream should fail fast instead of burning the
// whole batch on timeouts.
func buildPorts(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Ports, error) {
	var ports Ports

	openaiCfg := openai.DefaultConfig(cfg.Providers.OpenAI.APIKey)
	if cfg.Providers.OpenAI.Model != "" {
		openaiCfg.Model = cfg.Providers.OpenAI.Model
	}
	if cfg.Providers.OpenAI.TTSModel != "" {
		openaiCfg.TTSModel = cfg.Providers.OpenAI.TTSModel
	}
	if cfg.Providers.OpenAI.Voice != "" {
		openaiCfg.Voice = cfg.Providers.OpenAI.Voice
	}
	if cfg.Providers.OpenAI.Speed > 0 {
		openaiCfg.Speed = cfg.Providers.OpenAI.Speed
	}

	openaiClient, err := openai.NewClient(openaiCfg)
	if err != nil {
		return ports, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	switch cfg.Providers.Translator {
	case "deepl":
		if cfg.Providers.DeepL.APIKey == "" {
			return ports, fmt.Errorf("DeepL API key not found, set DEEPL_API_KEY or switch providers.translator to openai")
		}
		ports.Translator = deepl.NewTranslator(cfg.Providers.DeepL.APIKey, cfg.Providers.DeepL.BaseURL)
	case "openai":
		ports.Translator = openai.NewTranslator(openaiClient)
	default:
		return ports, fmt.Errorf("unknown translator provider %q, use deepl or openai", cfg.Providers.Translator)
	}
	ports.Translator = provider.NewBreakerTranslator(ports.Translator)

	ports.Dictionary = provider.NewBreakerDictionary(openai.NewDictionary(openaiClient))

	if cfg.Deck.Audio {
		switch cfg.Providers.Audio {
		case "espeak":
			tts, err := espeak.NewTTS(espeak.DefaultConfig())
			if err != nil {
				return ports, err
			}
			ports.Audio = tts
		case "openai", "":
			ports.Audio = openai.NewTTS(openaiClient, card.FormatMP3)
		default:
			return ports, fmt.Errorf("unknown audio provider %q, use openai or espeak", cfg.Providers.Audio)
		}
		ports.Storage = storage.NewFilesystem(cfg.Storage.MediaDirectory, logger)
	}

	if cfg.Deck.Grammar {
		switch cfg.Providers.Grammar {
		case "openai":
			ports.Grammar = openai.NewGrammar(openaiClient)
		case "gemini":
			if cfg.Providers.Gemini.APIKey == "" {
				return ports, fmt.Errorf("Gemini API key not found, set GEMINI_API_KEY or switch providers.grammar to openai")
			}
			geminiCfg := gemini.DefaultConfig(cfg.Providers.Gemini.APIKey)
			if cfg.Providers.Gemini.Model != "" {
				geminiCfg.Model = cfg.Providers.Gemini.Model
			}
			grammar, err := gemini.NewGrammar(ctx, geminiCfg, logger)
			if err != nil {
				return ports, fmt.Errorf("failed to create Gemini client: %w", err)
			}
			ports.Grammar = grammar
		default:
			return ports, fmt.Errorf("unknown grammar provider %q, use openai or gemini", cfg.Providers.Grammar)
		}
	}

	return ports, nil
}

// BuildCard assembles a single card for one sentence using the configured
// language pair.
func (p *Processor) BuildCard(ctx context.Context, sentence string) (card.Card, error) {
	return p.cards.Assemble(ctx, card.Request{
		SentenceText:   sentence,
		SourceLang:     p.cfg.Languages.Source,
		TargetLang:     p.cfg.Languages.Target,
		IncludeAudio:   p.cfg.Deck.Audio,
		IncludeGrammar: p.cfg.Deck.Grammar,
	})
}

// BuildDeck assembles cards for all sentences, reports per-sentence
// failures on stdout, and exports the deck in the requested format. It
// returns the path of the written file together with the assembly report.
func (p *Processor) BuildDeck(ctx context.Context, deckName string, sentences []string, format string) (string, deck.Report, error) {
	fmt.Printf("Building deck %q from %d sentences (%s -> %s)\n",
		deckName, len(sentences), p.cfg.Languages.Source, p.cfg.Languages.Target)

	d, report, err := p.decks.Assemble(ctx, deck.Request{
		Sentences:      sentences,
		DeckName:       deckName,
		SourceLang:     p.cfg.Languages.Source,
		TargetLang:     p.cfg.Languages.Target,
		IncludeAudio:   p.cfg.Deck.Audio,
		IncludeGrammar: p.cfg.Deck.Grammar,
	})
	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "Error on sentence %d (%s): %v\n",
			failure.Index+1, failure.Sentence, failure.Err)
	}
	if err != nil {
		return "", report, err
	}
	fmt.Printf("Assembled %d/%d cards\n", report.Succeeded, report.Requested)

	outputPath, err := p.ExportDeck(ctx, d, format)
	if err != nil {
		return "", report, err
	}
	return outputPath, report, nil
}

// ExportDeck writes a finished deck in the requested format into the
// configured output directory.
func (p *Processor) ExportDeck(ctx context.Context, d deck.Deck, format string) (string, error) {
	exporter, ext, err := p.exporterFor(format)
	if err != nil {
		return "", err
	}

	outputPath := filepath.Join(p.cfg.Storage.OutputDirectory,
		internal.SanitizeFilename(d.Name)+"."+ext)
	return exporter.ExportDeck(ctx, d, outputPath)
}

func (p *Processor) exporterFor(format string) (deck.Exporter, string, error) {
	switch format {
	case FormatAPKG, "":
		return anki.NewAPKGExporter(p.cfg.Storage.MediaDirectory, p.logger), FormatAPKG, nil
	case FormatCSV:
		return anki.NewCSVExporter(), FormatCSV, nil
	default:
		return nil, "", fmt.Errorf("unknown export format %q, use apkg or csv", format)
	}
}
