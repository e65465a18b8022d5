package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phrasedeck/phrasedeck/internal"
	"github.com/phrasedeck/phrasedeck/internal/config"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "phrasedeck [sentence]",
		Short: "Sentence-based Anki flashcard generator",
		Long: `phrasedeck turns foreign-language sentences into complete Anki flashcards:
translation, word-by-word breakdown, pronunciation audio and grammar notes.

Examples:
  phrasedeck "Je mange une pomme."             # Build one card and print it
  phrasedeck --batch sentences.txt             # Build a deck from a sentence file
  phrasedeck --batch input.csv --csv-column fr # Read sentences from a CSV column
  phrasedeck --batch sentences.txt --format csv # Export CSV instead of .apkg`,
		Args:    cobra.ArbitraryArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.config/phrasedeck/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Local flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Build a deck from a sentence file (.txt or .csv)")
	cmd.Flags().StringVar(&flags.CSVColumn, "csv-column", flags.CSVColumn, "Column to read sentences from in CSV batch files")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for the export")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "Export format (apkg or csv)")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", "", "Output directory for decks and media")
	cmd.Flags().StringVar(&flags.SourceLang, "source", "", "Source language code (e.g. fr)")
	cmd.Flags().StringVar(&flags.TargetLang, "target", "", "Target language code (e.g. en)")
	cmd.Flags().StringVar(&flags.Translator, "translator", "", "Translation provider (deepl or openai)")
	cmd.Flags().StringVar(&flags.Grammar, "grammar", "", "Grammar provider (openai or gemini)")
	cmd.Flags().IntVar(&flags.MaxInFlight, "max-in-flight", 0, "Maximum sentences assembled concurrently")
	cmd.Flags().BoolVar(&flags.SkipAudio, "skip-audio", false, "Skip audio synthesis")
	cmd.Flags().BoolVar(&flags.SkipGrammar, "skip-grammar", false, "Skip grammar notes")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the previous output directory and exit")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
}

// ApplyFlags merges explicitly set flags over the loaded configuration.
// Flags win over config file values, which win over defaults.
func ApplyFlags(cmd *cobra.Command, flags *Flags, cfg *config.Config) {
	if cmd.Flags().Changed("source") {
		cfg.Languages.Source = flags.SourceLang
	}
	if cmd.Flags().Changed("target") {
		cfg.Languages.Target = flags.TargetLang
	}
	if cmd.Flags().Changed("translator") {
		cfg.Providers.Translator = flags.Translator
	}
	if cmd.Flags().Changed("grammar") {
		cfg.Providers.Grammar = flags.Grammar
	}
	if cmd.Flags().Changed("output") {
		cfg.Storage.OutputDirectory = flags.OutputDir
		cfg.Storage.MediaDirectory = filepath.Join(flags.OutputDir, "media")
	}
	if cmd.Flags().Changed("max-in-flight") {
		cfg.Deck.MaxInFlight = flags.MaxInFlight
	}
	if flags.SkipAudio {
		cfg.Deck.Audio = false
	}
	if flags.SkipGrammar {
		cfg.Deck.Grammar = false
	}
}
