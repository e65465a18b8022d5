package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrasedeck/phrasedeck/internal/archive"
	"github.com/phrasedeck/phrasedeck/internal/batch"
	"github.com/phrasedeck/phrasedeck/internal/card"
	"github.com/phrasedeck/phrasedeck/internal/cli"
	"github.com/phrasedeck/phrasedeck/internal/config"
	"github.com/phrasedeck/phrasedeck/internal/models"
	"github.com/phrasedeck/phrasedeck/internal/processor"
)

func main() {
	flags := cli.NewFlags()
	rootCmd := cli.CreateRootCommand(flags)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	logger := newLogger(flags.Verbose)

	cfg, err := config.Load(flags.CfgFile)
	if err != nil {
		return err
	}
	cli.ApplyFlags(cmd, flags, cfg)

	// Handle --archive flag
	if flags.Archive {
		return archive.ArchiveOutputs(cfg.Storage.OutputDirectory)
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cfg.Providers.OpenAI.APIKey, os.Stdout)
		return lister.ListAvailableModels(cmd.Context())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	proc, err := processor.NewProcessor(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if flags.BatchFile != "" {
		return runBatch(ctx, proc, flags)
	}
	if len(args) > 0 {
		return runSingle(ctx, proc, strings.Join(args, " "))
	}
	return cmd.Help()
}

func runBatch(ctx context.Context, proc *processor.Processor, flags *cli.Flags) error {
	sentences, err := batch.LoadSentences(flags.BatchFile, flags.CSVColumn)
	if err != nil {
		return err
	}

	outputPath, report, err := proc.BuildDeck(ctx, flags.DeckName, sentences, flags.Format)
	if err != nil {
		return err
	}

	if len(report.Failures) > 0 {
		fmt.Printf("\nDone with %d failures. Deck created: %s\n", len(report.Failures), outputPath)
	} else {
		fmt.Printf("\nDone! Deck created: %s\n", outputPath)
	}
	return nil
}

func runSingle(ctx context.Context, proc *processor.Processor, sentence string) error {
	c, err := proc.BuildCard(ctx, sentence)
	if err != nil {
		return err
	}

	printCard(c)
	return nil
}

func printCard(c card.Card) {
	fmt.Printf("Sentence:    %s\n", c.Sentence.Text)
	fmt.Printf("Translation: %s\n", c.Translation.Text)

	if len(c.Breakdown.Words) > 0 {
		fmt.Println("Words:")
		for _, w := range c.Breakdown.Words {
			if w.POS != "" {
				fmt.Printf("  %s (%s): %s\n", w.Text, w.POS, w.Definition)
			} else {
				fmt.Printf("  %s: %s\n", w.Text, w.Definition)
			}
		}
	}

	if c.Audio != nil {
		fmt.Printf("Audio:       %s\n", c.Audio.URL)
	}

	for _, note := range c.GrammarNotes {
		fmt.Printf("Grammar:     %s: %s\n", note.Title, note.Explanation)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
