package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/phrasedeck/phrasedeck/internal/config"
	"github.com/phrasedeck/phrasedeck/internal/processor"
	"github.com/phrasedeck/phrasedeck/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgFile string
		address string
		verbose bool
	)
	pflag.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.config/phrasedeck/config.yaml)")
	pflag.StringVar(&address, "address", "", "listen address (overrides config)")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pflag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if address != "" {
		cfg.Server.Address = address
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc, err := processor.NewProcessor(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(cfg, proc, logger)
	return srv.ListenAndServe(ctx)
}
