// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command chardex serves the Disney character search site and offers
// one-shot lookups against the same character API from the terminal.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/chardex/internal/platform/config"
	"github.com/taibuivan/chardex/internal/platform/constants"
)

// Version information set at build time.
var (
	version = constants.AppVersion
	commit  = "none"
	date    = "unknown"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	apiURL string
	debug  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Search Disney characters",
		Long: `chardex searches the public Disney character API.

Run "chardex serve" for the web interface with live search, or use
"chardex search" and "chardex detail" for quick lookups.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Character API base URL (overrides CHARACTER_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging (overrides DEBUG)")

	rootCmd.AddCommand(
		serveCmd(opts),
		searchCmd(opts),
		detailCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// load reads the environment and applies flag overrides.
func (opts *globalOptions) load() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if opts.apiURL != "" {
		cfg.CharacterAPIURL = opts.apiURL
	}
	if opts.debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the JSON logger every command writes to.
func newLogger(writer io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
