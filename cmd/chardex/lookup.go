// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/chardex/internal/character"
	"github.com/taibuivan/chardex/internal/platform/config"
	"github.com/taibuivan/chardex/internal/search"
	"github.com/taibuivan/chardex/pkg/convert"
	"github.com/taibuivan/chardex/pkg/textnorm"
)

// lookupService builds the character service used by the one-shot commands.
// Logs go to stderr so stdout stays parseable.
func lookupService(cmd *cobra.Command, opts *globalOptions) (*character.Service, *config.Config, *slog.Logger, error) {
	cfg, err := opts.load()
	if err != nil {
		return nil, nil, nil, err
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := newLogger(cmd.ErrOrStderr(), level)

	repo := character.NewHTTPRepository(cfg.CharacterAPIURL, cfg.UpstreamTimeout, nil)
	return character.NewService(repo, log), cfg, log, nil
}

func searchCmd(opts *globalOptions) *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search characters by name",
		Long:  `Search characters by name and print one page of matches.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := textnorm.Query(strings.Join(args, " "))
			if term == "" {
				return errors.New("search term must not be empty")
			}
			service, cfg, log, err := lookupService(cmd, opts)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("page-size") {
				pageSize = cfg.DefaultPageSize
			}
			if page < 1 || pageSize < 1 {
				return errors.New("--page and --page-size must be positive")
			}

			controller := search.NewController(service, log, nil)
			outcome := controller.Search(cmd.Context(), term, page, pageSize)

			out := cmd.OutOrStdout()
			switch outcome.Status {
			case search.StatusError:
				return errors.New(outcome.Message)
			case search.StatusEmpty:
				fmt.Fprintln(out, outcome.Message)
				return nil
			}

			table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(table, "ID\tNAME")
			for _, found := range outcome.Characters {
				fmt.Fprintf(table, "%d\t%s\n", found.ID, found.Name)
			}
			if err := table.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\nPage %d of %d\n", page, outcome.TotalPages)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Results per page (defaults to DEFAULT_PAGE_SIZE)")

	return cmd
}

func detailCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <id>",
		Short: "Show one character's appearances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := convert.ToPositiveInt(args[0])
			if !ok {
				return fmt.Errorf("invalid character id %q", args[0])
			}

			service, _, log, err := lookupService(cmd, opts)
			if err != nil {
				return err
			}

			found, err := service.Get(cmd.Context(), id)
			if err != nil {
				log.DebugContext(cmd.Context(), "character_detail_error", slog.Int("id", id), slog.Any("error", err))
				return errors.New(character.Message(err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (#%d)\n", found.Name, found.ID)
			fmt.Fprintf(out, "Image: %s\n", found.Image())

			for _, section := range found.Sections() {
				fmt.Fprintf(out, "\n%s\n", section.Title)
				if section.Empty() {
					fmt.Fprintf(out, "  %s\n", section.Placeholder)
					continue
				}
				for _, item := range section.Items {
					fmt.Fprintf(out, "  - %s\n", item)
				}
			}

			fmt.Fprintln(out)
			if found.SourceURL == "" {
				fmt.Fprintln(out, "No external resources available.")
			} else {
				fmt.Fprintf(out, "Learn More: %s\n", found.SourceURL)
			}
			return nil
		},
	}
}
