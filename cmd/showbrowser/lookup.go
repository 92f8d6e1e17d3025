package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowBrowser/internal/config"
	"github.com/Belphemur/ShowBrowser/internal/parser"
)

// summaryExcerptRunes bounds the summary column of the search table.
const summaryExcerptRunes = 80

var searchCmd = &cobra.Command{
	Use:   "search [term...]",
	Short: "Search shows by title",
	Long: `Searches TVmaze for shows matching the term and prints their IDs, names and
a plain-text excerpt of each summary. Use an ID with the episodes command.

Example:
  showbrowser search the office`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

var episodesCmd = &cobra.Command{
	Use:   "episodes <show-id>",
	Short: "List the episodes of a show",
	Args:  cobra.ExactArgs(1),
	RunE:  runEpisodes,
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, err := newClient(config.GetConfig())
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	shows, err := c.SearchShows(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("search shows: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(shows) == 0 {
		fmt.Fprintln(out, "No shows found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSUMMARY")
	for _, show := range shows {
		summary := parser.SummaryText(show.Summary, summaryExcerptRunes)
		if summary == "" {
			summary = "Summary not available."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", show.ID, show.Name, summary)
	}
	return w.Flush()
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	showID, err := strconv.Atoi(args[0])
	if err != nil || showID <= 0 {
		return fmt.Errorf("invalid show id %q", args[0])
	}

	c, err := newClient(config.GetConfig())
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	episodes, err := c.GetEpisodes(ctx, showID)
	if err != nil {
		return fmt.Errorf("get episodes of show %d: %w", showID, err)
	}

	out := cmd.OutOrStdout()
	if len(episodes) == 0 {
		fmt.Fprintln(out, "No episodes available.")
		return nil
	}
	for _, episode := range episodes {
		fmt.Fprintf(out, "%s %s\n", episode.Code(), episode.Name)
	}
	return nil
}
