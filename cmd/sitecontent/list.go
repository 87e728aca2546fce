package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	site "github.com/littlemoon-zh/littlemoon-zh.github.io"
)

func newListCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:               "list <notes|demos>",
		Short:             "List visible entries, newest first",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: kindCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args)
			if err != nil {
				return err
			}
			entries, err := a.module.List(cmd.Context(), kind)
			if err != nil {
				return err
			}
			return writeSummaries(cmd.OutOrStdout(), entries, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newLatestCommand(a *app) *cobra.Command {
	var (
		asJSON bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:               "latest <notes|demos>",
		Short:             "List the newest visible entries",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: kindCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args)
			if err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}
			entries, err := a.module.Latest(cmd.Context(), kind, limit)
			if err != nil {
				return err
			}
			return writeSummaries(cmd.OutOrStdout(), entries, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of entries; 0 uses content.latestLimit")
	return cmd
}

func newSlugsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "slugs <notes|demos>",
		Short:             "Print the slug of every visible entry, one per line",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: kindCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args)
			if err != nil {
				return err
			}
			slugs, err := a.module.Slugs(cmd.Context(), kind)
			if err != nil {
				return err
			}
			for _, slug := range slugs {
				fmt.Fprintln(cmd.OutOrStdout(), slug)
			}
			return nil
		},
	}
}

func writeSummaries(out io.Writer, entries []site.Summary, asJSON bool) error {
	if asJSON {
		return writeJSON(out, entries)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSLUG\tTITLE\tFLAGS")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			site.FormatDate(entry.Date),
			entry.Slug,
			entry.Title,
			summaryFlags(entry),
		)
	}
	return tw.Flush()
}

func summaryFlags(entry site.Summary) string {
	flags := []string{}
	if entry.Draft {
		flags = append(flags, "draft")
	}
	if len(entry.Tags) > 0 {
		flags = append(flags, "tags="+strings.Join(entry.Tags, ","))
	}
	if len(entry.Stack) > 0 {
		flags = append(flags, "stack="+strings.Join(entry.Stack, ","))
	}
	return strings.Join(flags, " ")
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
