package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newShowCommand(a *app) *cobra.Command {
	var (
		asJSON   bool
		htmlOnly bool
	)
	cmd := &cobra.Command{
		Use:               "show <notes|demos> <slug>",
		Short:             "Render one entry",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: kindCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args)
			if err != nil {
				return err
			}
			doc, err := a.module.Get(cmd.Context(), kind, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return writeJSON(out, doc)
			case htmlOnly:
				_, err := fmt.Fprintln(out, doc.HTML)
				return err
			}

			fmt.Fprintf(out, "%s\n", doc.Title)
			if doc.Date != "" {
				fmt.Fprintf(out, "date: %s\n", doc.Date)
			}
			if doc.URL != "" {
				fmt.Fprintf(out, "url: %s\n", doc.URL)
			}
			if doc.Summary.Summary != "" {
				fmt.Fprintf(out, "summary: %s\n", doc.Summary.Summary)
			}
			if len(doc.Headings) > 0 {
				fmt.Fprintln(out, "outline:")
				for _, heading := range doc.Headings {
					indent := strings.Repeat("  ", max(heading.Level-1, 0))
					fmt.Fprintf(out, "  %s- %s (#%s)\n", indent, heading.Text, heading.ID)
				}
			}
			fmt.Fprintln(out)
			_, err = fmt.Fprintln(out, doc.HTML)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the rendered document as JSON")
	cmd.Flags().BoolVar(&htmlOnly, "html", false, "print only the rendered HTML")
	return cmd
}
