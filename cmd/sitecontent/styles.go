package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStylesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "Print the light and dark code highlighting stylesheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			css, err := a.module.Stylesheet()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), css)
			return err
		},
	}
}
