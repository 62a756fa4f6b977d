package main

import (
	"fmt"

	"github.com/dyne/atbash/internal/i18n"
	"github.com/dyne/atbash/internal/theme"
	"github.com/spf13/cobra"
)

func stringsCmd(rootOpts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "strings",
		Short: "Print the user interface strings for the selected language",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.load(cmd)
			if err != nil {
				return err
			}
			styler := theme.NewStyler(cmd.OutOrStdout(), s.mode)
			for _, k := range i18n.Keys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styler.Label(fmt.Sprintf("%-17s", k.Name())), s.text(k))
			}
			return nil
		},
	}
}
