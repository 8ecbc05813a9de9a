package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List the configured menu items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, it := range a.cfg.Items {
				secret := ""
				if it.SecretInput {
					secret = " (secret input)"
				}
				fmt.Fprintf(out, "%s%s\n", it.Name, secret)
				fmt.Fprintf(out, "    %s\n", strings.Join(it.Statements, "; "))
			}
			return nil
		},
	}
}
