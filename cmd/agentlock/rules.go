package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentlock/agentlock/internal/rules"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active detection rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := rules.ForTier(rules.Builtin(), flagPro)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSEVERITY\tNAME")
			for _, r := range cat.Rules() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.Severity, r.Name)
			}
			return w.Flush()
		},
	}
	rootCmd.AddCommand(cmd)
}
