package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentlock/agentlock/internal/cache"
	"github.com/agentlock/agentlock/internal/report"
	"github.com/agentlock/agentlock/pkg/core"
)

func init() {
	cmd := &cobra.Command{
		Use:   "report [path]",
		Short: "Re-render the last scan without rescanning",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			abs, _ := filepath.Abs(path)
			db, err := cache.Load(abs)
			if err != nil {
				return fmt.Errorf("no cached scan for %s (run agentlock scan first)", abs)
			}
			if flagJSON {
				return core.MarshalReport(os.Stdout, db.Report)
			}
			fmt.Printf("cached scan from %s\n", db.Timestamp.Format("2006-01-02 15:04:05"))
			if stale := cache.Stale(abs, db); stale > 0 {
				fmt.Printf("warning: %d file(s) changed since this scan\n", stale)
			}
			report.Print(os.Stdout, db.Report, report.PrintOptions{NoColor: flagNoColor, Root: abs})
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
