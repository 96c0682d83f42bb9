package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON    bool
	flagSARIF   bool
	flagNoColor bool
	flagPro     bool

	version = "0.4.0"
)

// rootCmd is the base Cobra command for the agentlock CLI.
var rootCmd = &cobra.Command{
	Use:           "agentlock",
	Short:         "Scan AI-agent project directories for security problems",
	Long:          "agentlock walks an agent project tree, applies a catalogue of detection rules, and reports a 0-100 security score. It can also run a policy-checked egress proxy.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the agentlock CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagPro, "pro", false, "enable pro-tier rules and limits")
}
