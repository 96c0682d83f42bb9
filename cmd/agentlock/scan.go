package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentlock/agentlock/internal/config"
	"github.com/agentlock/agentlock/internal/engine"
	"github.com/agentlock/agentlock/internal/report"
	"github.com/agentlock/agentlock/internal/rules"
	"github.com/agentlock/agentlock/internal/tui"
	"github.com/agentlock/agentlock/pkg/core"
)

var (
	flagPath        string
	flagInclude     string
	flagExclude     string
	flagMaxBytes    int64
	flagMaxFiles    int
	flagRuleset     string
	flagNoCache     bool
	flagInteractive bool
	flagShowContext bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().IntVar(&flagMaxFiles, "max-files", 0, "stop matching after this many files (0 = tier default)")
	cmd.Flags().StringVar(&flagRuleset, "ruleset", "", "merge a custom YAML ruleset")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "do not write the last-scan cache")
	cmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "browse findings interactively")
	cmd.Flags().BoolVar(&flagShowContext, "show-context", false, "print the source line under each finding")
}

func runScan(cmd *cobra.Command, args []string) error {
	path := flagPath
	if len(args) == 1 {
		path = args[0]
	}
	abs, _ := filepath.Abs(path)

	// Config precedence: CLI > local > global.
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	cat := rules.Builtin()
	if rs := pickString(flagRuleset, lcfg.Ruleset, gcfg.Ruleset); rs != "" {
		extra, err := rules.LoadCustom(rs, version)
		if err != nil {
			return err
		}
		cat, err = cat.With(extra...)
		if err != nil {
			return err
		}
	}
	cat = rules.ForTier(cat, flagPro)

	maxFiles := pickInt(flagMaxFiles, lcfg.MaxFiles, gcfg.MaxFiles)
	if maxFiles == 0 {
		maxFiles = rules.MaxFilesForTier(flagPro)
	}

	cfg := engine.Config{
		Root:         abs,
		MaxFileSize:  pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		MaxFiles:     maxFiles,
		Rules:        cat,
		IgnoreDirs:   lcfg.IgnoreDirs,
		IgnoreFiles:  lcfg.IgnoreFiles,
		IncludeGlobs: pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs: pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		NoCache:      pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
	}

	res, err := engine.ScanWithStats(cfg)
	if err != nil {
		return err
	}
	rep := res.Report

	switch {
	case flagJSON:
		if err := core.MarshalReport(os.Stdout, rep); err != nil {
			return err
		}
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, rep, version); err != nil {
			return err
		}
	case flagInteractive:
		if err := tui.Run(rep); err != nil {
			return err
		}
	default:
		report.Print(os.Stdout, rep, report.PrintOptions{
			NoColor:     pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor),
			Duration:    res.Duration,
			Root:        abs,
			ShowContext: flagShowContext,
		})
	}

	// Exit 1 when any critical finding is present; the summary makes this
	// an O(1) check.
	if rep.HasCritical() {
		os.Exit(1)
	}
	return nil
}
