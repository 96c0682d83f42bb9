// Package engine drives a scan: it walks the tree, applies the rule
// catalogue to each eligible file, audits skill manifests, and assembles
// the final report.
package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/agentlock/agentlock/internal/cache"
	"github.com/agentlock/agentlock/internal/report"
	"github.com/agentlock/agentlock/internal/rules"
	"github.com/agentlock/agentlock/internal/types"
)

// Config controls scanning behavior including scope, limits, and filters.
type Config struct {
	Root         string
	MaxFileSize  int64 // bytes; files larger are skipped silently
	MaxFiles     int   // 0 = unbounded; used to enforce tier caps
	Rules        *rules.Catalogue
	IgnoreDirs   []string // overrides the default ignored directory names
	IgnoreFiles  []string // overrides the default ignored file names
	IncludeGlobs string   // comma-separated; positive filter when set
	ExcludeGlobs string   // comma-separated; subtracted last
	NoCache      bool
	Progress     func()
}

// DefaultMaxFileSize bounds file reads when the caller does not set one.
const DefaultMaxFileSize int64 = 1 << 20

// Result contains the report along with scan timing.
type Result struct {
	Report   types.Report
	Duration time.Duration
}

// Scan runs one scan over cfg.Root and returns the report. An invalid root
// is surfaced as an error and never as a partial or empty report; per-file
// I/O failures inside the tree are swallowed by the walker.
func Scan(cfg Config) (types.Report, error) {
	res, err := ScanWithStats(cfg)
	if err != nil {
		return types.Report{}, err
	}
	return res.Report, nil
}

// ScanWithStats runs a scan and returns the report along with timing.
func ScanWithStats(cfg Config) (Result, error) {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Rules == nil {
		cfg.Rules = rules.Builtin()
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return Result{}, fmt.Errorf("scan root: %w", err)
	}

	s := &scanState{
		cfg:         cfg,
		ignoreDirs:  nameSet(cfg.IgnoreDirs, defaultIgnoreDirs),
		ignoreFiles: nameSet(cfg.IgnoreFiles, defaultIgnoreFiles),
		collector:   newCollector(),
		hashes:      map[string]string{},
	}

	started := time.Now()
	if info.IsDir() {
		s.walkDir(cfg.Root, "")
	} else {
		// A file root bypasses ignore lists, which only govern recursion.
		s.scanFileRoot(cfg.Root, info)
	}

	rep := report.Build(s.collector.findings, s.scanned, s.limitHit)
	if !cfg.NoCache {
		_ = cache.Save(cfg.Root, cache.DB{
			Report:    rep,
			Hashes:    s.hashes,
			Timestamp: time.Now(),
		})
	}
	return Result{Report: rep, Duration: time.Since(started)}, nil
}

func nameSet(override, defaults []string) map[string]bool {
	src := defaults
	if override != nil {
		src = override
	}
	set := make(map[string]bool, len(src))
	for _, n := range src {
		set[n] = true
	}
	return set
}
