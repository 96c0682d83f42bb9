// Package core is the stable public API surface for embedding agentlock
// scans in other programs.
package core

import (
	"github.com/agentlock/agentlock/internal/engine"
	"github.com/agentlock/agentlock/internal/rules"
	"github.com/agentlock/agentlock/internal/types"
)

// Re-export selected internal types as a stable public API surface. These
// are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Finding = types.Finding
type Report = types.Report

// Scan is the stable entrypoint for other programs.
func Scan(cfg Config) (Report, error) {
	return engine.Scan(cfg)
}

// RuleIDs returns the identifiers of the built-in rule catalogue in
// declaration order.
func RuleIDs() []string {
	cat := rules.Builtin()
	ids := make([]string, 0, cat.Len())
	for _, r := range cat.Rules() {
		ids = append(ids, r.ID)
	}
	return ids
}
