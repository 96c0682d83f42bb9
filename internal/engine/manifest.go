package engine

import (
	"os"
	"path/filepath"

	"github.com/agentlock/agentlock/internal/rules"
)

// ManifestName is the declaration file every skill directory must carry.
const ManifestName = "skill.manifest.json"

// manifestFindingText is the fixed match text for missing-manifest
// findings; it is descriptive, not a regex match.
const manifestFindingText = "skill directory is missing " + ManifestName

// auditSkills checks each immediate child directory of a skills/ directory
// for the presence of the manifest file. The check looks one level down
// only and never validates manifest contents. It is a no-op when the active
// catalogue carries no manifest rule.
func (s *scanState) auditSkills(abs, rel string) {
	rule, ok := manifestRule(s.cfg.Rules)
	if !ok {
		return
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() || s.ignoreDirs[e.Name()] {
			continue
		}
		if _, err := os.Stat(filepath.Join(abs, e.Name(), ManifestName)); err == nil {
			continue
		}
		s.collector.addStructural(rule, joinRel(rel, e.Name()), manifestFindingText)
	}
}

func manifestRule(cat *rules.Catalogue) (rules.Rule, bool) {
	for _, r := range cat.Rules() {
		if r.Check == rules.CheckManifest {
			return r, true
		}
	}
	return rules.Rule{}, false
}
