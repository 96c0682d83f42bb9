package rules

import (
	"fmt"
	"os"
	"regexp"

	semver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"

	"github.com/agentlock/agentlock/internal/types"
)

// rulesetFile is the on-disk YAML shape for user-supplied rulesets.
type rulesetFile struct {
	MinVersion string          `yaml:"min_version"`
	Rules      []customRuleDef `yaml:"rules"`
}

type customRuleDef struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Severity    string   `yaml:"severity"`
	Description string   `yaml:"description"`
	Patterns    []string `yaml:"patterns"`
	Files       []string `yaml:"files"`
}

// LoadCustom reads a YAML ruleset and compiles it into rules ready to be
// merged into a catalogue. If the file declares min_version, it must not
// exceed engineVersion. Bad patterns fail the load; a user ruleset with a
// broken regex is a defect in that ruleset, not a runtime condition to skip.
func LoadCustom(path, engineVersion string) ([]Rule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f rulesetFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse ruleset %s: %w", path, err)
	}
	if f.MinVersion != "" {
		need, err := semver.ParseTolerant(f.MinVersion)
		if err != nil {
			return nil, fmt.Errorf("ruleset %s: bad min_version %q: %w", path, f.MinVersion, err)
		}
		have, err := semver.ParseTolerant(engineVersion)
		if err == nil && have.LT(need) {
			return nil, fmt.Errorf("ruleset %s requires agentlock >= %s (running %s)", path, f.MinVersion, engineVersion)
		}
	}
	var out []Rule
	for _, d := range f.Rules {
		r := Rule{
			ID:          d.ID,
			Name:        d.Name,
			Severity:    types.Severity(d.Severity),
			Description: d.Description,
			FileFilters: d.Files,
		}
		if len(r.FileFilters) == 0 {
			r.FileFilters = []string{"*"}
		}
		for _, p := range d.Patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("ruleset %s: rule %s: bad pattern %q: %w", path, d.ID, p, err)
			}
			r.Patterns = append(r.Patterns, re)
		}
		out = append(out, r)
	}
	return out, nil
}
