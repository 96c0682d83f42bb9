// Package rules holds the static detection rule catalogue and the logic
// deciding which rules apply to which files.
package rules

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/agentlock/agentlock/internal/types"
)

// CheckKind tags rules that are evaluated structurally instead of by regex.
type CheckKind string

// CheckManifest marks the skills-manifest presence audit.
const CheckManifest CheckKind = "manifest"

// Rule is a single named detection unit. Regex rules carry one or more
// compiled patterns plus a file filter list; structural rules carry a
// CheckKind and neither patterns nor filters. Rules are immutable after
// catalogue construction.
type Rule struct {
	ID          string
	Name        string
	Severity    types.Severity
	Description string
	Patterns    []*regexp.Regexp
	FileFilters []string
	Check       CheckKind
}

// Structural reports whether the rule is evaluated outside the matcher.
func (r Rule) Structural() bool { return r.Check != "" }

// Catalogue is an ordered, read-only set of rules with unique IDs.
type Catalogue struct {
	rules []Rule
	byID  map[string]Rule
}

// NewCatalogue validates the rule list and builds a catalogue. A malformed
// rule indicates a packaging defect, so construction fails rather than
// skipping the rule.
func NewCatalogue(rs []Rule) (*Catalogue, error) {
	byID := make(map[string]Rule, len(rs))
	for _, r := range rs {
		if r.ID == "" {
			return nil, fmt.Errorf("rule with empty id (name %q)", r.Name)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate rule id %q", r.ID)
		}
		if !r.Severity.Valid() {
			return nil, fmt.Errorf("rule %s: unknown severity %q", r.ID, r.Severity)
		}
		if r.Structural() {
			if len(r.Patterns) > 0 || len(r.FileFilters) > 0 {
				return nil, fmt.Errorf("rule %s: structural rules take no patterns or filters", r.ID)
			}
		} else {
			if len(r.Patterns) == 0 {
				return nil, fmt.Errorf("rule %s: no patterns", r.ID)
			}
			if len(r.FileFilters) == 0 {
				return nil, fmt.Errorf("rule %s: no file filters", r.ID)
			}
		}
		byID[r.ID] = r
	}
	out := make([]Rule, len(rs))
	copy(out, rs)
	return &Catalogue{rules: out, byID: byID}, nil
}

// Rules returns the catalogue's rules in declaration order. Callers must
// not mutate the returned slice.
func (c *Catalogue) Rules() []Rule { return c.rules }

// Len returns the number of rules in the catalogue.
func (c *Catalogue) Len() int { return len(c.rules) }

// ByID looks up a rule by its identifier.
func (c *Catalogue) ByID(id string) (Rule, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// With returns a new catalogue containing the receiver's rules followed by
// extra. The receiver is left untouched.
func (c *Catalogue) With(extra ...Rule) (*Catalogue, error) {
	merged := make([]Rule, 0, len(c.rules)+len(extra))
	merged = append(merged, c.rules...)
	merged = append(merged, extra...)
	return NewCatalogue(merged)
}

var (
	builtinOnce sync.Once
	builtinCat  *Catalogue
)

// Builtin returns the built-in catalogue, compiled once per process. The
// pattern data is static, so any construction failure is a packaging defect
// and panics at first use.
func Builtin() *Catalogue {
	builtinOnce.Do(func() {
		cat, err := NewCatalogue(builtinRules())
		if err != nil {
			panic(fmt.Sprintf("builtin rule catalogue: %v", err))
		}
		builtinCat = cat
	})
	return builtinCat
}
