package engine

import (
	"strconv"
	"strings"

	"github.com/agentlock/agentlock/internal/redact"
	"github.com/agentlock/agentlock/internal/rules"
	"github.com/agentlock/agentlock/internal/types"
)

// collector owns the findings list for the duration of one scan. Findings
// are append-only and kept in discovery order.
type collector struct {
	findings []types.Finding
	seen     map[string]struct{}
}

func newCollector() *collector {
	return &collector{seen: map[string]struct{}{}}
}

// lineProbeLen is how many characters of a match the line resolver searches
// for. Counted in runes so a multi-byte match is never cut mid-character.
const lineProbeLen = 50

// add converts a raw match into a finding: resolves a line, deduplicates on
// (rule, file, line), and redacts the matched text before storage.
//
// Matches whose line cannot be resolved are never deduplicated, neither
// against each other nor against resolved ones. That can under-deduplicate;
// it is a known limitation of the line heuristic, kept deliberately.
func (c *collector) add(r rules.Rule, file, match, content string) {
	line := resolveLine(content, match)
	if line > 0 {
		key := r.ID + "\x00" + file + "\x00" + strconv.Itoa(line)
		if _, dup := c.seen[key]; dup {
			return
		}
		c.seen[key] = struct{}{}
	}
	c.findings = append(c.findings, types.Finding{
		Rule:        r.ID,
		Name:        r.Name,
		Severity:    r.Severity,
		Description: r.Description,
		File:        file,
		Match:       redact.Mask(match),
		Line:        line,
	})
}

// addStructural records a finding produced outside the matcher, with a
// fixed descriptive text and no line.
func (c *collector) addStructural(r rules.Rule, file, text string) {
	c.findings = append(c.findings, types.Finding{
		Rule:        r.ID,
		Name:        r.Name,
		Severity:    r.Severity,
		Description: r.Description,
		File:        file,
		Match:       text,
	})
}

// resolveLine reports the 1-based number of the first line whose text
// contains the first 50 characters of match as a literal substring, or 0
// when no line does (a match spanning lines can never resolve). This is a
// heuristic, not a guaranteed-correct mapper: an unrelated earlier line
// containing the same prefix wins.
func resolveLine(content, match string) int {
	probe := match
	if r := []rune(probe); len(r) > lineProbeLen {
		probe = string(r[:lineProbeLen])
	}
	for i, ln := range strings.Split(content, "\n") {
		if strings.Contains(ln, probe) {
			return i + 1
		}
	}
	return 0
}
