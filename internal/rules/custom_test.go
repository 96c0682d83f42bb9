package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentlock/agentlock/internal/types"
)

func writeRuleset(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ruleset.yml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadCustom_Basic(t *testing.T) {
	p := writeRuleset(t, `
rules:
  - id: internal-hostname
    name: Internal hostname
    severity: medium
    description: References an internal host.
    patterns:
      - '\binternal\.corp\b'
    files: ["*.md", "*.txt"]
`)
	rs, err := LoadCustom(p, "0.4.0")
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "internal-hostname", rs[0].ID)
	assert.Equal(t, types.SevMed, rs[0].Severity)
	assert.Len(t, rs[0].Patterns, 1)
	assert.True(t, rs[0].Patterns[0].MatchString("db.internal.corp"))

	// merging into the builtin catalogue must validate cleanly
	cat, err := Builtin().With(rs...)
	require.NoError(t, err)
	_, ok := cat.ByID("internal-hostname")
	assert.True(t, ok)
}

func TestLoadCustom_DefaultsToAllFiles(t *testing.T) {
	p := writeRuleset(t, `
rules:
  - id: x
    name: X
    severity: low
    patterns: ['foo']
`)
	rs, err := LoadCustom(p, "0.4.0")
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, []string{"*"}, rs[0].FileFilters)
}

func TestLoadCustom_MinVersionGate(t *testing.T) {
	p := writeRuleset(t, `
min_version: "9.0.0"
rules:
  - id: x
    name: X
    severity: low
    patterns: ['foo']
`)
	_, err := LoadCustom(p, "0.4.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires agentlock >= 9.0.0")
}

func TestLoadCustom_BadPatternFailsLoad(t *testing.T) {
	p := writeRuleset(t, `
rules:
  - id: x
    name: X
    severity: low
    patterns: ['[unclosed']
`)
	_, err := LoadCustom(p, "0.4.0")
	require.Error(t, err)
}
