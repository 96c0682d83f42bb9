package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicy(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "policy.yml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	p, err := Load(writePolicy(t, `
egress:
  default: deny
  rules:
    - domain: api.anthropic.com
      allow: true
    - pattern: "*.github.com"
      allow: true
    - domain: tracker.example.com
      allow: false
      reason: known tracker
`))
	require.NoError(t, err)
	assert.Equal(t, ActionDeny, p.Egress.Default)
	assert.Len(t, p.Egress.Rules, 3)
}

func TestLoad_RejectsBadDefault(t *testing.T) {
	_, err := Load(writePolicy(t, "egress:\n  default: maybe\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "egress.default")
}

func TestValidate_RejectsEmptyRule(t *testing.T) {
	p := Policy{Egress: Egress{Default: ActionAllow, Rules: []Rule{{Allow: true}}}}
	require.Error(t, p.Validate())
}

func TestValidate_RejectsBadPattern(t *testing.T) {
	p := Policy{Egress: Egress{Default: ActionAllow, Rules: []Rule{{Pattern: "evil.com", Allow: false}}}}
	require.Error(t, p.Validate())
}

func TestDecide(t *testing.T) {
	p := Policy{Egress: Egress{
		Default: ActionDeny,
		Rules: []Rule{
			{Domain: "api.anthropic.com", Allow: true},
			{Pattern: "*.github.com", Allow: true},
			{Domain: "bad.github.com", Allow: false, Reason: "shadowed, first match already won"},
		},
	}}

	cases := []struct {
		host  string
		allow bool
	}{
		{"api.anthropic.com", true},
		{"API.Anthropic.COM", true},       // case-insensitive
		{"api.anthropic.com:443", true},   // port stripped
		{"api.anthropic.com.", true},      // trailing dot stripped
		{"raw.github.com", true},          // wildcard subdomain
		{"deep.raw.github.com", true},     // any depth
		{"github.com", false},             // apex is not covered by *.github.com
		{"bad.github.com", true},          // first match wins over the later deny
		{"anthropic.com", false},          // exact means exact
		{"evil-anthropic.com", false},     // default deny
		{"notapi.anthropic.com", false},   // no rule matches
	}
	for _, c := range cases {
		if d := p.Decide(c.host); d.Allow != c.allow {
			t.Errorf("Decide(%q).Allow = %v, want %v (%s)", c.host, d.Allow, c.allow, d.Reason)
		}
	}
}

func TestDecide_IPv6Hosts(t *testing.T) {
	p := Policy{Egress: Egress{
		Default: ActionDeny,
		Rules:   []Rule{{Domain: "::1", Allow: true}},
	}}

	cases := []struct {
		host  string
		allow bool
	}{
		{"::1", true},          // bare literal keeps all its colons
		{"[::1]", true},        // brackets stripped
		{"[::1]:8443", true},   // bracketed with port
		{"2001:db8::2", false}, // different literal, default deny
	}
	for _, c := range cases {
		if d := p.Decide(c.host); d.Allow != c.allow {
			t.Errorf("Decide(%q).Allow = %v, want %v", c.host, d.Allow, c.allow)
		}
	}
}

func TestStripPort(t *testing.T) {
	cases := map[string]string{
		"example.com":     "example.com",
		"example.com:443": "example.com",
		"::1":             "::1",
		"[::1]":           "::1",
		"[::1]:8443":      "::1",
		"[2001:db8::2]":   "2001:db8::2",
	}
	for in, want := range cases {
		if got := stripPort(in); got != want {
			t.Errorf("stripPort(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecide_DefaultReason(t *testing.T) {
	p := Policy{Egress: Egress{Default: ActionDeny}}
	d := p.Decide("anything.test")
	assert.False(t, d.Allow)
	assert.Equal(t, "default deny", d.Reason)

	p.Egress.Default = ActionAllow
	d = p.Decide("anything.test")
	assert.True(t, d.Allow)
	assert.Equal(t, "default allow", d.Reason)
}

func TestDecide_RuleReasonSurfaces(t *testing.T) {
	p := Policy{Egress: Egress{
		Default: ActionAllow,
		Rules:   []Rule{{Domain: "tracker.example.com", Allow: false, Reason: "known tracker"}},
	}}
	d := p.Decide("tracker.example.com")
	assert.False(t, d.Allow)
	assert.Equal(t, "known tracker", d.Reason)
}
