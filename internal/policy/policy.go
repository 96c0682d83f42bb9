// Package policy models the static egress allow/deny policy the proxy
// consults before relaying a request.
package policy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default egress actions.
const (
	ActionAllow = "allow"
	ActionDeny  = "deny"
)

// Policy is the loaded egress policy. Rules are ordered; the first match
// wins and the default applies when nothing matches.
type Policy struct {
	Egress Egress `yaml:"egress" json:"egress"`
}

// Egress holds the default action and the ordered rule list.
type Egress struct {
	Default string `yaml:"default" json:"default"`
	Rules   []Rule `yaml:"rules" json:"rules"`
}

// Rule matches a domain either exactly (Domain) or by wildcard suffix
// (Pattern, "*.example.com" form).
type Rule struct {
	Domain  string `yaml:"domain,omitempty" json:"domain,omitempty"`
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Allow   bool   `yaml:"allow" json:"allow"`
	Reason  string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// Decision is the outcome of consulting the policy for one host.
type Decision struct {
	Allow  bool
	Reason string
}

// Load reads and validates a YAML policy file.
func Load(path string) (Policy, error) {
	var p Policy
	b, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("parse policy %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("policy %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the default action and that every rule names a domain or
// a pattern.
func (p Policy) Validate() error {
	if p.Egress.Default != ActionAllow && p.Egress.Default != ActionDeny {
		return fmt.Errorf("egress.default must be %q or %q, got %q", ActionAllow, ActionDeny, p.Egress.Default)
	}
	for i, r := range p.Egress.Rules {
		if r.Domain == "" && r.Pattern == "" {
			return fmt.Errorf("rule %d: neither domain nor pattern set", i)
		}
		if r.Pattern != "" && !strings.HasPrefix(r.Pattern, "*.") {
			return fmt.Errorf("rule %d: pattern %q must start with \"*.\"", i, r.Pattern)
		}
	}
	return nil
}

// Decide resolves the action for a host. Ports are stripped and matching is
// case-insensitive. Exact rules match the host exactly; "*.example.com"
// patterns match any subdomain, not the apex.
func (p Policy) Decide(host string) Decision {
	h := strings.TrimSuffix(stripPort(strings.ToLower(host)), ".")

	for _, r := range p.Egress.Rules {
		if matches(r, h) {
			return Decision{Allow: r.Allow, Reason: r.Reason}
		}
	}
	return Decision{
		Allow:  p.Egress.Default == ActionAllow,
		Reason: "default " + p.Egress.Default,
	}
}

// stripPort removes an optional :port. Bracketed IPv6 ("[::1]:443") loses
// both brackets and port; a bare IPv6 literal has more than one colon and is
// returned untouched.
func stripPort(h string) string {
	if strings.HasPrefix(h, "[") {
		if i := strings.Index(h, "]"); i > 0 {
			return h[1:i]
		}
		return h
	}
	if strings.Count(h, ":") == 1 {
		return h[:strings.Index(h, ":")]
	}
	return h
}

func matches(r Rule, host string) bool {
	if r.Domain != "" && strings.EqualFold(r.Domain, host) {
		return true
	}
	if r.Pattern != "" {
		suffix := strings.ToLower(r.Pattern[1:]) // ".example.com"
		return strings.HasSuffix(host, suffix) && host != suffix[1:]
	}
	return false
}
