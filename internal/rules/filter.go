package rules

import (
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// AppliesTo reports whether the rule applies to a file with the given base
// name. A rule applies when any filter in its list matches. Structural rules
// carry no filters and never apply here; the manifest auditor invokes them
// directly.
func (r Rule) AppliesTo(base string) bool {
	if r.Structural() {
		return false
	}
	for _, f := range r.FileFilters {
		if matchFilter(f, base) {
			return true
		}
	}
	return false
}

// matchFilter resolves one filter against a base name, in precedence order:
//
//	"*"          any file
//	"*.ext"      suffix match, dot included ("*.yaml" does not match ".yml")
//	".env"       exact ".env" or ".env.<anything>" (".env.production")
//	contains "*" anchored glob, case-sensitive
//	otherwise    exact base name
func matchFilter(f, base string) bool {
	switch {
	case f == "*":
		return true
	case strings.HasPrefix(f, "*."):
		return strings.HasSuffix(base, f[1:])
	case f == ".env":
		return base == ".env" || strings.HasPrefix(base, ".env.")
	case strings.Contains(f, "*"):
		ok, err := doublestar.Match(f, base)
		return err == nil && ok
	default:
		return base == f
	}
}
