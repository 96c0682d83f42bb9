// Package redact masks matched text before it is stored in a finding.
// Redaction keeps a short recognizable prefix so a reader can locate the
// value, and replaces the remainder with a fixed marker. Files on disk are
// never touched.
package redact

import "regexp"

// Marker replaces the sensitive remainder of a matched value.
const Marker = "***REDACTED***"

// keepRunes is how much of the value survives after a recognized prefix.
const keepRunes = 4

// tokenPrefixes are literal token prefixes whose following value is
// sensitive. Order matters: longer, more specific prefixes come first so
// "sk-ant-" wins over "sk-".
var tokenPrefixes = []string{
	"sk-ant-",
	"sk-",
	"pk-",
	"ghp_", "gho_", "ghu_", "ghs_", "ghr_",
	"glpat-",
	"xoxb-", "xoxa-", "xoxp-", "xoxr-", "xoxs-",
	"AKIA",
	"AIza",
	"hf_",
	"npm_",
	"whsec_",
}

// labelRe matches key=value / key: value credential assignments; the value
// after the separator is the sensitive part.
var labelRe = regexp.MustCompile(`(?i)^(.*?\b(?:password|passwd|pwd|secret|api_key|apikey|auth_token|access_token|client_secret|token|credentials)\b["']?\s*[:=]\s*["']?)(\S.*)$`)

// Mask redacts a matched substring for storage. Recognized token prefixes
// and credential labels keep the prefix plus the first four characters of
// the value; anything else keeps its first four characters. Short values
// are replaced entirely.
func Mask(match string) string {
	for _, p := range tokenPrefixes {
		if len(match) > len(p) && match[:len(p)] == p {
			return clip(p, match[len(p):])
		}
	}
	if m := labelRe.FindStringSubmatch(match); m != nil {
		return clip(m[1], m[2])
	}
	return clip("", match)
}

func clip(prefix, value string) string {
	if len(value) <= keepRunes {
		return prefix + Marker
	}
	return prefix + value[:keepRunes] + Marker
}
