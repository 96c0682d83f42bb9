package rules

import "github.com/agentlock/agentlock/internal/types"

// FreeMaxFiles caps how many files the free tier may hand to the matcher in
// one scan. Pro scans are unbounded.
const FreeMaxFiles = 500

// ForTier returns the rule subset available at the given entitlement level.
// Pro receives the catalogue unchanged. Free receives a derived catalogue
// holding only critical and high severity rules plus structural checks; the
// source catalogue is never mutated.
func ForTier(cat *Catalogue, proEntitled bool) *Catalogue {
	if proEntitled {
		return cat
	}
	var subset []Rule
	for _, r := range cat.Rules() {
		if r.Structural() || r.Severity == types.SevCritical || r.Severity == types.SevHigh {
			subset = append(subset, r)
		}
	}
	// Filtering a valid catalogue cannot introduce duplicates or malformed
	// rules, so construction cannot fail here.
	out, err := NewCatalogue(subset)
	if err != nil {
		panic(err)
	}
	return out
}

// MaxFilesForTier returns the per-scan file ceiling for the entitlement
// level: 0 means unbounded.
func MaxFilesForTier(proEntitled bool) int {
	if proEntitled {
		return 0
	}
	return FreeMaxFiles
}
