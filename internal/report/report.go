// Package report turns a finding list into a scored scan report and
// renders it for humans and pipelines.
package report

import "github.com/agentlock/agentlock/internal/types"

// Build assembles the report for one scan. Score and grade are pure
// functions of the per-severity counts; nothing else affects them.
func Build(findings []types.Finding, scannedFiles int, limitHit bool) types.Report {
	if findings == nil {
		findings = []types.Finding{}
	}
	var sum types.Summary
	for _, f := range findings {
		switch f.Severity {
		case types.SevCritical:
			sum.Critical++
		case types.SevHigh:
			sum.High++
		case types.SevMed:
			sum.Medium++
		default:
			sum.Low++
		}
	}
	score := Score(sum)
	return types.Report{
		Score:         score,
		Grade:         Grade(score),
		ScannedFiles:  scannedFiles,
		TotalFindings: len(findings),
		LimitHit:      limitHit,
		Summary:       sum,
		Findings:      findings,
	}
}

// Score computes the 0-100 security score. High, medium, and low findings
// cost 15, 5, and 2 points each; critical findings cost a nonlinear
// penalty: the first costs 30, the second and third 20 each, and from the
// fourth on each costs 3, so any critical count of four or more already
// sits deep in failing territory. The result clamps at 0.
func Score(s types.Summary) int {
	penalty := criticalPenalty(s.Critical) + s.High*15 + s.Medium*5 + s.Low*2
	score := 100 - penalty
	if score < 0 {
		return 0
	}
	return score
}

func criticalPenalty(c int) int {
	switch {
	case c == 0:
		return 0
	case c == 1:
		return 30
	case c <= 3:
		return 30 + (c-1)*20
	default:
		return 90 + (c-3)*3
	}
}

// Grade maps a score to its letter grade.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
