package types

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevCritical Severity = "critical"
	SevHigh     Severity = "high"
	SevMed      Severity = "medium"
	SevLow      Severity = "low"
)

// Valid reports whether s is one of the four known severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SevCritical, SevHigh, SevMed, SevLow:
		return true
	}
	return false
}

// Rank orders severities for display: critical first, low last.
func (s Severity) Rank() int {
	switch s {
	case SevCritical:
		return 0
	case SevHigh:
		return 1
	case SevMed:
		return 2
	default:
		return 3
	}
}

// Finding describes one concrete instance of a rule firing against a file.
// Match holds the redacted matched text. Line is 0 when no line could be
// resolved for the match.
type Finding struct {
	Rule        string   `json:"rule"`
	Name        string   `json:"name"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	File        string   `json:"file"`
	Match       string   `json:"match"`
	Line        int      `json:"line,omitempty"`
}

// Summary holds per-severity finding counts for one scan.
type Summary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Total returns the number of findings across all severities.
func (s Summary) Total() int {
	return s.Critical + s.High + s.Medium + s.Low
}

// Report is the result of one scan. Findings are kept in discovery order.
type Report struct {
	Score         int       `json:"score"`
	Grade         string    `json:"grade"`
	ScannedFiles  int       `json:"scannedFiles"`
	TotalFindings int       `json:"totalFindings"`
	LimitHit      bool      `json:"limitHit,omitempty"`
	Summary       Summary   `json:"summary"`
	Findings      []Finding `json:"findings"`
}

// HasCritical reports whether any critical finding is present. It reads the
// summary only, so callers can derive the process exit code in O(1).
func (r Report) HasCritical() bool {
	return r.Summary.Critical > 0
}
