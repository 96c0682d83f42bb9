package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/agentlock/agentlock/internal/types"
)

// PrintOptions controls human-readable rendering.
type PrintOptions struct {
	NoColor     bool
	Duration    time.Duration
	Root        string // scan root, used to load context snippets
	ShowContext bool   // print the highlighted source line under each finding
}

var (
	styleCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleHigh     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleMed      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleLow      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleGradeOK  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	styleGradeBad = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Print renders the report as a findings table followed by the score
// summary footer.
func Print(w io.Writer, rep types.Report, opts PrintOptions) {
	if len(rep.Findings) == 0 {
		fmt.Fprintln(w, "No findings.")
	} else {
		printTable(w, rep, opts)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files scanned: %d\n", rep.ScannedFiles)
	fmt.Fprintf(w, "Findings: %d (critical: %d, high: %d, medium: %d, low: %d)\n",
		rep.TotalFindings, rep.Summary.Critical, rep.Summary.High, rep.Summary.Medium, rep.Summary.Low)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if rep.LimitHit {
		fmt.Fprintln(w, "Note: the file limit was reached; not every file was scanned.")
	}
	fmt.Fprintf(w, "Security score: %d/100 (grade %s)\n", rep.Score, renderGrade(rep.Grade, opts.NoColor))
}

func printTable(w io.Writer, rep types.Report, opts PrintOptions) {
	width := 100
	if ws, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && ws > 40 {
		width = ws
	}
	matchWidth := width / 3
	if matchWidth < 20 {
		matchWidth = 20
	}

	table := tablewriter.NewWriter(w)
	table.Header("SEVERITY", "RULE", "LOCATION", "MATCH")
	for _, f := range rep.Findings {
		loc := f.File
		if f.Line > 0 {
			loc += ":" + strconv.Itoa(f.Line)
		}
		table.Append([]string{
			renderSeverity(f.Severity, opts.NoColor),
			f.Rule,
			loc,
			truncate(f.Match, matchWidth),
		})
	}
	table.Render()

	if opts.ShowContext {
		for _, f := range rep.Findings {
			if f.Line == 0 {
				continue
			}
			if snippet := contextLine(opts.Root, f.File, f.Line); snippet != "" {
				if !opts.NoColor {
					snippet = highlightLine(snippet, f.File)
				}
				fmt.Fprintf(w, "  %s:%d  %s\n", f.File, f.Line, snippet)
			}
		}
	}
}

func renderSeverity(s types.Severity, noColor bool) string {
	if noColor {
		return string(s)
	}
	switch s {
	case types.SevCritical:
		return styleCritical.Render(string(s))
	case types.SevHigh:
		return styleHigh.Render(string(s))
	case types.SevMed:
		return styleMed.Render(string(s))
	default:
		return styleLow.Render(string(s))
	}
}

func renderGrade(grade string, noColor bool) string {
	if noColor {
		return grade
	}
	if grade == "A" || grade == "B" {
		return styleGradeOK.Render(grade)
	}
	return styleGradeBad.Render(grade)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

// contextLine loads one source line from disk for display. Failures return
// an empty string; context is cosmetic.
func contextLine(root, rel string, line int) string {
	b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return ""
	}
	lines := strings.Split(string(b), "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line-1])
}
