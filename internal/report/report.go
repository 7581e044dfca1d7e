// Package report implements the Reporter sink (§6): a decoupled-from-
// IO interface for progress, verification results, and benchmark
// summaries. ConsoleReporter renders to a terminal with
// github.com/charmbracelet/lipgloss styling, matching the teacher's
// preference for styled CLI output over bare fmt.Println.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ProverTiming is one prover's outcome within a benchmark run.
type ProverTiming struct {
	Success bool
	Time    time.Duration
}

// Reporter is the sink every verification run reports through.
type Reporter interface {
	Log(message string)
	Error(message string)
	StepVerified(stepNumber int, description string, success bool, source string, benchmark map[string]ProverTiming)
}

// NullReporter discards everything; useful for tests that only inspect
// engine state rather than reported output.
type NullReporter struct{}

func (NullReporter) Log(string)                                                                {}
func (NullReporter) Error(string)                                                               {}
func (NullReporter) StepVerified(int, string, bool, string, map[string]ProverTiming)            {}

var (
	logStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true)
	timingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// ConsoleReporter writes styled, human-readable progress to w.
type ConsoleReporter struct {
	w io.Writer
}

// NewConsoleReporter constructs a ConsoleReporter writing to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

func (r *ConsoleReporter) Log(message string) {
	fmt.Fprintln(r.w, logStyle.Render(message))
}

func (r *ConsoleReporter) Error(message string) {
	fmt.Fprintln(r.w, errorStyle.Render("error: ")+message)
}

func (r *ConsoleReporter) StepVerified(stepNumber int, description string, success bool, source string, benchmark map[string]ProverTiming) {
	status := failStyle.Render("FAILED")
	if success {
		status = okStyle.Render("Verified")
	}
	line := fmt.Sprintf("[%d] %s %s", stepNumber, status, description)
	if source != "" {
		line += " " + sourceStyle.Render("("+source+")")
	}
	fmt.Fprintln(r.w, line)

	if len(benchmark) == 0 {
		return
	}
	names := make([]string, 0, len(benchmark))
	for name := range benchmark {
		names = append(names, name)
	}
	sort.Strings(names)

	var fastest string
	var fastestTime time.Duration
	for _, name := range names {
		t := benchmark[name]
		result := "fail"
		if t.Success {
			result = "ok"
			if fastest == "" || t.Time < fastestTime {
				fastest = name
				fastestTime = t.Time
			}
		}
		fmt.Fprintln(r.w, "    "+timingStyle.Render(fmt.Sprintf("%s: %s in %s", name, result, t.Time)))
	}
	if fastest != "" {
		fmt.Fprintln(r.w, "    "+timingStyle.Render(fmt.Sprintf("suggested: %s", fastest)))
	}
}
