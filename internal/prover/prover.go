// Package prover defines the uniform contract over external automated
// theorem prover (ATP) executables (§4.F): write a TPTP problem to a
// temporary file, invoke the configured binary, parse its SZS status
// and (where available) the axiom names its proof object used.
// Concrete adapters live in the eprover, vampire, smt, and dummy
// subpackages, mirroring original_source/prover/driver.py's one-class-
// per-ATP shape and its subprocess/tempfile/SZS-parsing pattern.
package prover

import (
	"context"
	"os"
	"regexp"
	"time"

	"vernac/internal/tptp"
)

// Result is a single prover invocation's outcome.
type Result struct {
	Success     bool
	UsedAxioms  []string // nil when the prover reported no proof object or names couldn't be parsed
	ProverName  string
	TimeTaken   time.Duration
	RawOutput   string
	Message     string
}

// Prover runs a single TPTP problem with a hard wall-clock budget.
type Prover interface {
	Name() string
	Run(ctx context.Context, problem tptp.Problem, timeout time.Duration) Result
}

// szsTheorem and szsCounterSat recognize the SZS status lines that
// decide success/failure (§6).
var (
	szsTheorem    = regexp.MustCompile(`SZS status Theorem`)
	szsCounterSat = regexp.MustCompile(`SZS status CounterSatisfiable`)
	usedAxiomLine = regexp.MustCompile(`file\('[^']*',\s*([A-Za-z0-9_']+)\)`)
)

// ParseSZS reports whether output declares the problem a Theorem.
func ParseSZS(output string) bool {
	return szsTheorem.MatchString(output) && !szsCounterSat.MatchString(output)
}

// ParseUsedAxioms extracts axiom names from file('<tmp>', name)
// occurrences in a proof object; returns nil (not empty) when none are
// found, matching the "None when not reported" contract of §4.F.
func ParseUsedAxioms(output string) []string {
	matches := usedAxiomLine.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// WriteTempProblem writes problem's rendered TPTP text to a unique
// temporary file and returns its path; callers must remove it.
func WriteTempProblem(problem tptp.Problem) (string, error) {
	f, err := os.CreateTemp("", "vernac-*.p")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.WriteString(problem.Render()); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
