package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleReporterStepVerified(t *testing.T) {
	var buf strings.Builder
	r := NewConsoleReporter(&buf)
	r.StepVerified(1, "x is finite", true, "E-prover", nil)
	out := buf.String()
	assert.Contains(t, out, "x is finite")
	assert.Contains(t, out, "1")
}

func TestConsoleReporterBenchmarkSuggestsFastest(t *testing.T) {
	var buf strings.Builder
	r := NewConsoleReporter(&buf)
	r.StepVerified(1, "goal", true, "benchmark", map[string]ProverTiming{
		"eprover": {Success: true, Time: 50 * time.Millisecond},
		"vampire": {Success: true, Time: 10 * time.Millisecond},
	})
	out := buf.String()
	assert.Contains(t, out, "suggested: vampire")
}

func TestNullReporterDoesNothing(t *testing.T) {
	r := NullReporter{}
	r.Log("x")
	r.Error("y")
	r.StepVerified(1, "z", true, "src", nil)
}
