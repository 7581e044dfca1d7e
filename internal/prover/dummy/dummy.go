// Package dummy provides a test-only prover adapter that always
// succeeds with every available axiom marked used — the "dummy"
// adapter §4.F requires for exercising the engine and cache without a
// real ATP binary installed.
package dummy

import (
	"context"
	"time"

	"vernac/internal/prover"
	"vernac/internal/tptp"
)

// Adapter always reports success, with every axiom in the problem
// marked as used.
type Adapter struct{}

// New constructs a dummy Adapter.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) Name() string { return "dummy" }

func (a *Adapter) Run(_ context.Context, problem tptp.Problem, _ time.Duration) prover.Result {
	used := make([]string, len(problem.Axioms))
	for i, ax := range problem.Axioms {
		used[i] = ax.Name
	}
	return prover.Result{
		Success:    true,
		UsedAxioms: used,
		ProverName: a.Name(),
	}
}
