// Package vampire adapts the Vampire-style automated theorem prover,
// invoked as `<bin> --mode casc --output_axiom_names on -t <t> <file>`,
// grounded on original_source/prover/driver.py's VampireProver.run().
package vampire

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"vernac/internal/prover"
	"vernac/internal/tptp"
)

// Adapter invokes a Vampire-style prover binary.
type Adapter struct {
	BinaryPath string
}

// New constructs an Adapter for the given binary path (e.g. "vampire").
func New(binaryPath string) *Adapter {
	return &Adapter{BinaryPath: binaryPath}
}

func (a *Adapter) Name() string { return "vampire" }

func (a *Adapter) Run(ctx context.Context, problem tptp.Problem, timeout time.Duration) prover.Result {
	path, err := prover.WriteTempProblem(problem)
	if err != nil {
		return prover.Result{ProverName: a.Name(), Message: fmt.Sprintf("failed to write problem file: %v", err)}
	}
	defer os.Remove(path)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	secs := int(timeout.Seconds())
	if secs < 1 {
		secs = 1
	}
	cmd := exec.CommandContext(ctx, a.BinaryPath,
		"--mode", "casc", "--output_axiom_names", "on", "-t", fmt.Sprintf("%d", secs), path)

	start := time.Now()
	out, runErr := cmd.CombinedOutput()
	elapsed := time.Since(start)

	if runErr != nil {
		if _, exited := runErr.(*exec.ExitError); !exited {
			return prover.Result{ProverName: a.Name(), TimeTaken: elapsed, Message: fmt.Sprintf("failed to run %s: %v", a.BinaryPath, runErr), RawOutput: string(out)}
		}
	}

	output := string(out)
	return prover.Result{
		Success:    prover.ParseSZS(output),
		UsedAxioms: prover.ParseUsedAxioms(output),
		ProverName: a.Name(),
		TimeTaken:  elapsed,
		RawOutput:  output,
	}
}
