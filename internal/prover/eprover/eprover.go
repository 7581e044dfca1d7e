// Package eprover adapts the E-style automated theorem prover,
// invoked as `<bin> --auto --silent --cpu-limit=<t> --proof-object <file>`,
// grounded on original_source/prover/driver.py's EProver.run().
package eprover

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"vernac/internal/prover"
	"vernac/internal/tptp"
)

// Adapter invokes an E-style prover binary.
type Adapter struct {
	BinaryPath string
}

// New constructs an Adapter for the given binary path (e.g. "eprover").
func New(binaryPath string) *Adapter {
	return &Adapter{BinaryPath: binaryPath}
}

func (a *Adapter) Name() string { return "eprover" }

func (a *Adapter) Run(ctx context.Context, problem tptp.Problem, timeout time.Duration) prover.Result {
	path, err := prover.WriteTempProblem(problem)
	if err != nil {
		return prover.Result{ProverName: a.Name(), Message: fmt.Sprintf("failed to write problem file: %v", err)}
	}
	defer os.Remove(path)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cpuLimit := int(timeout.Seconds())
	if cpuLimit < 1 {
		cpuLimit = 1
	}
	cmd := exec.CommandContext(ctx, a.BinaryPath,
		"--auto", "--silent", fmt.Sprintf("--cpu-limit=%d", cpuLimit), "--proof-object", path)

	start := time.Now()
	out, runErr := cmd.CombinedOutput()
	elapsed := time.Since(start)

	if runErr != nil {
		if _, exited := runErr.(*exec.ExitError); !exited {
			return prover.Result{ProverName: a.Name(), TimeTaken: elapsed, Message: fmt.Sprintf("failed to run %s: %v", a.BinaryPath, runErr), RawOutput: string(out)}
		}
	}

	output := string(out)
	success := prover.ParseSZS(output)
	return prover.Result{
		Success:    success,
		UsedAxioms: prover.ParseUsedAxioms(output),
		ProverName: a.Name(),
		TimeTaken:  elapsed,
		RawOutput:  output,
	}
}
