package engine

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"vernac/internal/cache"
	"vernac/internal/fol"
	"vernac/internal/report"
	"vernac/internal/tptp"
)

// pendingObligation is one proof step awaiting verification: the goal
// formula built from the current scope and working focus, plus enough
// of a name->digest snapshot to store the result afterward.
type pendingObligation struct {
	description string
	problem     tptp.Problem
	axiomDigest map[string]string // axiom name -> digest, snapshot at submission time
	available   []string          // all available digests, for cache lookup
}

// buildObligation assembles the TPTP problem for one proof step: every
// global axiom, every theorem-context assumption, and every formula
// accumulated in the current scope frame, against the given focus
// formula as the conjecture.
func (e *Engine) buildObligation(description string, focus fol.Formula, scope *proofScope) *pendingObligation {
	var axioms []tptp.Named
	digestOf := make(map[string]string)
	var available []string

	add := func(name string, f fol.Formula) {
		d := cache.HashFormula(f)
		axioms = append(axioms, tptp.Named{Name: name, Formula: f})
		digestOf[name] = d
		available = append(available, d)
	}

	for _, a := range e.axioms {
		add(a.Name, a.Formula)
	}
	for _, c := range e.theoremContext {
		add(c.Name, c.Formula)
	}
	for _, f := range scope.top() {
		add(e.freshName("scope"), f)
	}

	problem := tptp.Problem{
		Axioms:     axioms,
		Conjecture: tptp.Named{Name: "goal", Formula: focus},
	}
	return &pendingObligation{
		description: description,
		problem:     problem,
		axiomDigest: digestOf,
		available:   available,
	}
}

type obligationResult struct {
	success    bool
	source     string
	timings    map[string]report.ProverTiming
	usedAxioms []string
}

// dispatch runs every obligation through the bounded worker pool,
// returning results index-aligned with obligations. Each obligation
// first checks the cache (unless disabled), then invokes either the
// active prover or, in benchmark mode, every registered prover
// concurrently — grounded on
// internal/shards/research_tools.go's semaphore-bounded fan-out,
// generalized here onto golang.org/x/sync/errgroup for error
// propagation and context cancellation.
func (e *Engine) dispatch(obligations []*pendingObligation) []obligationResult {
	results := make([]obligationResult, len(obligations))
	if len(obligations) == 0 {
		return results
	}

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sem := make(chan struct{}, workers)

	g, ctx := errgroup.WithContext(context.Background())
	for i, ob := range obligations {
		i, ob := i, ob
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = e.runObligation(ctx, ob)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (e *Engine) runObligation(ctx context.Context, ob *pendingObligation) obligationResult {
	goalHash := cache.HashFormula(ob.problem.Conjecture.Formula)
	contextHash := cache.ContextHash(ob.available, goalHash)

	if e.cacheEnabled && !e.benchmark && e.cfg.Cache != nil {
		result, known, err := e.cfg.Cache.Lookup(goalHash, ob.available, contextHash)
		if err == nil && known {
			return obligationResult{success: result, source: "cached"}
		}
	}

	var res obligationResult
	if e.benchmark {
		res = e.runAllProvers(ctx, ob)
	} else {
		res = e.runActiveProver(ctx, ob)
	}

	if e.cacheEnabled && !e.globalNoCache && e.cfg.Cache != nil {
		used := ob.available
		if names := res.usedAxioms; len(names) > 0 {
			used = nil
			for _, n := range names {
				if d, ok := ob.axiomDigest[n]; ok {
					used = append(used, d)
				}
			}
			if len(used) == 0 {
				used = ob.available
			}
		}
		_ = e.cfg.Cache.Store(goalHash, used, res.success, contextHash)
	}
	return res
}

func (e *Engine) runActiveProver(ctx context.Context, ob *pendingObligation) obligationResult {
	p, ok := e.cfg.Provers[e.activeProver]
	if !ok {
		return obligationResult{success: false, source: e.activeProver}
	}
	r := p.Run(ctx, ob.problem, e.timeLimit)
	out := obligationResult{success: r.Success, source: p.Name()}
	out.usedAxioms = r.UsedAxioms
	return out
}

func (e *Engine) runAllProvers(ctx context.Context, ob *pendingObligation) obligationResult {
	names := make([]string, 0, len(e.cfg.Provers))
	for name := range e.cfg.Provers {
		names = append(names, name)
	}
	sort.Strings(names)

	timings := make(map[string]report.ProverTiming, len(names))
	outcomes := make([]report.ProverTiming, len(names))
	used := make([][]string, len(names))
	var g errgroup.Group
	for i, name := range names {
		i, p := i, e.cfg.Provers[name]
		g.Go(func() error {
			r := p.Run(ctx, ob.problem, e.timeLimit)
			outcomes[i] = report.ProverTiming{Success: r.Success, Time: r.TimeTaken}
			used[i] = r.UsedAxioms
			return nil
		})
	}
	_ = g.Wait()

	var anySuccess bool
	var winningAxioms []string
	for i, name := range names {
		timings[name] = outcomes[i]
		if outcomes[i].Success && !anySuccess {
			anySuccess = true
			winningAxioms = used[i]
		}
	}

	out := obligationResult{success: anySuccess, source: "benchmark", timings: timings}
	out.usedAxioms = winningAxioms
	return out
}

// reportResults sends every obligation's outcome to the configured
// Reporter, in submission order, once the dispatch pool has drained.
func (e *Engine) reportResults(obligations []*pendingObligation, results []obligationResult) {
	for i, ob := range obligations {
		r := results[i]
		e.cfg.Reporter.StepVerified(i+1, ob.description, r.success, r.source, r.timings)
	}
}
