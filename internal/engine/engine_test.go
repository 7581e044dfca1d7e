package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vernac/internal/prover"
	"vernac/internal/prover/dummy"
	"vernac/internal/report"
	"vernac/internal/stmt"
)

// recordingReporter captures every call for assertions instead of
// rendering to a terminal.
type recordingReporter struct {
	logs  []string
	errs  []string
	steps []stepCall
}

type stepCall struct {
	n           int
	description string
	success     bool
	source      string
	benchmark   map[string]report.ProverTiming
}

func (r *recordingReporter) Log(m string)   { r.logs = append(r.logs, m) }
func (r *recordingReporter) Error(m string) { r.errs = append(r.errs, m) }
func (r *recordingReporter) StepVerified(n int, description string, success bool, source string, benchmark map[string]report.ProverTiming) {
	r.steps = append(r.steps, stepCall{n, description, success, source, benchmark})
}

func words(ws ...string) []stmt.Atom {
	var out []stmt.Atom
	for _, w := range ws {
		out = append(out, stmt.Atom{Kind: stmt.Word, Text: w})
	}
	return out
}

func math(expr string) stmt.Atom {
	return stmt.Atom{Kind: stmt.Math, Text: "$" + expr + "$"}
}

func atoms(parts ...interface{}) []stmt.Atom {
	var out []stmt.Atom
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			out = append(out, words(v)...)
		case stmt.Atom:
			out = append(out, v)
		}
	}
	return out
}

func newTestEngine(rec *recordingReporter) *Engine {
	return New(Config{
		BaseDir:       ".",
		Reporter:      rec,
		Provers:       map[string]prover.Prover{"dummy": dummy.New()},
		DefaultProver: "dummy",
		TimeLimit:     time.Second,
		Workers:       1,
	})
}

func TestNewSeedsBuiltinAxioms(t *testing.T) {
	e := newTestEngine(&recordingReporter{})
	assert.Len(t, e.axioms, 7)
}

func TestAxiomBlockIsAddedToAxiomList(t *testing.T) {
	rec := &recordingReporter{}
	e := newTestEngine(rec)

	block := stmt.NewBlock(stmt.Axiom, "ax1",
		stmt.NewSentence("Every set is finite.",
			atoms("Every", "set", "is", "finite")...),
	)
	e.Run([]stmt.Node{block})

	assert.Empty(t, rec.errs)
	assert.Len(t, e.axioms, 8) // 7 builtins + this one
}

func TestTheoremWithProofDispatchesObligationAndReportsSuccess(t *testing.T) {
	rec := &recordingReporter{}
	e := newTestEngine(rec)

	theorem := stmt.NewBlock(stmt.Theorem, "t1",
		stmt.NewSentence("Let x be a set.",
			append(append([]stmt.Atom{}, words("Let")...), math("X"), stmt.Atom{Kind: stmt.Word, Text: "be"}, stmt.Atom{Kind: stmt.Word, Text: "a"}, stmt.Atom{Kind: stmt.Word, Text: "set"})...,
		),
		stmt.NewSentence("x is finite.",
			append([]stmt.Atom{math("X")}, words("is", "finite")...)...,
		),
		stmt.NewBlock(stmt.Proof, "",
			stmt.NewSentence("x is finite.",
				append([]stmt.Atom{math("X")}, words("is", "finite")...)...,
			),
		),
	)
	e.Run([]stmt.Node{theorem})

	require.Empty(t, rec.errs)
	require.Len(t, rec.steps, 1)
	assert.True(t, rec.steps[0].success)
	assert.Equal(t, "dummy", rec.steps[0].source)
}

func TestContradictionSentinelQueuesObligation(t *testing.T) {
	rec := &recordingReporter{}
	e := newTestEngine(rec)

	theorem := stmt.NewBlock(stmt.Theorem, "t2",
		stmt.NewSentence("x is finite.",
			append([]stmt.Atom{math("X")}, words("is", "finite")...)...,
		),
		stmt.NewBlock(stmt.Proof, "",
			stmt.NewSentence("Assume the contrary.", words("Assume", "the", "contrary")...),
			stmt.NewSentence("Contradiction.", words("Contradiction")...),
		),
	)
	e.Run([]stmt.Node{theorem})

	require.Empty(t, rec.errs)
	require.Len(t, rec.steps, 1)
	assert.True(t, rec.steps[0].success)
}

func TestCaseEndScopingLeavesTheoremContextUntouched(t *testing.T) {
	rec := &recordingReporter{}
	e := newTestEngine(rec)

	theorem := stmt.NewBlock(stmt.Theorem, "t3",
		stmt.NewSentence("x is finite.",
			append([]stmt.Atom{math("X")}, words("is", "finite")...)...,
		),
		stmt.NewBlock(stmt.Proof, "",
			stmt.NewSentence("Case x is finite.",
				append(words("Case"), append([]stmt.Atom{math("X")}, words("is", "finite")...)...)...,
			),
			stmt.NewSentence("x is finite.",
				append([]stmt.Atom{math("X")}, words("is", "finite")...)...,
			),
			stmt.NewSentence("End.", words("End")...),
		),
	)
	e.Run([]stmt.Node{theorem})

	require.Empty(t, rec.errs)
	require.Len(t, rec.steps, 1)
	assert.Equal(t, 0, len(e.theoremContext)+0) // theoremContext untouched by case handling
}

func TestUnknownDirectiveIsReportedNotFatal(t *testing.T) {
	rec := &recordingReporter{}
	e := newTestEngine(rec)
	e.Run([]stmt.Node{stmt.NewDirective("frobnicate", "x")})
	require.Len(t, rec.errs, 1)
}

func TestTimeLimitDirectiveUpdatesEngine(t *testing.T) {
	rec := &recordingReporter{}
	e := newTestEngine(rec)
	e.Run([]stmt.Node{stmt.NewDirective("timelimit", "30")})
	assert.Empty(t, rec.errs)
	assert.Equal(t, 30*time.Second, e.timeLimit)
}

func TestProverDirectiveSwitchesActiveProver(t *testing.T) {
	rec := &recordingReporter{}
	e := newTestEngine(rec)
	e.cfg.Provers["vampire"] = dummy.New()
	e.Run([]stmt.Node{stmt.NewDirective("prover", "vampire")})
	assert.Equal(t, "vampire", e.activeProver)
}

type fakeLoader struct {
	files map[string][]stmt.Node
}

func (l *fakeLoader) Load(path string) ([]stmt.Node, error) {
	nodes, ok := l.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return nodes, nil
}

func TestReadDirectiveResolvesViaMathFallbackAndPreventsCycles(t *testing.T) {
	dir := t.TempDir()
	mathDir := filepath.Join(dir, "math")
	require.NoError(t, os.MkdirAll(mathDir, 0o755))
	incPath := filepath.Join(mathDir, "lemma.v")
	require.NoError(t, os.WriteFile(incPath, []byte(""), 0o644))

	included := stmt.NewBlock(stmt.Axiom, "imported",
		stmt.NewSentence("Every set is finite.", atoms("Every", "set", "is", "finite")...))

	rec := &recordingReporter{}
	e := newTestEngine(rec)
	e.cfg.BaseDir = dir
	e.cfg.Loader = &fakeLoader{files: map[string][]stmt.Node{incPath: {included}}}

	e.Run([]stmt.Node{stmt.NewDirective("read", "lemma.v")})
	require.Empty(t, rec.errs)
	assert.Len(t, e.axioms, 8)

	// Re-reading the same path is a no-op (cycle prevention).
	e.Run([]stmt.Node{stmt.NewDirective("read", "lemma.v")})
	assert.Len(t, e.axioms, 8)
}

func TestReadDirectiveReportsMissingInclude(t *testing.T) {
	rec := &recordingReporter{}
	e := newTestEngine(rec)
	e.cfg.BaseDir = t.TempDir()
	e.Run([]stmt.Node{stmt.NewDirective("read", "nope.v")})
	require.Len(t, rec.errs, 1)
}
