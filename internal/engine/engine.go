// Package engine implements the dispatch engine (§4.G/§5): it walks
// the statement tree, maintains the global axiom list, the per-
// theorem context, and the per-proof scope stack, decomposes theorem
// goals under leading quantifiers and implications, and submits one
// proof obligation per non-assumption proof step to a bounded worker
// pool. The worker pool is grounded on
// internal/shards/research_tools.go's semaphore-bounded fan-out,
// generalized onto golang.org/x/sync/errgroup.
package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"vernac/internal/cache"
	"vernac/internal/fol"
	"vernac/internal/prover"
	"vernac/internal/report"
	"vernac/internal/stmt"
	"vernac/internal/translate"
)

// Loader resolves a `read <path>` directive to the already-parsed
// statement tree of the included source. The block-level lexer/parser
// that produces this tree is an external collaborator (§1); the
// engine only consumes it through this seam.
type Loader interface {
	Load(absPath string) ([]stmt.Node, error)
}

// Config configures a new Engine.
type Config struct {
	BaseDir       string
	Cache         *cache.Cache // nil disables caching entirely (global no-cache)
	Reporter      report.Reporter
	Provers       map[string]prover.Prover
	DefaultProver string
	TimeLimit     time.Duration
	Workers       int // 0 means runtime.NumCPU()
	Benchmark     bool
	Loader        Loader
}

// Engine is the dispatch engine's mutable run state.
type Engine struct {
	cfg Config

	translator *translate.Translator

	axioms         []NamedFormula
	theoremContext []NamedFormula
	processedFiles map[string]bool

	activeProver  string
	timeLimit     time.Duration
	cacheEnabled  bool // runtime toggle via `cache on/off`
	globalNoCache bool
	benchmark     bool

	currentGoal fol.Formula
}

// New constructs an Engine, seeding the built-in structural axioms.
func New(cfg Config) *Engine {
	e := &Engine{
		cfg:            cfg,
		translator:     translate.NewTranslator(),
		processedFiles: make(map[string]bool),
		activeProver:   cfg.DefaultProver,
		timeLimit:      cfg.TimeLimit,
		globalNoCache:  cfg.Cache == nil,
		cacheEnabled:   cfg.Cache != nil,
		benchmark:      cfg.Benchmark,
	}
	seedBuiltinAxioms(e)
	return e
}

// freshName mints a globally unique identifier for an axiom entry, a
// theorem-context entry, a proof-scope formula, or a skolem constant
// introduced while decomposing a goal — the "assigned unique
// identifier" every such entry carries (§3).
func (e *Engine) freshName(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}

func (e *Engine) addAxiom(name string, f fol.Formula) {
	if name == "" {
		name = e.freshName("ax")
	}
	e.axioms = append(e.axioms, NamedFormula{Name: name, Formula: f})
}

// Run processes a top-level statement stream: block translation,
// directive handling, and theorem/proof checking. Errors from one
// statement never abort the run (§7); every error is reported and
// processing continues.
func (e *Engine) Run(statements []stmt.Node) {
	e.processStatements(statements, false)
}

func (e *Engine) processStatements(statements []stmt.Node, included bool) {
	for _, node := range statements {
		switch n := node.(type) {
		case stmt.Directive:
			e.handleDirective(n, nil)
		case stmt.Block:
			e.processBlock(n, included)
		case stmt.Sentence:
			e.cfg.Reporter.Error("unexpected top-level sentence: " + n.Text)
		}
	}
}

func (e *Engine) processBlock(b stmt.Block, included bool) {
	switch b.Kind {
	case stmt.Axiom, stmt.Definition, stmt.Lemma:
		result, errs := e.translator.TranslateBlock(b)
		e.reportErrors(errs)
		if result != nil {
			e.addAxiom(labelOrFresh(e, b.Label), result.Axiom)
		}
	case stmt.Theorem:
		e.processTheorem(b, included)
	case stmt.Proof:
		// A bare proof block with no enclosing theorem has nothing to
		// check against; report and skip.
		e.cfg.Reporter.Error("proof block with no enclosing theorem")
	default:
		// "other" blocks carry no translatable content.
	}
}

func labelOrFresh(e *Engine, label string) string {
	if label != "" {
		return label
	}
	return e.freshName("ax")
}

func (e *Engine) reportErrors(errs []error) {
	for _, err := range errs {
		e.cfg.Reporter.Error(err.Error())
	}
}

func (e *Engine) processTheorem(b stmt.Block, included bool) {
	result, errs := e.translator.TranslateBlock(b)
	e.reportErrors(errs)
	if result == nil {
		e.cfg.Reporter.Error("theorem has no conclusion: " + b.Label)
		return
	}

	if included {
		// An imported theorem is added as an axiom (§4.D), proof skipped.
		e.addAxiom(labelOrFresh(e, b.Label), result.Axiom)
		return
	}

	e.theoremContext = nil
	for _, a := range result.Assumptions {
		e.theoremContext = append(e.theoremContext, NamedFormula{Name: e.freshName("ctx"), Formula: a})
	}
	e.currentGoal = result.Goal

	var proofBlock *stmt.Block
	for _, child := range b.Children {
		if blk, ok := child.(stmt.Block); ok && blk.Kind == stmt.Proof {
			b2 := blk
			proofBlock = &b2
			break
		}
	}
	if proofBlock == nil {
		e.cfg.Reporter.Log("theorem has no proof: " + b.Label)
		return
	}
	e.checkProof(*proofBlock)
}

// handleDirective applies a directive's effect (§4.G). scope is nil
// for top-level directives and non-nil for directives encountered
// inside a proof body.
func (e *Engine) handleDirective(d stmt.Directive, scope *proofScope) {
	switch strings.ToLower(d.Name) {
	case "read":
		if len(d.Args) != 1 {
			e.cfg.Reporter.Error("read directive requires exactly one path argument")
			return
		}
		e.processRead(d.Args[0])
	case "prover":
		if e.benchmark {
			return // ignored under benchmark mode
		}
		if len(d.Args) != 1 {
			e.cfg.Reporter.Error("prover directive requires exactly one name argument")
			return
		}
		e.activeProver = d.Args[0]
	case "cache":
		if e.globalNoCache {
			return // ignored if global no-cache is set
		}
		if len(d.Args) != 1 {
			e.cfg.Reporter.Error("cache directive requires on/off argument")
			return
		}
		e.cacheEnabled = strings.EqualFold(d.Args[0], "on")
	case "timelimit":
		if len(d.Args) != 1 {
			e.cfg.Reporter.Error("timelimit directive requires one argument")
			return
		}
		secs, err := strconv.Atoi(d.Args[0])
		if err != nil {
			e.cfg.Reporter.Error("invalid timelimit: " + d.Args[0])
			return
		}
		e.timeLimit = time.Duration(secs) * time.Second
	case "synonym":
		if len(d.Args) != 1 || !strings.Contains(d.Args[0], "/") {
			e.cfg.Reporter.Error("synonym directive requires <base>/<variant>")
			return
		}
		parts := strings.SplitN(d.Args[0], "/", 2)
		e.translator.Synonyms.Register(parts[0], parts[1])
	default:
		e.cfg.Reporter.Error("unknown directive (ignored): " + d.Name)
	}
}

// processRead resolves and recursively loads an included source,
// sharing macros, synonyms, and the axiom list; theorems in the
// included file are imported as axioms and its proofs are skipped.
// Already-loaded paths are ignored (§6).
func (e *Engine) processRead(path string) {
	resolved, ok := e.resolveIncludePath(path)
	if !ok {
		e.cfg.Reporter.Error("include not found: " + path)
		return
	}
	if e.processedFiles[resolved] {
		return
	}
	e.processedFiles[resolved] = true

	if e.cfg.Loader == nil {
		e.cfg.Reporter.Error("no loader configured; cannot read: " + path)
		return
	}
	nodes, err := e.cfg.Loader.Load(resolved)
	if err != nil {
		e.cfg.Reporter.Error(fmt.Sprintf("failed to read %s: %v", resolved, err))
		return
	}
	e.processStatements(nodes, true)
}

func (e *Engine) resolveIncludePath(path string) (string, bool) {
	direct := filepath.Join(e.cfg.BaseDir, path)
	if fileExists(direct) {
		return direct, true
	}
	fallback := filepath.Join(e.cfg.BaseDir, "math", path)
	if fileExists(fallback) {
		return fallback, true
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// checkProof decomposes the working goal — repeatedly stripping outer
// universal quantifiers (replacing each bound variable with a fresh
// constant) and outer implications (adding the left side to the proof
// context) — then iterates the proof body, submitting one obligation
// per non-assumption step, and finally awaits and reports all results
// in submission order.
func (e *Engine) checkProof(proofBlock stmt.Block) {
	goal, scope := e.decomposeGoal(e.currentGoal)

	state := &runState{}
	e.runProofBody(proofBlock.Children, goal, scope, state)

	results := e.dispatch(state.obligations)
	e.reportResults(state.obligations, results)
}

func (e *Engine) decomposeGoal(goal fol.Formula) (fol.Formula, *proofScope) {
	scope := newProofScope(nil)
	for {
		if q, ok := goal.(fol.Quantified); ok && q.Kind == fol.Forall {
			body := q.Body
			progressed := false
			for _, v := range q.Vars {
				fresh := fol.NewConstant(e.freshName("c"))
				nf, err := fol.Substitute(body, v.Name, fresh)
				if err != nil {
					e.cfg.Reporter.Error("goal decomposition: " + err.Error())
					return goal, scope
				}
				body = nf
				progressed = true
			}
			if progressed {
				goal = body
				continue
			}
		}
		if imp, ok := goal.(fol.Implies); ok {
			scope.append(imp.Left)
			goal = imp.Right
			continue
		}
		break
	}
	return goal, scope
}

// runState accumulates obligations across a proof body and any nested
// proof blocks, preserving one global submission order.
type runState struct {
	obligations []*pendingObligation
}

func isAssumptionSentence(s stmt.Sentence) bool {
	return beginsWithAny(s, "Assume", "Let", "Take", "Define", "Consider")
}

func beginsWithAny(s stmt.Sentence, words ...string) bool {
	if len(s.Atoms) == 0 {
		return false
	}
	first := s.Atoms[0]
	if first.Kind != stmt.Word {
		return false
	}
	for _, w := range words {
		if strings.EqualFold(first.Text, w) {
			return true
		}
	}
	return false
}

func (e *Engine) runProofBody(children []stmt.Node, goal fol.Formula, scope *proofScope, state *runState) {
	for _, child := range children {
		switch n := child.(type) {
		case stmt.Directive:
			e.handleDirective(n, scope)
		case stmt.Block:
			if n.Kind == stmt.Proof {
				// Nested proof blocks are checked recursively as a
				// local lemma: their own scope frame, reported as
				// nested steps in the same submission order.
				scope.push()
				e.runProofBody(n.Children, goal, scope, state)
				scope.pop()
				continue
			}
			e.cfg.Reporter.Error("unexpected nested block in proof body")
		case stmt.Sentence:
			e.runProofSentence(n, goal, scope, state)
		}
	}
}

func (e *Engine) runProofSentence(s stmt.Sentence, goal fol.Formula, scope *proofScope, state *runState) {
	if beginsWithAny(s, "Case") {
		scope.push()
		f, err := e.translator.Translate(s.Atoms, false)
		if err != nil {
			if !errors.Is(err, translate.ErrNoFormula) {
				e.cfg.Reporter.Error(err.Error())
			}
			return
		}
		scope.append(f)
		return
	}
	if beginsWithAny(s, "End") {
		scope.pop()
		return
	}

	f, err := e.translator.Translate(s.Atoms, false)
	if err != nil {
		if errors.Is(err, translate.ErrNoFormula) {
			return
		}
		e.cfg.Reporter.Error(err.Error())
		return
	}

	switch {
	case translate.IsContrary(f):
		scope.append(fol.Not{Body: goal})
	case translate.IsFalseSentinel(f):
		ob := e.buildObligation("Contradiction", fol.NewPredicate(translate.FalsePredicate), scope)
		state.obligations = append(state.obligations, ob)
		scope.append(f)
	case isAssumptionSentence(s):
		scope.append(f)
	default:
		ob := e.buildObligation(s.Text, f, scope)
		state.obligations = append(state.obligations, ob)
		scope.append(f)
	}
}
