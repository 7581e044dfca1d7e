// Package tptp serializes axioms and a conjecture into a TPTP FOF
// problem file — the interchange format fed to every prover adapter
// and to the dependency-aware cache's hasher. Serialization is
// deterministic: the same (name, formula) pairs always render to the
// same bytes, since the canonical string form is itself deterministic
// (internal/fol) and this package does no reordering of its own.
package tptp

import (
	"fmt"
	"strings"

	"vernac/internal/fol"
)

// Named pairs a formula with the identifier it will carry in the
// TPTP file — an axiom name or the conjecture's name.
type Named struct {
	Name    string
	Formula fol.Formula
}

// Problem is an ordered axiom list plus a single conjecture, ready to
// render as one FOF file.
type Problem struct {
	Axioms     []Named
	Conjecture Named
}

// Render produces the TPTP FOF text: one
// `fof(<name>, axiom, <formula>).` line per axiom, in order, followed
// by `fof(<name>, conjecture, <formula>).` for the conjecture.
func (p Problem) Render() string {
	var b strings.Builder
	for _, a := range p.Axioms {
		fmt.Fprintf(&b, "fof(%s, axiom, %s).\n", fol.QuoteIfNeeded(a.Name), a.Formula.String())
	}
	fmt.Fprintf(&b, "fof(%s, conjecture, %s).\n", fol.QuoteIfNeeded(p.Conjecture.Name), p.Conjecture.Formula.String())
	return b.String()
}
