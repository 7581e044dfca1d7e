package translate

import (
	"strings"

	"vernac/internal/fol"
	"vernac/internal/stmt"
)

// wordsToAtoms re-tokenizes a flat condition string (as carried by a
// set_comp sentinel's text argument) back into word atoms so it can
// be recursively translated as a sentence.
func wordsToAtoms(text string) []stmt.Atom {
	var atoms []stmt.Atom
	for _, w := range strings.Fields(text) {
		atoms = append(atoms, stmt.Atom{Kind: stmt.Word, Text: w})
	}
	return atoms
}

// expandSetComp implements the §4.C set-comprehension expansion: given
// a definition `P = set_comp(expr, text)`, re-tokenizes text and
// recursively translates it, producing
// forall x. in(x,P) <=> (domain(expr) & cond(x)). When expr is a bare
// variable, x is that variable and the domain(expr) conjunct is omitted.
func (t *Translator) expandSetComp(lhs fol.Term, application fol.Apply) (fol.Formula, bool, error) {
	expr := application.Args[0]
	textConst, ok := application.Args[1].(fol.Constant)
	if !ok {
		return nil, false, nil
	}

	cond, err := t.cascade(wordsToAtoms(textConst.Name))
	if err != nil {
		return nil, false, nil
	}

	x, isVar := expr.(fol.Variable)
	var rhs fol.Formula = cond
	if !isVar {
		x = fol.NewVariable(t.freshName("X"))
		rhs = fol.And{Left: fol.NewPredicate("domain", expr), Right: cond}
	}

	iff := fol.Iff{Left: fol.NewPredicate("in", x, lhs), Right: rhs}
	return fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{x}, Body: iff}, true, nil
}
