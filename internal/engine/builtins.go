package engine

import "vernac/internal/fol"

// seedBuiltinAxioms populates e's axiom list with the structural
// axioms for setminus, cap, cup, empty_set, singleton, set_enum (the
// pair-set case), and pair-equality projection — necessary because
// the controlled-language translator and expression parser use these
// function symbols freely (§4.G "Built-in axiomatization").
func seedBuiltinAxioms(e *Engine) {
	a, b, c, d, x := fol.NewVariable("A"), fol.NewVariable("B"), fol.NewVariable("C"), fol.NewVariable("D"), fol.NewVariable("X")

	in := func(elem, set fol.Term) fol.Formula { return fol.NewPredicate("in", elem, set) }

	setminus := fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{a, b, x}, Body: fol.Iff{
		Left:  in(x, fol.NewApply(fol.FnSetminus, a, b)),
		Right: fol.And{Left: in(x, a), Right: fol.Not{Body: in(x, b)}},
	}}

	cap := fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{a, b, x}, Body: fol.Iff{
		Left:  in(x, fol.NewApply(fol.FnCap, a, b)),
		Right: fol.And{Left: in(x, a), Right: in(x, b)},
	}}

	cup := fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{a, b, x}, Body: fol.Iff{
		Left:  in(x, fol.NewApply(fol.FnCup, a, b)),
		Right: fol.Or{Left: in(x, a), Right: in(x, b)},
	}}

	emptySet := fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{x}, Body: fol.Not{
		Body: in(x, fol.NewConstant(fol.FnEmptySet)),
	}}

	singleton := fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{a, x}, Body: fol.Iff{
		Left:  in(x, fol.NewApply(fol.FnSingleton, a)),
		Right: fol.Equal{Left: x, Right: a},
	}}

	setEnumPair := fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{a, b, x}, Body: fol.Iff{
		Left:  in(x, fol.NewApply(fol.FnSetEnum, a, b)),
		Right: fol.Or{Left: fol.Equal{Left: x, Right: a}, Right: fol.Equal{Left: x, Right: b}},
	}}

	pairProjection := fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{a, b, c, d}, Body: fol.Implies{
		Left: fol.Equal{Left: fol.NewApply(fol.FnPair, a, b), Right: fol.NewApply(fol.FnPair, c, d)},
		Right: fol.And{
			Left:  fol.Equal{Left: a, Right: c},
			Right: fol.Equal{Left: b, Right: d},
		},
	}}

	for _, ax := range []fol.Formula{setminus, cap, cup, emptySet, singleton, setEnumPair, pairProjection} {
		e.addAxiom(e.freshName("builtin"), ax)
	}
}
