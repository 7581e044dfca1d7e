package translate

import "vernac/internal/fol"

// expandColonMaps rewrites every colon(F, to(A,B)) predicate occurring
// in f into dom(F) = A & (forall x. in(x,A) => in(apply(F,x),B)),
// per §4.C's colon-map expansion. Every formula returned by the
// cascade passes through this rewrite.
func expandColonMaps(f fol.Formula) fol.Formula {
	switch v := f.(type) {
	case fol.Predicate:
		if v.Name == "colon" && len(v.Args) == 2 {
			if apply, ok := v.Args[1].(fol.Apply); ok && apply.Name == fol.FnTo && len(apply.Args) == 2 {
				fn, a, b := v.Args[0], apply.Args[0], apply.Args[1]
				x := fol.NewVariable("X")
				domEq := fol.Equal{Left: fol.NewApply(fol.FnDom, fn), Right: a}
				body := fol.Implies{
					Left:  fol.NewPredicate("in", x, a),
					Right: fol.NewPredicate("in", fol.NewApply(fol.FnApply, fn, x), b),
				}
				guarded := fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{x}, Body: body}
				return fol.And{Left: domEq, Right: guarded}
			}
		}
		return v
	case fol.Equal:
		return v
	case fol.Not:
		return fol.Not{Body: expandColonMaps(v.Body)}
	case fol.And:
		return fol.And{Left: expandColonMaps(v.Left), Right: expandColonMaps(v.Right)}
	case fol.Or:
		return fol.Or{Left: expandColonMaps(v.Left), Right: expandColonMaps(v.Right)}
	case fol.Implies:
		return fol.Implies{Left: expandColonMaps(v.Left), Right: expandColonMaps(v.Right)}
	case fol.Iff:
		return fol.Iff{Left: expandColonMaps(v.Left), Right: expandColonMaps(v.Right)}
	case fol.Quantified:
		return fol.Quantified{Kind: v.Kind, Vars: v.Vars, Body: expandColonMaps(v.Body)}
	}
	return f
}
