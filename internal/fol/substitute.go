package fol

import "errors"

// ErrCapture is returned when a substitution would place a variable of
// the replacement term under a quantifier that binds a variable of the
// same name; substitution refuses to descend there rather than
// silently producing an incorrectly-scoped formula.
var ErrCapture = errors.New("fol: substitution would be captured by an inner quantifier")

// Substitute replaces free occurrences of variable name with
// replacement repl throughout f. It is idempotent when name does not
// occur free in f (Substitute(f, x, t) == f if x not in FreeVars(f)),
// and it is capture-avoiding: a subtree under a quantifier that rebinds
// name is left untouched, and it refuses (returning ErrCapture) to
// descend under a quantifier that binds a free variable of repl.
func Substitute(f Formula, name string, repl Term) (Formula, error) {
	switch v := f.(type) {
	case Predicate:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteTerm(a, name, repl)
		}
		return Predicate{Name: v.Name, Args: args}, nil
	case Equal:
		return Equal{
			Left:  substituteTerm(v.Left, name, repl),
			Right: substituteTerm(v.Right, name, repl),
		}, nil
	case Not:
		body, err := Substitute(v.Body, name, repl)
		if err != nil {
			return nil, err
		}
		return Not{Body: body}, nil
	case And:
		return substituteBinary(v.Left, v.Right, name, repl, func(l, r Formula) Formula { return And{Left: l, Right: r} })
	case Or:
		return substituteBinary(v.Left, v.Right, name, repl, func(l, r Formula) Formula { return Or{Left: l, Right: r} })
	case Implies:
		return substituteBinary(v.Left, v.Right, name, repl, func(l, r Formula) Formula { return Implies{Left: l, Right: r} })
	case Iff:
		return substituteBinary(v.Left, v.Right, name, repl, func(l, r Formula) Formula { return Iff{Left: l, Right: r} })
	case Quantified:
		for _, bv := range v.Vars {
			if bv.Name == name {
				// name is rebound here; occurrences in the body are no
				// longer free, so this subtree is left untouched.
				return v, nil
			}
		}
		if _, free := FreeVars(v.Body)[name]; !free {
			return v, nil
		}
		replVars := VarsInTerm(repl)
		for _, bv := range v.Vars {
			if _, clash := replVars[bv.Name]; clash {
				return nil, ErrCapture
			}
		}
		body, err := Substitute(v.Body, name, repl)
		if err != nil {
			return nil, err
		}
		return Quantified{Kind: v.Kind, Vars: v.Vars, Body: body}, nil
	}
	return f, nil
}

func substituteBinary(l, r Formula, name string, repl Term, combine func(Formula, Formula) Formula) (Formula, error) {
	nl, err := Substitute(l, name, repl)
	if err != nil {
		return nil, err
	}
	nr, err := Substitute(r, name, repl)
	if err != nil {
		return nil, err
	}
	return combine(nl, nr), nil
}
