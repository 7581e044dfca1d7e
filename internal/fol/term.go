// Package fol implements the algebraic data types for first-order logic
// terms and formulas: construction, capture-avoiding substitution,
// free-variable computation, and canonical TPTP-compatible rendering.
package fol

import "sort"

// Term is a first-order term: a variable, a constant, or a function
// application. The set of implementations is closed; callers switch on
// the concrete type rather than a visitor interface.
type Term interface {
	isTerm()
	// String renders the term in canonical TPTP-compatible form.
	String() string
}

// Variable is an upper-case-semantics term bound by a quantifier, or free.
type Variable struct {
	Name string
}

// Constant is a lower-case-semantics term, possibly a numeric literal.
type Constant struct {
	Name string
}

// Apply is a function application: a name applied to ordered arguments.
// Subscripts, binary operators, tuples, and set-builder forms are all
// sugar that the expression parser desugars into canonically-named
// Apply terms (see internal/exprparse).
type Apply struct {
	Name string
	Args []Term
}

func (Variable) isTerm() {}
func (Constant) isTerm() {}
func (Apply) isTerm()    {}

// Canonical function names used by the expression parser and sentence
// translator when desugaring operators, subscripts, and set syntax.
const (
	FnSubscript   = "subscript"
	FnSetminus    = "setminus"
	FnCap         = "cap"
	FnCup         = "cup"
	FnIntersect   = "intersection"
	FnUnion       = "union"
	FnTimes       = "times"
	FnCirc        = "circ"
	FnTo          = "to"
	FnPowerset    = "powerset"
	FnDom         = "dom"
	FnApply       = "apply"
	FnImageOf     = "image_of"
	FnSetEnum     = "set_enum"
	FnSingleton   = "singleton"
	FnEmptySet    = "empty_set"
	FnPair        = "pair"
	FnTuple       = "tuple"
	FnSetComp     = "set_comp"
)

// NewVariable constructs a variable term.
func NewVariable(name string) Variable { return Variable{Name: name} }

// NewConstant constructs a constant term.
func NewConstant(name string) Constant { return Constant{Name: name} }

// NewApply constructs a function-application term.
func NewApply(name string, args ...Term) Apply {
	return Apply{Name: name, Args: args}
}

// VarsInTerm returns the set of variables occurring in t, as a
// name-keyed map suitable for deduplication.
func VarsInTerm(t Term) map[string]Variable {
	out := make(map[string]Variable)
	collectVarsInTerm(t, out)
	return out
}

func collectVarsInTerm(t Term, out map[string]Variable) {
	switch v := t.(type) {
	case Variable:
		out[v.Name] = v
	case Apply:
		for _, a := range v.Args {
			collectVarsInTerm(a, out)
		}
	case Constant:
		// no variables
	}
}

// SortedVariables returns vars sorted by name, for deterministic
// universal-closure ordering (spec requires sort-by-name for stable
// canonical strings and cache hashes).
func SortedVariables(vars map[string]Variable) []Variable {
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]Variable, len(names))
	for i, n := range names {
		out[i] = vars[n]
	}
	return out
}

// substituteTerm replaces free occurrences of variable name with
// replacement t within term, returning a new term (terms are immutable).
func substituteTerm(term Term, name string, repl Term) Term {
	switch v := term.(type) {
	case Variable:
		if v.Name == name {
			return repl
		}
		return v
	case Constant:
		return v
	case Apply:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteTerm(a, name, repl)
		}
		return Apply{Name: v.Name, Args: args}
	}
	return term
}
