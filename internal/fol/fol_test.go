package fol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCanonicalForms(t *testing.T) {
	x := NewVariable("x")
	a := NewConstant("a")

	assert.Equal(t, "X", x.String())
	assert.Equal(t, "a", a.String())
	assert.Equal(t, "f(X,a)", NewApply("f", x, a).String())

	assert.Equal(t, "X = a", Equal{Left: x, Right: a}.String())
	p := NewPredicate("p", x)
	assert.Equal(t, "~(p(X))", Not{Body: p}.String())
	assert.Equal(t, "(p(X) & p(X))", And{Left: p, Right: p}.String())
	assert.Equal(t, "(p(X) | p(X))", Or{Left: p, Right: p}.String())
	assert.Equal(t, "(p(X) => p(X))", Implies{Left: p, Right: p}.String())
	assert.Equal(t, "(p(X) <=> p(X))", Iff{Left: p, Right: p}.String())
	assert.Equal(t, "! [X] : (p(X))", Quantified{Kind: Forall, Vars: []Variable{x}, Body: p}.String())
	assert.Equal(t, "? [X] : (p(X))", Quantified{Kind: Exists, Vars: []Variable{x}, Body: p}.String())
}

func TestRenderQuotesUnsafeIdentifiers(t *testing.T) {
	c := NewConstant("Set-Of-Reals")
	assert.Equal(t, "'set-of-reals'", c.String())

	p := NewPredicate("is a subset of")
	assert.Equal(t, "'is a subset of'", p.String())
}

func TestFreeVarsAndClosure(t *testing.T) {
	x, y := NewVariable("x"), NewVariable("y")
	body := NewPredicate("p", x, y)
	free := FreeVars(body)
	require.Len(t, free, 2)
	assert.Contains(t, free, "x")
	assert.Contains(t, free, "y")

	closed := Closure(body)
	q, ok := closed.(Quantified)
	require.True(t, ok)
	assert.Equal(t, Forall, q.Kind)
	require.Len(t, q.Vars, 2)
	assert.Equal(t, "x", q.Vars[0].Name)
	assert.Equal(t, "y", q.Vars[1].Name)

	// Idempotent: closing again changes nothing, since the body is now bound.
	reClosed := Closure(closed)
	assert.Equal(t, closed.String(), reClosed.String())
}

func TestClosureOfQuantifierLeavesBoundVarFree(t *testing.T) {
	x, y := NewVariable("x"), NewVariable("y")
	inner := NewPredicate("p", x, y)
	quantified := Quantified{Kind: Exists, Vars: []Variable{y}, Body: inner}

	free := FreeVars(quantified)
	require.Len(t, free, 1)
	assert.Contains(t, free, "x")

	closed := Closure(quantified)
	q, ok := closed.(Quantified)
	require.True(t, ok)
	require.Len(t, q.Vars, 1)
	assert.Equal(t, "x", q.Vars[0].Name)
}

func TestSubstituteNoOpWhenNotFree(t *testing.T) {
	x, y := NewVariable("x"), NewVariable("y")
	f := NewPredicate("p", y)

	out, err := Substitute(f, x.Name, NewConstant("c"))
	require.NoError(t, err)
	assert.Equal(t, f.String(), out.String())
}

func TestSubstituteReplacesFreeOccurrences(t *testing.T) {
	x := NewVariable("x")
	f := NewPredicate("p", x)

	out, err := Substitute(f, "x", NewConstant("c"))
	require.NoError(t, err)
	assert.Equal(t, "p(c)", out.String())
}

func TestSubstituteStopsUnderRebindingQuantifier(t *testing.T) {
	x := NewVariable("x")
	inner := NewPredicate("p", x)
	q := Quantified{Kind: Forall, Vars: []Variable{x}, Body: inner}

	out, err := Substitute(q, "x", NewConstant("c"))
	require.NoError(t, err)
	assert.Equal(t, q.String(), out.String())
}

func TestSubstituteRefusesCapture(t *testing.T) {
	x, y := NewVariable("x"), NewVariable("y")
	inner := NewPredicate("p", x, y)
	q := Quantified{Kind: Exists, Vars: []Variable{y}, Body: inner}

	_, err := Substitute(q, "x", y)
	assert.ErrorIs(t, err, ErrCapture)
}

func TestSubstituteProducesStructurallyIdenticalTree(t *testing.T) {
	x := NewVariable("x")
	c := NewConstant("c")
	f := NewPredicate("p", x, NewApply("f", x))

	out, err := Substitute(f, "x", c)
	require.NoError(t, err)

	want := NewPredicate("p", c, NewApply("f", c))
	if diff := cmp.Diff(Formula(want), out); diff != "" {
		t.Errorf("substitution result mismatch (-want +got):\n%s", diff)
	}
}

func TestClosureProducesStructurallyIdenticalTree(t *testing.T) {
	x, y := NewVariable("x"), NewVariable("y")
	body := NewPredicate("p", x, y)

	want := Quantified{Kind: Forall, Vars: []Variable{x, y}, Body: body}
	if diff := cmp.Diff(Formula(want), Closure(body)); diff != "" {
		t.Errorf("closure result mismatch (-want +got):\n%s", diff)
	}
}

func TestAndAllFoldsLeftAssociative(t *testing.T) {
	p := NewPredicate("p")
	q := NewPredicate("q")
	r := NewPredicate("r")

	out := AndAll([]Formula{p, q, r})
	assert.Equal(t, "((p & q) & r)", out.String())
}
