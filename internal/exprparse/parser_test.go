package exprparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleVariable(t *testing.T) {
	term, formula, err := Parse("X")
	require.NoError(t, err)
	require.Nil(t, formula)
	assert.Equal(t, "X", term.String())
}

func TestParseSingleConstant(t *testing.T) {
	term, formula, err := Parse("a")
	require.NoError(t, err)
	require.Nil(t, formula)
	assert.Equal(t, "a", term.String())
}

func TestParseChainedRelationsDesugar(t *testing.T) {
	_, formula, err := Parse("a < b < c")
	require.NoError(t, err)
	require.NotNil(t, formula)
	assert.Equal(t, "(less(a,b) & less(b,c))", formula.String())
}

func TestParseEquality(t *testing.T) {
	_, formula, err := Parse("X = a")
	require.NoError(t, err)
	assert.Equal(t, "X = a", formula.String())
}

func TestParseSetOperators(t *testing.T) {
	term, _, err := Parse(`A \cup B`)
	require.NoError(t, err)
	assert.Equal(t, "cup(A,B)", term.String())
}

func TestParseFunctionApplication(t *testing.T) {
	term, _, err := Parse("f(X, a)")
	require.NoError(t, err)
	assert.Equal(t, "f(X,a)", term.String())
}

func TestParseSubscript(t *testing.T) {
	term, _, err := Parse("A_1")
	require.NoError(t, err)
	assert.Equal(t, "subscript(A,'1')", term.String())
}

func TestParseTupleAndPair(t *testing.T) {
	term, _, err := Parse("(X, Y)")
	require.NoError(t, err)
	assert.Equal(t, "pair(X,Y)", term.String())

	term3, _, err := Parse("(X, Y, a)")
	require.NoError(t, err)
	assert.Equal(t, "tuple(X,Y,a)", term3.String())
}

func TestParseSetEnumAndSingleton(t *testing.T) {
	term, _, err := Parse("{a}")
	require.NoError(t, err)
	assert.Equal(t, "singleton(a)", term.String())

	term2, _, err := Parse("{a, b}")
	require.NoError(t, err)
	assert.Equal(t, "set_enum(a,b)", term2.String())

	empty, _, err := Parse("{}")
	require.NoError(t, err)
	assert.Equal(t, "empty_set", empty.String())
}

func TestParseSetComprehensionSentinel(t *testing.T) {
	term, _, err := Parse("{X | X is prime}")
	require.NoError(t, err)
	assert.Equal(t, "set_comp(X,'x is prime')", term.String())
}

func TestParseImplicationAndIff(t *testing.T) {
	_, formula, err := Parse(`X = a \implies X = a`)
	require.NoError(t, err)
	assert.Equal(t, "(X = a => X = a)", formula.String())

	_, iffFormula, err := Parse(`X = a \iff X = a`)
	require.NoError(t, err)
	assert.Equal(t, "(X = a <=> X = a)", iffFormula.String())
}

func TestParseImplicationWithBareTermOperandErrorsInsteadOfPanicking(t *testing.T) {
	_, _, err := Parse(`A \implies X = a`)
	require.Error(t, err)

	_, _, err = Parse(`X = a \implies B`)
	require.Error(t, err)

	_, _, err = Parse(`A \iff B`)
	require.Error(t, err)
}

func TestParseArrowTerm(t *testing.T) {
	term, _, err := Parse(`A \to B`)
	require.NoError(t, err)
	assert.Equal(t, "to(A,B)", term.String())
}

func TestParseInRelation(t *testing.T) {
	_, formula, err := Parse(`X \in A`)
	require.NoError(t, err)
	assert.Equal(t, "in(X,A)", formula.String())
}
