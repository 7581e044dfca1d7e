package tptp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vernac/internal/fol"
)

func TestRenderDeterministicOrder(t *testing.T) {
	p := Problem{
		Axioms: []Named{
			{Name: "ax1", Formula: fol.Equal{Left: fol.NewConstant("a"), Right: fol.NewConstant("a")}},
			{Name: "ax2", Formula: fol.NewPredicate("p", fol.NewVariable("X"))},
		},
		Conjecture: Named{Name: "goal", Formula: fol.NewPredicate("q")},
	}
	want := "fof(ax1, axiom, a = a).\n" +
		"fof(ax2, axiom, p(X)).\n" +
		"fof(goal, conjecture, q).\n"
	assert.Equal(t, want, p.Render())
}

func TestRenderQuotesNonConformingClauseNames(t *testing.T) {
	p := Problem{
		Axioms: []Named{
			{Name: "Cantor", Formula: fol.NewPredicate("p")},
		},
		Conjecture: Named{Name: "goal_1", Formula: fol.NewPredicate("q")},
	}
	want := "fof('Cantor', axiom, p).\n" +
		"fof(goal_1, conjecture, q).\n"
	assert.Equal(t, want, p.Render())
}

func TestRenderIsDeterministicAcrossCalls(t *testing.T) {
	p := Problem{
		Conjecture: Named{Name: "goal", Formula: fol.Equal{Left: fol.NewConstant("1"), Right: fol.NewConstant("1")}},
	}
	assert.Equal(t, p.Render(), p.Render())
}
