package docloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vernac/internal/stmt"
)

func TestParseAxiomBlock(t *testing.T) {
	nodes := Parse("Axiom:\nEvery set is finite.\n")
	require.Len(t, nodes, 1)
	block, ok := nodes[0].(stmt.Block)
	require.True(t, ok)
	assert.Equal(t, stmt.Axiom, block.Kind)
	require.Len(t, block.Children, 1)
	sent := block.Children[0].(stmt.Sentence)
	assert.Equal(t, "Every set is finite.", sent.Text)
}

func TestParseTheoremNestsFollowingProof(t *testing.T) {
	doc := "Theorem: t1\nLet x be a set. x is finite.\n\nProof:\nx is finite.\n"
	nodes := Parse(doc)
	require.Len(t, nodes, 1)
	theorem := nodes[0].(stmt.Block)
	assert.Equal(t, stmt.Theorem, theorem.Kind)
	require.Len(t, theorem.Children, 3) // 2 sentences + nested proof block
	proof, ok := theorem.Children[2].(stmt.Block)
	require.True(t, ok)
	assert.Equal(t, stmt.Proof, proof.Kind)
	require.Len(t, proof.Children, 1)
}

func TestParseDirective(t *testing.T) {
	nodes := Parse("!read foo.v\n")
	require.Len(t, nodes, 1)
	d, ok := nodes[0].(stmt.Directive)
	require.True(t, ok)
	assert.Equal(t, "read", d.Name)
	assert.Equal(t, []string{"foo.v"}, d.Args)
}

func TestTokenizeKeepsMathSegmentIntact(t *testing.T) {
	atoms := tokenizeAtoms("the board has $B$ covering.")
	var gotMath bool
	for _, a := range atoms {
		if a.Kind == stmt.Math {
			gotMath = true
			assert.Equal(t, "$B$", a.Text)
		}
	}
	assert.True(t, gotMath)
}

func TestSplitSentencesIgnoresPeriodInsideMath(t *testing.T) {
	sentences := splitSentences("Let $f: A \\to B$ be given. It is injective.")
	require.Len(t, sentences, 2)
}
