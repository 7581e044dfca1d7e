package engine

import "vernac/internal/fol"

// NamedFormula pairs an identifier with a formula — the shape shared
// by axiom entries and theorem/proof-context entries (§3).
type NamedFormula struct {
	Name    string
	Formula fol.Formula
}

// proofScope is the proof-context scope stack (§3's "Proof-scope
// frame"): an ordered list of local assumptions, with Case/End
// modeled as push/pop of a copy of the current top frame so that
// sibling cases never see each other's assumptions.
type proofScope struct {
	stack [][]fol.Formula
}

func newProofScope(initial []fol.Formula) *proofScope {
	base := append([]fol.Formula(nil), initial...)
	return &proofScope{stack: [][]fol.Formula{base}}
}

func (s *proofScope) top() []fol.Formula {
	return s.stack[len(s.stack)-1]
}

func (s *proofScope) append(f fol.Formula) {
	last := len(s.stack) - 1
	s.stack[last] = append(s.stack[last], f)
}

// push enters a Case: the new frame starts as a copy of the current
// top, so it diverges independently from here on.
func (s *proofScope) push() {
	copied := append([]fol.Formula(nil), s.top()...)
	s.stack = append(s.stack, copied)
}

// pop exits a Case via End, discarding everything assumed inside it.
func (s *proofScope) pop() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}
