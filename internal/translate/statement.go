package translate

import (
	"errors"

	"vernac/internal/fol"
	"vernac/internal/stmt"
)

// BlockTranslation is the result of translating a definition, axiom,
// lemma, or theorem block: the closed formula to add to the axiom
// list, and — for theorem blocks only — the unclosed working goal the
// dispatch engine will decompose.
type BlockTranslation struct {
	Axiom       fol.Formula
	Goal        fol.Formula // non-nil only when the block is a theorem
	Assumptions []fol.Formula
	Conclusions []fol.Formula
}

func beginsWithAny(s stmt.Sentence, words ...string) bool {
	if len(s.Atoms) == 0 {
		return false
	}
	return isWordAny(s.Atoms[0], words...)
}

// TranslateBlock implements §4.D: sentences are split into
// assumptions (those beginning with Let/Assume) and conclusions
// (everything else); the emitted formula is
// forall free-vars. (A1 & ... & Am) => (C1 & ... & Cn), or just the
// conjoined conclusions when there are no assumptions. A theorem
// block additionally surfaces its last, unclosed conclusion as the
// working goal. Sentences yielding ErrNoFormula are skipped; any other
// translation error is collected and returned alongside a best-effort
// result built from the sentences that did translate.
func (t *Translator) TranslateBlock(b stmt.Block) (*BlockTranslation, []error) {
	var assumptions, conclusions []fol.Formula
	var errs []error

	for _, child := range b.Children {
		sent, ok := child.(stmt.Sentence)
		if !ok {
			continue
		}
		f, err := t.Translate(sent.Atoms, false)
		if err != nil {
			if errors.Is(err, ErrNoFormula) {
				continue
			}
			errs = append(errs, err)
			continue
		}
		if beginsWithAny(sent, "Let", "Assume") {
			assumptions = append(assumptions, f)
		} else {
			conclusions = append(conclusions, f)
		}
	}

	if len(conclusions) == 0 {
		return nil, errs
	}

	var body fol.Formula
	if len(assumptions) > 0 {
		body = fol.Implies{Left: fol.AndAll(assumptions), Right: fol.AndAll(conclusions)}
	} else {
		body = fol.AndAll(conclusions)
	}

	result := &BlockTranslation{
		Axiom:       fol.Closure(body),
		Assumptions: assumptions,
		Conclusions: conclusions,
	}
	if b.Kind == stmt.Theorem {
		result.Goal = conclusions[len(conclusions)-1]
	}
	return result, errs
}
