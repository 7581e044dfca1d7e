package translate

import (
	"errors"
	"fmt"
	"strings"

	"vernac/internal/fol"
	"vernac/internal/stmt"
)

// ErrNoFormula marks a sentence that intentionally yields no formula
// (macro capture, structural terminators like End/qed). Not an error
// condition; callers should simply skip the sentence.
var ErrNoFormula = errors.New("translate: sentence yields no formula")

// ErrUntranslatable marks a non-structural sentence for which no
// cascade rule matched.
var ErrUntranslatable = errors.New("translate: no pattern matched sentence")

// ContraryPredicate and FalsePredicate name the sentinel predicates
// emitted by "Assume the contrary." and "Contradiction."/"contradiction.".
const (
	ContraryPredicate = "contrary"
	FalsePredicate    = "false"
)

// IsContrary reports whether f is the contrary() sentinel.
func IsContrary(f fol.Formula) bool {
	p, ok := f.(fol.Predicate)
	return ok && p.Name == ContraryPredicate && len(p.Args) == 0
}

// IsFalseSentinel reports whether f is the false() sentinel.
func IsFalseSentinel(f fol.Formula) bool {
	p, ok := f.(fol.Predicate)
	return ok && p.Name == FalsePredicate && len(p.Args) == 0
}

// Translator holds the mutable macro/synonym state shared across all
// sentences of a run and implements the §4.C cascade.
type Translator struct {
	Macros      *MacroTable
	Synonyms    *SynonymTable
	freshIdx    int
}

// NewTranslator constructs a Translator with empty macro/synonym tables.
func NewTranslator() *Translator {
	return &Translator{Macros: NewMacroTable(), Synonyms: NewSynonymTable()}
}

func (t *Translator) freshName(prefix string) string {
	t.freshIdx++
	return fmt.Sprintf("%s_%d", prefix, t.freshIdx)
}

// Translate runs the sentence atoms through the pattern cascade. It
// returns (nil, ErrNoFormula) for sentences that intentionally carry
// no logical content, (nil, ErrUntranslatable) when no rule matches a
// non-structural sentence, and the colon-expanded, optionally closed
// formula otherwise.
func (t *Translator) Translate(atoms []stmt.Atom, asAxiom bool) (fol.Formula, error) {
	f, err := t.cascade(atoms)
	if err != nil {
		return nil, err
	}
	f = expandColonMaps(f)
	if asAxiom {
		f = fol.Closure(f)
	}
	return f, nil
}

// cascade tries each rule in priority order; the first match wins.
func (t *Translator) cascade(atoms []stmt.Atom) (fol.Formula, error) {
	// Rule 1: macro capture.
	if f, matched, err := t.ruleMacroCapture(atoms); matched {
		return f, err
	}

	// Rule 2: macro expansion (applies to every subsequent rule).
	atoms = t.Macros.Expand(atoms)

	// Rule 3: terminal cleanup.
	atoms = trimTrailingCosmetic(atoms)

	if len(atoms) == 0 {
		return nil, ErrNoFormula
	}

	// A sentence that is a single math segment parsing to a formula
	// stands for that formula.
	if len(atoms) == 1 && atoms[0].Kind == stmt.Math {
		if _, f, err := parseMathAtom(atoms[0]); err == nil && f != nil {
			return f, nil
		}
	}

	type rule func([]stmt.Atom) (fol.Formula, bool, error)
	rules := []rule{
		t.ruleLetUsShow,          // 4
		t.ruleBiconditionalSplit, // 5
		t.ruleConjunctionSplit,   // 6
		t.ruleConditionalSplit,   // 7
		t.ruleEveryIs,            // 8
		t.ruleIndefiniteDef,      // 9
		t.ruleTrailingQuantifier, // 10
		t.rulePrefixStrip,        // 11
		t.ruleLetBeA,             // 12
		t.ruleIsA,                // 13
		t.ruleForAll,             // 14
		t.ruleTakeConsider,       // 15
		t.ruleDefine,             // 16
		t.ruleStructuralTerminator, // 17
	}
	for _, r := range rules {
		if f, matched, err := r(atoms); matched {
			return f, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUntranslatable, joinText(atoms))
}

func joinText(atoms []stmt.Atom) string {
	var parts []string
	for _, a := range atoms {
		parts = append(parts, a.Text)
	}
	return strings.Join(parts, " ")
}

// Rule 1: "Let <phrase> stand for <math>."
func (t *Translator) ruleMacroCapture(atoms []stmt.Atom) (fol.Formula, bool, error) {
	rest, ok := stripPrefixWords(atoms, "Let")
	if !ok {
		return nil, false, nil
	}
	phrase, after, found := splitOnWord(rest, "stand")
	if !found {
		return nil, false, nil
	}
	after, ok = stripPrefixWords(after, "for")
	if !ok {
		return nil, false, nil
	}
	after = trimTrailingCosmetic(after)
	if len(after) != 1 || after[0].Kind != stmt.Math {
		return nil, false, nil
	}
	term, _, err := parseMathAtom(after[0])
	if err != nil || term == nil {
		return nil, false, nil
	}
	t.Macros.Define(phrase, term)
	return nil, true, ErrNoFormula
}

// Rule 4: "Let us show that <remainder>" recurses on the remainder.
func (t *Translator) ruleLetUsShow(atoms []stmt.Atom) (fol.Formula, bool, error) {
	rest, ok := stripPrefixWords(atoms, "Let us show that")
	if !ok {
		return nil, false, nil
	}
	f, err := t.cascade(rest)
	return f, true, err
}

// Rule 5: biconditional split on a top-level "iff".
func (t *Translator) ruleBiconditionalSplit(atoms []stmt.Atom) (fol.Formula, bool, error) {
	left, right, found := splitOnWord(atoms, "iff")
	if !found {
		return nil, false, nil
	}
	lf, err := t.cascade(left)
	if err != nil {
		return nil, false, nil
	}
	rf, err := t.cascade(right)
	if err != nil {
		return nil, false, nil
	}
	return fol.Iff{Left: lf, Right: rf}, true, nil
}

// Rule 6: conjunction split on a top-level "and" where both halves
// independently translate; first working split wins (guards against
// breaking a noun phrase "A and B").
func (t *Translator) ruleConjunctionSplit(atoms []stmt.Atom) (fol.Formula, bool, error) {
	for i, a := range atoms {
		if !isWord(a, "and") {
			continue
		}
		left, right := atoms[:i], atoms[i+1:]
		if len(left) == 0 || len(right) == 0 {
			continue
		}
		lf, lerr := t.cascade(left)
		if lerr != nil {
			continue
		}
		rf, rerr := t.cascade(right)
		if rerr != nil {
			continue
		}
		return fol.And{Left: lf, Right: rf}, true, nil
	}
	return nil, false, nil
}

// Rule 7: "If <P> then <Q>".
func (t *Translator) ruleConditionalSplit(atoms []stmt.Atom) (fol.Formula, bool, error) {
	rest, ok := stripPrefixWords(atoms, "If")
	if !ok {
		return nil, false, nil
	}
	left, right, found := splitOnWord(rest, "then")
	if !found {
		return nil, false, nil
	}
	lf, err := t.cascade(left)
	if err != nil {
		return nil, false, nil
	}
	rf, err := t.cascade(right)
	if err != nil {
		return nil, false, nil
	}
	return fol.Implies{Left: lf, Right: rf}, true, nil
}

// Rule 8: "Every/every <NP> is …" → forall x. NP(x) -> Pred(x).
func (t *Translator) ruleEveryIs(atoms []stmt.Atom) (fol.Formula, bool, error) {
	rest, ok := stripPrefixWords(atoms, "Every")
	if !ok {
		return nil, false, nil
	}
	np, pred, found := splitOnWord(rest, "is")
	if !found || len(np) == 0 {
		return nil, false, nil
	}
	x := fol.NewVariable("X")
	npName := joinWords(np)
	if npName == "" {
		return nil, false, nil
	}
	args, _ := mathArgs(pred)
	predName := joinWords(pred)
	predArgs := append([]fol.Term{x}, args...)
	body := fol.Implies{
		Left:  fol.NewPredicate(npName, x),
		Right: fol.NewPredicate(predName, predArgs...),
	}
	return fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{x}, Body: body}, true, nil
}

// Rule 9: "A/An <NP> is …" with an explicit math variable in the body
// defines the new predicate via a biconditional.
func (t *Translator) ruleIndefiniteDef(atoms []stmt.Atom) (fol.Formula, bool, error) {
	rest, ok := stripPrefixWords(atoms, "A")
	if !ok {
		rest, ok = stripPrefixWords(atoms, "An")
	}
	if !ok {
		return nil, false, nil
	}
	np, body, found := splitOnWord(rest, "is")
	if !found || len(np) == 0 {
		return nil, false, nil
	}
	hasMath := false
	for _, a := range body {
		if a.Kind == stmt.Math {
			hasMath = true
			break
		}
	}
	if !hasMath {
		return nil, false, nil
	}
	npName := joinWords(np)
	if npName == "" {
		return nil, false, nil
	}
	x := fol.NewVariable("X")
	args, _ := mathArgs(body)
	predName := joinWords(body)
	bodyArgs := append([]fol.Term{x}, args...)
	return fol.Iff{
		Left:  fol.NewPredicate(npName, x),
		Right: fol.NewPredicate(predName, bodyArgs...),
	}, true, nil
}

// Rule 10: trailing quantifiers — "… for all <vars> [in <domain>]" and
// "… for some <NP> <vars>".
func (t *Translator) ruleTrailingQuantifier(atoms []stmt.Atom) (fol.Formula, bool, error) {
	if head, tail, found := splitOnWord(atoms, "for"); found {
		if len(tail) > 0 && isWord(tail[0], "all") {
			return t.buildTrailingQuant(head, tail[1:], fol.Forall)
		}
		if len(tail) > 0 && isWord(tail[0], "some") {
			return t.buildTrailingQuant(head, tail[1:], fol.Exists)
		}
	}
	return nil, false, nil
}

func (t *Translator) buildTrailingQuant(head, rest []stmt.Atom, kind fol.Quant) (fol.Formula, bool, error) {
	if len(head) == 0 {
		return nil, false, nil
	}
	headFormula, err := t.cascade(head)
	if err != nil {
		return nil, false, nil
	}
	vars := []fol.Variable{}
	domain := fol.Term(nil)
	np, inRest, hasIn := splitOnWord(rest, "in")
	varSource := rest
	if hasIn {
		varSource = np
		if len(inRest) > 0 {
			term, _, err := func() (fol.Term, fol.Formula, error) {
				for _, a := range inRest {
					if a.Kind == stmt.Math {
						return parseMathAtom(a)
					}
				}
				return nil, nil, fmt.Errorf("no domain")
			}()
			if err == nil {
				domain = term
			}
		}
	}
	for _, a := range varSource {
		if a.Kind == stmt.Math {
			term, _, err := parseMathAtom(a)
			if err == nil {
				if v, ok := term.(fol.Variable); ok {
					vars = append(vars, v)
				}
			}
		}
	}
	if len(vars) == 0 {
		return nil, false, nil
	}
	body := headFormula
	if domain != nil {
		restrict := fol.NewPredicate("in", vars[len(vars)-1], domain)
		if kind == fol.Forall {
			body = fol.Implies{Left: restrict, Right: body}
		} else {
			body = fol.And{Left: restrict, Right: body}
		}
	}
	return fol.Quantified{Kind: kind, Vars: vars, Body: body}, true, nil
}

// Rule 11: prefix stripping; "Assume the contrary" emits contrary().
func (t *Translator) rulePrefixStrip(atoms []stmt.Atom) (fol.Formula, bool, error) {
	if rest, ok := stripPrefixWords(atoms, "Assume the contrary"); ok {
		_ = rest
		return fol.NewPredicate(ContraryPredicate), true, nil
	}
	prefixes := []string{"Assume", "Then", "Thus", "Therefore", "Hence", "Indeed", "Case"}
	for _, p := range prefixes {
		if rest, ok := stripPrefixWords(atoms, p); ok {
			f, err := t.cascade(rest)
			return f, true, err
		}
	}
	return nil, false, nil
}

// Rule 12: "Let x be a/an N", supporting comma-separated variables in
// a single math segment and "element of D"/"subset of D"/"subclass of D".
func (t *Translator) ruleLetBeA(atoms []stmt.Atom) (fol.Formula, bool, error) {
	rest, ok := stripPrefixWords(atoms, "Let")
	if !ok {
		return nil, false, nil
	}
	varsPart, tail, found := splitOnWord(rest, "be")
	if !found || len(varsPart) == 0 {
		return nil, false, nil
	}
	var vars []fol.Term
	for _, a := range varsPart {
		if a.Kind != stmt.Math {
			continue
		}
		inner := stripDelims(a.Text)
		for _, piece := range strings.Split(inner, ",") {
			term, _, err := parseMathAtom(stmt.Atom{Kind: stmt.Math, Text: "$" + strings.TrimSpace(piece) + "$"})
			if err == nil && term != nil {
				vars = append(vars, term)
			}
		}
	}
	if len(vars) == 0 {
		return nil, false, nil
	}
	tail, _ = stripPrefixWords(tail, "a")
	tail, _ = stripPrefixWords(tail, "an")

	predName, domainTerm, ok := elementOfForm(tail)
	if !ok {
		predName = joinWords(tail)
	}
	if predName == "" {
		return nil, false, nil
	}
	var conjuncts []fol.Formula
	for _, v := range vars {
		if domainTerm != nil {
			conjuncts = append(conjuncts, fol.NewPredicate(predName, v, domainTerm))
		} else {
			conjuncts = append(conjuncts, fol.NewPredicate(predName, v))
		}
	}
	return fol.AndAll(conjuncts), true, nil
}

// elementOfForm recognizes the "element of D" / "subset of D" /
// "subclass of D" tail shapes, returning a canonical predicate name
// and the domain term.
func elementOfForm(tail []stmt.Atom) (string, fol.Term, bool) {
	names := map[string]string{"element": "in", "subset": "subset", "subclass": "subclass"}
	if len(tail) == 0 || tail[0].Kind != stmt.Word {
		return "", nil, false
	}
	canon, known := names[strings.ToLower(tail[0].Text)]
	if !known {
		return "", nil, false
	}
	rest, ok := stripPrefixWords(tail[1:], "of")
	if !ok {
		return "", nil, false
	}
	for _, a := range rest {
		if a.Kind == stmt.Math {
			term, _, err := parseMathAtom(a)
			if err == nil {
				return canon, term, true
			}
		}
	}
	return "", nil, false
}

// Rule 13: "T is [not] a/an N [of/to/with/from D]".
func (t *Translator) ruleIsA(atoms []stmt.Atom) (fol.Formula, bool, error) {
	subjectAtoms, tail, found := splitOnWord(atoms, "is")
	if !found || len(subjectAtoms) == 0 {
		return nil, false, nil
	}
	subjectTerm, _, err := firstMathTerm(subjectAtoms)
	if err != nil || subjectTerm == nil {
		return nil, false, nil
	}
	negated := false
	if len(tail) > 0 && isWord(tail[0], "not") {
		negated = true
		tail = tail[1:]
	}
	tail, _ = stripPrefixWords(tail, "a")
	tail, _ = stripPrefixWords(tail, "an")
	if predName, domainTerm, ok := elementOfForm(tail); ok {
		atom := fol.Formula(fol.NewPredicate(predName, subjectTerm, domainTerm))
		if negated {
			atom = fol.Not{Body: atom}
		}
		return atom, true, nil
	}
	var nounWords, objWords []stmt.Atom
	splitPoint := len(tail)
	for i, a := range tail {
		if isWordAny(a, "of", "to", "with", "from") {
			splitPoint = i
			break
		}
	}
	nounWords = tail[:splitPoint]
	if splitPoint < len(tail) {
		objWords = tail[splitPoint+1:]
	}
	predName := t.Synonyms.Base(joinWords(nounWords))
	if predName == "" {
		return nil, false, nil
	}
	args := []fol.Term{subjectTerm}
	if len(objWords) > 0 {
		objTerm, _, err := firstMathTerm(objWords)
		if err == nil && objTerm != nil {
			args = append(args, objTerm)
		}
	}
	var atom fol.Formula = fol.NewPredicate(predName, args...)
	if negated {
		atom = fol.Not{Body: atom}
	}
	return atom, true, nil
}

func firstMathTerm(atoms []stmt.Atom) (fol.Term, fol.Formula, error) {
	for _, a := range atoms {
		if a.Kind == stmt.Math {
			return parseMathAtom(a)
		}
	}
	return nil, nil, fmt.Errorf("no math segment found")
}

// Rule 14: "For all/every" — one nested forall per variable-domain
// pair, body from a trailing math formula, "we have <F>", or an "is"
// clause.
func (t *Translator) ruleForAll(atoms []stmt.Atom) (fol.Formula, bool, error) {
	rest, ok := stripPrefixWords(atoms, "For all")
	if !ok {
		rest, ok = stripPrefixWords(atoms, "For every")
	}
	if !ok {
		return nil, false, nil
	}
	weHaveIdx := -1
	for i := range rest {
		if allWords(rest[i:], "we have") {
			weHaveIdx = i
			break
		}
	}
	var varsSection, bodySection []stmt.Atom
	if weHaveIdx >= 0 {
		varsSection = rest[:weHaveIdx]
		bodySection = rest[weHaveIdx+2:]
	} else if np, after, found := splitOnWord(rest, "is"); found {
		varsSection = np
		bodySection = after
	} else {
		varsSection = rest
	}

	var pairs []struct {
		v fol.Variable
		d fol.Term
	}
	for i := 0; i < len(varsSection); i++ {
		a := varsSection[i]
		if a.Kind != stmt.Math {
			continue
		}
		term, _, err := parseMathAtom(a)
		if err != nil {
			continue
		}
		v, ok := term.(fol.Variable)
		if !ok {
			continue
		}
		var domain fol.Term
		if i+2 < len(varsSection) && isWord(varsSection[i+1], "in") && varsSection[i+2].Kind == stmt.Math {
			domain, _, _ = parseMathAtom(varsSection[i+2])
			i += 2
		}
		pairs = append(pairs, struct {
			v fol.Variable
			d fol.Term
		}{v, domain})
	}
	if len(pairs) == 0 {
		return nil, false, nil
	}

	var body fol.Formula
	if weHaveIdx >= 0 {
		f, err := t.cascade(bodySection)
		if err != nil {
			return nil, false, nil
		}
		body = f
	} else if bodySection != nil {
		predName := joinWords(bodySection)
		args, _ := mathArgs(bodySection)
		if predName == "" {
			return nil, false, nil
		}
		body = fol.NewPredicate(predName, append([]fol.Term{pairs[len(pairs)-1].v}, args...)...)
	} else {
		return nil, false, nil
	}

	out := body
	for i := len(pairs) - 1; i >= 0; i-- {
		p := pairs[i]
		b := out
		if p.d != nil {
			b = fol.Implies{Left: fol.NewPredicate("in", p.v, p.d), Right: b}
		}
		out = fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{p.v}, Body: b}
	}
	return out, true, nil
}

// Rule 15: "Take …" / "Consider …" introduces fresh witnesses with
// their typing predicates and an optional "such that" side-condition,
// all conjoined.
func (t *Translator) ruleTakeConsider(atoms []stmt.Atom) (fol.Formula, bool, error) {
	rest, ok := stripPrefixWords(atoms, "Take")
	if !ok {
		rest, ok = stripPrefixWords(atoms, "Consider")
	}
	if !ok {
		return nil, false, nil
	}
	typing, sideCond, hasSuchThat := func() ([]stmt.Atom, []stmt.Atom, bool) {
		for i := 0; i < len(rest)-1; i++ {
			if isWord(rest[i], "such") && isWord(rest[i+1], "that") {
				return rest[:i], rest[i+2:], true
			}
		}
		return rest, nil, false
	}()

	var conjuncts []fol.Formula
	for _, a := range typing {
		if a.Kind != stmt.Math {
			continue
		}
		term, _, err := parseMathAtom(a)
		if err != nil || term == nil {
			continue
		}
		witness := term
		if v, isVar := term.(fol.Variable); isVar {
			witness = fol.NewConstant(t.freshName(strings.ToLower(v.Name)))
		}
		predName, domain, ok := elementOfForm(typing)
		if ok {
			conjuncts = append(conjuncts, fol.NewPredicate(predName, witness, domain))
		}
	}
	if len(conjuncts) == 0 {
		return nil, false, nil
	}
	if hasSuchThat {
		f, err := t.cascade(sideCond)
		if err == nil {
			conjuncts = append(conjuncts, f)
		}
	}
	return fol.AndAll(conjuncts), true, nil
}

// Rule 16: "Define …" — equation, set-comprehension definition, or a
// forall-guarded equation qualified by "for <v> in <D>".
func (t *Translator) ruleDefine(atoms []stmt.Atom) (fol.Formula, bool, error) {
	rest, ok := stripPrefixWords(atoms, "Define")
	if !ok {
		return nil, false, nil
	}
	forSection, qualifier, hasFor := func() ([]stmt.Atom, []stmt.Atom, bool) {
		left, right, found := splitOnWord(rest, "for")
		return left, right, found
	}()
	defSection := rest
	if hasFor {
		defSection = forSection
	}

	var lhs, rhs fol.Term
	for _, a := range defSection {
		if a.Kind != stmt.Math {
			continue
		}
		term, formula, err := parseMathAtom(a)
		if err != nil {
			continue
		}
		if eq, isEq := formula.(fol.Equal); isEq {
			lhs, rhs = eq.Left, eq.Right
			break
		}
		if term != nil {
			if lhs == nil {
				lhs = term
			} else {
				rhs = term
			}
		}
	}
	if lhs == nil || rhs == nil {
		return nil, false, nil
	}

	if apply, isApply := rhs.(fol.Apply); isApply && apply.Name == fol.FnSetComp && len(apply.Args) == 2 {
		return t.expandSetComp(lhs, apply)
	}

	eq := fol.Formula(fol.Equal{Left: lhs, Right: rhs})
	if !hasFor {
		return eq, true, nil
	}
	np, inRest, found := splitOnWord(qualifier, "in")
	if !found {
		return eq, true, nil
	}
	var v fol.Variable
	for _, a := range np {
		if a.Kind == stmt.Math {
			if term, _, err := parseMathAtom(a); err == nil {
				if vv, ok := term.(fol.Variable); ok {
					v = vv
				}
			}
		}
	}
	var domain fol.Term
	for _, a := range inRest {
		if a.Kind == stmt.Math {
			domain, _, _ = parseMathAtom(a)
			break
		}
	}
	if v.Name == "" || domain == nil {
		return eq, true, nil
	}
	guarded := fol.Implies{Left: fol.NewPredicate("in", v, domain), Right: eq}
	return fol.Quantified{Kind: fol.Forall, Vars: []fol.Variable{v}, Body: guarded}, true, nil
}

// Rule 17: structural terminators.
func (t *Translator) ruleStructuralTerminator(atoms []stmt.Atom) (fol.Formula, bool, error) {
	if allWords(atoms, "Contradiction") || allWords(atoms, "contradiction") {
		return fol.NewPredicate(FalsePredicate), true, nil
	}
	if allWords(atoms, "End") || allWords(atoms, "qed") {
		return nil, true, ErrNoFormula
	}
	return nil, false, nil
}
