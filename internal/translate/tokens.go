// Package translate implements the sentence translator (§4.C) and the
// statement translator (§4.D): pattern-directed rewriting of
// controlled-language sentences into FOL formulas, macro/synonym
// tables, colon-map and set-comprehension expansion, and universal
// closure; and the block-level assembly of those formulas into axioms
// and theorem goals.
package translate

import (
	"strings"

	"vernac/internal/exprparse"
	"vernac/internal/fol"
	"vernac/internal/stmt"
)

// connectors are words stripped when joining a noun phrase's words
// into a predicate name.
var connectors = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "to": true, "from": true, "with": true,
}

func isWord(a stmt.Atom, w string) bool {
	return a.Kind == stmt.Word && strings.EqualFold(a.Text, w)
}

func isWordAny(a stmt.Atom, words ...string) bool {
	for _, w := range words {
		if isWord(a, w) {
			return true
		}
	}
	return false
}

// stripDelims removes the outer math delimiters ($...$ or \[...\])
// from a math atom's text, returning the bare expression source the
// expression parser expects.
func stripDelims(text string) string {
	t := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(t, "$$") && strings.HasSuffix(t, "$$") && len(t) >= 4:
		return strings.TrimSpace(t[2 : len(t)-2])
	case strings.HasPrefix(t, "$") && strings.HasSuffix(t, "$") && len(t) >= 2:
		return strings.TrimSpace(t[1 : len(t)-1])
	case strings.HasPrefix(t, `\[`) && strings.HasSuffix(t, `\]`):
		return strings.TrimSpace(t[2 : len(t)-2])
	}
	return t
}

// parseMathAtom parses a math atom's contents, preferring a formula
// reading when the segment parses as a relation.
func parseMathAtom(a stmt.Atom) (fol.Term, fol.Formula, error) {
	return exprparse.Parse(stripDelims(a.Text))
}

// splitOnWord finds the first top-level occurrence of word among the
// Word atoms of atoms (math atoms never match) and splits around it.
func splitOnWord(atoms []stmt.Atom, word string) (left, right []stmt.Atom, found bool) {
	for i, a := range atoms {
		if isWord(a, word) {
			return atoms[:i], atoms[i+1:], true
		}
	}
	return nil, nil, false
}

// trimTrailingCosmetic drops a trailing period and a trailing
// parenthetical citation (a math/word run starting with "(" and
// ending with ")").
func trimTrailingCosmetic(atoms []stmt.Atom) []stmt.Atom {
	out := atoms
	for len(out) > 0 {
		last := out[len(out)-1]
		if last.Kind == stmt.Word && (last.Text == "." || last.Text == ",") {
			out = out[:len(out)-1]
			continue
		}
		if last.Kind == stmt.Word && strings.HasPrefix(last.Text, "(") && strings.HasSuffix(last.Text, ")") {
			out = out[:len(out)-1]
			continue
		}
		break
	}
	return out
}

// joinWords renders a run of word atoms into a single underscore-
// joined identifier, dropping connector words and lower-casing.
func joinWords(atoms []stmt.Atom) string {
	var parts []string
	for _, a := range atoms {
		if a.Kind != stmt.Word {
			continue
		}
		w := strings.ToLower(a.Text)
		if connectors[w] || w == "" {
			continue
		}
		parts = append(parts, w)
	}
	return strings.Join(parts, "_")
}

// mathArgs returns the terms carried by any math atoms within atoms,
// in order, to be appended as extra predicate arguments (per rule 8's
// "carrying math atoms as extra arguments").
func mathArgs(atoms []stmt.Atom) ([]fol.Term, error) {
	var out []fol.Term
	for _, a := range atoms {
		if a.Kind != stmt.Math {
			continue
		}
		term, formula, err := parseMathAtom(a)
		if err != nil {
			continue
		}
		if term != nil {
			out = append(out, term)
		} else if formula != nil {
			// A math atom that parsed to a relation contributes nothing
			// as a term argument; skip it.
			continue
		}
	}
	return out, nil
}

func allWords(atoms []stmt.Atom, text string) bool {
	t := strings.Fields(strings.ToLower(text))
	if len(atoms) < len(t) {
		return false
	}
	for i, w := range t {
		if !isWord(atoms[i], w) {
			return false
		}
	}
	return true
}

// stripPrefixWords removes a literal, case-insensitive sequence of
// leading words from atoms if present.
func stripPrefixWords(atoms []stmt.Atom, text string) ([]stmt.Atom, bool) {
	if allWords(atoms, text) {
		n := len(strings.Fields(text))
		return atoms[n:], true
	}
	return atoms, false
}
