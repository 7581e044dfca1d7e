package translate

import (
	"strings"

	"vernac/internal/fol"
	"vernac/internal/stmt"
)

// MacroTable maps a normalized phrase (lower-case, whitespace-
// collapsed) to the replacement term introduced by a
// "Let <phrase> stand for <math>" sentence.
type MacroTable struct {
	entries map[string]fol.Term
}

// NewMacroTable constructs an empty macro table.
func NewMacroTable() *MacroTable {
	return &MacroTable{entries: make(map[string]fol.Term)}
}

func normalizePhrase(atoms []stmt.Atom) string {
	var words []string
	for _, a := range atoms {
		if a.Kind == stmt.Word {
			words = append(words, strings.ToLower(a.Text))
		}
	}
	return strings.Join(words, " ")
}

// Define registers phrase (given as its word atoms) as standing for term.
func (m *MacroTable) Define(phrase []stmt.Atom, term fol.Term) {
	m.entries[normalizePhrase(phrase)] = term
}

// Lookup returns the term a normalized phrase stands for, if any.
func (m *MacroTable) Lookup(phrase string) (fol.Term, bool) {
	t, ok := m.entries[strings.ToLower(strings.TrimSpace(phrase))]
	return t, ok
}

// Expand performs a greedy longest-match scan over atoms, replacing
// any stored phrase with a synthetic math atom carrying the
// replacement term. Matching is case-insensitive over runs of word
// atoms; math atoms can never participate in a macro phrase match.
func (m *MacroTable) Expand(atoms []stmt.Atom) []stmt.Atom {
	if len(m.entries) == 0 {
		return atoms
	}
	var out []stmt.Atom
	i := 0
	for i < len(atoms) {
		matched := false
		// Try longest phrase first: scan decreasing window lengths of
		// consecutive word atoms starting at i.
		maxLen := 0
		for j := i; j < len(atoms) && atoms[j].Kind == stmt.Word; j++ {
			maxLen = j - i + 1
		}
		for length := maxLen; length > 0; length-- {
			candidate := normalizePhrase(atoms[i : i+length])
			if candidate == "" {
				continue
			}
			if term, ok := m.entries[candidate]; ok {
				out = append(out, stmt.Atom{Kind: stmt.Math, Text: "$" + term.String() + "$"})
				i += length
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, atoms[i])
			i++
		}
	}
	return out
}

// SynonymTable maps a plural/variant noun form to its base form.
type SynonymTable struct {
	entries map[string]string
}

// NewSynonymTable constructs an empty synonym table.
func NewSynonymTable() *SynonymTable {
	return &SynonymTable{entries: make(map[string]string)}
}

// Register adds a variant -> base mapping.
func (s *SynonymTable) Register(base, variant string) {
	s.entries[strings.ToLower(variant)] = strings.ToLower(base)
}

// Base resolves word to its registered base form, or returns word
// lower-cased if it has none.
func (s *SynonymTable) Base(word string) string {
	if base, ok := s.entries[strings.ToLower(word)]; ok {
		return base
	}
	return strings.ToLower(word)
}
