// Package docloader is a minimal stand-in for the out-of-scope outer
// document preprocessor and block-level lexer/parser (§1): the real
// markup extraction and controlled-language parsing are external
// collaborators this core never implements. This package exists only
// so `cmd/vernac` has something concrete to hand the engine's
// Loader seam — a small, line-oriented convenience format, not a
// reimplementation of the vernacular grammar those collaborators own.
//
// Format: blocks start with a line "Kind: label" or "Kind." where Kind
// is one of Axiom/Definition/Lemma/Theorem/Proof/Other (case
// insensitive) and run until a blank line. A Proof block immediately
// following a Theorem block nests inside it. Lines starting with "!"
// are directives ("!read foo.v"). Sentences within a block are split
// on ". "; math segments are the runs between matching "$" delimiters.
package docloader

import (
	"fmt"
	"os"
	"strings"

	"vernac/internal/stmt"
)

// Loader implements engine.Loader by reading a file from disk and
// parsing it with Parse.
type Loader struct{}

// New constructs a Loader.
func New() *Loader { return &Loader{} }

func (Loader) Load(path string) ([]stmt.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docloader: reading %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

var kindByName = map[string]stmt.BlockKind{
	"axiom":      stmt.Axiom,
	"definition": stmt.Definition,
	"lemma":      stmt.Lemma,
	"theorem":    stmt.Theorem,
	"proof":      stmt.Proof,
	"other":      stmt.Other,
}

// Parse converts raw document text into a top-level statement stream.
func Parse(content string) []stmt.Node {
	lines := strings.Split(content, "\n")

	var nodes []stmt.Node
	var curKind stmt.BlockKind
	var curLabel string
	var curLines []string
	inBlock := false

	flush := func() {
		if !inBlock {
			return
		}
		block := stmt.NewBlock(curKind, curLabel, paragraphSentences(curLines)...)
		if curKind == stmt.Theorem {
			nodes = append(nodes, block)
		} else if len(nodes) > 0 {
			if prevTheorem, ok := nodes[len(nodes)-1].(stmt.Block); ok && prevTheorem.Kind == stmt.Theorem && curKind == stmt.Proof {
				prevTheorem.Children = append(prevTheorem.Children, block)
				nodes[len(nodes)-1] = prevTheorem
			} else {
				nodes = append(nodes, block)
			}
		} else {
			nodes = append(nodes, block)
		}
		curLines = nil
		inBlock = false
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if strings.HasPrefix(trimmed, "!") {
			flush()
			nodes = append(nodes, parseDirective(trimmed[1:]))
			continue
		}
		if kind, label, ok := blockHeader(trimmed); ok {
			flush()
			curKind, curLabel, inBlock = kind, label, true
			continue
		}
		curLines = append(curLines, trimmed)
	}
	flush()
	return nodes
}

func blockHeader(line string) (stmt.BlockKind, string, bool) {
	head, rest, found := strings.Cut(line, ":")
	if !found {
		head, rest, found = strings.Cut(line, ".")
		if !found {
			return 0, "", false
		}
	}
	kind, ok := kindByName[strings.ToLower(strings.TrimSpace(head))]
	if !ok {
		return 0, "", false
	}
	return kind, strings.TrimSpace(rest), true
}

func parseDirective(line string) stmt.Directive {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return stmt.NewDirective("")
	}
	return stmt.NewDirective(fields[0], fields[1:]...)
}

func paragraphSentences(lines []string) []stmt.Node {
	text := strings.Join(lines, " ")
	var out []stmt.Node
	for _, raw := range splitSentences(text) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		out = append(out, stmt.NewSentence(raw, tokenizeAtoms(raw)...))
	}
	return out
}

// splitSentences splits on ". " outside of $...$ math spans.
func splitSentences(text string) []string {
	var out []string
	var cur strings.Builder
	inMath := false
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '$' {
			inMath = !inMath
			cur.WriteRune(c)
			continue
		}
		if !inMath && c == '.' && (i+1 == len(runes) || runes[i+1] == ' ') {
			cur.WriteRune(c)
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(c)
	}
	if strings.TrimSpace(cur.String()) != "" {
		out = append(out, cur.String())
	}
	return out
}

// tokenizeAtoms splits a sentence into Word/Math atoms, preserving
// $...$ delimiters on math segments.
func tokenizeAtoms(text string) []stmt.Atom {
	var out []stmt.Atom
	for _, field := range splitKeepingMath(text) {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if strings.HasPrefix(field, "$") && strings.HasSuffix(field, "$") && len(field) > 1 {
			out = append(out, stmt.Atom{Kind: stmt.Math, Text: field})
			continue
		}
		for _, w := range strings.Fields(field) {
			out = append(out, stmt.Atom{Kind: stmt.Word, Text: strings.Trim(w, ".,")})
		}
	}
	return out
}

func splitKeepingMath(text string) []string {
	var out []string
	var cur strings.Builder
	inMath := false
	for _, c := range text {
		if c == '$' {
			if inMath {
				cur.WriteRune(c)
				out = append(out, cur.String())
				cur.Reset()
				inMath = false
			} else {
				if cur.Len() > 0 {
					out = append(out, cur.String())
					cur.Reset()
				}
				cur.WriteRune(c)
				inMath = true
			}
			continue
		}
		cur.WriteRune(c)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
