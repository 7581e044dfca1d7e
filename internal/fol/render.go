package fol

import (
	"fmt"
	"regexp"
	"strings"
)

// tptpIdentifier matches the bare, unquoted lower-word identifier shape
// TPTP accepts for a constant or function symbol. Anything else
// (mixed case, symbols, leading digit, reserved-looking tokens) must
// be single-quoted in the rendered output.
var tptpIdentifier = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*$`)

// QuoteIfNeeded renders a name as a bare TPTP word if it already fits
// the identifier grammar (`[a-z][a-zA-Z0-9_]*`), or single-quotes it
// (with internal quotes and backslashes escaped) otherwise. Used for
// symbol names here and for clause names in internal/tptp, since both
// share the same §8 identifier invariant.
func QuoteIfNeeded(name string) string {
	if tptpIdentifier.MatchString(name) {
		return name
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(name)
	return "'" + escaped + "'"
}

func (v Variable) String() string {
	return strings.ToUpper(v.Name)
}

func (c Constant) String() string {
	return QuoteIfNeeded(strings.ToLower(c.Name))
}

func (a Apply) String() string {
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", QuoteIfNeeded(a.Name), strings.Join(args, ","))
}

func (p Predicate) String() string {
	if len(p.Args) == 0 {
		return QuoteIfNeeded(p.Name)
	}
	args := make([]string, len(p.Args))
	for i, arg := range p.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", QuoteIfNeeded(p.Name), strings.Join(args, ","))
}

func (e Equal) String() string {
	return fmt.Sprintf("%s = %s", e.Left.String(), e.Right.String())
}

func (n Not) String() string {
	return fmt.Sprintf("~(%s)", n.Body.String())
}

func (a And) String() string {
	return fmt.Sprintf("(%s & %s)", a.Left.String(), a.Right.String())
}

func (o Or) String() string {
	return fmt.Sprintf("(%s | %s)", o.Left.String(), o.Right.String())
}

func (i Implies) String() string {
	return fmt.Sprintf("(%s => %s)", i.Left.String(), i.Right.String())
}

func (i Iff) String() string {
	return fmt.Sprintf("(%s <=> %s)", i.Left.String(), i.Right.String())
}

func (q Quantified) String() string {
	symbol := "!"
	if q.Kind == Exists {
		symbol = "?"
	}
	names := make([]string, len(q.Vars))
	for i, v := range q.Vars {
		names[i] = v.String()
	}
	return fmt.Sprintf("%s [%s] : (%s)", symbol, strings.Join(names, ","), q.Body.String())
}
