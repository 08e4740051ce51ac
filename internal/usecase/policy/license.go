package policy

import (
	"errors"
	"fmt"
	"strings"
)

// Expr is a parsed SPDX license expression.
type Expr interface {
	// Satisfied reports whether the expression holds when pass decides each license id.
	Satisfied(pass func(id string) bool) bool
	String() string
}

// License is a single id. An exception from `X WITH E` is kept for display only.
type License struct {
	ID        string
	Exception string
}

func (l License) Satisfied(pass func(string) bool) bool { return pass(l.ID) }

func (l License) String() string {
	if l.Exception != "" {
		return l.ID + " WITH " + l.Exception
	}
	return l.ID
}

type And struct{ Left, Right Expr }

func (a And) Satisfied(pass func(string) bool) bool {
	return a.Left.Satisfied(pass) && a.Right.Satisfied(pass)
}

func (a And) String() string { return "(" + a.Left.String() + " AND " + a.Right.String() + ")" }

type Or struct{ Left, Right Expr }

func (o Or) Satisfied(pass func(string) bool) bool {
	return o.Left.Satisfied(pass) || o.Right.Satisfied(pass)
}

func (o Or) String() string { return "(" + o.Left.String() + " OR " + o.Right.String() + ")" }

var errEmptyExpression = errors.New("empty license expression")

// ParseExpression parses an SPDX expression. AND binds tighter than OR,
// parentheses group, and operators are case-insensitive.
func ParseExpression(expr string) (Expr, error) {
	p := &exprParser{toks: tokenize(expr)}
	if len(p.toks) == 0 {
		return nil, errEmptyExpression
	}
	e, err := p.or()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, fmt.Errorf("unexpected %q at token %d", tok, p.pos+1)
	}
	return e, nil
}

func tokenize(s string) []string {
	s = strings.NewReplacer("(", " ( ", ")", " ) ").Replace(s)
	return strings.Fields(s)
}

type exprParser struct {
	toks []string
	pos  int
}

func (p *exprParser) peek() (string, bool) {
	if p.pos >= len(p.toks) {
		return "", false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) accept(op string) bool {
	if tok, ok := p.peek(); ok && strings.EqualFold(tok, op) {
		p.pos++
		return true
	}
	return false
}

func (p *exprParser) or() (Expr, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.accept("OR") {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) and() (Expr, error) {
	left, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.accept("AND") {
		right, err := p.atom()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) atom() (Expr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, errors.New("unexpected end of expression")
	}

	if tok == "(" {
		p.pos++
		e, err := p.or()
		if err != nil {
			return nil, err
		}
		if !p.accept(")") {
			return nil, errors.New("missing closing parenthesis")
		}
		return e, nil
	}
	if tok == ")" || isOperator(tok) {
		return nil, fmt.Errorf("unexpected %q at token %d", tok, p.pos+1)
	}

	p.pos++
	lic := License{ID: tok}
	if p.accept("WITH") {
		exc, ok := p.peek()
		if !ok || exc == "(" || exc == ")" || isOperator(exc) {
			return nil, fmt.Errorf("missing exception after %s WITH", tok)
		}
		p.pos++
		lic.Exception = exc
	}
	return lic, nil
}

func isOperator(tok string) bool {
	switch strings.ToUpper(tok) {
	case "AND", "OR", "WITH":
		return true
	}
	return false
}

// LicenseAllowed reports whether expr satisfies the allow/deny lists.
// An id passes if it is not denied and the allow list is empty or contains it.
// A malformed expression never passes.
func LicenseAllowed(expr string, allow, deny []string) bool {
	e, err := ParseExpression(expr)
	if err != nil {
		return false
	}
	return e.Satisfied(licensePass(allow, deny))
}

func licensePass(allow, deny []string) func(string) bool {
	allowSet := fold(allow)
	denySet := fold(deny)

	return func(id string) bool {
		id = strings.ToLower(id)
		if _, denied := denySet[id]; denied {
			return false
		}
		if len(allowSet) == 0 {
			return true
		}
		_, ok := allowSet[id]
		return ok
	}
}

func fold(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[strings.ToLower(s)] = struct{}{}
	}
	return out
}
