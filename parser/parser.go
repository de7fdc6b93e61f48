// Package parser reads infix expressions such as "2x^2 + (x+1)/(x-1)" into
// normalized polyrat values.
package parser

import (
	"strings"
	"unicode"

	"github.com/njchilds90/polyrat"
	"github.com/pkg/errors"
)

var ErrSyntax = errors.New("parser: syntax error")

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func tokenize(input string) ([]token, error) {
	var out []token
	runes := []rune(input)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			out = append(out, token{kind: tokNumber, text: string(runes[start:i]), pos: start})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			out = append(out, token{kind: tokIdent, text: string(runes[start:i]), pos: start})
		case r == '*' && i+1 < len(runes) && runes[i+1] == '*':
			out = append(out, token{kind: tokOp, text: "^", pos: i})
			i += 2
		case strings.ContainsRune("+-*/%^", r):
			out = append(out, token{kind: tokOp, text: string(r), pos: i})
			i++
		case r == '(':
			out = append(out, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			out = append(out, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, errors.Wrapf(ErrSyntax, "unexpected %q at %d", r, i)
		}
	}
	return append(out, token{kind: tokEOF, pos: len(runes)}), nil
}

// Parser evaluates expressions with the operators of one engine.
type Parser struct {
	engine *polyrat.Engine
}

func New(engine *polyrat.Engine) *Parser {
	if engine == nil {
		engine = polyrat.NewEngine(polyrat.DefaultOptions())
	}
	return &Parser{engine: engine}
}

// Parse reads one expression. Juxtaposition multiplies ("2x", "(x+1)(x-1)")
// and both ^ and ** raise to a power.
func (p *Parser) Parse(input string) (polyrat.Value, error) {
	toks, err := tokenize(input)
	if err != nil {
		return polyrat.Value{}, err
	}
	s := &state{engine: p.engine, toks: toks}
	v, err := s.expr()
	if err != nil {
		return polyrat.Value{}, err
	}
	if t := s.peek(); t.kind != tokEOF {
		return polyrat.Value{}, errors.Wrapf(ErrSyntax, "unexpected %q at %d", t.text, t.pos)
	}
	return v, nil
}

// Parse uses the default exact engine.
func Parse(input string) (polyrat.Value, error) {
	return New(nil).Parse(input)
}

type state struct {
	engine *polyrat.Engine
	toks   []token
	i      int
}

func (s *state) peek() token { return s.toks[s.i] }

func (s *state) next() token {
	t := s.toks[s.i]
	if t.kind != tokEOF {
		s.i++
	}
	return t
}

func (s *state) isOp(ops string) bool {
	t := s.peek()
	return t.kind == tokOp && strings.Contains(ops, t.text)
}

// expr := term (("+" | "-") term)*
func (s *state) expr() (polyrat.Value, error) {
	left, err := s.term()
	if err != nil {
		return polyrat.Value{}, err
	}
	for s.isOp("+-") {
		op := s.next().text
		right, err := s.term()
		if err != nil {
			return polyrat.Value{}, err
		}
		if op == "+" {
			left, err = s.engine.Add(left, right)
		} else {
			left, err = s.engine.Sub(left, right)
		}
		if err != nil {
			return polyrat.Value{}, err
		}
	}
	return left, nil
}

// term := unary (("*" | "/" | "%")? unary)*
func (s *state) term() (polyrat.Value, error) {
	left, err := s.unary()
	if err != nil {
		return polyrat.Value{}, err
	}
	for {
		op := ""
		switch t := s.peek(); {
		case s.isOp("*/%"):
			op = s.next().text
		case t.kind == tokIdent || t.kind == tokLParen || t.kind == tokNumber:
			op = "*"
		default:
			return left, nil
		}
		right, err := s.unary()
		if err != nil {
			return polyrat.Value{}, err
		}
		switch op {
		case "*":
			left, err = s.engine.Mul(left, right)
		case "/":
			left, err = s.engine.Quo(left, right)
		case "%":
			left, err = s.engine.Rem(left, right)
		}
		if err != nil {
			return polyrat.Value{}, err
		}
	}
}

// unary := ("-" | "+") unary | power
func (s *state) unary() (polyrat.Value, error) {
	if s.isOp("+-") {
		op := s.next().text
		v, err := s.unary()
		if err != nil || op == "+" {
			return v, err
		}
		return v.Neg(), nil
	}
	return s.power()
}

// power := atom ("^" unary)?
func (s *state) power() (polyrat.Value, error) {
	base, err := s.atom()
	if err != nil {
		return polyrat.Value{}, err
	}
	if !s.isOp("^") {
		return base, nil
	}
	s.next()
	exp, err := s.unary()
	if err != nil {
		return polyrat.Value{}, err
	}
	return s.engine.Pow(base, exp)
}

func (s *state) atom() (polyrat.Value, error) {
	t := s.next()
	switch t.kind {
	case tokNumber:
		r, err := polyrat.ParseRat(t.text)
		if err != nil {
			return polyrat.Value{}, errors.Wrapf(ErrSyntax, "number %q at %d", t.text, t.pos)
		}
		return s.engine.Lift(r)
	case tokIdent:
		return polyrat.Variable(t.text), nil
	case tokLParen:
		v, err := s.expr()
		if err != nil {
			return polyrat.Value{}, err
		}
		if c := s.next(); c.kind != tokRParen {
			return polyrat.Value{}, errors.Wrapf(ErrSyntax, "missing ) at %d", c.pos)
		}
		return v, nil
	case tokEOF:
		return polyrat.Value{}, errors.Wrap(ErrSyntax, "unexpected end of input")
	}
	return polyrat.Value{}, errors.Wrapf(ErrSyntax, "unexpected %q at %d", t.text, t.pos)
}
