package testhost

import (
	"fmt"
	"strconv"
	"strings"

	turniptext "turniptext.dev/go/turniptext"
)

// This file implements the minimal expression/statement language
// CompileAndEval's three-attempt strategy (§4.2 rule 1) compiles against:
// string/int/float literals, bare identifiers, and call(arg, arg...)
// expressions for the expression form; name = expr lines, separated by
// newlines or semicolons, for the statement form. It is deliberately not a
// general-purpose language, mirroring testhost's role as a harness rather
// than a host implementation.

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokString
	tokInt
	tokFloat
	tokLParen
	tokRParen
	tokComma
	tokEquals
	tokSep
)

type token struct {
	kind tokKind
	text string
	i    int64
	f    float64
}

func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '\n' || c == ';':
			toks = append(toks, token{kind: tokSep})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma})
			i++
		case c == '=':
			toks = append(toks, token{kind: tokEquals})
			i++
		case c == '"':
			j := i + 1
			var b strings.Builder
			closed := false
			for j < n {
				if src[j] == '\\' && j+1 < n {
					b.WriteByte(src[j+1])
					j += 2
					continue
				}
				if src[j] == '"' {
					closed = true
					j++
					break
				}
				b.WriteByte(src[j])
				j++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated string literal")
			}
			toks = append(toks, token{kind: tokString, text: b.String()})
			i = j
		case isDigit(c):
			j := i
			isFloat := false
			for j < n && (isDigit(src[j]) || src[j] == '.') {
				if src[j] == '.' {
					isFloat = true
				}
				j++
			}
			lit := src[i:j]
			if isFloat {
				f, err := strconv.ParseFloat(lit, 64)
				if err != nil {
					return nil, err
				}
				toks = append(toks, token{kind: tokFloat, f: f})
			} else {
				v, err := strconv.ParseInt(lit, 10, 64)
				if err != nil {
					return nil, err
				}
				toks = append(toks, token{kind: tokInt, i: v})
			}
			i = j
		case isIdentStart(c):
			j := i
			for j < n && isIdentCont(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", c)
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }

type exprKind int

const (
	exprIdent exprKind = iota
	exprString
	exprInt
	exprFloat
	exprCall
)

type expr struct {
	kind  exprKind
	ident string
	str   string
	i     int64
	f     float64
	args  []*expr
}

type stmt struct {
	name string
	rhs  *expr
}

type langParser struct {
	toks []token
	pos  int
}

func (p *langParser) peek() token  { return p.toks[p.pos] }
func (p *langParser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *langParser) skipSeps() {
	for p.peek().kind == tokSep {
		p.advance()
	}
}

func (p *langParser) parseExpr() (*expr, error) {
	t := p.advance()
	switch t.kind {
	case tokString:
		return &expr{kind: exprString, str: t.text}, nil
	case tokInt:
		return &expr{kind: exprInt, i: t.i}, nil
	case tokFloat:
		return &expr{kind: exprFloat, f: t.f}, nil
	case tokIdent:
		if p.peek().kind != tokLParen {
			return &expr{kind: exprIdent, ident: t.text}, nil
		}
		p.advance() // consume '('
		var args []*expr
		if p.peek().kind != tokRParen {
			for {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.peek().kind == tokComma {
					p.advance()
					continue
				}
				break
			}
		}
		if p.peek().kind != tokRParen {
			return nil, fmt.Errorf("expected ')' after call arguments to %q", t.text)
		}
		p.advance()
		return &expr{kind: exprCall, ident: t.text, args: args}, nil
	default:
		return nil, fmt.Errorf("unexpected token in expression")
	}
}

// parseSingleExpr implements CompileAndEval's first attempt (§4.2 rule 1):
// the whole code string must be exactly one expression.
func parseSingleExpr(code string) (*expr, error) {
	toks, err := tokenize(code)
	if err != nil {
		return nil, err
	}
	p := &langParser{toks: toks}
	p.skipSeps()
	ex, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSeps()
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("trailing tokens after expression")
	}
	return ex, nil
}

// parseStatements implements CompileAndEval's statement-list attempts: a
// sequence of `name = expr` assignments separated by newlines/semicolons.
func parseStatements(code string) ([]*stmt, error) {
	toks, err := tokenize(code)
	if err != nil {
		return nil, err
	}
	p := &langParser{toks: toks}
	var stmts []*stmt
	p.skipSeps()
	for p.peek().kind != tokEOF {
		nameTok := p.advance()
		if nameTok.kind != tokIdent {
			return nil, fmt.Errorf("expected assignment target")
		}
		if p.advance().kind != tokEquals {
			return nil, fmt.Errorf("expected '=' after %q", nameTok.text)
		}
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, &stmt{name: nameTok.text, rhs: rhs})
		if p.peek().kind != tokSep && p.peek().kind != tokEOF {
			return nil, fmt.Errorf("expected statement separator")
		}
		p.skipSeps()
	}
	return stmts, nil
}

func (e *Env) evalExpr(ex *expr) (any, error) {
	switch ex.kind {
	case exprString:
		return ex.str, nil
	case exprInt:
		return ex.i, nil
	case exprFloat:
		return ex.f, nil
	case exprIdent:
		v, ok := e.Get(ex.ident)
		if !ok {
			return nil, fmt.Errorf("undefined name %q", ex.ident)
		}
		return v, nil
	case exprCall:
		fn, ok := e.funcs[ex.ident]
		if !ok {
			return nil, fmt.Errorf("undefined function %q", ex.ident)
		}
		args := make([]turniptext.HostValue, len(ex.args))
		for i, a := range ex.args {
			v, err := e.evalExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return fn(args)
	default:
		return nil, fmt.Errorf("malformed expression")
	}
}
