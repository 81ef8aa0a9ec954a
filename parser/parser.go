// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Implements Component D: a recursive-descent parser that turns a
//          token stream into a tree of ast.Node values (§4.D). Paren has no
//          operator precedence to speak of — every form is prefix — so this
//          is much smaller than the teacher's Pratt parser, but it keeps the
//          teacher's shape: a Parser struct walking the current token over a
//          lexer, recursing into parseValue the way Eloquence recurses into
//          parseExpression/parseStatement.
// ==============================================================================================

package parser

import (
	"strconv"
	"strings"

	"paren/ast"
	"paren/lexer"
	"paren/token"
)

// Parser holds the state of a single parse over one lexer's token stream.
type Parser struct {
	l        *lexer.Lexer
	curToken token.Token
}

// New initializes a new Parser instance over l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.l.NextToken()
}

// ParseProgram consumes the entire token stream and returns every top-level
// form (§4.D: "The parser returns multiple top-level forms when the input
// has more than one.").
func (p *Parser) ParseProgram() []*ast.Node {
	var forms []*ast.Node
	for p.curToken.Type != token.EOF {
		forms = append(forms, p.parseValue())
		p.nextToken()
	}
	return forms
}

// parseValue classifies the current token and parses exactly one value,
// leaving curToken on the last token consumed for that value (mirroring the
// teacher's parseExpression invariant: callers advance after it returns).
func (p *Parser) parseValue() *ast.Node {
	switch p.curToken.Type {
	case token.STRING:
		return ast.NewString(p.curToken.Literal)
	case token.LPAREN:
		return p.parseList()
	case token.RPAREN:
		// A stray ')' with no matching '(' — treat as an empty list so the
		// parser never panics on malformed input; the lexer already tracked
		// the imbalance via Unclosed for completeness checking.
		return ast.NewList(nil)
	default:
		return p.parseWord(p.curToken.Literal)
	}
}

// parseList parses a parenthesized form. curToken is '(' on entry; it
// returns with curToken on the matching ')'.
func (p *Parser) parseList() *ast.Node {
	var elems []*ast.Node
	p.nextToken()
	for p.curToken.Type != token.RPAREN && p.curToken.Type != token.EOF {
		elems = append(elems, p.parseValue())
		p.nextToken()
	}
	return ast.NewList(elems)
}

// parseWord classifies a bare WORD token as a number or a symbol per §4.D:
// a leading digit, or '-' followed by a digit, makes it numeric; a '.' or
// 'e' anywhere in a numeric token selects double over int. A lone '-' (not
// followed by a digit) is the subtraction symbol, grounded on
// libparen.cpp's parser ("tok.at(0) == '-' && tok.length() >= 2 &&
// isdigit(tok.at(1))").
func (p *Parser) parseWord(tok string) *ast.Node {
	if isNumeric(tok) {
		if strings.ContainsAny(tok, ".e") {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return ast.NewSymbol(tok)
			}
			return ast.NewDouble(v)
		}
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return ast.NewSymbol(tok)
		}
		return ast.NewInt(v)
	}
	return ast.NewSymbol(tok)
}

func isNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	if isDigit(tok[0]) {
		return true
	}
	return tok[0] == '-' && len(tok) >= 2 && isDigit(tok[1])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// ParseString is a convenience wrapper used by the "read-string" builtin and
// the facade: lex then parse src in one call.
func ParseString(src string) []*ast.Node {
	return New(lexer.New(src)).ParseProgram()
}
