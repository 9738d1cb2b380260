package parser

import (
	"fmt"
	"strconv"

	"github.com/ReiseArnor/lpp/pkg/compiler/ast"
	"github.com/ReiseArnor/lpp/pkg/compiler/lexer"
)

// TokenSource yields tokens on demand. *lexer.Scanner satisfies it.
type TokenSource interface {
	Next() lexer.Token
}

type (
	prefixParseFn func(*Parser) ast.Expression
	infixParseFn  func(*Parser, ast.Expression) ast.Expression
)

// Dispatch tables shared by every parser; populated once in init and never
// written afterwards.
var (
	prefixParseFns map[lexer.Kind]prefixParseFn
	infixParseFns  map[lexer.Kind]infixParseFn
)

func init() {
	prefixParseFns = map[lexer.Kind]prefixParseFn{
		lexer.KindIdent:    (*Parser).parseIdentifier,
		lexer.KindInt:      (*Parser).parseIntegerLiteral,
		lexer.KindString:   (*Parser).parseStringLiteral,
		lexer.KindTrue:     (*Parser).parseBooleanLiteral,
		lexer.KindFalse:    (*Parser).parseBooleanLiteral,
		lexer.KindNull:     (*Parser).parseNullLiteral,
		lexer.KindMinus:    (*Parser).parsePrefixExpression,
		lexer.KindNegation: (*Parser).parsePrefixExpression,
		lexer.KindLParen:   (*Parser).parseGroupedExpression,
		lexer.KindIf:       (*Parser).parseIfExpression,
		lexer.KindFunction: (*Parser).parseFunctionLiteral,
	}

	infixParseFns = map[lexer.Kind]infixParseFn{
		lexer.KindPlus:           (*Parser).parseInfixExpression,
		lexer.KindMinus:          (*Parser).parseInfixExpression,
		lexer.KindMultiplication: (*Parser).parseInfixExpression,
		lexer.KindDivision:       (*Parser).parseInfixExpression,
		lexer.KindEQ:             (*Parser).parseInfixExpression,
		lexer.KindNotEQ:          (*Parser).parseInfixExpression,
		lexer.KindLT:             (*Parser).parseInfixExpression,
		lexer.KindGT:             (*Parser).parseInfixExpression,
		lexer.KindLParen:         (*Parser).parseCallExpression,
	}
}

// Parser builds an *ast.Program from a token stream using Pratt parsing.
// Syntax errors are collected rather than returned; see Errors.
type Parser struct {
	tokens  TokenSource
	curTok  lexer.Token
	peekTok lexer.Token

	errors []string
}

// NewParser primes the two-token lookahead from tokens.
func NewParser(tokens TokenSource) *Parser {
	p := &Parser{tokens: tokens}
	// Read two tokens, so curTok and peekTok are both set
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses an already tokenized program. A missing trailing EOF token is
// tolerated.
func Parse(tokens []lexer.Token) (*ast.Program, []string) {
	p := NewParser(&sliceSource{toks: tokens})
	program := p.ParseProgram()
	return program, p.Errors()
}

// ParseString lexes and parses src in one step.
func ParseString(src string) (*ast.Program, []string) {
	p := NewParser(lexer.NewScanner(src))
	program := p.ParseProgram()
	return program, p.Errors()
}

// Errors returns the syntax errors recorded so far, in source order.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.tokens.Next()
}

// ParseProgram parses statements until EOF. Statements that fail to parse
// are dropped and parsing resumes at the next token.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for p.curTok.Kind != lexer.KindEOF {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curTok.Kind == lexer.KindLet:
		return p.parseLetStatement()
	case p.curTok.Kind == lexer.KindIdent && p.peekTokenIs(lexer.KindAssign):
		return p.parseAssignStatement()
	case p.curTok.Kind == lexer.KindReturn:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curTok}

	if !p.expectPeek(lexer.KindIdent) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curTok, Value: p.curTok.Literal}

	if !p.expectPeek(lexer.KindAssign) {
		return nil
	}
	p.nextToken()

	stmt.Value = p.parseExpression(Lowest)
	if stmt.Value == nil {
		return nil
	}
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseAssignStatement() ast.Statement {
	name := &ast.Identifier{Token: p.curTok, Value: p.curTok.Literal}
	p.nextToken() // move to '='

	stmt := &ast.AssignStatement{Token: p.curTok, Name: name}
	p.nextToken()

	stmt.Value = p.parseExpression(Lowest)
	if stmt.Value == nil {
		return nil
	}
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curTok}
	p.nextToken()

	stmt.ReturnValue = p.parseExpression(Lowest)
	if stmt.ReturnValue == nil {
		return nil
	}
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curTok}

	stmt.Expression = p.parseExpression(Lowest)
	if stmt.Expression == nil {
		return nil
	}
	p.skipSemicolon()
	return stmt
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.curTok}
	p.nextToken() // skip '{'

	for !p.curTokenIs(lexer.KindRBrace) && !p.curTokenIs(lexer.KindEOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseExpression(precedence Precedence) ast.Expression {
	prefix, ok := prefixParseFns[p.curTok.Kind]
	if !ok {
		p.noPrefixParseFnError(p.curTok)
		return nil
	}
	left := prefix(p)

	for left != nil && !p.peekTokenIs(lexer.KindSemicolon) && precedence < p.peekPrecedence() {
		infix, ok := infixParseFns[p.peekTok.Kind]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(p, left)
	}
	return left
}

//-----------------------------------------------------------------------------
// Prefix parse functions
//-----------------------------------------------------------------------------

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curTok, Value: p.curTok.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	v, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
	if err != nil {
		p.errors = append(p.errors, fmt.Sprintf("No se pudo interpretar %s como entero cerca de la línea %d", p.curTok.Literal, p.curTok.Line))
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curTok, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curTok, Value: p.curTok.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curTok, Value: p.curTokenIs(lexer.KindTrue)}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curTok}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curTok, Operator: p.curTok.Literal}
	p.nextToken()

	expr.Right = p.parseExpression(Prefix)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken() // skip '('

	expr := p.parseExpression(Lowest)
	if expr == nil || !p.expectPeek(lexer.KindRParen) {
		return nil
	}
	return expr
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Token: p.curTok}

	if !p.expectPeek(lexer.KindLParen) {
		return nil
	}
	p.nextToken()

	expr.Condition = p.parseExpression(Lowest)
	if expr.Condition == nil {
		return nil
	}
	if !p.expectPeek(lexer.KindRParen) || !p.expectPeek(lexer.KindLBrace) {
		return nil
	}
	expr.Consequence = p.parseBlock()

	if p.peekTokenIs(lexer.KindElse) {
		p.nextToken()
		if !p.expectPeek(lexer.KindLBrace) {
			return nil
		}
		expr.Alternative = p.parseBlock()
	}
	return expr
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	fn := &ast.FunctionLiteral{Token: p.curTok}

	if !p.expectPeek(lexer.KindLParen) {
		return nil
	}
	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}
	fn.Parameters = params

	if !p.expectPeek(lexer.KindLBrace) {
		return nil
	}
	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, bool) {
	params := []*ast.Identifier{}

	if p.peekTokenIs(lexer.KindRParen) {
		p.nextToken()
		return params, true
	}

	if !p.expectPeek(lexer.KindIdent) {
		return nil, false
	}
	params = append(params, &ast.Identifier{Token: p.curTok, Value: p.curTok.Literal})

	for p.peekTokenIs(lexer.KindComma) {
		p.nextToken()
		if !p.expectPeek(lexer.KindIdent) {
			return nil, false
		}
		params = append(params, &ast.Identifier{Token: p.curTok, Value: p.curTok.Literal})
	}

	if !p.expectPeek(lexer.KindRParen) {
		return nil, false
	}
	return params, true
}

//-----------------------------------------------------------------------------
// Infix parse functions
//-----------------------------------------------------------------------------

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curTok,
		Operator: p.curTok.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()

	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curTok, Function: function}

	args, ok := p.parseCallArguments()
	if !ok {
		return nil
	}
	call.Arguments = args
	return call
}

func (p *Parser) parseCallArguments() ([]ast.Expression, bool) {
	args := []ast.Expression{}

	if p.peekTokenIs(lexer.KindRParen) {
		p.nextToken()
		return args, true
	}

	p.nextToken()
	arg := p.parseExpression(Lowest)
	if arg == nil {
		return nil, false
	}
	args = append(args, arg)

	for p.peekTokenIs(lexer.KindComma) {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(Lowest)
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
	}

	if !p.expectPeek(lexer.KindRParen) {
		return nil, false
	}
	return args, true
}

//-----------------------------------------------------------------------------
// Helpers
//-----------------------------------------------------------------------------

func (p *Parser) curTokenIs(k lexer.Kind) bool  { return p.curTok.Kind == k }
func (p *Parser) peekTokenIs(k lexer.Kind) bool { return p.peekTok.Kind == k }

func (p *Parser) curPrecedence() Precedence  { return PrecedenceOf(p.curTok.Kind) }
func (p *Parser) peekPrecedence() Precedence { return PrecedenceOf(p.peekTok.Kind) }

// expectPeek advances only when the next token has kind k; otherwise it
// records an error and leaves the cursor in place.
func (p *Parser) expectPeek(k lexer.Kind) bool {
	if p.peekTokenIs(k) {
		p.nextToken()
		return true
	}
	p.errors = append(p.errors, fmt.Sprintf("Se esperaba que el siguente token fuera %s pero se obtuvo %s cerca de la línea %d", k, p.peekTok.Kind, p.curTok.Line))
	return false
}

func (p *Parser) skipSemicolon() {
	if p.peekTokenIs(lexer.KindSemicolon) {
		p.nextToken()
	}
}

func (p *Parser) noPrefixParseFnError(tok lexer.Token) {
	lit := tok.Literal
	if lit == "" {
		lit = tok.Kind.String()
	}
	p.errors = append(p.errors, fmt.Sprintf("No se encontró ninguna función para parsear %s cerca de la línea %d", lit, tok.Line))
}

// sliceSource replays a pre-lexed token slice, then reports EOF forever.
type sliceSource struct {
	toks []lexer.Token
	pos  int
}

func (s *sliceSource) Next() lexer.Token {
	if s.pos >= len(s.toks) {
		line := 1
		if n := len(s.toks); n > 0 {
			line = s.toks[n-1].Line
		}
		return lexer.Token{Kind: lexer.KindEOF, Line: line}
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok
}
