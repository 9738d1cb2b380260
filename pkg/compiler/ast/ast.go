package ast

import (
	"strconv"
	"strings"

	"github.com/ReiseArnor/lpp/pkg/compiler/lexer"
)

// Node represents any node in the Abstract Syntax Tree.
type Node interface {
	TokenLiteral() string
	// String renders the node back into canonical source text.
	String() string
}

// Expression represents a node that yields a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a standalone unit of execution.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string { return joinStatements(p.Statements) }

// joinStatements separates statements with a space. An expression statement
// followed by another statement gets its ';' back, so "1; -2" does not
// render as the call "1(-2)".
func joinStatements(stmts []Statement) string {
	var b strings.Builder
	for i, s := range stmts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.String())
		if _, ok := s.(*ExpressionStatement); ok && i < len(stmts)-1 {
			b.WriteByte(';')
		}
	}
	return b.String()
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

// LetStatement: variable NAME = VALUE;
type LetStatement struct {
	Token lexer.Token
	Name  *Identifier
	Value Expression
}

func (l *LetStatement) statementNode()       {}
func (l *LetStatement) TokenLiteral() string { return l.Token.Literal }
func (l *LetStatement) String() string {
	return l.TokenLiteral() + " " + identString(l.Name) + " = " + exprString(l.Value) + ";"
}

// AssignStatement: NAME = VALUE; without the declaration keyword.
type AssignStatement struct {
	Token lexer.Token // the '=' token
	Name  *Identifier
	Value Expression
}

func (a *AssignStatement) statementNode()       {}
func (a *AssignStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AssignStatement) String() string {
	return identString(a.Name) + " = " + exprString(a.Value) + ";"
}

// ReturnStatement: regresa VALUE;
type ReturnStatement struct {
	Token       lexer.Token
	ReturnValue Expression
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) String() string {
	return r.TokenLiteral() + " " + exprString(r.ReturnValue) + ";"
}

type ExpressionStatement struct {
	Token      lexer.Token // first token of the expression
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) String() string       { return exprString(e.Expression) }

// Block is a brace-delimited statement list.
type Block struct {
	Token      lexer.Token // the '{' token
	Statements []Statement
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string { return joinStatements(b.Statements) }

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (i *IntegerLiteral) expressionNode()      {}
func (i *IntegerLiteral) TokenLiteral() string { return i.Token.Literal }
func (i *IntegerLiteral) String() string       { return strconv.FormatInt(i.Value, 10) }

type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) String() string {
	if b.Value {
		return "verdadero"
	}
	return "falso"
}

type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }

// String picks the quote style that does not occur in the value, since
// literals have no escape sequences.
func (s *StringLiteral) String() string {
	if strings.Contains(s.Value, `"`) {
		return "'" + s.Value + "'"
	}
	return `"` + s.Value + `"`
}

type NullLiteral struct {
	Token lexer.Token
}

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NullLiteral) String() string       { return "nulo" }

// PrefixExpression: OP RIGHT, e.g. -a or !b.
type PrefixExpression struct {
	Token    lexer.Token
	Operator string
	Right    Expression
}

func (p *PrefixExpression) expressionNode()      {}
func (p *PrefixExpression) TokenLiteral() string { return p.Token.Literal }
func (p *PrefixExpression) String() string {
	return "(" + p.Operator + exprString(p.Right) + ")"
}

// InfixExpression: LEFT OP RIGHT.
type InfixExpression struct {
	Token    lexer.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (i *InfixExpression) expressionNode()      {}
func (i *InfixExpression) TokenLiteral() string { return i.Token.Literal }
func (i *InfixExpression) String() string {
	return "(" + exprString(i.Left) + " " + i.Operator + " " + exprString(i.Right) + ")"
}

// IfExpression: si (COND) { ... } si_no { ... }
type IfExpression struct {
	Token       lexer.Token
	Condition   Expression
	Consequence *Block
	Alternative *Block // nil when there is no si_no branch
}

func (i *IfExpression) expressionNode()      {}
func (i *IfExpression) TokenLiteral() string { return i.Token.Literal }
func (i *IfExpression) String() string {
	var b strings.Builder
	b.WriteString("si (")
	b.WriteString(exprString(i.Condition))
	b.WriteString(") { ")
	b.WriteString(blockString(i.Consequence))
	b.WriteString(" }")
	if i.Alternative != nil {
		b.WriteString(" si_no { ")
		b.WriteString(i.Alternative.String())
		b.WriteString(" }")
	}
	return b.String()
}

// FunctionLiteral: procedimiento(PARAMS) { BODY }
type FunctionLiteral struct {
	Token      lexer.Token
	Parameters []*Identifier
	Body       *Block
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionLiteral) String() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.String()
	}
	return f.TokenLiteral() + "(" + strings.Join(params, ", ") + ") { " + blockString(f.Body) + " }"
}

// CallExpression: FUNCTION(ARGS)
type CallExpression struct {
	Token     lexer.Token // the '(' token
	Function  Expression
	Arguments []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = exprString(a)
	}
	return exprString(c.Function) + "(" + strings.Join(args, ", ") + ")"
}

// Broken parses leave nil children; they render as empty text.

func exprString(e Expression) string {
	if e == nil {
		return ""
	}
	return e.String()
}

func identString(i *Identifier) string {
	if i == nil {
		return ""
	}
	return i.String()
}

func blockString(b *Block) string {
	if b == nil {
		return ""
	}
	return b.String()
}
