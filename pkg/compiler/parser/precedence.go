package parser

import "github.com/ReiseArnor/lpp/pkg/compiler/lexer"

// Precedence is the binding strength of an operator; higher binds tighter.
type Precedence int

const (
	Lowest Precedence = iota + 1
	Equals            // == !=
	LessGreater       // < >
	Sum               // + -
	Product           // * /
	Prefix            // -x !x
	Call              // f(x)
)

// precedences is read-only after package initialization.
var precedences = map[lexer.Kind]Precedence{
	lexer.KindEQ:             Equals,
	lexer.KindNotEQ:          Equals,
	lexer.KindLT:             LessGreater,
	lexer.KindGT:             LessGreater,
	lexer.KindPlus:           Sum,
	lexer.KindMinus:          Sum,
	lexer.KindMultiplication: Product,
	lexer.KindDivision:       Product,
	lexer.KindLParen:         Call,
}

// PrecedenceOf reports the infix precedence of kind, or Lowest when the kind
// cannot continue an expression.
func PrecedenceOf(kind lexer.Kind) Precedence {
	if p, ok := precedences[kind]; ok {
		return p
	}
	return Lowest
}
