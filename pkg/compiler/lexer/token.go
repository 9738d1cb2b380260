package lexer

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF Kind = iota
	KindIllegal
	KindIdent
	KindInt
	KindString

	KindAssign         // =
	KindPlus           // +
	KindMinus          // -
	KindMultiplication // *
	KindDivision       // /
	KindNegation       // !
	KindLT             // <
	KindGT             // >
	KindEQ             // ==
	KindNotEQ          // !=

	KindComma     // ,
	KindSemicolon // ;
	KindLParen    // (
	KindRParen    // )
	KindLBrace    // {
	KindRBrace    // }

	KindLet      // variable
	KindFunction // procedimiento
	KindReturn   // regresa
	KindIf       // si
	KindElse     // si_no
	KindTrue     // verdadero
	KindFalse    // falso
	KindNull     // nulo
)

var kindNames = [...]string{
	KindEOF:            "EOF",
	KindIllegal:        "ILLEGAL",
	KindIdent:          "IDENT",
	KindInt:            "INT",
	KindString:         "STRING",
	KindAssign:         "ASSIGN",
	KindPlus:           "PLUS",
	KindMinus:          "MINUS",
	KindMultiplication: "MULTIPLICATION",
	KindDivision:       "DIVISION",
	KindNegation:       "NEGATION",
	KindLT:             "LT",
	KindGT:             "GT",
	KindEQ:             "EQ",
	KindNotEQ:          "NOT_EQ",
	KindComma:          "COMMA",
	KindSemicolon:      "SEMICOLON",
	KindLParen:         "LPAREN",
	KindRParen:         "RPAREN",
	KindLBrace:         "LBRACE",
	KindRBrace:         "RBRACE",
	KindLet:            "LET",
	KindFunction:       "FUNCTION",
	KindReturn:         "RETURN",
	KindIf:             "IF",
	KindElse:           "ELSE",
	KindTrue:           "TRUE",
	KindFalse:          "FALSE",
	KindNull:           "NULL",
}

// String returns the diagnostic name of the kind, e.g. "NOT_EQ".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Token is a lexical unit. Line is 1-based.
type Token struct {
	Kind    Kind
	Literal string
	Line    int
}

var keywords = map[string]Kind{
	"variable":      KindLet,
	"procedimiento": KindFunction,
	"regresa":       KindReturn,
	"si":            KindIf,
	"si_no":         KindElse,
	"verdadero":     KindTrue,
	"falso":         KindFalse,
	"nulo":          KindNull,
}

// LookupIdent maps an identifier run to its keyword kind, or KindIdent.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return KindIdent
}
