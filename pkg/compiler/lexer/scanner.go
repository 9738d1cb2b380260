package lexer

import "unicode/utf8"

// Scanner performs lexical analysis on LPP source.
type Scanner struct {
	source string
	cursor int
	line   int
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

// Reset re-initializes the scanner with new source for reuse.
func (s *Scanner) Reset(source string) {
	s.source = source
	s.cursor = 0
	s.line = 1
}

// Tokenize drains a fresh scanner over source. The final token is always KindEOF.
func Tokenize(source string) []Token {
	s := NewScanner(source)
	var toks []Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == KindEOF {
			return toks
		}
	}
}

// Next returns the next token from the source. Once the input is exhausted
// every call returns KindEOF.
func (s *Scanner) Next() Token {
	s.skipWhitespace()

	if s.cursor >= len(s.source) {
		return Token{Kind: KindEOF, Line: s.line}
	}

	ch := s.source[s.cursor]

	if isLetter(ch) {
		return s.scanIdentifier()
	}
	if isDigit(ch) {
		return s.scanNumber()
	}
	if ch == '"' || ch == '\'' {
		return s.scanString(ch)
	}

	// Two-character operators
	if ch == '=' && s.peek() == '=' {
		return s.emit(KindEQ, 2)
	}
	if ch == '!' && s.peek() == '=' {
		return s.emit(KindNotEQ, 2)
	}

	switch ch {
	case '=':
		return s.emit(KindAssign, 1)
	case '!':
		return s.emit(KindNegation, 1)
	case '+':
		return s.emit(KindPlus, 1)
	case '-':
		return s.emit(KindMinus, 1)
	case '*':
		return s.emit(KindMultiplication, 1)
	case '/':
		return s.emit(KindDivision, 1)
	case '<':
		return s.emit(KindLT, 1)
	case '>':
		return s.emit(KindGT, 1)
	case '(':
		return s.emit(KindLParen, 1)
	case ')':
		return s.emit(KindRParen, 1)
	case '{':
		return s.emit(KindLBrace, 1)
	case '}':
		return s.emit(KindRBrace, 1)
	case ',':
		return s.emit(KindComma, 1)
	case ';':
		return s.emit(KindSemicolon, 1)
	}

	// Keep multi-byte characters whole so diagnostics show them intact.
	_, size := utf8.DecodeRuneInString(s.source[s.cursor:])
	return s.emit(KindIllegal, size)
}

func (s *Scanner) emit(kind Kind, length int) Token {
	tok := Token{Kind: kind, Literal: s.source[s.cursor : s.cursor+length], Line: s.line}
	s.cursor += length
	return tok
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			s.cursor++
		} else if ch == '\n' {
			s.line++
			s.cursor++
		} else {
			break
		}
	}
}

// scanString reads up to the matching quote. An unterminated literal runs to
// the end of input and is still reported as KindString.
func (s *Scanner) scanString(quote byte) Token {
	line := s.line
	s.cursor++ // Skip opening quote
	start := s.cursor
	for s.cursor < len(s.source) && s.source[s.cursor] != quote {
		if s.source[s.cursor] == '\n' {
			s.line++
		}
		s.cursor++
	}

	literal := s.source[start:s.cursor]
	if s.cursor < len(s.source) {
		s.cursor++ // Skip closing quote
	}
	return Token{Kind: KindString, Literal: literal, Line: line}
}

func (s *Scanner) scanNumber() Token {
	start := s.cursor
	for s.cursor < len(s.source) && isDigit(s.source[s.cursor]) {
		s.cursor++
	}
	return Token{Kind: KindInt, Literal: s.source[start:s.cursor], Line: s.line}
}

func (s *Scanner) scanIdentifier() Token {
	start := s.cursor
	for s.cursor < len(s.source) && (isLetter(s.source[s.cursor]) || isDigit(s.source[s.cursor])) {
		s.cursor++
	}

	literal := s.source[start:s.cursor]
	return Token{Kind: LookupIdent(literal), Literal: literal, Line: s.line}
}

func (s *Scanner) peek() byte {
	if s.cursor+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cursor+1]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
