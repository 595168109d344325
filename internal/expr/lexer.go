package expr

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenIdent
	TokenDate // 2021-12-30 or 12/30/2021
	TokenPlus
	TokenMinus
	TokenComma
)

var tokenNames = map[TokenType]string{
	TokenEOF:    "EOF",
	TokenNumber: "NUMBER",
	TokenIdent:  "IDENT",
	TokenDate:   "DATE",
	TokenPlus:   "+",
	TokenMinus:  "-",
	TokenComma:  ",",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", t)
}

// Token is a lexer token. Spaced records whether whitespace immediately
// precedes the token; the parser uses it to tell term separators from
// signed integers.
type Token struct {
	Type   TokenType
	Value  string
	Pos    int // byte offset in input
	Spaced bool
}

func (t Token) String() string {
	if t.Value != "" {
		return fmt.Sprintf("%s(%q)", t.Type, t.Value)
	}
	return t.Type.String()
}

// Lexer tokenizes date-math expressions.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize returns all tokens from the input, terminated by an EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	spaced := l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos, Spaced: spaced}, nil
	}

	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '+':
		l.pos++
		return Token{Type: TokenPlus, Value: "+", Pos: start, Spaced: spaced}, nil
	case '-':
		l.pos++
		return Token{Type: TokenMinus, Value: "-", Pos: start, Spaced: spaced}, nil
	case ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: start, Spaced: spaced}, nil
	}

	if unicode.IsDigit(rune(ch)) {
		return l.scanNumberOrDate(start, spaced)
	}

	if isLetter(ch) {
		for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
			l.pos++
		}
		return Token{Type: TokenIdent, Value: l.input[start:l.pos], Pos: start, Spaced: spaced}, nil
	}

	return Token{}, &Error{
		Kind:     KindTrailingGarbage,
		Message:  fmt.Sprintf("unexpected character %q", ch),
		Fragment: l.input[start:],
		Pos:      start,
	}
}

// scanNumberOrDate consumes a maximal run of digits, dashes, and slashes.
// An all-digit run is a number; runs shaped like 2021-12-30 or 12/30/2021
// are date tokens; anything else is malformed.
func (l *Lexer) scanNumberOrDate(start int, spaced bool) (Token, error) {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if !unicode.IsDigit(rune(ch)) && ch != '-' && ch != '/' {
			break
		}
		l.pos++
	}
	value := l.input[start:l.pos]

	if !strings.ContainsAny(value, "-/") {
		return Token{Type: TokenNumber, Value: value, Pos: start, Spaced: spaced}, nil
	}
	if isISODateShape(value) || isSlashDateShape(value) {
		return Token{Type: TokenDate, Value: value, Pos: start, Spaced: spaced}, nil
	}
	return Token{}, &Error{
		Kind:     KindMalformedDate,
		Message:  "not a recognized date form (want YYYY-MM-DD or MM/DD/YYYY)",
		Fragment: value,
		Pos:      start,
	}
}

func (l *Lexer) skipWhitespace() bool {
	skipped := false
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
		skipped = true
	}
	return skipped
}

// isISODateShape reports whether s looks like YYYY-MM-DD.
func isISODateShape(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return false
	}
	return len(parts[0]) == 4 && allDigits(parts[0]) &&
		len(parts[1]) >= 1 && len(parts[1]) <= 2 && allDigits(parts[1]) &&
		len(parts[2]) >= 1 && len(parts[2]) <= 2 && allDigits(parts[2])
}

// isSlashDateShape reports whether s looks like MM/DD/YYYY. Years may be
// longer than four digits; two-digit years are not accepted.
func isSlashDateShape(s string) bool {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return false
	}
	return len(parts[0]) >= 1 && len(parts[0]) <= 2 && allDigits(parts[0]) &&
		len(parts[1]) >= 1 && len(parts[1]) <= 2 && allDigits(parts[1]) &&
		len(parts[2]) >= 4 && allDigits(parts[2])
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
