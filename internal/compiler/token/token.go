package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType names a lexical category. The string value is the name used in
// diagnostics, e.g. "Expected SEMICOLON but got EOF."
type TokenType string

const (
	// Operators and punctuation
	TokenAdd          TokenType = "ADD"           // +
	TokenAssign       TokenType = "ASSIGN"        // =
	TokenCall         TokenType = "CALL"          // ::
	TokenCloseBrace   TokenType = "CLOSE_BRACE"   // }
	TokenCloseBracket TokenType = "CLOSE_BRACKET" // ]
	TokenCloseParen   TokenType = "CLOSE_PAREN"   // )
	TokenColon        TokenType = "COLON"         // :
	TokenComma        TokenType = "COMMA"         // ,
	TokenDiv          TokenType = "DIV"           // /
	TokenEqual        TokenType = "EQUAL"         // ==
	TokenGreaterEqual TokenType = "GREATER_EQUAL" // >=
	TokenGreaterThan  TokenType = "GREATER_THAN"  // >
	TokenLessThan     TokenType = "LESS_THAN"     // <
	TokenLesserEqual  TokenType = "LESSER_EQUAL"  // <=
	TokenMul          TokenType = "MUL"           // *
	TokenNotEqual     TokenType = "NOT_EQUAL"     // !=
	TokenOpenBrace    TokenType = "OPEN_BRACE"    // {
	TokenOpenBracket  TokenType = "OPEN_BRACKET"  // [
	TokenOpenParen    TokenType = "OPEN_PAREN"    // (
	TokenSemicolon    TokenType = "SEMICOLON"     // ;
	TokenSub          TokenType = "SUB"           // -

	// Keywords
	TokenAnd    TokenType = "AND"    // and
	TokenArray  TokenType = "ARRAY"  // array
	TokenElse   TokenType = "ELSE"   // else
	TokenFalse  TokenType = "FALSE"  // false
	TokenFunc   TokenType = "FUNC"   // func
	TokenIf     TokenType = "IF"     // if
	TokenLet    TokenType = "LET"    // let
	TokenNot    TokenType = "NOT"    // not
	TokenOr     TokenType = "OR"     // or
	TokenReturn TokenType = "RETURN" // return
	TokenTrue   TokenType = "TRUE"   // true
	TokenVar    TokenType = "VAR"    // var
	TokenWhile  TokenType = "WHILE"  // while

	// Literals & Identifiers
	TokenInt   TokenType = "INTEGER"    // 43
	TokenFloat TokenType = "FLOAT"      // 4.3
	TokenIdent TokenType = "IDENTIFIER" // Identifier (e.g. variable name)

	// Special
	TokenError TokenType = "ERROR"
	TokenEOF   TokenType = "EOF"
)

// fixed maps every fixed-lexeme category to its canonical text.
var fixed = map[TokenType]string{
	TokenAdd:          "+",
	TokenAssign:       "=",
	TokenCall:         "::",
	TokenCloseBrace:   "}",
	TokenCloseBracket: "]",
	TokenCloseParen:   ")",
	TokenColon:        ":",
	TokenComma:        ",",
	TokenDiv:          "/",
	TokenEqual:        "==",
	TokenGreaterEqual: ">=",
	TokenGreaterThan:  ">",
	TokenLessThan:     "<",
	TokenLesserEqual:  "<=",
	TokenMul:          "*",
	TokenNotEqual:     "!=",
	TokenOpenBrace:    "{",
	TokenOpenBracket:  "[",
	TokenOpenParen:    "(",
	TokenSemicolon:    ";",
	TokenSub:          "-",

	TokenAnd:    "and",
	TokenArray:  "array",
	TokenElse:   "else",
	TokenFalse:  "false",
	TokenFunc:   "func",
	TokenIf:     "if",
	TokenLet:    "let",
	TokenNot:    "not",
	TokenOr:     "or",
	TokenReturn: "return",
	TokenTrue:   "true",
	TokenVar:    "var",
	TokenWhile:  "while",
}

// byLexeme is the reverse of fixed.
var byLexeme = func() map[string]TokenType {
	m := make(map[string]TokenType, len(fixed))
	for typ, lexeme := range fixed {
		m[lexeme] = typ
	}
	return m
}()

// Kinds lists every token type in name order.
var Kinds = []TokenType{
	TokenAdd, TokenAnd, TokenArray, TokenAssign, TokenCall, TokenCloseBrace,
	TokenCloseBracket, TokenCloseParen, TokenColon, TokenComma, TokenDiv,
	TokenElse, TokenEOF, TokenEqual, TokenError, TokenFalse, TokenFloat,
	TokenFunc, TokenGreaterEqual, TokenGreaterThan, TokenIdent, TokenIf,
	TokenInt, TokenLesserEqual, TokenLessThan, TokenLet, TokenMul, TokenNot,
	TokenNotEqual, TokenOpenBrace, TokenOpenBracket, TokenOpenParen, TokenOr,
	TokenReturn, TokenSemicolon, TokenSub, TokenTrue, TokenVar, TokenWhile,
}

// Lexeme returns the canonical text of a fixed-lexeme type and false for
// the variable-lexeme types.
func (t TokenType) Lexeme() (string, bool) {
	lexeme, ok := fixed[t]
	return lexeme, ok
}

func (t TokenType) String() string {
	return string(t)
}

type Token struct {
	Type    TokenType
	Literal string // empty for fixed-lexeme types
	Line    int
	Column  int
}

// New returns a token of a fixed-lexeme (or EOF) type.
func New(typ TokenType, line, col int) Token {
	return Token{Type: typ, Line: line, Column: col}
}

// Generate classifies a finished lexeme and returns the matching token.
func Generate(lexeme string, line, col int) Token {
	typ := Classify(lexeme)
	if _, ok := fixed[typ]; ok {
		return Token{Type: typ, Line: line, Column: col}
	}
	return Token{Type: typ, Literal: lexeme, Line: line, Column: col}
}

// Text returns the source text the token was scanned from.
func (t Token) Text() string {
	if lexeme, ok := fixed[t.Type]; ok {
		return lexeme
	}
	return t.Literal
}

func (t Token) Is(typ TokenType) bool {
	return t.Type == typ
}

func (t Token) String() string {
	switch t.Type {
	case TokenError:
		return fmt.Sprintf("%s(Unexpected character: %s)(lineNum:%d, charPos:%d)", t.Type, t.Literal, t.Line, t.Column)
	case TokenInt, TokenFloat, TokenIdent:
		return fmt.Sprintf("%s(%s)(lineNum:%d, charPos:%d)", t.Type, t.Literal, t.Line, t.Column)
	default:
		return fmt.Sprintf("%s(lineNum:%d, charPos:%d)", t.Type, t.Line, t.Column)
	}
}

// Classify maps a complete lexeme to its category. Fixed lexemes win over
// the patterns, so "true" is TRUE rather than IDENTIFIER.
func Classify(lexeme string) TokenType {
	if typ, ok := byLexeme[lexeme]; ok {
		return typ
	}
	switch {
	case isInteger(lexeme):
		return TokenInt
	case isFloat(lexeme):
		return TokenFloat
	case isIdentifier(lexeme):
		return TokenIdent
	}
	return TokenError
}

// IsPrefix reports whether candidate can still grow into some token. The
// scanner keeps consuming while this holds.
func IsPrefix(candidate string) bool {
	var p Prefix
	for i, ch := range candidate {
		if i == 0 {
			p.Start(ch)
		} else if !p.Extend(ch) {
			return false
		}
	}
	return p.Valid()
}

// maxFixed is the byte length of the longest fixed lexeme, "return".
const maxFixed = 6

// Prefix grows a candidate lexeme one rune at a time, keeping enough state
// that each step costs O(1) regardless of how long the candidate is.
type Prefix struct {
	text   []byte
	fixed  bool // a prefix of some fixed lexeme
	number bool // digits with at most one '.', not leading
	dotted bool
	ident  bool
}

// Start resets p to the single rune ch and reports whether it is a prefix.
func (p *Prefix) Start(ch rune) bool {
	p.text = utf8.AppendRune(p.text[:0], ch)
	p.fixed = hasFixedPrefix(p.text)
	p.number = isDigit(ch)
	p.dotted = false
	p.ident = isLetter(ch)
	return p.Valid()
}

// Extend appends ch if the longer candidate is still a prefix and reports
// whether it did. On false p is unchanged.
func (p *Prefix) Extend(ch rune) bool {
	n := len(p.text)
	text := utf8.AppendRune(p.text, ch)

	fixed := p.fixed && len(text) <= maxFixed && hasFixedPrefix(text)
	number := p.number && (isDigit(ch) || (ch == '.' && !p.dotted))
	ident := p.ident && (isLetter(ch) || isDigit(ch))
	if !fixed && !number && !ident {
		p.text = text[:n]
		return false
	}

	p.text = text
	p.fixed, p.number, p.ident = fixed, number, ident
	p.dotted = p.dotted || ch == '.'
	return true
}

// Valid reports whether the current candidate can still become a token.
func (p *Prefix) Valid() bool {
	return len(p.text) > 0 && (p.fixed || p.number || p.ident)
}

func (p *Prefix) String() string {
	return string(p.text)
}

func hasFixedPrefix(candidate []byte) bool {
	for _, lexeme := range fixed {
		if strings.HasPrefix(lexeme, string(candidate)) {
			return true
		}
	}
	return false
}

// isInteger accepts digit runs that fit in a signed 32-bit integer. Longer
// runs are still valid prefixes, so an overflowing numeral is scanned whole
// and classified as ERROR instead of being split.
func isInteger(lexeme string) bool {
	if !isDigits(lexeme) {
		return false
	}
	_, err := strconv.ParseInt(lexeme, 10, 32)
	return err == nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(rune(s[i])) {
			return false
		}
	}
	return true
}

func isFloat(lexeme string) bool {
	if lexeme == "" || lexeme[0] == '.' {
		return false
	}
	dots := 0
	for _, ch := range lexeme {
		if ch == '.' {
			dots++
			if dots > 1 {
				return false
			}
		} else if !isDigit(ch) {
			return false
		}
	}
	return dots == 1
}

func isIdentifier(lexeme string) bool {
	first, _ := utf8.DecodeRuneInString(lexeme)
	if lexeme == "" || !isLetter(first) {
		return false
	}
	for _, ch := range lexeme {
		if !isLetter(ch) && !isDigit(ch) {
			return false
		}
	}
	return true
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
