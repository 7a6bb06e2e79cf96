package lexer_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/crux/internal/compiler/lexer"
	"github.com/arnavsurve/crux/internal/compiler/token"
)

// kindsOf lexes input and returns the token types, EOF included.
func kindsOf(t *testing.T, input string) []token.TokenType {
	t.Helper()
	var kinds []token.TokenType
	for _, tok := range lexer.NewStringLexer(input).Tokenize() {
		kinds = append(kinds, tok.Type)
	}
	return kinds
}

// stripPositions drops line/column so streams from differently laid out
// sources can be compared.
func stripPositions(toks []token.Token) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tok := range toks {
		out[i] = token.Token{Type: tok.Type, Literal: tok.Literal}
	}
	return out
}

func TestMaximalMunch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.TokenType
	}{
		{"equal", "a == b", []token.TokenType{token.TokenIdent, token.TokenEqual, token.TokenIdent, token.TokenEOF}},
		{"assign", "a = b", []token.TokenType{token.TokenIdent, token.TokenAssign, token.TokenIdent, token.TokenEOF}},
		{"call", "::f", []token.TokenType{token.TokenCall, token.TokenIdent, token.TokenEOF}},
		{"colons", ": :", []token.TokenType{token.TokenColon, token.TokenColon, token.TokenEOF}},
		{"triple colon", ":::", []token.TokenType{token.TokenCall, token.TokenColon, token.TokenEOF}},
		{"relational", "<=>", []token.TokenType{token.TokenLesserEqual, token.TokenGreaterThan, token.TokenEOF}},
		{"not equal", "a!=b", []token.TokenType{token.TokenIdent, token.TokenNotEqual, token.TokenIdent, token.TokenEOF}},
		{"bang", "!a", []token.TokenType{token.TokenError, token.TokenIdent, token.TokenEOF}},
		{"keyword prefix", "iffy if", []token.TokenType{token.TokenIdent, token.TokenIf, token.TokenEOF}},
		{"digits then letters", "12abc", []token.TokenType{token.TokenInt, token.TokenIdent, token.TokenEOF}},
		{"float", "3.14 1.", []token.TokenType{token.TokenFloat, token.TokenFloat, token.TokenEOF}},
		{"two dots", "1.2.3", []token.TokenType{token.TokenFloat, token.TokenError, token.TokenInt, token.TokenEOF}},
		{"division", "a/b", []token.TokenType{token.TokenIdent, token.TokenDiv, token.TokenIdent, token.TokenEOF}},
		{"no whitespace", "let x[i]=::f(1,2.0);", []token.TokenType{
			token.TokenLet, token.TokenIdent, token.TokenOpenBracket, token.TokenIdent, token.TokenCloseBracket,
			token.TokenAssign, token.TokenCall, token.TokenIdent, token.TokenOpenParen, token.TokenInt,
			token.TokenComma, token.TokenFloat, token.TokenCloseParen, token.TokenSemicolon, token.TokenEOF,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, kindsOf(t, tt.input)); diff != "" {
				t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	toks := lexer.NewStringLexer("a == b").Tokenize()
	want := []token.Token{
		{Type: token.TokenIdent, Literal: "a", Line: 1, Column: 1},
		{Type: token.TokenEqual, Line: 1, Column: 3},
		{Type: token.TokenIdent, Literal: "b", Line: 1, Column: 6},
		{Type: token.TokenEOF, Line: 1, Column: 7},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}

	toks = lexer.NewStringLexer("var x\n\tlet  y").Tokenize()
	want = []token.Token{
		{Type: token.TokenVar, Line: 1, Column: 1},
		{Type: token.TokenIdent, Literal: "x", Line: 1, Column: 5},
		{Type: token.TokenLet, Line: 2, Column: 2},
		{Type: token.TokenIdent, Literal: "y", Line: 2, Column: 7},
		{Type: token.TokenEOF, Line: 2, Column: 8},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLineBreaks(t *testing.T) {
	for _, input := range []string{"a\nb", "a\r\nb", "a\rb"} {
		toks := lexer.NewStringLexer(input).Tokenize()
		require.Len(t, toks, 3, "%q", input)
		assert.Equal(t, 2, toks[1].Line, "%q", input)
		assert.Equal(t, 1, toks[1].Column, "%q", input)
	}

	toks := lexer.NewStringLexer("a\n\n\r\n\nb").Tokenize()
	assert.Equal(t, 5, toks[1].Line)
}

func TestCommentSkipping(t *testing.T) {
	withComment := lexer.NewStringLexer("var x // comment\n: int;").Tokenize()
	plain := lexer.NewStringLexer("var x : int;").Tokenize()
	if diff := cmp.Diff(stripPositions(plain), stripPositions(withComment)); diff != "" {
		t.Errorf("comment changed the token stream (-want +got):\n%s", diff)
	}

	colon := withComment[2]
	assert.Equal(t, token.TokenColon, colon.Type)
	assert.Equal(t, 2, colon.Line)
	assert.Equal(t, 1, colon.Column)

	assert.Equal(t, []token.TokenType{token.TokenIdent, token.TokenEOF}, kindsOf(t, "a// trailing"))
	assert.Equal(t, []token.TokenType{token.TokenEOF}, kindsOf(t, "//"))
	assert.Equal(t, []token.TokenType{token.TokenIdent, token.TokenEOF}, kindsOf(t, "// one\n// two\r\nz"))
}

func TestOverflowingInteger(t *testing.T) {
	toks := lexer.NewStringLexer("2147483647 99999999999;").Tokenize()
	require.Len(t, toks, 4)
	assert.Equal(t, token.Token{Type: token.TokenInt, Literal: "2147483647", Line: 1, Column: 1}, toks[0])
	assert.Equal(t, token.Token{Type: token.TokenError, Literal: "99999999999", Line: 1, Column: 12}, toks[1])
	assert.Equal(t, token.TokenSemicolon, toks[2].Type)
}

func TestLongTokensScanInLinearTime(t *testing.T) {
	const size = 1 << 20
	tests := []struct {
		name  string
		input string
		want  token.TokenType
	}{
		{"identifier", strings.Repeat("a", size), token.TokenIdent},
		{"numeral", strings.Repeat("9", size), token.TokenError},
		{"float", "1." + strings.Repeat("5", size), token.TokenFloat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			toks := lexer.NewStringLexer(tt.input + " ;").Tokenize()
			elapsed := time.Since(start)

			require.Len(t, toks, 3)
			assert.Equal(t, tt.want, toks[0].Type)
			assert.Len(t, toks[0].Literal, len(tt.input))
			assert.Equal(t, token.TokenSemicolon, toks[1].Type)
			assert.True(t, elapsed < time.Second, "scanning took %s", elapsed)
		})
	}
}

func TestEOFRepeats(t *testing.T) {
	l := lexer.NewStringLexer("x")
	assert.Equal(t, token.TokenIdent, l.NextToken().Type)
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		assert.Equal(t, token.TokenEOF, tok.Type)
		assert.Equal(t, 2, tok.Column)
	}
	assert.NoError(t, l.Err())
}

func TestSingleEOFAndMonotonicPositions(t *testing.T) {
	inputs := []string{
		"",
		"   \t\n",
		"var x: int;\nfunc main(): void {\n  ::printInt(x + 1);\n}\n",
		"@#$%^&",
		"a==b!=c<=d>=e",
		"// only a comment",
		"array a: int[3][4];\r\nlet a[1][2] = 3.5;",
	}
	for _, input := range inputs {
		toks := lexer.NewStringLexer(input).Tokenize()
		eofs := 0
		for i, tok := range toks {
			if tok.Type == token.TokenEOF {
				eofs++
			}
			if i == 0 {
				continue
			}
			prev := toks[i-1]
			ordered := tok.Line > prev.Line || (tok.Line == prev.Line && tok.Column >= prev.Column)
			assert.True(t, ordered, "%q: %v before %v", input, prev, tok)
		}
		assert.Equal(t, 1, eofs, "%q", input)
		assert.Equal(t, token.TokenEOF, toks[len(toks)-1].Type, "%q", input)
	}
}

type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("disk on fire")
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestReadErrorEndsStream(t *testing.T) {
	l := lexer.NewLexer(&failingReader{data: "var x"}, nil)
	got := l.Tokenize()
	assert.Equal(t, []token.TokenType{token.TokenVar, token.TokenIdent, token.TokenEOF},
		[]token.TokenType{got[0].Type, got[1].Type, got[2].Type})
	require.Error(t, l.Err())
	assert.False(t, errors.Is(l.Err(), io.EOF))
}

func TestRuneReaderUsedDirectly(t *testing.T) {
	l := lexer.NewLexer(strings.NewReader("größe := 1"), nil)
	tok := l.NextToken()
	assert.Equal(t, token.Token{Type: token.TokenIdent, Literal: "größe", Line: 1, Column: 1}, tok)
	tok = l.NextToken()
	assert.Equal(t, token.TokenColon, tok.Type)
	assert.Equal(t, 7, tok.Column)
}
