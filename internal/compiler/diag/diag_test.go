package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type name string

func (n name) String() string { return string(n) }

func TestEmptyReport(t *testing.T) {
	r := New()
	assert.False(t, r.HasError())
	assert.False(t, r.Aborted())
	assert.Equal(t, "", r.String())
}

func TestSyntaxFormats(t *testing.T) {
	r := New()
	r.Expected(3, 14, name("SEMICOLON"), name("EOF"))
	r.Abort(3, 14)

	want := "SyntaxError(3,14)[Expected SEMICOLON but got EOF.]\n" +
		"SyntaxError(3,14)[Could not complete parsing.]"
	assert.Equal(t, want, r.String())
	assert.True(t, r.HasError())
	assert.True(t, r.Aborted())
	assert.Equal(t, 1, r.Count(SyntaxAbort))
}

func TestExpectedFrom(t *testing.T) {
	r := New()
	e := r.ExpectedFrom(1, 8, name("EXPRESSION3"), name("SEMICOLON"))
	assert.Equal(t, "SyntaxError(1,8)[Expected a token from EXPRESSION3 but got SEMICOLON.]", e.Header())
}

func TestNamingFormats(t *testing.T) {
	r := New()
	dump := "Symbol(printInt)\n  Symbol(x)\n"
	r.Redeclared(2, 5, "x", dump)
	r.Unresolved(4, 9, "y", dump)

	want := "DeclareSymbolError(2,5)[x already exists.]\n" +
		dump + "\n" +
		"ResolveSymbolError(4,9)[Could not find y.]\n" +
		dump + "\n"
	assert.Equal(t, want, r.String())
	assert.False(t, r.Aborted())
	assert.Equal(t, 1, r.Count(Declare))
	assert.Equal(t, 1, r.Count(Resolve))

	entries := r.Entries()
	entries[0].Message = "mutated"
	assert.Equal(t, "x already exists.", r.Entries()[0].Message)
}

func TestClassNames(t *testing.T) {
	assert.Equal(t, "SyntaxError", Syntax.String())
	assert.Equal(t, "SyntaxError", SyntaxAbort.String())
	assert.Equal(t, "DeclareSymbolError", Declare.String())
	assert.Equal(t, "ResolveSymbolError", Resolve.String())
}

func TestFormatPaintsHeadersAndDumps(t *testing.T) {
	r := New()
	r.Unresolved(1, 1, "y", "Symbol(x)\n")
	r.Expected(2, 3, name("SEMICOLON"), name("EOF"))
	r.Abort(2, 3)

	got := r.Format(func(c Class, piece string) string {
		return "<" + c.String() + ">" + piece
	})
	want := "<ResolveSymbolError>ResolveSymbolError(1,1)[Could not find y.]\n" +
		"<ResolveSymbolError>Symbol(x)\n\n" +
		"<SyntaxError>SyntaxError(2,3)[Expected SEMICOLON but got EOF.]\n" +
		"<SyntaxError>SyntaxError(2,3)[Could not complete parsing.]"
	assert.Equal(t, want, got)
	assert.Equal(t, r.String(), r.Format(nil))
}
