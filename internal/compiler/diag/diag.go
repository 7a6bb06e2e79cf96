// Package diag accumulates the diagnostics of one parse. The text rendering
// is fixed; downstream tooling compares it byte for byte.
package diag

import (
	"fmt"
	"strings"
)

// Class separates fatal syntax errors from recoverable naming errors.
type Class int

const (
	Syntax Class = iota
	SyntaxAbort
	Declare
	Resolve
)

func (c Class) String() string {
	switch c {
	case Syntax, SyntaxAbort:
		return "SyntaxError"
	case Declare:
		return "DeclareSymbolError"
	case Resolve:
		return "ResolveSymbolError"
	}
	return "UnknownError"
}

// Entry is one reported problem.
type Entry struct {
	Class   Class
	Line    int
	Column  int
	Message string // text between the brackets
	Scopes  string // scope-chain dump, naming errors only
}

// Header renders "Class(line,col)[message]".
func (e Entry) Header() string {
	return fmt.Sprintf("%s(%d,%d)[%s]", e.Class, e.Line, e.Column, e.Message)
}

// Paint decorates a rendered piece of an entry, e.g. with terminal colours.
// The piece is either an entry header or a scope dump.
type Paint func(c Class, piece string) string

func (e Entry) render(sb *strings.Builder, paint Paint) {
	sb.WriteString(paint(e.Class, e.Header()))
	switch e.Class {
	case SyntaxAbort:
		// the abort line closes the report without a trailing newline
	case Declare, Resolve:
		sb.WriteByte('\n')
		if e.Scopes != "" {
			sb.WriteString(paint(e.Class, e.Scopes))
		}
		sb.WriteByte('\n')
	default:
		sb.WriteByte('\n')
	}
}

// Report is append-only for the lifetime of one parse.
type Report struct {
	entries []Entry
	aborted bool
}

func New() *Report {
	return &Report{}
}

// Expected records "Expected <want> but got <got>." at the offending token.
func (r *Report) Expected(line, col int, want, got fmt.Stringer) Entry {
	return r.add(Entry{
		Class:   Syntax,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf("Expected %s but got %s.", want, got),
	})
}

// ExpectedFrom records "Expected a token from <nonterminal> but got <got>.".
func (r *Report) ExpectedFrom(line, col int, nonterminal, got fmt.Stringer) Entry {
	return r.add(Entry{
		Class:   Syntax,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf("Expected a token from %s but got %s.", nonterminal, got),
	})
}

// Abort records the generic message closing a failed parse.
func (r *Report) Abort(line, col int) Entry {
	r.aborted = true
	return r.add(Entry{Class: SyntaxAbort, Line: line, Column: col, Message: "Could not complete parsing."})
}

// Redeclared records a name already bound in the current scope.
func (r *Report) Redeclared(line, col int, name, scopes string) Entry {
	return r.add(Entry{
		Class:   Declare,
		Line:    line,
		Column:  col,
		Message: name + " already exists.",
		Scopes:  scopes,
	})
}

// Unresolved records a name missing from every enclosing scope.
func (r *Report) Unresolved(line, col int, name, scopes string) Entry {
	return r.add(Entry{
		Class:   Resolve,
		Line:    line,
		Column:  col,
		Message: "Could not find " + name + ".",
		Scopes:  scopes,
	})
}

func (r *Report) add(e Entry) Entry {
	r.entries = append(r.entries, e)
	return e
}

// HasError reports whether anything was recorded.
func (r *Report) HasError() bool {
	return len(r.entries) != 0
}

// Aborted reports whether the parse stopped on a syntax error.
func (r *Report) Aborted() bool {
	return r.aborted
}

// Entries returns a copy of the recorded entries in emission order.
func (r *Report) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Count returns how many entries of class c were recorded.
func (r *Report) Count(c Class) int {
	n := 0
	for _, e := range r.entries {
		if e.Class == c {
			n++
		}
	}
	return n
}

func (r *Report) String() string {
	return r.Format(nil)
}

// Format renders the report, passing every header and dump through paint.
// A nil paint gives the plain text of String.
func (r *Report) Format(paint Paint) string {
	if paint == nil {
		paint = func(_ Class, piece string) string { return piece }
	}
	var sb strings.Builder
	for _, e := range r.entries {
		e.render(&sb, paint)
	}
	return sb.String()
}
