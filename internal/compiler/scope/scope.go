package scope

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arnavsurve/crux/internal/compiler/symbols"
)

var (
	ErrRedeclared = errors.New("symbol already declared in this scope")
	ErrNotFound   = errors.New("symbol not found")
)

// Builtins are bound in the global scope before any user declaration.
var Builtins = []string{"readInt", "readFloat", "printBool", "printInt", "printFloat", "println"}

// Handle indexes a scope in a Table.
type Handle int

// NoScope is the parent handle of the global scope.
const NoScope Handle = -1

// Global is the handle of the outermost scope.
const Global Handle = 0

type scope struct {
	parent  Handle
	depth   int
	order   []string // insertion order, for dumps
	symbols map[string]*symbols.Symbol
}

// Table is a chain of scopes stored in an arena. Scopes are entered and
// exited in strict nesting order, so the arena only ever holds the live
// chain from the global scope to the current one.
type Table struct {
	scopes  []scope
	current Handle
}

// NewTable returns a table whose global scope holds the builtins.
func NewTable() *Table {
	t := &Table{
		scopes:  []scope{newScope(NoScope, 0)},
		current: Global,
	}
	for _, name := range Builtins {
		if _, err := t.Declare(name); err != nil {
			panic(err)
		}
	}
	return t
}

func newScope(parent Handle, depth int) scope {
	return scope{parent: parent, depth: depth, symbols: make(map[string]*symbols.Symbol)}
}

func (t *Table) Current() Handle {
	return t.current
}

// Depth is 0 for the global scope and grows by one per nested scope.
func (t *Table) Depth() int {
	return t.scopes[t.current].depth
}

// Parent returns the enclosing scope of h, or NoScope for the global scope.
func (t *Table) Parent(h Handle) Handle {
	return t.scopes[h].parent
}

// Enter opens a scope nested in the current one and makes it current.
func (t *Table) Enter() Handle {
	cur := t.scopes[t.current]
	t.scopes = append(t.scopes, newScope(t.current, cur.depth+1))
	t.current = Handle(len(t.scopes) - 1)
	return t.current
}

// Exit closes the current scope. Exiting the global scope is a bug in the
// caller.
func (t *Table) Exit() Handle {
	parent := t.scopes[t.current].parent
	if parent == NoScope {
		panic("scope: exit from global scope")
	}
	t.scopes = t.scopes[:t.current]
	t.current = parent
	return t.current
}

// Declare binds name in the current scope only. Enclosing scopes are not
// consulted, so shadowing is allowed.
func (t *Table) Declare(name string) (*symbols.Symbol, error) {
	if _, exists := t.LookupCurrent(name); exists {
		return nil, fmt.Errorf("declare %q: %w", name, ErrRedeclared)
	}
	s := &t.scopes[t.current]
	sym := symbols.New(name)
	s.symbols[name] = sym
	s.order = append(s.order, name)
	return sym, nil
}

// Resolve searches from the current scope outwards; the innermost binding
// wins.
func (t *Table) Resolve(name string) (*symbols.Symbol, error) {
	for h := t.current; h != NoScope; h = t.Parent(h) {
		if sym, ok := t.scopes[h].symbols[name]; ok {
			return sym, nil
		}
	}
	return nil, fmt.Errorf("resolve %q: %w", name, ErrNotFound)
}

// LookupCurrent checks only the current scope level.
func (t *Table) LookupCurrent(name string) (*symbols.Symbol, bool) {
	sym, ok := t.scopes[t.current].symbols[name]
	return sym, ok
}

// Dump renders the chain ending at the current scope, outermost first, one
// line per symbol indented two spaces per depth level.
func (t *Table) Dump() string {
	var sb strings.Builder
	t.dump(&sb, t.current)
	return sb.String()
}

func (t *Table) dump(sb *strings.Builder, h Handle) {
	if parent := t.Parent(h); parent != NoScope {
		t.dump(sb, parent)
	}
	s := t.scopes[h]
	indent := strings.Repeat("  ", s.depth)
	for _, name := range s.order {
		sb.WriteString(indent)
		sb.WriteString(s.symbols[name].String())
		sb.WriteByte('\n')
	}
}
