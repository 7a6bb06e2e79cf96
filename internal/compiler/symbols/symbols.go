package symbols

import "fmt"

// Symbol is a name handle. Crux symbols carry no type or value at this
// stage; an error symbol stands in where declaration or resolution failed.
type Symbol struct {
	Name string

	// Err holds the diagnostic for error symbols and is empty otherwise.
	Err string
}

func New(name string) *Symbol {
	return &Symbol{Name: name}
}

// NewError returns a placeholder for a failed declaration or lookup.
func NewError(name, message string) *Symbol {
	return &Symbol{Name: name, Err: message}
}

func (s *Symbol) IsError() bool {
	return s.Err != ""
}

// String renders "Symbol(name)". Error symbols show their diagnostic in
// place of the name.
func (s *Symbol) String() string {
	if s.IsError() {
		return fmt.Sprintf("Symbol(%s)", s.Err)
	}
	return fmt.Sprintf("Symbol(%s)", s.Name)
}
