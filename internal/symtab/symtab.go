// Package symtab holds the symbols the code generator reads: variables and
// functions by name, the ordered variable list used for the bss segment, and
// the interned string literals used for the data segment.
package symtab

import (
	"fmt"

	"infinity/internal/typesys"
)

// Kind distinguishes variables from functions
type Kind int

const (
	Variable Kind = iota
	Function
)

// Symbol is owned by the Table and shared by pointer, never copied
type Symbol struct {
	Name string
	Kind Kind
	Type typesys.DataType // variable type, or function return type
	Size typesys.Size

	// function symbols only
	Params   []*Symbol
	Returned bool
}

// Table maps names to symbols. Names are global: the language has no
// nested scopes that could shadow.
type Table struct {
	symbols   map[string]*Symbol
	variables []*Symbol
	Strings   *StringRepository
}

// New creates an empty symbol table
func New() *Table {
	return &Table{
		symbols: make(map[string]*Symbol),
		Strings: NewStringRepository(),
	}
}

// DeclareVariable adds a variable and appends it to the bss order
func (t *Table) DeclareVariable(name string, dt typesys.DataType) (*Symbol, error) {
	if _, exists := t.symbols[name]; exists {
		return nil, fmt.Errorf("variable '%s' already defined", name)
	}
	sym := &Symbol{Name: name, Kind: Variable, Type: dt, Size: typesys.SizeOf(dt)}
	t.symbols[name] = sym
	t.variables = append(t.variables, sym)
	return sym, nil
}

// DeclareFunction adds a function. Params must already be declared variables.
func (t *Table) DeclareFunction(name string, ret typesys.DataType, params ...*Symbol) (*Symbol, error) {
	if _, exists := t.symbols[name]; exists {
		return nil, fmt.Errorf("function '%s' already defined", name)
	}
	for _, p := range params {
		if p == nil || p.Kind != Variable {
			return nil, fmt.Errorf("function '%s': parameters must be variables", name)
		}
	}
	sym := &Symbol{Name: name, Kind: Function, Type: ret, Size: typesys.SizeOf(ret), Params: params}
	t.symbols[name] = sym
	return sym, nil
}

// Lookup finds a symbol by name
func (t *Table) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}

// Variables returns variables in declaration order
func (t *Table) Variables() []*Symbol {
	out := make([]*Symbol, len(t.variables))
	copy(out, t.variables)
	return out
}
