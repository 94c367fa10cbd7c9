package symtab

import "fmt"

// StringSymbol is one interned string literal
type StringSymbol struct {
	Value  string
	Name   string // generated data label, S_<n>
	Length int    // byte length, stored as the literal's first byte
}

// StringRepository interns literals and keeps them in first-seen order
type StringRepository struct {
	byValue map[string]*StringSymbol
	ordered []*StringSymbol
	nextID  int
}

func NewStringRepository() *StringRepository {
	return &StringRepository{byValue: make(map[string]*StringSymbol)}
}

// Intern returns the symbol for value, creating it on first use
func (r *StringRepository) Intern(value string) *StringSymbol {
	if sym, ok := r.byValue[value]; ok {
		return sym
	}
	sym := &StringSymbol{
		Value:  value,
		Name:   fmt.Sprintf("S_%d", r.nextID),
		Length: len(value),
	}
	r.nextID++
	r.byValue[value] = sym
	r.ordered = append(r.ordered, sym)
	return sym
}

func (r *StringRepository) Lookup(value string) (*StringSymbol, bool) {
	sym, ok := r.byValue[value]
	return sym, ok
}

func (r *StringRepository) All() []*StringSymbol {
	out := make([]*StringSymbol, len(r.ordered))
	copy(out, r.ordered)
	return out
}
