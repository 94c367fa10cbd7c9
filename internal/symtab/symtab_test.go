package symtab

import (
	"testing"

	"infinity/internal/typesys"
)

func TestDeclareAndLookup(t *testing.T) {
	tbl := New()
	x, err := tbl.DeclareVariable("x", typesys.Int)
	if err != nil {
		t.Fatalf("DeclareVariable: %v", err)
	}
	if x.Size != typesys.Dword {
		t.Fatalf("int should be dword, got=%s", x.Size)
	}
	c, _ := tbl.DeclareVariable("c", typesys.Char)
	if c.Size != typesys.Byte {
		t.Fatalf("char should be byte, got=%s", c.Size)
	}
	if _, err := tbl.DeclareVariable("x", typesys.Bool); err == nil {
		t.Fatalf("expected redeclaration error")
	}

	fn, err := tbl.DeclareFunction("add", typesys.Int, x, c)
	if err != nil {
		t.Fatalf("DeclareFunction: %v", err)
	}
	if len(fn.Params) != 2 || fn.Kind != Function {
		t.Fatalf("unexpected function symbol: %+v", fn)
	}
	if _, err := tbl.DeclareFunction("add", typesys.Void); err == nil {
		t.Fatalf("expected duplicate function error")
	}
	if _, err := tbl.DeclareFunction("bad", typesys.Void, fn); err == nil {
		t.Fatalf("function symbol accepted as parameter")
	}

	if got, ok := tbl.Lookup("c"); !ok || got != c {
		t.Fatalf("Lookup returned a different symbol")
	}
	vars := tbl.Variables()
	if len(vars) != 2 || vars[0].Name != "x" || vars[1].Name != "c" {
		t.Fatalf("Variables order unexpected: %v", vars)
	}
}

func TestStringRepositoryInterns(t *testing.T) {
	r := NewStringRepository()
	a := r.Intern("hello")
	b := r.Intern("world\n")
	if r.Intern("hello") != a {
		t.Fatalf("Intern is not idempotent")
	}
	if a.Name != "S_0" || b.Name != "S_1" {
		t.Fatalf("names=%q %q", a.Name, b.Name)
	}
	if b.Length != 6 {
		t.Fatalf("length=%d", b.Length)
	}
	if got, ok := r.Lookup("world\n"); !ok || got != b {
		t.Fatalf("Lookup failed")
	}
	if all := r.All(); len(all) != 2 || all[0] != a {
		t.Fatalf("All unexpected: %v", all)
	}
}
