package main

import (
	"fmt"

	"infinity/internal/ast"
	"infinity/internal/codegen"
	"infinity/internal/expr"
	"infinity/internal/lexer"
	"infinity/internal/symtab"
	"infinity/internal/token"
	"infinity/internal/typesys"
)

// builder assembles an annotated program by hand, standing in for the
// parser and semantic passes. The first failure is kept in err.
type builder struct {
	table *symtab.Table
	err   error
}

func newBuilder() *builder {
	return &builder{table: symtab.New()}
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// x compiles one expression from text
func (b *builder) x(src string) *expr.Expression {
	toks, err := lexer.Split(src)
	if err != nil {
		b.fail(fmt.Errorf("expression %q: %w", src, err))
		return nil
	}
	e, err := expr.Compile(toks)
	if err != nil {
		b.fail(err)
		return nil
	}
	return e
}

func (b *builder) val(src string) ast.Value { return &ast.Arith{X: b.x(src)} }

func (b *builder) vars(dt typesys.DataType, names ...string) {
	for _, n := range names {
		if _, err := b.table.DeclareVariable(n, dt); err != nil {
			b.fail(err)
		}
	}
}

func (b *builder) fn(name string, ret typesys.DataType, params []string, body ...ast.Statement) *ast.FunctionDef {
	var syms []*symtab.Symbol
	for _, p := range params {
		sym, ok := b.table.Lookup(p)
		if !ok {
			b.fail(fmt.Errorf("function %s: undeclared parameter %s", name, p))
			continue
		}
		syms = append(syms, sym)
	}
	if _, err := b.table.DeclareFunction(name, ret, syms...); err != nil {
		b.fail(err)
	}
	return &ast.FunctionDef{Token: ident(name), Name: name, Params: params, ReturnType: ret, Body: block(body...)}
}

func (b *builder) call(name string, args ...string) *ast.Call {
	c := &ast.Call{Token: ident(name), Name: name}
	for _, a := range args {
		c.Args = append(c.Args, b.x(a))
	}
	return c
}

func ident(name string) token.Token { return token.Token{Type: token.IDENT, Literal: name} }

func block(stmts ...ast.Statement) *ast.Block { return &ast.Block{Statements: stmts} }

type sample struct {
	name        string
	description string
	build       func(b *builder) *ast.Program
}

var samples = []sample{
	{"hello", "print a greeting", buildHello},
	{"factorial", "iterative factorials through a function call", buildFactorial},
	{"countdown", "while loop with char output", buildCountdown},
	{"fizzbuzz", "counted loop, boolean function and nested if/else", buildFizzBuzz},
	{"swap", "exchange two characters and exit with a computed code", buildSwap},
}

func findSample(name string) (sample, bool) {
	for _, s := range samples {
		if s.name == name {
			return s, true
		}
	}
	return sample{}, false
}

// compileSample builds a sample and generates its assembly
func compileSample(s sample) (string, error) {
	b := newBuilder()
	prog := s.build(b)
	if b.err != nil {
		return "", b.err
	}
	return codegen.New(b.table).Generate(prog)
}

func program(fns ...*ast.FunctionDef) *ast.Program {
	return &ast.Program{Functions: fns, Start: fns[0]}
}

func buildHello(b *builder) *ast.Program {
	return program(b.fn("main", typesys.Void, nil,
		b.call("println", `"Hello, world!"`),
	))
}

func buildFactorial(b *builder) *ast.Program {
	b.vars(typesys.Int, "n", "result", "i", "k", "f")
	factorial := b.fn("factorial", typesys.Int, []string{"n"},
		&ast.VarDecl{Name: "result", Type: typesys.Int, Value: b.val("1")},
		&ast.Loop{Counter: "i", Start: b.x("1"), End: b.x("n + 1"), Body: block(
			&ast.Assign{Name: "result", Value: b.val("result * i")},
		)},
		&ast.Return{Value: b.val("result"), ArgCount: 1},
	)
	main := b.fn("main", typesys.Void, nil,
		&ast.Loop{Counter: "k", Start: b.x("0"), End: b.x("8"), Forward: true, Body: block(
			&ast.VarDecl{Name: "f", Type: typesys.Int, Value: &ast.Call{Token: ident("factorial"), Name: "factorial", Args: []*expr.Expression{b.x("k")}}},
			b.call("print", "k", `"! = "`, "f"),
			b.call("println"),
		)},
		b.call("println", `"10! folded = "`, "10!"),
	)
	return program(main, factorial)
}

func buildCountdown(b *builder) *ast.Program {
	b.vars(typesys.Int, "n")
	return program(b.fn("main", typesys.Void, nil,
		&ast.VarDecl{Name: "n", Type: typesys.Int, Value: b.val("5")},
		&ast.While{Cond: b.x("n > 0"), Body: block(
			b.call("print", "n", "' '"),
			&ast.Assign{Name: "n", Value: b.val("n - 1")},
		)},
		b.call("println", `"liftoff!"`),
	))
}

func buildFizzBuzz(b *builder) *ast.Program {
	b.vars(typesys.Int, "x", "d", "i")
	b.vars(typesys.Bool, "fizz", "buzz")
	divisible := b.fn("divisible", typesys.Bool, []string{"x", "d"},
		&ast.Return{Value: b.val("x % d == 0"), ArgCount: 2},
	)
	check := func(name, divisor string) ast.Statement {
		return &ast.VarDecl{Name: name, Type: typesys.Bool, Value: &ast.Call{
			Token: ident("divisible"), Name: "divisible", Args: []*expr.Expression{b.x("i"), b.x(divisor)},
		}}
	}
	main := b.fn("main", typesys.Void, nil,
		&ast.Loop{Counter: "i", Start: b.x("1"), End: b.x("16"), Forward: true, Body: block(
			check("fizz", "3"),
			check("buzz", "5"),
			&ast.If{Cond: b.x("fizz and buzz"), Then: block(b.call("println", `"FizzBuzz"`)), Else: block(
				&ast.If{Cond: b.x("fizz"), Then: block(b.call("println", `"Fizz"`)), Else: block(
					&ast.If{Cond: b.x("buzz"), Then: block(b.call("println", `"Buzz"`)), Else: block(
						b.call("println", "i"),
					)},
				)},
			)},
		)},
	)
	return program(main, divisible)
}

func buildSwap(b *builder) *ast.Program {
	b.vars(typesys.Char, "first", "second")
	return program(b.fn("main", typesys.Int, nil,
		&ast.VarDecl{Name: "first", Type: typesys.Char, Value: b.val("'a'")},
		&ast.VarDecl{Name: "second", Type: typesys.Char, Value: b.val("'z'")},
		&ast.Swap{Token: ident("swap"), A: "first", B: "second"},
		b.call("println", "first", "second", "first < second"),
		&ast.Return{Value: b.val("second - 'a' + 2 ^ 3"), ArgCount: 0},
	))
}
