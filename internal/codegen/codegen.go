// Package codegen lowers an annotated syntax tree into NASM 32-bit x86
// assembly for Linux, using int 0x80 syscalls.
package codegen

import (
	"infinity/internal/ast"
	"infinity/internal/diag"
	"infinity/internal/symtab"
)

const (
	labelFormat = "L_%d"
	procPrefix  = "P_"
	varPrefix   = "V_"
	entryLabel  = "_start"
	resultReg   = "eax"
	argWidth    = 4
)

// CodeGen holds the state of one generation pass
type CodeGen struct {
	symbols *symtab.Table
	emit    *Emitter
	regs    *Allocator
}

// New creates a code generator reading symbols from table
func New(table *symtab.Table) *CodeGen {
	return &CodeGen{symbols: table}
}

// Generate produces the complete assembly file for program. Any error aborts
// the pass and no partial output is returned.
func (g *CodeGen) Generate(program *ast.Program) (string, error) {
	if program == nil || program.Start == nil {
		return "", diag.Errorf(diag.Compiler, "no start function")
	}
	if len(program.Start.Params) > 0 {
		return "", nodeErrorf(program.Start, "start function '%s' must not take parameters", program.Start.Name)
	}
	if !hasFunction(program, program.Start) {
		return "", nodeErrorf(program.Start, "start function '%s' is not a top-level function", program.Start.Name)
	}

	// functions are generated first so every string literal they use is
	// interned before the data segment is written
	g.emit = &Emitter{}
	g.regs = NewAllocator(g.emit)
	for _, fn := range program.Functions {
		if err := g.generateFunction(fn); err != nil {
			return "", err
		}
	}
	functions := g.emit.String()

	out := &Emitter{}
	writeData(out, g.symbols.Strings.All())
	writeBss(out, g.symbols.Variables())
	writeEntry(out, program.Start)
	out.out.WriteString(functions)
	out.Blank()
	out.out.WriteString(runtimeSource)
	return out.String(), nil
}

func hasFunction(program *ast.Program, fn *ast.FunctionDef) bool {
	for _, f := range program.Functions {
		if f == fn {
			return true
		}
	}
	return false
}

func procName(name string) string { return procPrefix + name }
func varName(name string) string  { return varPrefix + name }
