package codegen

import (
	"infinity/internal/ast"
	"infinity/internal/expr"
	"infinity/internal/symtab"
	"infinity/internal/typesys"
)

var builtins = map[string]func(g *CodeGen, c *ast.Call) error{
	"print":   (*CodeGen).generatePrint,
	"println": (*CodeGen).generatePrintln,
	"exit":    (*CodeGen).generateExit,
}

func isBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func (g *CodeGen) generateCall(c *ast.Call) error {
	if gen, ok := builtins[c.Name]; ok {
		return gen(g, c)
	}
	return g.generateUserCall(c)
}

// generateUserCall pushes arguments right to left and calls P_<name>. Held
// registers other than eax are saved around the call, since the callee's
// own loops reuse ecx and edi.
func (g *CodeGen) generateUserCall(c *ast.Call) error {
	fn, ok := g.symbols.Lookup(c.Name)
	if !ok || fn.Kind != symtab.Function {
		return nodeErrorf(c, "undefined function '%s'", c.Name)
	}
	if len(c.Args) != len(fn.Params) {
		return nodeErrorf(c, "function '%s' expects %d arguments, got %d", c.Name, len(fn.Params), len(c.Args))
	}

	saved := g.callerSaved()
	for _, r := range saved {
		g.emit.Instr("push", r)
	}
	for i := len(c.Args) - 1; i >= 0; i-- {
		if err := g.generateExpression(c.Args[i]); err != nil {
			return err
		}
		g.emit.Instr("push", resultReg)
	}
	g.emit.Instr("call", procName(c.Name))
	for i := len(saved) - 1; i >= 0; i-- {
		g.emit.Instr("pop", saved[i])
	}
	return nil
}

func (g *CodeGen) callerSaved() []string {
	var out []string
	seen := map[string]bool{resultReg: true}
	for _, r := range g.regs.HeldRegisters() {
		r = spillName(r)
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

func (g *CodeGen) generatePrint(c *ast.Call) error {
	for _, arg := range c.Args {
		if err := g.printValue(arg); err != nil {
			return err
		}
	}
	return nil
}

func (g *CodeGen) generatePrintln(c *ast.Call) error {
	if err := g.generatePrint(c); err != nil {
		return err
	}
	g.emit.Instr("call", "PrintNewLine")
	return nil
}

func (g *CodeGen) generateExit(c *ast.Call) error {
	if len(c.Args) != 1 {
		return nodeErrorf(c, "exit expects 1 argument, got %d", len(c.Args))
	}
	if err := g.pushValue(c.Args[0]); err != nil {
		return err
	}
	g.emit.Instr("call", "Exit")
	return nil
}

// printKind decides which runtime procedure prints e
func (g *CodeGen) printKind(e *expr.Expression) typesys.DataType {
	if name, ok := e.SingleVariable(); ok {
		if sym, found := g.symbols.Lookup(name); found {
			return sym.Type
		}
	}
	if op, ok := e.LastOp(); ok && expr.IsBoolean(op) {
		return typesys.Bool
	}
	return e.Type
}

func (g *CodeGen) printValue(e *expr.Expression) error {
	switch g.printKind(e) {
	case typesys.String:
		return g.printString(e)
	case typesys.Char:
		if err := g.pushValue(e); err != nil {
			return err
		}
		g.emit.Instr("call", "PrintChar")
		return nil
	case typesys.Bool:
		return g.printBool(e)
	default:
		if err := g.pushValue(e); err != nil {
			return err
		}
		g.emit.Instr("call", "PrintInt")
		return nil
	}
}

// pushValue pushes e as one dword argument
func (g *CodeGen) pushValue(e *expr.Expression) error {
	if e.IsConstant() && e.Type != typesys.String {
		g.emit.Instr("push", "dword "+imm(e.Int()))
		return nil
	}
	if err := g.generateExpression(e); err != nil {
		return err
	}
	g.emit.Instr("push", resultReg)
	return nil
}

// printString prints a length-prefixed string: a literal directly, or a
// variable through the pointer it holds
func (g *CodeGen) printString(e *expr.Expression) error {
	if e.IsConstant() {
		s := g.symbols.Strings.Intern(e.Value.Str)
		g.emit.Instr("push", "dword "+imm(int32(s.Length)))
		g.emit.Instr("push", s.Name+"+1")
		g.emit.Instr("call", "Print")
		return nil
	}
	name, ok := e.SingleVariable()
	if !ok {
		return g.pushAndPrintInt(e)
	}
	reg, err := g.regs.Request("ebx")
	if err != nil {
		return err
	}
	g.emit.Instr("mov", reg, "["+varName(name)+"]")
	g.emit.Instr("movzx", resultReg, "byte ["+reg+"]")
	g.emit.Instr("push", resultReg)
	g.emit.Instr("inc", reg)
	g.emit.Instr("push", reg)
	g.emit.Instr("call", "Print")
	return g.regs.Release(reg)
}

func (g *CodeGen) pushAndPrintInt(e *expr.Expression) error {
	if err := g.pushValue(e); err != nil {
		return err
	}
	g.emit.Instr("call", "PrintInt")
	return nil
}

func (g *CodeGen) printBool(e *expr.Expression) error {
	if e.IsConstant() {
		g.printBoolLiteral(e.Int() != 0)
		return nil
	}
	if err := g.generateExpression(e); err != nil {
		return err
	}
	falseLabel, done := g.emit.NewLabel(), g.emit.NewLabel()
	g.emit.Instr("cmp", resultReg, "0")
	g.emit.Instr("je", falseLabel)
	g.printBoolLiteral(true)
	g.emit.Instr("jmp", done)
	g.emit.Label(falseLabel)
	g.printBoolLiteral(false)
	g.emit.Label(done)
	return nil
}

func (g *CodeGen) printBoolLiteral(v bool) {
	if v {
		g.emit.Instr("push", "dword 4")
		g.emit.Instr("push", "true_str")
	} else {
		g.emit.Instr("push", "dword 5")
		g.emit.Instr("push", "false_str")
	}
	g.emit.Instr("call", "Print")
}
