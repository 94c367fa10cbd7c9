package codegen

import (
	"fmt"
	"strconv"

	"infinity/internal/ast"
	"infinity/internal/diag"
	"infinity/internal/symtab"
	"infinity/internal/typesys"
)

func (g *CodeGen) generateStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return g.generateVarDecl(s)
	case *ast.Assign:
		return g.generateAssign(s)
	case *ast.If:
		return g.generateIf(s)
	case *ast.Loop:
		if s.Counter == "" {
			return g.generateSimpleLoop(s)
		}
		return g.generateCounterLoop(s)
	case *ast.While:
		return g.generateWhile(s)
	case *ast.Call:
		return g.generateCall(s)
	case *ast.Return:
		return g.generateReturn(s)
	case *ast.Swap:
		return g.generateSwap(s)
	case *ast.Block:
		_, err := g.generateBlock(s)
		return err
	case *ast.FunctionDef:
		return nodeErrorf(s, "function '%s' must be defined at top level", s.Name)
	default:
		return diag.Internal("unknown statement %T", stmt)
	}
}

// generateBlock reports whether the last statement of the block is a
// return. Returns nested in if/else or loops are not looked at.
func (g *CodeGen) generateBlock(b *ast.Block) (bool, error) {
	if b == nil {
		return false, nil
	}
	for _, s := range b.Statements {
		if err := g.generateStatement(s); err != nil {
			return false, err
		}
	}
	if len(b.Statements) == 0 {
		return false, nil
	}
	_, returned := b.Statements[len(b.Statements)-1].(*ast.Return)
	return returned, nil
}

func (g *CodeGen) generateVarDecl(vd *ast.VarDecl) error {
	if vd.Value == nil {
		return nil
	}
	if err := g.generateValue(vd.Value); err != nil {
		return err
	}
	return g.store(vd.Name, vd)
}

func (g *CodeGen) generateAssign(as *ast.Assign) error {
	if err := g.generateValue(as.Value); err != nil {
		return err
	}
	return g.store(as.Name, as)
}

func (g *CodeGen) generateIf(i *ast.If) error {
	if err := g.generateExpression(i.Cond); err != nil {
		return err
	}
	falseLabel := g.emit.NewLabel()
	g.emit.Instr("cmp", resultReg, "0")
	g.emit.Instr("je", falseLabel)
	if _, err := g.generateBlock(i.Then); err != nil {
		return err
	}
	if i.Else == nil {
		g.emit.Label(falseLabel)
		return nil
	}
	done := g.emit.NewLabel()
	g.emit.Instr("jmp", done)
	g.emit.Label(falseLabel)
	if _, err := g.generateBlock(i.Else); err != nil {
		return err
	}
	g.emit.Label(done)
	return nil
}

// generateSimpleLoop counts ecx down to zero. dec/jnz is used over the loop
// instruction, whose rel8 displacement cannot reach across larger bodies.
func (g *CodeGen) generateSimpleLoop(l *ast.Loop) error {
	if l.Count == nil {
		return nodeErrorf(l, "loop without an iteration count")
	}
	if l.Count.IsConstant() && l.Count.Int() <= 0 {
		g.emit.Comment("loop of " + imm(l.Count.Int()) + " iterations skipped")
		return nil
	}

	ecx, err := g.regs.Request("ecx")
	if err != nil {
		return err
	}
	top, end := g.emit.NewLabel(), ""
	if l.Count.IsConstant() {
		g.emit.Instr("mov", ecx, imm(l.Count.Int()))
	} else {
		if err := g.generateExpression(l.Count); err != nil {
			return err
		}
		end = g.emit.NewLabel()
		g.emit.Instr("mov", ecx, resultReg)
		g.emit.Instr("cmp", ecx, "0")
		g.emit.Instr("jle", end)
	}
	g.emit.Label(top)
	if _, err := g.generateBlock(l.Body); err != nil {
		return err
	}
	g.emit.Instr("dec", ecx)
	g.emit.Instr("jnz", top)
	if end != "" {
		g.emit.Label(end)
	}
	return g.regs.Release(ecx)
}

// generateCounterLoop walks the counter from Start toward End, stopping
// before End. The bound lives in edi for the whole loop.
func (g *CodeGen) generateCounterLoop(l *ast.Loop) error {
	if l.Start == nil || l.End == nil {
		return nodeErrorf(l, "loop '%s' is missing a bound", l.Counter)
	}
	counter, err := g.variable(l.Counter, l.Token)
	if err != nil {
		return err
	}
	if counter.Size != typesys.Dword || counter.Type != typesys.Int {
		return nodeErrorf(l, "loop counter '%s' must be an int", l.Counter)
	}
	slot := "dword [" + varName(counter.Name) + "]"

	edi, err := g.regs.Request("edi")
	if err != nil {
		return err
	}
	if err := g.generateExpression(l.End); err != nil {
		return err
	}
	g.emit.Instr("mov", edi, resultReg)
	if err := g.generateExpression(l.Start); err != nil {
		return err
	}
	g.emit.Instr("mov", slot, resultReg)

	top, end := g.emit.NewLabel(), g.emit.NewLabel()
	g.emit.Label(top)
	g.emit.Instr("cmp", slot, edi)
	g.emit.Instr("je", end)
	if _, err := g.generateBlock(l.Body); err != nil {
		return err
	}
	if l.Start.IsConstant() && l.End.IsConstant() {
		if l.Forward {
			g.emit.Instr("inc", slot)
		} else {
			g.emit.Instr("dec", slot)
		}
		g.emit.Instr("jmp", top)
	} else {
		up := g.emit.NewLabel()
		g.emit.Instr("cmp", slot, edi)
		g.emit.Instr("jl", up)
		g.emit.Instr("dec", slot)
		g.emit.Instr("jmp", top)
		g.emit.Label(up)
		g.emit.Instr("inc", slot)
		g.emit.Instr("jmp", top)
	}
	g.emit.Label(end)
	return g.regs.Release(edi)
}

func (g *CodeGen) generateWhile(w *ast.While) error {
	top, end := g.emit.NewLabel(), g.emit.NewLabel()
	g.emit.Label(top)
	if err := g.generateExpression(w.Cond); err != nil {
		return err
	}
	g.emit.Instr("cmp", resultReg, "0")
	g.emit.Instr("je", end)
	if _, err := g.generateBlock(w.Body); err != nil {
		return err
	}
	g.emit.Instr("jmp", top)
	g.emit.Label(end)
	return nil
}

func (g *CodeGen) generateFunction(fd *ast.FunctionDef) error {
	sym, ok := g.symbols.Lookup(fd.Name)
	if !ok || sym.Kind != symtab.Function {
		return nodeErrorf(fd, "undefined function '%s'", fd.Name)
	}
	if len(sym.Params) != len(fd.Params) {
		return nodeErrorf(fd, "function '%s' declares %d parameters, symbol has %d", fd.Name, len(fd.Params), len(sym.Params))
	}

	name := procName(fd.Name)
	g.emit.Blank()
	g.emit.Line("global %s", name)
	g.emit.Label(name)
	if len(fd.Params) > 0 {
		g.emit.Instr("push", "ebp")
		g.emit.Instr("mov", "ebp", "esp")
		for i, p := range fd.Params {
			g.emit.Instr("mov", resultReg, fmt.Sprintf("[ebp+%d]", 8+argWidth*i))
			if err := g.store(p, fd); err != nil {
				return err
			}
		}
	}

	returned, err := g.generateBlock(fd.Body)
	if err != nil {
		return err
	}
	if !returned {
		g.epilogue(len(fd.Params))
	}
	sym.Returned = returned
	g.emit.Comment("end " + name)

	if n := g.regs.Outstanding(); n != 0 {
		return diag.Internal("%d register holds outstanding after '%s'", n, fd.Name)
	}
	return nil
}

// epilogue returns from a function with argc parameters, popping them
func (g *CodeGen) epilogue(argc int) {
	if argc > 0 {
		g.emit.Instr("mov", "esp", "ebp")
		g.emit.Instr("pop", "ebp")
		g.emit.Instr("ret", strconv.Itoa(argWidth*argc))
		return
	}
	// no frame to unwind; drop any loop spills still on the stack
	if depth := g.regs.SpillDepth(); depth > 0 {
		g.emit.Instr("add", "esp", strconv.Itoa(argWidth*depth))
	}
	g.emit.Instr("ret")
}

func (g *CodeGen) generateReturn(r *ast.Return) error {
	if r.Value != nil {
		if err := g.generateValue(r.Value); err != nil {
			return err
		}
	}
	g.epilogue(r.ArgCount)
	return nil
}

// generateSwap exchanges two variables through one register and xchg
func (g *CodeGen) generateSwap(s *ast.Swap) error {
	a, err := g.variable(s.A, s.Token)
	if err != nil {
		return err
	}
	b, err := g.variable(s.B, s.Token)
	if err != nil {
		return err
	}
	if a.Size != b.Size || a.Size == typesys.NoSize {
		return nodeErrorf(s, "cannot swap '%s' (%s) with '%s' (%s)", s.A, a.Size, s.B, b.Size)
	}

	want, width := resultReg, "dword"
	if a.Size == typesys.Byte {
		want, _ = LowerByte(resultReg)
		width = "byte"
	}
	reg, err := g.regs.Request(want)
	if err != nil {
		return err
	}
	g.emit.Instr("mov", reg, width+" ["+varName(a.Name)+"]")
	g.emit.Instr("xchg", reg, width+" ["+varName(b.Name)+"]")
	g.emit.Instr("mov", width+" ["+varName(a.Name)+"]", reg)
	return g.regs.Release(reg)
}
