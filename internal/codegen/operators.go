package codegen

import (
	"infinity/internal/diag"
	"infinity/internal/expr"
)

// operatorContext is what every operator generator receives. a and b are
// the working registers the two stacked operands are popped into; left and
// right carry the placeholder markers of those operands.
type operatorContext struct {
	a, b        string
	left, right expr.Marker
	isLast      bool
	op          expr.Token
}

type operatorGen func(g *CodeGen, c operatorContext) error

var operatorGenerators = map[expr.Op]operatorGen{
	expr.Add:   arithmetic("add"),
	expr.Sub:   arithmetic("sub"),
	expr.Mul:   arithmetic("imul"),
	expr.Div:   division(false),
	expr.Mod:   division(true),
	expr.Pow:   (*CodeGen).genPower,
	expr.Fact:  (*CodeGen).genFactorial,
	expr.Eq:    comparison("sete"),
	expr.NotEq: comparison("setne"),
	expr.Gt:    comparison("setg"),
	expr.GtEq:  comparison("setge"),
	expr.Lt:    comparison("setl"),
	expr.LtEq:  comparison("setle"),
	expr.And:   (*CodeGen).genAnd,
	expr.Or:    (*CodeGen).genOr,
	expr.Not:   (*CodeGen).genNot,
}

// finish leaves the result in a for the outermost operator, otherwise
// pushes it back for the next one
func (g *CodeGen) finish(c operatorContext) {
	if !c.isLast {
		g.emit.Instr("push", c.a)
	}
}

func (g *CodeGen) popOperands(c operatorContext) error {
	if c.left != expr.NoMarker || c.right != expr.NoMarker {
		return diag.Internal("operator '%s' received a placeholder operand", c.op.Op)
	}
	g.emit.Instr("pop", c.b)
	g.emit.Instr("pop", c.a)
	return nil
}

func arithmetic(instr string) operatorGen {
	return func(g *CodeGen, c operatorContext) error {
		if err := g.popOperands(c); err != nil {
			return err
		}
		g.emit.Instr(instr, c.a, c.b)
		g.finish(c)
		return nil
	}
}

// division guards a zero divisor at run time before idiv can fault
func division(remainder bool) operatorGen {
	return func(g *CodeGen, c operatorContext) error {
		if err := g.popOperands(c); err != nil {
			return err
		}
		ok := g.emit.NewLabel()
		g.emit.Instr("cmp", c.b, "0")
		g.emit.Instr("jne", ok)
		g.emit.Instr("call", "ExitDivByZero")
		g.emit.Label(ok)

		edx, err := g.regs.Request("edx")
		if err != nil {
			return err
		}
		g.emit.Instr("cdq")
		g.emit.Instr("idiv", c.b)
		if remainder {
			g.emit.Instr("mov", c.a, edx)
		}
		if err := g.regs.Release(edx); err != nil {
			return err
		}
		g.finish(c)
		return nil
	}
}

// Power pops both stacked operands itself
func (g *CodeGen) genPower(c operatorContext) error {
	if c.left != expr.NoMarker || c.right != expr.NoMarker {
		return diag.Internal("operator '^' received a placeholder operand")
	}
	g.emit.Instr("call", "Power")
	g.finish(c)
	return nil
}

func (g *CodeGen) genFactorial(c operatorContext) error {
	if c.right != expr.FactMarker || c.left != expr.NoMarker {
		return diag.Internal("factorial without its placeholder")
	}
	g.emit.Instr("call", "Fact")
	g.finish(c)
	return nil
}

// setFlag materializes a 0/1 result through dl into a
func (g *CodeGen) setFlag(c operatorContext, emitTest func(dl string)) error {
	edx, err := g.regs.Request("edx")
	if err != nil {
		return err
	}
	dl, _ := LowerByte(edx)
	emitTest(dl)
	g.emit.Instr("movzx", edx, dl)
	g.emit.Instr("mov", c.a, edx)
	if err := g.regs.Release(edx); err != nil {
		return err
	}
	g.finish(c)
	return nil
}

func comparison(set string) operatorGen {
	return func(g *CodeGen, c operatorContext) error {
		if err := g.popOperands(c); err != nil {
			return err
		}
		return g.setFlag(c, func(dl string) {
			g.emit.Instr("cmp", c.a, c.b)
			g.emit.Instr(set, dl)
		})
	}
}

// genAnd tests both operands
func (g *CodeGen) genAnd(c operatorContext) error {
	if err := g.popOperands(c); err != nil {
		return err
	}
	edx, err := g.regs.Request("edx")
	if err != nil {
		return err
	}
	falseLabel, done := g.emit.NewLabel(), g.emit.NewLabel()
	g.emit.Instr("mov", edx, "1")
	g.emit.Instr("cmp", c.a, "0")
	g.emit.Instr("je", falseLabel)
	g.emit.Instr("cmp", c.b, "0")
	g.emit.Instr("je", falseLabel)
	g.emit.Instr("jmp", done)
	g.emit.Label(falseLabel)
	g.emit.Instr("mov", edx, "0")
	g.emit.Label(done)
	g.emit.Instr("mov", c.a, edx)
	if err := g.regs.Release(edx); err != nil {
		return err
	}
	g.finish(c)
	return nil
}

// genOr skips the right test once the left operand is true
func (g *CodeGen) genOr(c operatorContext) error {
	if err := g.popOperands(c); err != nil {
		return err
	}
	done := g.emit.NewLabel()
	return g.setFlag(c, func(dl string) {
		g.emit.Instr("cmp", c.a, "0")
		g.emit.Instr("setne", dl)
		g.emit.Instr("jne", done)
		g.emit.Instr("cmp", c.b, "0")
		g.emit.Instr("setne", dl)
		g.emit.Label(done)
	})
}

func (g *CodeGen) genNot(c operatorContext) error {
	if c.left != expr.NotMarker || c.right != expr.NoMarker {
		return diag.Internal("'not' without its placeholder")
	}
	g.emit.Instr("pop", c.a)
	return g.setFlag(c, func(dl string) {
		g.emit.Instr("cmp", c.a, "0")
		g.emit.Instr("sete", dl)
	})
}
