package codegen

import (
	"strconv"

	"infinity/internal/ast"
	"infinity/internal/diag"
	"infinity/internal/expr"
	"infinity/internal/symtab"
	"infinity/internal/token"
	"infinity/internal/typesys"
)

// generateExpression leaves the value of e in eax. Constants load directly;
// variable expressions run their postfix sequence on the machine stack.
func (g *CodeGen) generateExpression(e *expr.Expression) error {
	if e == nil {
		return diag.Internal("missing expression")
	}
	if !e.HasVariables {
		if e.Type == typesys.String {
			g.emit.Instr("mov", resultReg, g.symbols.Strings.Intern(e.Value.Str).Name)
			return nil
		}
		g.emit.Instr("mov", resultReg, imm(e.Int()))
		return nil
	}

	b, err := g.regs.Request("ebx")
	if err != nil {
		return err
	}
	var markers []expr.Marker
	last := len(e.Postfix) - 1
	for i, t := range e.Postfix {
		switch t.Kind {
		case expr.Number:
			g.emit.Instr("mov", resultReg, imm(int32(int64(t.Number))))
			if i != last {
				g.emit.Instr("push", resultReg)
			}
			markers = append(markers, expr.NoMarker)
		case expr.Variable:
			sym, err := g.variable(t.Name, t.Source)
			if err != nil {
				return err
			}
			g.loadVariable(sym)
			if i != last {
				g.emit.Instr("push", resultReg)
			}
			markers = append(markers, expr.NoMarker)
		case expr.Placeholder:
			markers = append(markers, t.Marker)
		case expr.Operator:
			if len(markers) < 2 {
				return diag.Internal("operator '%s' is missing an operand", t.Op)
			}
			left, right := markers[len(markers)-2], markers[len(markers)-1]
			markers = markers[:len(markers)-2]
			gen, ok := operatorGenerators[t.Op]
			if !ok {
				return diag.Internal("unknown operator '%s'", t.Op)
			}
			c := operatorContext{a: resultReg, b: b, left: left, right: right, isLast: i == last, op: t}
			if err := gen(g, c); err != nil {
				return err
			}
			markers = append(markers, expr.NoMarker)
		default:
			return diag.Internal("unexpected '%s' in postfix expression", t)
		}
	}
	if len(markers) != 1 {
		return diag.Internal("unbalanced postfix expression")
	}
	return g.regs.Release(b)
}

// generateValue evaluates a right-hand side into eax
func (g *CodeGen) generateValue(v ast.Value) error {
	switch v := v.(type) {
	case *ast.Arith:
		return g.generateExpression(v.X)
	case *ast.Call:
		if isBuiltin(v.Name) {
			return nodeErrorf(v, "'%s' does not produce a value", v.Name)
		}
		return g.generateUserCall(v)
	default:
		return diag.Internal("unknown value node %T", v)
	}
}

func (g *CodeGen) loadVariable(sym *symtab.Symbol) {
	if sym.Size == typesys.Byte {
		g.emit.Instr("movzx", resultReg, "byte ["+varName(sym.Name)+"]")
		return
	}
	g.emit.Instr("mov", resultReg, "["+varName(sym.Name)+"]")
}

// store writes eax, or al for byte-sized variables, into name
func (g *CodeGen) store(name string, node ast.Node) error {
	tok, _ := tokenFromNode(node)
	sym, err := g.variable(name, tok)
	if err != nil {
		return err
	}
	switch sym.Size {
	case typesys.Byte:
		al, _ := LowerByte(resultReg)
		g.emit.Instr("mov", "byte ["+varName(name)+"]", al)
	case typesys.Dword:
		g.emit.Instr("mov", "dword ["+varName(name)+"]", resultReg)
	default:
		return nodeErrorf(node, "cannot store into '%s' of type %s", name, sym.Type)
	}
	return nil
}

// variable looks up a variable symbol, reporting a miss at pos
func (g *CodeGen) variable(name string, pos token.Token) (*symtab.Symbol, error) {
	sym, ok := g.symbols.Lookup(name)
	if !ok || sym.Kind != symtab.Variable {
		return nil, diag.At(diag.CodeGenerator, pos, "undefined variable '%s'", name)
	}
	return sym, nil
}

func imm(n int32) string { return strconv.FormatInt(int64(n), 10) }
