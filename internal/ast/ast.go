// Package ast is the annotated syntax tree handed to the code generator.
// Every expression is already compiled, every return knows its function's
// argument count, and counted loops know their direction when it is static.
package ast

import (
	"bytes"
	"strconv"
	"strings"

	"infinity/internal/expr"
	"infinity/internal/token"
	"infinity/internal/typesys"
)

// Node is the base interface for all AST nodes
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement nodes appear in blocks
type Statement interface {
	Node
	statementNode()
}

// Value is the right-hand side of a declaration, assignment or return:
// either an *Arith or a *Call
type Value interface {
	Node
	valueNode()
}

// Program is the root node: top-level function definitions plus the
// resolved entry point
type Program struct {
	Functions []*FunctionDef
	Start     *FunctionDef
}

func (p *Program) TokenLiteral() string {
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, f := range p.Functions {
		out.WriteString(f.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Block is a brace-delimited statement list
type Block struct {
	Token      token.Token
	Statements []Statement
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range b.Statements {
		out.WriteString(s.String())
		out.WriteString("; ")
	}
	out.WriteString("}")
	return out.String()
}

// Arith wraps a compiled expression used as a value
type Arith struct {
	X *expr.Expression
}

func (a *Arith) valueNode()           {}
func (a *Arith) TokenLiteral() string { return a.X.Source.Literal }
func (a *Arith) String() string       { return a.X.String() }

// VarDecl declares a variable, with an optional initial value
type VarDecl struct {
	Token token.Token
	Name  string
	Type  typesys.DataType
	Value Value // nil when uninitialized
}

func (vd *VarDecl) statementNode()       {}
func (vd *VarDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDecl) String() string {
	s := vd.Type.String() + " " + vd.Name
	if vd.Value != nil {
		s += " = " + vd.Value.String()
	}
	return s
}

// Assign stores a value into an existing variable
type Assign struct {
	Token token.Token
	Name  string
	Value Value
}

func (as *Assign) statementNode()       {}
func (as *Assign) TokenLiteral() string { return as.Token.Literal }
func (as *Assign) String() string       { return as.Name + " = " + as.Value.String() }

// FunctionDef is a named function with ordered parameter names; the
// parameters are variables in the symbol table
type FunctionDef struct {
	Token      token.Token
	Name       string
	Params     []string
	ReturnType typesys.DataType
	Body       *Block
}

func (fd *FunctionDef) statementNode()       {}
func (fd *FunctionDef) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDef) String() string {
	return fd.ReturnType.String() + " " + fd.Name + "(" + strings.Join(fd.Params, ", ") + ") " + fd.Body.String()
}

// Call invokes a builtin (print, println, exit) or a user function. It is a
// statement on its own and a Value on the right of a declaration.
type Call struct {
	Token token.Token
	Name  string
	Args  []*expr.Expression
}

func (c *Call) statementNode()       {}
func (c *Call) valueNode()           {}
func (c *Call) TokenLiteral() string { return c.Token.Literal }
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// If is a conditional with an optional else block
type If struct {
	Token token.Token
	Cond  *expr.Expression
	Then  *Block
	Else  *Block
}

func (i *If) statementNode()       {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) String() string {
	s := "if " + i.Cond.String() + " " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// Loop is a counting loop. Without a Counter it runs Count times. With a
// Counter it walks from Start toward End, stopping before End; Forward is the
// direction when both bounds are constant.
type Loop struct {
	Token   token.Token
	Counter string
	Count   *expr.Expression
	Start   *expr.Expression
	End     *expr.Expression
	Forward bool
	Body    *Block
}

func (l *Loop) statementNode()       {}
func (l *Loop) TokenLiteral() string { return l.Token.Literal }
func (l *Loop) String() string {
	if l.Counter == "" {
		return "loop " + l.Count.String() + " times " + l.Body.String()
	}
	return "loop " + l.Counter + ": " + l.Start.String() + " to " + l.End.String() + " times " + l.Body.String()
}

// While repeats its body while Cond is non-zero
type While struct {
	Token token.Token
	Cond  *expr.Expression
	Body  *Block
}

func (w *While) statementNode()       {}
func (w *While) TokenLiteral() string { return w.Token.Literal }
func (w *While) String() string       { return "while " + w.Cond.String() + " " + w.Body.String() }

// Return leaves the enclosing function. ArgCount is that function's
// parameter count, used to size the epilogue.
type Return struct {
	Token    token.Token
	Value    Value // nil for void functions
	ArgCount int
}

func (r *Return) statementNode()       {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) String() string {
	s := "return"
	if r.Value != nil {
		s += " " + r.Value.String()
	}
	return s + " /* args=" + strconv.Itoa(r.ArgCount) + " */"
}

// Swap exchanges two variables of the same size class
type Swap struct {
	Token token.Token
	A, B  string
}

func (sw *Swap) statementNode()       {}
func (sw *Swap) TokenLiteral() string { return sw.Token.Literal }
func (sw *Swap) String() string       { return "swap " + sw.A + ", " + sw.B }
