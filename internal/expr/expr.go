package expr

import (
	"strconv"
	"strings"

	"infinity/internal/diag"
	"infinity/internal/token"
	"infinity/internal/typesys"
)

// Value is the folded result of a constant expression
type Value struct {
	Number float64
	Str    string
}

// Expression is a compiled expression ready for code generation. When
// HasVariables is false, Value is authoritative.
type Expression struct {
	Postfix      []Token
	Value        Value
	HasVariables bool
	Type         typesys.DataType
	Source       token.Token
}

// String renders constants by value and variable expressions in postfix
func (e *Expression) String() string {
	if e == nil {
		return ""
	}
	if e.Type == typesys.String && !e.HasVariables {
		return strconv.Quote(e.Value.Str)
	}
	if !e.HasVariables {
		return strconv.FormatFloat(e.Value.Number, 'g', -1, 64)
	}
	parts := make([]string, len(e.Postfix))
	for i, t := range e.Postfix {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// Int is the constant value truncated to a 32-bit integer
func (e *Expression) Int() int32 {
	return int32(int64(e.Value.Number))
}

// IsConstant reports whether the expression folded at compile time
func (e *Expression) IsConstant() bool { return !e.HasVariables }

// LastOp returns the final operator of the postfix sequence, if any
func (e *Expression) LastOp() (Op, bool) {
	if len(e.Postfix) == 0 {
		return "", false
	}
	last := e.Postfix[len(e.Postfix)-1]
	if last.Kind != Operator {
		return "", false
	}
	return last.Op, true
}

// SingleVariable returns the variable name when the expression is exactly
// one variable reference
func (e *Expression) SingleVariable() (string, bool) {
	if len(e.Postfix) == 1 && e.Postfix[0].Kind == Variable {
		return e.Postfix[0].Name, true
	}
	return "", false
}

// Compile runs the whole pipeline: parse, postfix conversion, then folding
// or verification.
func Compile(src []token.Token) (*Expression, error) {
	if len(src) == 0 {
		return nil, diag.Errorf(diag.ExpressionCompiler, "empty expression")
	}
	if src[0].Type == token.STRING {
		if len(src) != 1 {
			return nil, diag.At(diag.ExpressionCompiler, src[1], "string literal cannot be combined with operators")
		}
		return &Expression{
			Value:  Value{Str: src[0].Literal},
			Type:   typesys.String,
			Source: src[0],
		}, nil
	}
	for _, tok := range src {
		if tok.Type == token.STRING {
			return nil, diag.At(diag.ExpressionCompiler, tok, "string literal cannot be combined with operators")
		}
	}

	infix, constant, err := Parse(src)
	if err != nil {
		return nil, err
	}
	postfix, err := InfixToPostfix(infix)
	if err != nil {
		return nil, err
	}
	e := &Expression{
		Postfix:      postfix,
		HasVariables: !constant,
		Source:       src[0],
	}
	if constant {
		v, err := EvaluateConstant(postfix)
		if err != nil {
			return nil, err
		}
		e.Value.Number = v
	} else if err := Verify(postfix); err != nil {
		return nil, err
	}
	e.Type = inferType(src, e)
	return e, nil
}

func inferType(src []token.Token, e *Expression) typesys.DataType {
	if len(src) == 1 {
		switch src[0].Type {
		case token.CHAR:
			return typesys.Char
		case token.TRUE, token.FALSE:
			return typesys.Bool
		}
	}
	if op, ok := e.LastOp(); ok && IsBoolean(op) {
		return typesys.Bool
	}
	return typesys.Int
}
