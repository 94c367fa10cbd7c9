package expr

import (
	"infinity/internal/diag"
)

// InfixToPostfix reorders an infix token list with the shunting-yard
// algorithm. Left-associative operators pop while the stack top binds at
// least as tightly; right-associative ones pop only while it binds strictly
// tighter.
func InfixToPostfix(infix []Token) ([]Token, error) {
	var (
		out   = make([]Token, 0, len(infix))
		stack []Token
	)
	for i, t := range infix {
		switch t.Kind {
		case Number, Variable, Placeholder:
			out = append(out, t)
		case Operator:
			p := Precedence(t.Op)
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != Operator {
					break
				}
				tp := Precedence(top.Op)
				if tp > p || (tp == p && !RightAssociative(t.Op)) {
					out = append(out, top)
					stack = stack[:len(stack)-1]
					continue
				}
				break
			}
			stack = append(stack, t)
		case Paren:
			if t.Open {
				stack = append(stack, t)
				continue
			}
			if i > 0 && infix[i-1].IsOpenParen() {
				return nil, diag.At(diag.ExpressionCompiler, t.Source, "empty parentheses")
			}
			for len(stack) > 0 && !stack[len(stack)-1].IsOpenParen() {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, diag.At(diag.ExpressionCompiler, t.Source, "mismatched parentheses")
			}
			stack = stack[:len(stack)-1]
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Kind == Paren {
			return nil, diag.At(diag.ExpressionCompiler, top.Source, "mismatched parentheses")
		}
		out = append(out, top)
		stack = stack[:len(stack)-1]
	}
	return out, nil
}
