package expr

import (
	"math"

	"infinity/internal/diag"
)

type operand struct {
	value  float64
	marker Marker
	src    Token
}

func (o operand) isPlaceholder() bool { return o.marker != NoMarker }

// checkOperands enforces placeholder discipline: "not" takes $n on the left,
// "!" takes $f on the right, and no other operator may see a placeholder.
func checkOperands(op Token, left, right operand) error {
	switch op.Op {
	case Not:
		if left.marker != NotMarker || right.isPlaceholder() {
			return diag.At(diag.ExpressionCompiler, op.Source, "misplaced 'not'")
		}
	case Fact:
		if right.marker != FactMarker || left.isPlaceholder() {
			return diag.At(diag.ExpressionCompiler, op.Source, "misplaced '!'")
		}
	default:
		if left.isPlaceholder() || right.isPlaceholder() {
			return diag.At(diag.ExpressionCompiler, op.Source, "operator '%s' is missing an operand", op.Op)
		}
	}
	return nil
}

// reduce runs the postfix stack discipline shared by constant folding and
// verification. apply computes the value pushed for each operator.
func reduce(postfix []Token, apply func(op Token, left, right float64) (float64, error)) (float64, error) {
	var stack []operand
	for _, t := range postfix {
		switch t.Kind {
		case Number:
			stack = append(stack, operand{value: t.Number, src: t})
		case Variable:
			stack = append(stack, operand{src: t})
		case Placeholder:
			stack = append(stack, operand{marker: t.Marker, src: t})
		case Operator:
			if len(stack) < 2 {
				return 0, diag.At(diag.ExpressionCompiler, t.Source, "operator '%s' is missing an operand", t.Op)
			}
			right, left := stack[len(stack)-1], stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			if err := checkOperands(t, left, right); err != nil {
				return 0, err
			}
			v, err := apply(t, left.value, right.value)
			if err != nil {
				return 0, err
			}
			stack = append(stack, operand{value: v, src: t})
		default:
			return 0, diag.At(diag.ExpressionCompiler, t.Source, "unexpected '%s' in postfix expression", t)
		}
	}
	switch {
	case len(stack) == 0:
		return 0, diag.Errorf(diag.ExpressionCompiler, "empty expression")
	case len(stack) > 1:
		return 0, diag.At(diag.ExpressionCompiler, stack[1].src.Source, "missing operator")
	case stack[0].isPlaceholder():
		return 0, diag.At(diag.ExpressionCompiler, stack[0].src.Source, "dangling operator")
	}
	return stack[0].value, nil
}

// EvaluateConstant folds a variable-free postfix expression
func EvaluateConstant(postfix []Token) (float64, error) {
	for _, t := range postfix {
		if t.Kind == Variable {
			return 0, diag.At(diag.ExpressionCompiler, t.Source, "variable '%s' in constant expression", t.Name)
		}
	}
	return reduce(postfix, fold)
}

// Verify checks that a postfix expression is well formed without computing it
func Verify(postfix []Token) error {
	_, err := reduce(postfix, func(Token, float64, float64) (float64, error) { return 0, nil })
	return err
}

func fold(op Token, a, b float64) (float64, error) {
	switch op.Op {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, diag.At(diag.ExpressionCompiler, op.Source, "division by zero")
		}
		return a / b, nil
	case Mod:
		if b == 0 {
			return 0, diag.At(diag.ExpressionCompiler, op.Source, "modulo by zero")
		}
		return math.Mod(a, b), nil
	case Pow:
		return math.Pow(a, b), nil
	case Fact:
		return factorial(op, a)
	case Not:
		return truth(b == 0), nil
	case And:
		return truth(a != 0 && b != 0), nil
	case Or:
		return truth(a != 0 || b != 0), nil
	case Eq:
		return truth(a == b), nil
	case NotEq:
		return truth(a != b), nil
	case Gt:
		return truth(a > b), nil
	case GtEq:
		return truth(a >= b), nil
	case Lt:
		return truth(a < b), nil
	case LtEq:
		return truth(a <= b), nil
	}
	return 0, diag.At(diag.ExpressionCompiler, op.Source, "unknown operator '%s'", op.Op)
}

func factorial(op Token, n float64) (float64, error) {
	if n < 0 {
		return 0, diag.At(diag.ExpressionCompiler, op.Source, "factorial of negative number")
	}
	if n != math.Trunc(n) {
		return 0, diag.At(diag.ExpressionCompiler, op.Source, "factorial of non-integer")
	}
	result := 1.0
	for i := 2.0; i <= n && !math.IsInf(result, 1); i++ {
		result *= i
	}
	return result, nil
}

func truth(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
