package expr

import (
	"errors"
	"strings"
	"testing"

	"infinity/internal/diag"
	"infinity/internal/lexer"
	"infinity/internal/typesys"
)

func compileText(t *testing.T, input string) (*Expression, error) {
	t.Helper()
	toks, err := lexer.Split(input)
	if err != nil {
		t.Fatalf("lexer error for %q: %v", input, err)
	}
	return Compile(toks)
}

func postfixString(ts []Token) string {
	return (&Expression{Postfix: ts, HasVariables: true}).String()
}

func TestConstantFolding(t *testing.T) {
	tests := []struct {
		input string
		want  int32
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"2 ^ 10", 1024},
		{"10 % 3", 1},
		{"2 - 3 - 4", -5},
		{"2 ^ 3 ^ 2", 512},
		{"-5 + 3", -2},
		{"2 * -3", -6},
		{"- - 4", 4},
		{"-(2 + 3)", -5},
		{"(1 + 2) - 3", 0},
		{"7 / 2", 3},
		{"5!", 120},
		{"3! + 1", 7},
		{"0!", 1},
		{"1 < 2", 1},
		{"2 <= 1", 0},
		{"3 == 3", 1},
		{"3 != 3", 0},
		{"true and false", 0},
		{"true or false", 1},
		{"not true", 0},
		{"not 0", 1},
		{"true and not false", 1},
		{"not 1 == 2", 0},
		{"'A'", 65},
		{"'a' + 1", 98},
	}
	for _, tt := range tests {
		e, err := compileText(t, tt.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if e.HasVariables {
			t.Fatalf("%q: expected constant", tt.input)
		}
		if got := e.Int(); got != tt.want {
			t.Fatalf("%q: got=%d want=%d", tt.input, got, tt.want)
		}
	}
}

func TestNotBindsTighterThanComparison(t *testing.T) {
	// not has precedence 7, so "not 1 == 2" is "(not 1) == 2"
	e, err := compileText(t, "not 1 == 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := postfixString(e.Postfix); got != "$n 1 not 2 ==" {
		t.Fatalf("postfix=%q", got)
	}
}

func TestPostfixShapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a + b * c", "a b c * +"},
		{"a - b - c", "a b - c -"},
		{"a ^ b ^ c", "a b c ^ ^"},
		{"-a", "0 a -"},
		{"a * -b", "a 0 b - *"},
		{"(a + b) - c", "a b + c -"},
		{"a!", "a $f !"},
		{"not a and b", "$n a not b and"},
		{"a or b and c", "a b c and or"},
		{"a < b == c", "a b < c =="},
	}
	for _, tt := range tests {
		e, err := compileText(t, tt.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if !e.HasVariables {
			t.Fatalf("%q: expected variables", tt.input)
		}
		if got := postfixString(e.Postfix); got != tt.want {
			t.Fatalf("%q: postfix=%q want=%q", tt.input, got, tt.want)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5 ! 3", "misplaced '!'"},
		{"1 not 2", "misplaced 'not'"},
		{"1 / 0", "division by zero"},
		{"1 % 0", "modulo by zero"},
		{"(1 + 2", "mismatched parentheses"},
		{"1 + 2)", "mismatched parentheses"},
		{"()", "empty parentheses"},
		{"1 +", "missing an operand"},
		{"-", "missing an operand"},
		{"1 2", "missing operator"},
		{"a b", "missing operator"},
		{"(-1)!", "negative"},
		{"(1 / 2)!", "non-integer"},
		{"x + \"s\"", "string literal"},
	}
	for _, tt := range tests {
		_, err := compileText(t, tt.input)
		if err == nil {
			t.Fatalf("%q: expected error", tt.input)
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%q: error %q does not mention %q", tt.input, err.Error(), tt.want)
		}
		var d *diag.Error
		if !errors.As(err, &d) || d.Subsystem != diag.ExpressionCompiler {
			t.Fatalf("%q: expected an expression compiler diagnostic, got %T", tt.input, err)
		}
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := compileText(t, "1 +\n  2 / 0")
	var d *diag.Error
	if !errors.As(err, &d) {
		t.Fatalf("expected diag.Error, got %v", err)
	}
	if d.Line != 2 || d.Column != 5 {
		t.Fatalf("position=%d:%d want 2:5", d.Line, d.Column)
	}
}

func TestInferredTypes(t *testing.T) {
	tests := []struct {
		input string
		want  typesys.DataType
	}{
		{"1 + 2", typesys.Int},
		{"'x'", typesys.Char},
		{"true", typesys.Bool},
		{"a > 1", typesys.Bool},
		{"a and b", typesys.Bool},
		{"a + 1", typesys.Int},
		{"\"hi\"", typesys.String},
	}
	for _, tt := range tests {
		e, err := compileText(t, tt.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if e.Type != tt.want {
			t.Fatalf("%q: type=%s want=%s", tt.input, e.Type, tt.want)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	e, err := compileText(t, `"hello\n"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Value.Str != "hello\n" || e.HasVariables {
		t.Fatalf("unexpected expression: %+v", e)
	}
}

func TestSingleVariable(t *testing.T) {
	e, err := compileText(t, "count")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name, ok := e.SingleVariable(); !ok || name != "count" {
		t.Fatalf("SingleVariable=%q,%v", name, ok)
	}
	if _, ok := e.LastOp(); ok {
		t.Fatalf("bare variable has no operator")
	}
}

func TestEvaluateConstantRejectsVariables(t *testing.T) {
	e, err := compileText(t, "x + 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := EvaluateConstant(e.Postfix); err == nil {
		t.Fatalf("expected error folding a variable")
	}
}

func FuzzCompileNoPanic(f *testing.F) {
	for _, seed := range []string{
		"1 + 2",
		"-(a * b) ^ 2",
		"not not x or y",
		"5 ! ! 3",
		"((()))",
		"- - - -",
		"'a' == 'b'",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		toks, err := lexer.Split(input)
		if err != nil {
			return
		}
		_, _ = Compile(toks)
	})
}
