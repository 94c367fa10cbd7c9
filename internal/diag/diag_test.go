package diag

import (
	"errors"
	"fmt"
	"testing"

	"infinity/internal/token"
)

func TestErrorFormatting(t *testing.T) {
	tok := token.Token{Type: token.RPAREN, Literal: ")", Line: 2, Column: 5}
	e := At(ExpressionCompiler, tok, "mismatched parentheses")
	if got := e.Error(); got != "[Expression Compiler] mismatched parentheses (at 2:5)" {
		t.Fatalf("Error()=%q", got)
	}

	e = Errorf(IO, "could not create output file %s", "x.asm")
	if got := e.Error(); got != "[IO] could not create output file x.asm" {
		t.Fatalf("Error()=%q", got)
	}

	e = At(CodeGenerator, token.Token{}, "no position")
	if e.Line != 0 || e.Column != 0 {
		t.Fatalf("unpositioned token should leave position empty: %+v", e)
	}
}

func TestInternalAndErrorsAs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Internal("unknown operator %q", "?"))
	var d *Error
	if !errors.As(err, &d) {
		t.Fatalf("errors.As failed")
	}
	if d.Subsystem != CodeGenerator || d.Message != `internal: unknown operator "?"` {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if Subsystem(42).String() != "Unknown" {
		t.Fatalf("unexpected subsystem name")
	}
}
