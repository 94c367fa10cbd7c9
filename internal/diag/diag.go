package diag

import (
	"fmt"

	"infinity/internal/token"
)

// Subsystem names the part of the compiler that raised a diagnostic
type Subsystem int

const (
	Compiler Subsystem = iota
	ExpressionCompiler
	CodeGenerator
	IO
)

func (s Subsystem) String() string {
	switch s {
	case Compiler:
		return "Compiler"
	case ExpressionCompiler:
		return "Expression Compiler"
	case CodeGenerator:
		return "Code Generator"
	case IO:
		return "IO"
	default:
		return "Unknown"
	}
}

// Error is a fatal compile-time diagnostic. Line and Column are zero when the
// failure has no source position.
type Error struct {
	Subsystem Subsystem
	Message   string
	Line      int
	Column    int
}

func (e *Error) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("[%s] %s (at %d:%d)", e.Subsystem, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("[%s] %s", e.Subsystem, e.Message)
}

// Errorf builds a diagnostic without a position
func Errorf(sub Subsystem, format string, args ...interface{}) *Error {
	return &Error{Subsystem: sub, Message: fmt.Sprintf(format, args...)}
}

// At builds a diagnostic positioned at tok
func At(sub Subsystem, tok token.Token, format string, args ...interface{}) *Error {
	e := Errorf(sub, format, args...)
	if tok.HasPosition() {
		e.Line, e.Column = tok.Line, tok.Column
	}
	return e
}

// Internal reports a broken code generator invariant. These should be
// unreachable once the input has been validated upstream.
func Internal(format string, args ...interface{}) *Error {
	return Errorf(CodeGenerator, "internal: "+format, args...)
}
