package codegen

import (
	"fmt"
	"strings"
)

// Emitter appends assembly text one line at a time and hands out labels
type Emitter struct {
	out    strings.Builder
	labels int
}

// Line adds a raw line of assembly
func (e *Emitter) Line(format string, args ...interface{}) {
	e.out.WriteString(fmt.Sprintf(format, args...))
	e.out.WriteString("\n")
}

// Instr adds one instruction: "\top a, b"
func (e *Emitter) Instr(op string, operands ...string) {
	if len(operands) == 0 {
		e.Line("\t%s", op)
		return
	}
	e.Line("\t%s %s", op, strings.Join(operands, ", "))
}

func (e *Emitter) Label(name string) {
	e.Line("%s:", name)
}

func (e *Emitter) Comment(text string) {
	e.Line("\t; %s", text)
}

func (e *Emitter) Blank() {
	e.out.WriteString("\n")
}

// NewLabel returns a fresh L_<n>. Numbers are never reused within a pass.
func (e *Emitter) NewLabel() string {
	l := fmt.Sprintf(labelFormat, e.labels)
	e.labels++
	return l
}

func (e *Emitter) String() string { return e.out.String() }
