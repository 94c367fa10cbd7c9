package codegen

import (
	"strconv"
	"strings"

	"infinity/internal/ast"
	"infinity/internal/symtab"
	"infinity/internal/typesys"
)

var dataPreamble = []string{
	"out_buf times 11 db 0",
	"out_buf_len equ $-out_buf",
	"char_buf db 0",
	"new_line_chr db 10",
	`true_str db "true"`,
	`false_str db "false"`,
	`div_zero_msg db "Runtime error: division by zero", 10`,
	"div_zero_msg_len equ $-div_zero_msg",
}

func writeData(e *Emitter, strs []*symtab.StringSymbol) {
	e.Line("section .data")
	for _, l := range dataPreamble {
		e.Line("\t%s", l)
	}
	for _, s := range strs {
		e.Line("\t%s db %s", s.Name, stringBytes(s.Value))
	}
	e.Blank()
}

// stringBytes renders a literal as its length byte, its characters and a
// terminating zero. Printable characters are quoted; the rest are numeric.
func stringBytes(s string) string {
	parts := make([]string, 0, len(s)+2)
	parts = append(parts, strconv.Itoa(len(s)))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= ' ' && c <= '~' && c != '\'' {
			parts = append(parts, "'"+string(c)+"'")
		} else {
			parts = append(parts, strconv.Itoa(int(c)))
		}
	}
	parts = append(parts, "0")
	return strings.Join(parts, ", ")
}

func writeBss(e *Emitter, vars []*symtab.Symbol) {
	e.Line("section .bss")
	for _, v := range vars {
		directive := typesys.Reserve(v.Size)
		if directive == "" {
			continue
		}
		e.Line("\t%s %s 1", varName(v.Name), directive)
	}
	e.Blank()
}

// writeEntry emits _start: call the start function and exit with its int
// result, or 0
func writeEntry(e *Emitter, start *ast.FunctionDef) {
	e.Line("global %s", entryLabel)
	e.Line("section .text")
	e.Label(entryLabel)
	e.Instr("call", procName(start.Name))
	if start.ReturnType == typesys.Int {
		e.Instr("mov", "ebx", resultReg)
	} else {
		e.Instr("xor", "ebx", "ebx")
	}
	e.Instr("mov", resultReg, "1")
	e.Instr("int", "0x80")
}
