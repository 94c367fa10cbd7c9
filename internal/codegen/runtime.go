package codegen

import _ "embed"

// runtimeSource is appended verbatim after the generated functions. Every
// procedure pops its own arguments and preserves all registers but eax.
//
//go:embed runtime.asm
var runtimeSource string
