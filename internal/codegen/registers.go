package codegen

import (
	"infinity/internal/diag"
)

var registerNames = []string{
	"eax", "ebx", "ecx", "edx", "esi", "edi", "ebp", "esp",
	"ah", "al", "bh", "bl", "ch", "cl", "dh", "dl",
}

// registers handed out by RequestAny, in preference order
var generalPool = []string{"eax", "ebx", "ecx", "edx", "esi", "edi"}

// 8-bit registers cannot be pushed; they spill through their 32-bit parent
var byteParent = map[string]string{
	"ah": "eax", "al": "eax",
	"bh": "ebx", "bl": "ebx",
	"ch": "ecx", "cl": "ecx",
	"dh": "edx", "dl": "edx",
}

var lowerByte = map[string]string{
	"eax": "al",
	"ebx": "bl",
	"ecx": "cl",
	"edx": "dl",
}

// Allocator tracks each register as Free (count 0) or Held(count). Taking a
// held register spills it with a push; each inner release restores it with
// a pop, and only the outermost release frees it.
type Allocator struct {
	emit  *Emitter
	state map[string]int
}

func NewAllocator(e *Emitter) *Allocator {
	a := &Allocator{emit: e, state: make(map[string]int, len(registerNames))}
	for _, r := range registerNames {
		a.state[r] = 0
	}
	return a
}

// Request takes a specific register, spilling it first if it is held
func (a *Allocator) Request(name string) (string, error) {
	held, ok := a.state[name]
	if !ok {
		return "", diag.Internal("unknown register %q", name)
	}
	if held > 0 {
		a.emit.Instr("push", spillName(name))
	}
	a.state[name] = held + 1
	return name, nil
}

// RequestAny takes the first free general-purpose register. When all are
// held, the first one in the pool is spilled and reused.
func (a *Allocator) RequestAny() string {
	for _, r := range generalPool {
		if a.state[r] == 0 {
			a.state[r] = 1
			return r
		}
	}
	r, _ := a.Request(generalPool[0])
	return r
}

// Release gives back one hold on name
func (a *Allocator) Release(name string) error {
	held, ok := a.state[name]
	if !ok {
		return diag.Internal("unknown register %q", name)
	}
	switch {
	case held == 0:
		return diag.Internal("release of free register %s", name)
	case held > 1:
		a.emit.Instr("pop", spillName(name))
	}
	a.state[name] = held - 1
	return nil
}

// Held reports whether name currently has at least one hold
func (a *Allocator) Held(name string) bool { return a.state[name] > 0 }

// HeldRegisters lists held registers in fixed order
func (a *Allocator) HeldRegisters() []string {
	var out []string
	for _, r := range registerNames {
		if a.state[r] > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Outstanding counts unreleased requests across all registers
func (a *Allocator) Outstanding() int {
	n := 0
	for _, held := range a.state {
		n += held
	}
	return n
}

// SpillDepth counts the spill pushes currently on the machine stack
func (a *Allocator) SpillDepth() int {
	n := 0
	for _, held := range a.state {
		if held > 1 {
			n += held - 1
		}
	}
	return n
}

func IsByte(name string) bool {
	_, ok := byteParent[name]
	return ok
}

// LowerByte returns the low 8-bit alias of a 32-bit register, if it has one
func LowerByte(name string) (string, bool) {
	b, ok := lowerByte[name]
	return b, ok
}

func spillName(name string) string {
	if parent, ok := byteParent[name]; ok {
		return parent
	}
	return name
}
