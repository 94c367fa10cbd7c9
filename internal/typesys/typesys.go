package typesys

import "fmt"

// DataType is a value type of the source language
type DataType int

const (
	Void DataType = iota
	Int
	Char
	String
	Bool
)

var typeNames = map[DataType]string{
	Void:   "void",
	Int:    "int",
	Char:   "char",
	String: "string",
	Bool:   "bool",
}

func (t DataType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Parse maps a type keyword to its DataType
func Parse(name string) (DataType, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return Void, false
}

// Size is the storage size class of a value
type Size int

const (
	NoSize Size = iota
	Byte
	Dword
)

func (s Size) String() string {
	switch s {
	case Byte:
		return "byte"
	case Dword:
		return "dword"
	default:
		return "none"
	}
}

// Bytes is the width of one slot of this size
func (s Size) Bytes() int {
	switch s {
	case Byte:
		return 1
	case Dword:
		return 4
	default:
		return 0
	}
}

// SizeOf derives the storage class from a type.
// Strings are stored as a dword pointer to their length-prefixed bytes.
func SizeOf(t DataType) Size {
	switch t {
	case Char, Bool:
		return Byte
	case Int, String:
		return Dword
	default:
		return NoSize
	}
}

// Reserve returns the bss directive for a size class, or "" when nothing
// should be reserved.
func Reserve(s Size) string {
	switch s {
	case Byte:
		return "resb"
	case Dword:
		return "resd"
	default:
		return ""
	}
}

// IsNumeric reports whether values of t can be mixed in arithmetic
func IsNumeric(t DataType) bool {
	return t == Int || t == Char || t == Bool
}
