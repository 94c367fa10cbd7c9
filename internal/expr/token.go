// Package expr compiles a flat list of expression tokens into either a
// folded constant or a verified postfix sequence for the code generator.
package expr

import (
	"strconv"

	"infinity/internal/token"
)

// Kind tags the variant held by an arithmetic Token
type Kind int

const (
	Number Kind = iota
	Variable
	Operator
	Paren
	Placeholder
)

// Op is an operator symbol as it appears in source
type Op string

const (
	Add    Op = "+"
	Sub    Op = "-"
	Mul    Op = "*"
	Div    Op = "/"
	Mod    Op = "%"
	Pow    Op = "^"
	Fact   Op = "!"
	Not    Op = "not"
	And    Op = "and"
	Or     Op = "or"
	Eq     Op = "=="
	NotEq  Op = "!="
	Gt     Op = ">"
	GtEq   Op = ">="
	Lt     Op = "<"
	LtEq   Op = "<="
)

// Marker identifies a placeholder operand synthesized for a unary or postfix
// operator
type Marker int

const (
	NoMarker Marker = iota
	NotMarker
	FactMarker
)

func (m Marker) String() string {
	switch m {
	case NotMarker:
		return "$n"
	case FactMarker:
		return "$f"
	default:
		return ""
	}
}

// Token is one arithmetic token. Only the field matching Kind is meaningful.
// Source points back at the originating source token for diagnostics;
// synthesized tokens carry the token that caused them.
type Token struct {
	Kind   Kind
	Number float64
	Name   string
	Op     Op
	Open   bool
	Marker Marker
	Source token.Token
}

func (t Token) String() string {
	switch t.Kind {
	case Number:
		return strconv.FormatFloat(t.Number, 'g', -1, 64)
	case Variable:
		return t.Name
	case Operator:
		return string(t.Op)
	case Paren:
		if t.Open {
			return "("
		}
		return ")"
	case Placeholder:
		return t.Marker.String()
	default:
		return "?"
	}
}

// IsOpenParen reports whether t is "("
func (t Token) IsOpenParen() bool { return t.Kind == Paren && t.Open }

var operatorLexemes = map[token.TokenType]Op{
	token.PLUS:     Add,
	token.MINUS:    Sub,
	token.ASTERISK: Mul,
	token.SLASH:    Div,
	token.PERCENT:  Mod,
	token.CARET:    Pow,
	token.BANG:     Fact,
	token.NOT:      Not,
	token.AND:      And,
	token.OR:       Or,
	token.EQ:       Eq,
	token.NOT_EQ:   NotEq,
	token.GT:       Gt,
	token.GT_EQ:    GtEq,
	token.LT:       Lt,
	token.LT_EQ:    LtEq,
}

var precedence = map[Op]int{
	Pow:   8,
	Fact:  8,
	Not:   7,
	Mul:   6,
	Div:   6,
	Mod:   6,
	Add:   5,
	Sub:   5,
	Gt:    4,
	GtEq:  4,
	Lt:    4,
	LtEq:  4,
	Eq:    3,
	NotEq: 3,
	And:   2,
	Or:    1,
}

// Precedence returns the binding strength of op, or -1 for unknown symbols
func Precedence(op Op) int {
	if p, ok := precedence[op]; ok {
		return p
	}
	return -1
}

// RightAssociative reports whether op groups right to left
func RightAssociative(op Op) bool {
	return op == Pow || op == Not
}

// IsBoolean reports whether op always yields 0 or 1
func IsBoolean(op Op) bool {
	switch op {
	case Not, And, Or, Eq, NotEq, Gt, GtEq, Lt, LtEq:
		return true
	}
	return false
}
