package expr

import (
	"strconv"

	"infinity/internal/diag"
	"infinity/internal/token"
)

// what the previous arithmetic token was, for unary disambiguation
type prevKind int

const (
	prevNothing prevKind = iota
	prevOperand
	prevPlaceholder
	prevClose
	prevOpen
	prevOperator
)

// Parse converts source tokens into an infix arithmetic token list. The
// returned bool is true when no variable appears, i.e. the expression can be
// folded to a constant.
//
// Unary "-" and "not" become binary by synthesizing a left operand inside an
// implicit parenthesis: "-x" reads as "(0 - x)" and "not x" as "($n not x)".
// The implicit parenthesis closes as soon as the following operand is
// complete. A postfix "!" is followed by a $f placeholder as its right operand.
func Parse(src []token.Token) ([]Token, bool, error) {
	var (
		out      []Token
		pending  []int // depths of implicit parentheses still open
		depth    int
		prev     = prevNothing
		constant = true
	)

	closeImplicit := func(at token.Token) {
		for len(pending) > 0 && pending[len(pending)-1] == depth {
			pending = pending[:len(pending)-1]
			out = append(out, Token{Kind: Paren, Source: at})
		}
	}

	for _, tok := range src {
		switch tok.Type {
		case token.INT:
			n, err := strconv.ParseFloat(tok.Literal, 64)
			if err != nil {
				return nil, false, diag.At(diag.ExpressionCompiler, tok, "invalid number %q", tok.Literal)
			}
			out = append(out, Token{Kind: Number, Number: n, Source: tok})
			prev = prevOperand
			closeImplicit(tok)
		case token.CHAR:
			if len(tok.Literal) != 1 {
				return nil, false, diag.At(diag.ExpressionCompiler, tok, "invalid character literal %q", tok.Literal)
			}
			out = append(out, Token{Kind: Number, Number: float64(tok.Literal[0]), Source: tok})
			prev = prevOperand
			closeImplicit(tok)
		case token.TRUE, token.FALSE:
			n := 0.0
			if tok.Type == token.TRUE {
				n = 1
			}
			out = append(out, Token{Kind: Number, Number: n, Source: tok})
			prev = prevOperand
			closeImplicit(tok)
		case token.IDENT:
			out = append(out, Token{Kind: Variable, Name: tok.Literal, Source: tok})
			constant = false
			prev = prevOperand
			closeImplicit(tok)
		case token.LPAREN:
			depth++
			out = append(out, Token{Kind: Paren, Open: true, Source: tok})
			prev = prevOpen
		case token.RPAREN:
			depth--
			if depth < 0 {
				return nil, false, diag.At(diag.ExpressionCompiler, tok, "mismatched parentheses")
			}
			out = append(out, Token{Kind: Paren, Source: tok})
			prev = prevClose
			closeImplicit(tok)
		default:
			op, ok := operatorLexemes[tok.Type]
			if !ok {
				return nil, false, diag.At(diag.ExpressionCompiler, tok, "unexpected token %q", tok.Literal)
			}
			if (op == Sub || op == Not) && !followsOperand(prev) {
				out = append(out, Token{Kind: Paren, Open: true, Source: tok})
				if op == Not {
					out = append(out, Token{Kind: Placeholder, Marker: NotMarker, Source: tok})
				} else {
					out = append(out, Token{Kind: Number, Number: 0, Source: tok})
				}
				pending = append(pending, depth)
			}
			out = append(out, Token{Kind: Operator, Op: op, Source: tok})
			prev = prevOperator
			if op == Fact {
				out = append(out, Token{Kind: Placeholder, Marker: FactMarker, Source: tok})
				prev = prevPlaceholder
			}
		}
	}

	if depth != 0 {
		last := token.Token{}
		if len(src) > 0 {
			last = src[len(src)-1]
		}
		return nil, false, diag.At(diag.ExpressionCompiler, last, "mismatched parentheses")
	}
	// unary operators left without an operand; postfix conversion will report
	// the missing operand
	for range pending {
		out = append(out, Token{Kind: Paren})
	}
	return out, constant, nil
}

func followsOperand(p prevKind) bool {
	return p == prevOperand || p == prevPlaceholder || p == prevClose
}
