package lexer

import (
	"testing"

	"infinity/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `(x + 5) * -y ^ 2 % 3 / z!
a == b != c >= d <= e > f < g
not true and false or 'q'
"hi\n"`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.INT, "5"},
		{token.RPAREN, ")"},
		{token.ASTERISK, "*"},
		{token.MINUS, "-"},
		{token.IDENT, "y"},
		{token.CARET, "^"},
		{token.INT, "2"},
		{token.PERCENT, "%"},
		{token.INT, "3"},
		{token.SLASH, "/"},
		{token.IDENT, "z"},
		{token.BANG, "!"},
		{token.IDENT, "a"},
		{token.EQ, "=="},
		{token.IDENT, "b"},
		{token.NOT_EQ, "!="},
		{token.IDENT, "c"},
		{token.GT_EQ, ">="},
		{token.IDENT, "d"},
		{token.LT_EQ, "<="},
		{token.IDENT, "e"},
		{token.GT, ">"},
		{token.IDENT, "f"},
		{token.LT, "<"},
		{token.IDENT, "g"},
		{token.NOT, "not"},
		{token.TRUE, "true"},
		{token.AND, "and"},
		{token.FALSE, "false"},
		{token.OR, "or"},
		{token.CHAR, "q"},
		{token.STRING, "hi\n"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestPositions(t *testing.T) {
	toks, err := Split("1 +\n  foo")
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got=%d", len(toks))
	}
	want := [][2]int{{1, 1}, {1, 3}, {2, 3}}
	for i, w := range want {
		if toks[i].Line != w[0] || toks[i].Column != w[1] {
			t.Fatalf("token %d (%q) at %d:%d want %d:%d", i, toks[i].Literal, toks[i].Line, toks[i].Column, w[0], w[1])
		}
	}
}

func TestSplitIllegal(t *testing.T) {
	if _, err := Split("1 = 2"); err == nil {
		t.Fatalf("expected error for lone '='")
	}
	if _, err := Split("'ab'"); err == nil {
		t.Fatalf("expected error for malformed char literal")
	}
	if _, err := Split(`"open`); err == nil {
		t.Fatalf("expected error for unterminated string")
	}
}

func TestEscapedCharLiteral(t *testing.T) {
	toks, err := Split(`'\t'`)
	if err != nil {
		t.Fatalf("Split error: %v", err)
	}
	if len(toks) != 1 || toks[0].Type != token.CHAR || toks[0].Literal != "\t" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}
