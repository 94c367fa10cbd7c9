package token

import "fmt"

// TokenType is a string alias for token types
// Using string makes diagnostics readable ("PLUS" style names print as the lexeme)
type TokenType string

// Token struct holds the type, literal value and source position
// For example: Token{Type: INT, Literal: "5", Line: 1, Column: 3}
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// Position formats the token's source position as line:col
func (t Token) Position() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

// HasPosition reports whether the token was tagged with a real source position
func (t Token) HasPosition() bool {
	return t.Line > 0 && t.Column > 0
}

const (
	// Special
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	CHAR   TokenType = "CHAR"
	STRING TokenType = "STRING"

	// Arithmetic operators
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	CARET    TokenType = "^"
	BANG     TokenType = "!"

	// Comparison operators
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	GT     TokenType = ">"
	GT_EQ  TokenType = ">="
	LT     TokenType = "<"
	LT_EQ  TokenType = "<="

	// Delimiters
	LPAREN TokenType = "("
	RPAREN TokenType = ")"

	// Keywords
	TRUE  TokenType = "TRUE"
	FALSE TokenType = "FALSE"
	AND   TokenType = "AND"
	OR    TokenType = "OR"
	NOT   TokenType = "NOT"
)

// keywords maps word lexemes that are not identifiers to their token type
var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,
	"and":   AND,
	"or":    OR,
	"not":   NOT,
}

// LookupIdent checks if an identifier is a keyword
// If "and" is in keywords map, returns AND token type
// Otherwise returns IDENT (it's a variable name)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
