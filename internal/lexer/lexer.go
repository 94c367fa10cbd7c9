// Package lexer scans the text of a single expression into position-tagged
// tokens. It is not a statement-level lexer; it exists so samples and tests
// can feed the expression compiler from readable text.
package lexer

import (
	"fmt"

	"infinity/internal/token"
)

// Lexer holds the state while tokenizing input
// It reads character by character, like a tape reader
type Lexer struct {
	input        string // The expression text
	position     int    // Current position in input (points to current char)
	readPosition int    // Current reading position (after current char)
	ch           byte   // Current character under examination
	line         int
	column       int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar() // Initialize with first character
	return l
}

// readChar advances to the next character and keeps line/column in sync
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
	l.column++
}

// peekChar looks at the next character without consuming it
// Used for two-character tokens like == and >=
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken returns the next token from input
func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()
	line, col := l.line, l.column

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.EQ, Literal: "=="}
		} else {
			tok = newToken(token.ILLEGAL, l.ch)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Literal: "!="}
		} else {
			tok = newToken(token.BANG, l.ch)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GT_EQ, Literal: ">="}
		} else {
			tok = newToken(token.GT, l.ch)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.LT_EQ, Literal: "<="}
		} else {
			tok = newToken(token.LT, l.ch)
		}
	case '+':
		tok = newToken(token.PLUS, l.ch)
	case '-':
		tok = newToken(token.MINUS, l.ch)
	case '*':
		tok = newToken(token.ASTERISK, l.ch)
	case '/':
		tok = newToken(token.SLASH, l.ch)
	case '%':
		tok = newToken(token.PERCENT, l.ch)
	case '^':
		tok = newToken(token.CARET, l.ch)
	case '(':
		tok = newToken(token.LPAREN, l.ch)
	case ')':
		tok = newToken(token.RPAREN, l.ch)
	case '"':
		lit, ok := l.readString()
		tok = token.Token{Type: token.STRING, Literal: lit, Line: line, Column: col}
		if !ok {
			tok.Type = token.ILLEGAL
		}
		return tok
	case '\'':
		lit, ok := l.readCharLiteral()
		tok = token.Token{Type: token.CHAR, Literal: lit, Line: line, Column: col}
		if !ok {
			tok.Type = token.ILLEGAL
		}
		return tok
	case 0:
		return token.Token{Type: token.EOF, Line: line, Column: col}
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(lit), Literal: lit, Line: line, Column: col}
		} else if isDigit(l.ch) {
			return token.Token{Type: token.INT, Literal: l.readNumber(), Line: line, Column: col}
		}
		tok = newToken(token.ILLEGAL, l.ch)
	}

	tok.Line, tok.Column = line, col
	l.readChar()
	return tok
}

// Split scans the whole input. It stops at the first illegal token and
// reports its position.
func Split(input string) ([]token.Token, error) {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		switch tok.Type {
		case token.EOF:
			return toks, nil
		case token.ILLEGAL:
			return nil, fmt.Errorf("illegal token %q at %s", tok.Literal, tok.Position())
		}
		toks = append(toks, tok)
	}
}
