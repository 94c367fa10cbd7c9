package lexer

import "infinity/internal/token"

// skipWhitespace ignores spaces, tabs, newlines, carriage returns
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readIdentifier reads an identifier.
// First char is guaranteed to be a letter/underscore by caller.
// Subsequent chars may include digits.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads a sequence of digits
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readString reads a double-quoted literal, decoding \n, \t, \\ and \".
// The returned bool is false when the closing quote is missing.
func (l *Lexer) readString() (string, bool) {
	l.readChar()
	var out []byte
	for l.ch != '"' {
		if l.ch == 0 {
			return string(out), false
		}
		if l.ch == '\\' {
			l.readChar()
			out = append(out, unescape(l.ch))
		} else {
			out = append(out, l.ch)
		}
		l.readChar()
	}
	l.readChar()
	return string(out), true
}

// readCharLiteral reads 'c' or an escaped '\n'.
func (l *Lexer) readCharLiteral() (string, bool) {
	l.readChar()
	if l.ch == 0 || l.ch == '\'' {
		if l.ch == '\'' {
			l.readChar()
		}
		return "", false
	}
	ch := l.ch
	if ch == '\\' {
		l.readChar()
		ch = unescape(l.ch)
	}
	l.readChar()
	if l.ch != '\'' {
		return string(ch), false
	}
	l.readChar()
	return string(ch), true
}

func unescape(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case '0':
		return 0
	default:
		return ch
	}
}

// isLetter checks if ch is a letter or underscore
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit checks if ch is 0-9
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// newToken is a helper to create single-character tokens
func newToken(tokenType token.TokenType, ch byte) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch)}
}
