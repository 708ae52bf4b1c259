package lexer

import (
	"strings"

	"github.com/Diokuz/optional-keys-in-objects/pkg/source"
)

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type     TokenType
	Literal  string // The actual text of the token (lexeme)
	Line     int    // 1-based line number where the token starts
	Column   int    // 1-based column number where the token starts
	StartPos int    // 0-based byte offset where the token starts
	EndPos   int    // 0-based byte offset after the token ends
}

// --- Token Types ---
const (
	// Special
	ILLEGAL TokenType = "ILLEGAL" // Unknown token/character
	EOF     TokenType = "EOF"     // End of input

	// Identifiers + literals
	IDENT     TokenType = "IDENT"  // foo, bar
	NUMBER    TokenType = "NUMBER" // 123, 45.67, 1e3
	STRING    TokenType = "STRING" // "hello", 'world'
	NULL      TokenType = "NULL"
	UNDEFINED TokenType = "UNDEFINED"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	BANG     TokenType = "!"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	LT       TokenType = "<"
	GT       TokenType = ">"
	LE       TokenType = "<="
	GE       TokenType = ">="
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	DOT      TokenType = "."

	// Strict equality
	STRICT_EQ     TokenType = "==="
	STRICT_NOT_EQ TokenType = "!=="

	// Increment/decrement
	INC TokenType = "++"
	DEC TokenType = "--"

	// Logical
	LOGICAL_AND TokenType = "&&"
	LOGICAL_OR  TokenType = "||"
	COALESCE    TokenType = "??"

	// The optional-property marker and the ternary operator share this token;
	// the parser disambiguates by context.
	QUESTION TokenType = "?"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"

	// Keywords
	LET   TokenType = "LET"
	CONST TokenType = "CONST"
	TRUE  TokenType = "TRUE"
	FALSE TokenType = "FALSE"
)

var keywords = map[string]TokenType{
	"let":       LET,
	"const":     CONST,
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,
	"undefined": UNDEFINED,
}

// LookupIdent checks the keywords table for an identifier.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return IDENT
}

// Lexer holds the state of the scanner.
type Lexer struct {
	src          *source.File
	input        string
	position     int  // current position in input (byte offset of current char)
	readPosition int  // byte offset after current char
	ch           byte // current char under examination
	line         int  // current 1-based line number
	column       int  // current 1-based column number
}

// NewLexer creates a lexer over the given source file.
func NewLexer(src *source.File) *Lexer {
	l := &Lexer{src: src, input: src.Content, line: 1, column: 0}
	l.readChar()
	return l
}

// GetSource returns the source file this lexer is scanning.
func (l *Lexer) GetSource() *source.File {
	return l.src
}

// readChar advances to the next character, updating line and column counts.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0 // NUL signifies end of input
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar looks ahead without consuming the character.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken scans the input and returns the next token.
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	startLine := l.line
	startCol := l.column
	startPos := l.position

	mk := func(t TokenType, literal string) Token {
		return Token{Type: t, Literal: literal, Line: startLine, Column: startCol, StartPos: startPos, EndPos: l.position}
	}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar() // consume '='
			if l.peekChar() == '=' {
				l.readChar() // consume second '='
				literal := l.input[startPos : l.position+1]
				l.readChar()
				tok = mk(STRICT_EQ, literal)
			} else {
				literal := l.input[startPos : l.position+1]
				l.readChar()
				tok = mk(EQ, literal)
			}
		} else {
			literal := string(l.ch)
			l.readChar()
			tok = mk(ASSIGN, literal)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar() // consume '='
			if l.peekChar() == '=' {
				l.readChar() // consume second '='
				literal := l.input[startPos : l.position+1]
				l.readChar()
				tok = mk(STRICT_NOT_EQ, literal)
			} else {
				literal := l.input[startPos : l.position+1]
				l.readChar()
				tok = mk(NOT_EQ, literal)
			}
		} else {
			literal := string(l.ch)
			l.readChar()
			tok = mk(BANG, literal)
		}
	case '+':
		if l.peekChar() == '+' {
			l.readChar() // consume second '+'
			literal := l.input[startPos : l.position+1]
			l.readChar()
			tok = mk(INC, literal)
		} else {
			literal := string(l.ch)
			l.readChar()
			tok = mk(PLUS, literal)
		}
	case '-':
		if l.peekChar() == '-' {
			l.readChar() // consume second '-'
			literal := l.input[startPos : l.position+1]
			l.readChar()
			tok = mk(DEC, literal)
		} else {
			literal := string(l.ch)
			l.readChar()
			tok = mk(MINUS, literal)
		}
	case '*':
		literal := string(l.ch)
		l.readChar()
		tok = mk(ASTERISK, literal)
	case '/':
		if l.peekChar() == '/' {
			l.skipComment()
			return l.NextToken()
		} else if l.peekChar() == '*' {
			if !l.skipMultilineComment() {
				tok = mk(ILLEGAL, "Unterminated multiline comment")
				return tok
			}
			return l.NextToken()
		} else {
			literal := string(l.ch)
			l.readChar()
			tok = mk(SLASH, literal)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar() // consume second '&'
			literal := l.input[startPos : l.position+1]
			l.readChar()
			tok = mk(LOGICAL_AND, literal)
		} else {
			literal := string(l.ch)
			l.readChar()
			tok = mk(ILLEGAL, literal)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar() // consume second '|'
			literal := l.input[startPos : l.position+1]
			l.readChar()
			tok = mk(LOGICAL_OR, literal)
		} else {
			literal := string(l.ch)
			l.readChar()
			tok = mk(ILLEGAL, literal)
		}
	case '?':
		if l.peekChar() == '?' {
			l.readChar() // consume second '?'
			literal := l.input[startPos : l.position+1]
			l.readChar()
			tok = mk(COALESCE, literal)
		} else {
			literal := string(l.ch)
			l.readChar()
			tok = mk(QUESTION, literal)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar() // consume '='
			literal := l.input[startPos : l.position+1]
			l.readChar()
			tok = mk(LE, literal)
		} else {
			literal := string(l.ch)
			l.readChar()
			tok = mk(LT, literal)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar() // consume '='
			literal := l.input[startPos : l.position+1]
			l.readChar()
			tok = mk(GE, literal)
		} else {
			literal := string(l.ch)
			l.readChar()
			tok = mk(GT, literal)
		}
	case '.':
		literal := string(l.ch)
		l.readChar()
		tok = mk(DOT, literal)
	case ';':
		literal := string(l.ch)
		l.readChar()
		tok = mk(SEMICOLON, literal)
	case ':':
		literal := string(l.ch)
		l.readChar()
		tok = mk(COLON, literal)
	case ',':
		literal := string(l.ch)
		l.readChar()
		tok = mk(COMMA, literal)
	case '(':
		literal := string(l.ch)
		l.readChar()
		tok = mk(LPAREN, literal)
	case ')':
		literal := string(l.ch)
		l.readChar()
		tok = mk(RPAREN, literal)
	case '{':
		literal := string(l.ch)
		l.readChar()
		tok = mk(LBRACE, literal)
	case '}':
		literal := string(l.ch)
		l.readChar()
		tok = mk(RBRACE, literal)
	case '[':
		literal := string(l.ch)
		l.readChar()
		tok = mk(LBRACKET, literal)
	case ']':
		literal := string(l.ch)
		l.readChar()
		tok = mk(RBRACKET, literal)
	case '"':
		literal, ok := l.readString('"')
		if !ok {
			tok = mk(ILLEGAL, "Invalid string literal")
		} else {
			tok = mk(STRING, literal)
		}
	case '\'':
		literal, ok := l.readString('\'')
		if !ok {
			tok = mk(ILLEGAL, "Invalid string literal")
		} else {
			tok = mk(STRING, literal)
		}
	case 0: // EOF
		tok = Token{Type: EOF, Literal: "", Line: startLine, Column: startCol, StartPos: startPos, EndPos: startPos}
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			tokType := LookupIdent(literal)
			// readIdentifier leaves l.position after the last char
			return mk(tokType, literal)
		} else if isDigit(l.ch) {
			literal := l.readNumber()
			return mk(NUMBER, literal)
		}
		literal := string(l.ch)
		l.readChar()
		tok = mk(ILLEGAL, literal)
	}

	return tok
}

// readIdentifier reads an identifier (letters, digits, _) and advances the position.
func (l *Lexer) readIdentifier() string {
	startPos := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[startPos:l.position]
}

// readNumber reads a decimal number literal: integer part, optional fraction,
// optional exponent. Returns the raw literal string found.
func (l *Lexer) readNumber() string {
	startPos := l.position

	for isDigit(l.ch) {
		l.readChar()
	}

	// Fractional part: '.' must be followed by a digit to belong to the number.
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Exponent part.
	if l.ch == 'e' || l.ch == 'E' {
		peek := l.peekChar()
		if isDigit(peek) || peek == '+' || peek == '-' {
			l.readChar() // consume 'e'/'E'
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			if !isDigit(l.ch) {
				// "1e+" with no digits: stop before the dangling sign/exponent.
				return l.input[startPos:l.position]
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	return l.input[startPos:l.position]
}

// readString reads a string literal enclosed in the given quote character,
// handling the escape sequences \n, \t, \r, \\ and the escaped quote.
// Returns the unescaped content and whether the literal was well-formed.
func (l *Lexer) readString(quote byte) (string, bool) {
	var builder strings.Builder
	l.readChar() // consume the opening quote

	for {
		if l.ch == quote {
			l.readChar() // consume the closing quote
			return builder.String(), true
		}
		if l.ch == 0 {
			return "", false // unterminated
		}

		if l.ch == '\\' {
			l.readChar() // consume the backslash
			switch l.ch {
			case 'n':
				builder.WriteByte('\n')
			case 't':
				builder.WriteByte('\t')
			case 'r':
				builder.WriteByte('\r')
			case '\\':
				builder.WriteByte('\\')
			case quote:
				builder.WriteByte(quote)
			case 0:
				return "", false
			default:
				return "", false // invalid escape sequence
			}
		} else {
			if l.ch == '\n' || l.ch == '\r' {
				return "", false // unescaped newline terminates the literal
			}
			builder.WriteByte(l.ch)
		}

		l.readChar()
	}
}

// skipComment reads until the end of the line.
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	// Leave the newline for skipWhitespace.
}

// skipMultilineComment consumes '/*' through '*/'. Returns false if the
// comment is unterminated.
func (l *Lexer) skipMultilineComment() bool {
	l.readChar() // consume '/'
	l.readChar() // consume '*'

	for {
		if l.ch == 0 {
			return false
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume '*'
			l.readChar() // consume '/'
			return true
		}
		l.readChar()
	}
}

// isLetter checks if the character can start or continue an identifier.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

// isDigit checks if the character is a decimal digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
