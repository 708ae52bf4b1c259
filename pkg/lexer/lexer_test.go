package lexer

import (
	"testing"

	"github.com/Diokuz/optional-keys-in-objects/pkg/source"
)

func TestNextToken(t *testing.T) {
	input := `let five = 5;
const msg = 'hi';
let o = { a?: 1, [i++]?: x, b? };
a === b; a !== b; a ?? b;
// a comment
obj.key[0]`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{LET, "let", 1},
		{IDENT, "five", 1},
		{ASSIGN, "=", 1},
		{NUMBER, "5", 1},
		{SEMICOLON, ";", 1},
		{CONST, "const", 2},
		{IDENT, "msg", 2},
		{ASSIGN, "=", 2},
		{STRING, "hi", 2},
		{SEMICOLON, ";", 2},
		{LET, "let", 3},
		{IDENT, "o", 3},
		{ASSIGN, "=", 3},
		{LBRACE, "{", 3},
		{IDENT, "a", 3},
		{QUESTION, "?", 3},
		{COLON, ":", 3},
		{NUMBER, "1", 3},
		{COMMA, ",", 3},
		{LBRACKET, "[", 3},
		{IDENT, "i", 3},
		{INC, "++", 3},
		{RBRACKET, "]", 3},
		{QUESTION, "?", 3},
		{COLON, ":", 3},
		{IDENT, "x", 3},
		{COMMA, ",", 3},
		{IDENT, "b", 3},
		{QUESTION, "?", 3},
		{RBRACE, "}", 3},
		{SEMICOLON, ";", 3},
		{IDENT, "a", 4},
		{STRICT_EQ, "===", 4},
		{IDENT, "b", 4},
		{SEMICOLON, ";", 4},
		{IDENT, "a", 4},
		{STRICT_NOT_EQ, "!==", 4},
		{IDENT, "b", 4},
		{SEMICOLON, ";", 4},
		{IDENT, "a", 4},
		{COALESCE, "??", 4},
		{IDENT, "b", 4},
		{SEMICOLON, ";", 4},
		{IDENT, "obj", 6},
		{DOT, ".", 6},
		{IDENT, "key", 6},
		{LBRACKET, "[", 6},
		{NUMBER, "0", 6},
		{RBRACKET, "]", 6},
		{EOF, "", 6},
	}

	l := NewLexer(source.NewEval(input))

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
		if tok.Line != tt.expectedLine {
			t.Errorf("tests[%d] (%q) - line wrong. expected=%d, got=%d",
				i, tok.Literal, tt.expectedLine, tok.Line)
		}
	}
}

func TestQuestionMarkTokens(t *testing.T) {
	input := `a ? b : c ?? d`

	expected := []TokenType{IDENT, QUESTION, IDENT, COLON, IDENT, COALESCE, IDENT, EOF}

	l := NewLexer(source.NewEval(input))
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d] - expected %q, got %q (literal %q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"42", "42"},
		{"10.5", "10.5"},
		{"1e3", "1e3"},
		{"2.5e-2", "2.5e-2"},
	}

	for _, tt := range tests {
		l := NewLexer(source.NewEval(tt.input))
		tok := l.NextToken()
		if tok.Type != NUMBER {
			t.Errorf("input %q: expected NUMBER, got %q", tt.input, tok.Type)
			continue
		}
		if tok.Literal != tt.expected {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := NewLexer(source.NewEval(`"a\nb\\c\"d"`))
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %q", tok.Type)
	}
	if tok.Literal != "a\nb\\c\"d" {
		t.Errorf("unexpected literal %q", tok.Literal)
	}
}

func TestIllegalTokens(t *testing.T) {
	tests := []string{"@", "&", "|", `"unterminated`}

	for _, input := range tests {
		l := NewLexer(source.NewEval(input))
		tok := l.NextToken()
		if tok.Type != ILLEGAL {
			t.Errorf("input %q: expected ILLEGAL, got %q (literal %q)", input, tok.Type, tok.Literal)
		}
	}
}

func TestComments(t *testing.T) {
	input := `1 // line comment
/* block
comment */ 2`

	l := NewLexer(source.NewEval(input))

	tok := l.NextToken()
	if tok.Type != NUMBER || tok.Literal != "1" {
		t.Fatalf("expected NUMBER 1, got %q %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != NUMBER || tok.Literal != "2" {
		t.Fatalf("expected NUMBER 2, got %q %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != EOF {
		t.Fatalf("expected EOF, got %q", tok.Type)
	}
}
