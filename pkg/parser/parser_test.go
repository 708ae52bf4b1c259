package parser

import (
	"strings"
	"testing"

	"github.com/Diokuz/optional-keys-in-objects/pkg/lexer"
	"github.com/Diokuz/optional-keys-in-objects/pkg/source"
)

func parseProgram(t *testing.T, input string) *Program {
	t.Helper()
	l := lexer.NewLexer(source.NewEval(input))
	p := NewParser(l)
	program, errs := p.ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("parser error for %q: %s", input, errs[0].Error())
	}
	return program
}

func parseExpr(t *testing.T, input string) Expression {
	t.Helper()
	program := parseProgram(t, input)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", program.Statements[0])
	}
	return stmt.Expression
}

func TestLetStatements(t *testing.T) {
	program := parseProgram(t, "let x = 5; let y; const z = 'a';")

	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Statements))
	}

	letStmt, ok := program.Statements[0].(*LetStatement)
	if !ok {
		t.Fatalf("expected LetStatement, got %T", program.Statements[0])
	}
	if letStmt.Name.Value != "x" {
		t.Errorf("expected name x, got %s", letStmt.Name.Value)
	}

	bare, ok := program.Statements[1].(*LetStatement)
	if !ok {
		t.Fatalf("expected LetStatement, got %T", program.Statements[1])
	}
	if bare.Value != nil {
		t.Errorf("expected nil initializer, got %s", bare.Value.String())
	}

	constStmt, ok := program.Statements[2].(*ConstStatement)
	if !ok {
		t.Fatalf("expected ConstStatement, got %T", program.Statements[2])
	}
	if constStmt.Name.Value != "z" {
		t.Errorf("expected name z, got %s", constStmt.Name.Value)
	}
}

func TestObjectLiteralProperties(t *testing.T) {
	expr := parseExpr(t, `({ a: 1, b?: 2, [k]?: 3, "s"?: 4, c, d?, 5: six })`)

	obj, ok := expr.(*ObjectLiteral)
	if !ok {
		t.Fatalf("expected ObjectLiteral, got %T", expr)
	}

	tests := []struct {
		keyStr    string
		computed  bool
		shorthand bool
		optional  bool
	}{
		{"a", false, false, false},
		{"b", false, false, true},
		{"k", true, false, true},
		{"'s'", false, false, true},
		{"c", false, true, false},
		{"d", false, true, true},
		{"5", false, false, false},
	}

	if len(obj.Properties) != len(tests) {
		t.Fatalf("expected %d properties, got %d", len(tests), len(obj.Properties))
	}

	for i, tt := range tests {
		prop := obj.Properties[i]
		if prop.Key.String() != tt.keyStr {
			t.Errorf("prop[%d] key: expected %q, got %q", i, tt.keyStr, prop.Key.String())
		}
		if prop.Computed != tt.computed {
			t.Errorf("prop[%d] computed: expected %v, got %v", i, tt.computed, prop.Computed)
		}
		if prop.Shorthand != tt.shorthand {
			t.Errorf("prop[%d] shorthand: expected %v, got %v", i, tt.shorthand, prop.Shorthand)
		}
		if prop.Optional != tt.optional {
			t.Errorf("prop[%d] optional: expected %v, got %v", i, tt.optional, prop.Optional)
		}
	}

	if !obj.HasOptional() {
		t.Error("expected HasOptional to be true")
	}
}

func TestShorthandValueDerivesFromKey(t *testing.T) {
	expr := parseExpr(t, `({ foo? })`)

	obj := expr.(*ObjectLiteral)
	prop := obj.Properties[0]
	if !prop.Shorthand || !prop.Optional {
		t.Fatalf("expected optional shorthand, got %+v", prop)
	}
	keyIdent, ok := prop.Key.(*Identifier)
	if !ok {
		t.Fatalf("expected identifier key, got %T", prop.Key)
	}
	valIdent, ok := prop.Value.(*Identifier)
	if !ok {
		t.Fatalf("expected identifier value, got %T", prop.Value)
	}
	if keyIdent.Value != "foo" || valIdent.Value != "foo" {
		t.Errorf("expected key and value to both be foo, got %s and %s", keyIdent.Value, valIdent.Value)
	}
}

func TestObjectLiteralAtStatementStart(t *testing.T) {
	// Without blocks in the language, a leading '{' is an object literal.
	expr := parseExpr(t, `{ a?: 1 }`)
	if _, ok := expr.(*ObjectLiteral); !ok {
		t.Fatalf("expected ObjectLiteral, got %T", expr)
	}
}

func TestOptionalMarkerDoesNotBreakTernary(t *testing.T) {
	expr := parseExpr(t, "cond ? a : b")
	if _, ok := expr.(*TernaryExpression); !ok {
		t.Fatalf("expected TernaryExpression, got %T", expr)
	}

	obj := parseExpr(t, `({ a?: cond ? 1 : 2 })`).(*ObjectLiteral)
	prop := obj.Properties[0]
	if !prop.Optional {
		t.Error("expected optional property")
	}
	if _, ok := prop.Value.(*TernaryExpression); !ok {
		t.Errorf("expected ternary value, got %T", prop.Value)
	}
}

func TestNestedObjectLiterals(t *testing.T) {
	obj := parseExpr(t, `({ outer?: { inner?: x } })`).(*ObjectLiteral)
	inner, ok := obj.Properties[0].Value.(*ObjectLiteral)
	if !ok {
		t.Fatalf("expected nested ObjectLiteral, got %T", obj.Properties[0].Value)
	}
	if !inner.Properties[0].Optional {
		t.Error("expected inner property to be optional")
	}
}

func TestTrailingComma(t *testing.T) {
	obj := parseExpr(t, `({ a: 1, b?: 2, })`).(*ObjectLiteral)
	if len(obj.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(obj.Properties))
	}
}

func TestUpdateExpressions(t *testing.T) {
	post := parseExpr(t, "i++").(*UpdateExpression)
	if post.Prefix {
		t.Error("expected postfix update")
	}
	pre := parseExpr(t, "++i").(*UpdateExpression)
	if !pre.Prefix {
		t.Error("expected prefix update")
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"a ?? b ?? c", "((a ?? b) ?? c)"},
		{"a || b && c", "(a || (b && c))"},
		{"a === b !== c", "((a === b) !== c)"},
		{"-a * b", "((-a) * b)"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e))"},
		{"a = b = c", "(a = (b = c))"},
		{"a.b[c]", "((a.b)[c])"},
	}

	for _, tt := range tests {
		expr := parseExpr(t, tt.input)
		if got := expr.String(); got != tt.expected {
			t.Errorf("input %q: expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string
	}{
		{`({ "s"? })`, "shorthand property requires an identifier key"},
		{`({ a? 1 })`, "expected ':'"},
		{`({ a?: })`, "unexpected token"},
		{`5 = 3`, "invalid assignment target"},
		{`5++`, "invalid ++ target"},
		{`const x;`, "expected next token to be ="},
	}

	for _, tt := range tests {
		l := lexer.NewLexer(source.NewEval(tt.input))
		p := NewParser(l)
		_, errs := p.ParseProgram()
		if len(errs) == 0 {
			t.Errorf("input %q: expected a syntax error", tt.input)
			continue
		}
		if msg := errs[0].Message(); !strings.Contains(msg, tt.wantMsg) {
			t.Errorf("input %q: expected error containing %q, got %q", tt.input, tt.wantMsg, msg)
		}
	}
}
