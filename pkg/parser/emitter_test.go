package parser

import (
	"testing"

	"github.com/Diokuz/optional-keys-in-objects/pkg/lexer"
	"github.com/Diokuz/optional-keys-in-objects/pkg/source"
)

func emit(t *testing.T, input string, opts EmitterOptions) string {
	t.Helper()
	l := lexer.NewLexer(source.NewEval(input))
	p := NewParser(l)
	program, errs := p.ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("parser error for %q: %s", input, errs[0].Error())
	}
	return NewEmitter(opts).Emit(program)
}

func TestEmitPlainObjectUnchanged(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"let o = { a: 1, b };", "let o = { a: 1, b };\n"},
		{"let o = { [k]: v };", "let o = { [k]: v };\n"},
		{"let o = {};", "let o = {};\n"},
		{"let s = 'it\\'s';", "let s = 'it\\'s';\n"},
		{"let x = 1 + 2 * 3;", "let x = (1 + (2 * 3));\n"},
	}

	for _, tt := range tests {
		if got := emit(t, tt.input, DefaultEmitterOptions()); got != tt.expected {
			t.Errorf("input %q:\nexpected %q\ngot      %q", tt.input, tt.expected, got)
		}
	}
}

func TestEmitLoweredOptionalProperties(t *testing.T) {
	input := `let i = 0;
const o = { [i++]?: undefined, [i++]?: 'a' };`

	expected := `let i = 0;
const o = (function () {
  var __obj = {};
  var __k0 = i++;
  var __v0 = undefined;
  if (__v0 !== undefined) __obj[__k0] = __v0;
  var __k1 = i++;
  var __v1 = 'a';
  if (__v1 !== undefined) __obj[__k1] = __v1;
  return __obj;
}());
`

	if got := emit(t, input, DefaultEmitterOptions()); got != expected {
		t.Errorf("lowered output mismatch:\nexpected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestEmitMixedProperties(t *testing.T) {
	input := `let o = { a: 1, b?: x, "s"?: y };`

	expected := `let o = (function () {
  var __obj = {};
  __obj.a = 1;
  var __v0 = x;
  if (__v0 !== undefined) __obj.b = __v0;
  var __v1 = y;
  if (__v1 !== undefined) __obj['s'] = __v1;
  return __obj;
}());
`

	if got := emit(t, input, DefaultEmitterOptions()); got != expected {
		t.Errorf("lowered output mismatch:\nexpected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestEmitOptionalShorthandSingleEvaluation(t *testing.T) {
	input := `let o = { foo? };`

	expected := `let o = (function () {
  var __obj = {};
  var __v0 = foo;
  if (__v0 !== undefined) __obj.foo = __v0;
  return __obj;
}());
`

	if got := emit(t, input, DefaultEmitterOptions()); got != expected {
		t.Errorf("lowered output mismatch:\nexpected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestEmitTypeofChecks(t *testing.T) {
	opts := DefaultEmitterOptions()
	opts.TypeofChecks = true

	got := emit(t, `let o = { a?: x };`, opts)
	want := `let o = (function () {
  var __obj = {};
  var __v0 = x;
  if (typeof __v0 !== "undefined") __obj.a = __v0;
  return __obj;
}());
`
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestEmitCustomTempPrefix(t *testing.T) {
	opts := DefaultEmitterOptions()
	opts.TempPrefix = "$t_"

	got := emit(t, `let o = { a?: x };`, opts)
	want := `let o = (function () {
  var $t_obj = {};
  var $t_v0 = x;
  if ($t_v0 !== undefined) $t_obj.a = $t_v0;
  return $t_obj;
}());
`
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestEmitNestedLoweredObject(t *testing.T) {
	input := `let o = { outer: { inner?: x } };`

	// The outer object has no optional property of its own, so it stays a
	// plain literal; only the nested literal is lowered.
	got := emit(t, input, DefaultEmitterOptions())
	want := `let o = { outer: (function () {
  var __obj = {};
  var __v0 = x;
  if (__v0 !== undefined) __obj.inner = __v0;
  return __obj;
}()) };
`
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}
