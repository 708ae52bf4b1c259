package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diokuz/optional-keys-in-objects/pkg/lexer"
	"github.com/Diokuz/optional-keys-in-objects/pkg/parser"
	"github.com/Diokuz/optional-keys-in-objects/pkg/source"
	"github.com/Diokuz/optional-keys-in-objects/pkg/value"
)

func run(t *testing.T, input string) value.Value {
	t.Helper()
	src := source.NewEval(input)
	p := parser.NewParser(lexer.NewLexer(src))
	program, errs := p.ParseProgram()
	require.Empty(t, errs, "parse errors for %q", input)

	v, err := New().Eval(program, src)
	require.Nil(t, err, "runtime error for %q: %v", input, err)
	return v
}

func runErr(t *testing.T, input string) string {
	t.Helper()
	src := source.NewEval(input)
	p := parser.NewParser(lexer.NewLexer(src))
	program, errs := p.ParseProgram()
	require.Empty(t, errs, "parse errors for %q", input)

	_, err := New().Eval(program, src)
	require.NotNil(t, err, "expected runtime error for %q", input)
	return err.Message()
}

func TestOptionalPropertyOmitsUndefined(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`({ foo?: undefined })`, "{}"},
		{`({ foo?: null })`, "{ foo: null }"},
		{`({ foo?: 0 })`, "{ foo: 0 }"},
		{`({ foo?: false })`, "{ foo: false }"},
		{`({ foo?: '' })`, "{ foo: '' }"},
		{`({ foo: undefined })`, "{ foo: undefined }"},
	}

	for _, tt := range tests {
		v := run(t, tt.input)
		assert.Equal(t, tt.expected, v.String(), "input %q", tt.input)
	}
}

func TestOptionalShorthand(t *testing.T) {
	assert.Equal(t, "{}", run(t, `let foo; ({ foo? })`).String())
	assert.Equal(t, "{ foo: 1 }", run(t, `let foo = 1; ({ foo? })`).String())
	// Plain shorthand keeps the undefined value.
	assert.Equal(t, "{ foo: undefined }", run(t, `let foo; ({ foo })`).String())
}

func TestComputedKeysEvaluateInOrder(t *testing.T) {
	// The proposal's counter example: the second key sees i === 1 even
	// though the first property was omitted.
	v := run(t, `let i = 0; const o = { [i++]?: undefined, [i++]?: 'a' }; o`)
	assert.Equal(t, "{ 1: 'a' }", v.String())

	// Key and value evaluations interleave per property.
	v = run(t, `let i = 0; ({ [i++]: i, [i++]: i })`)
	assert.Equal(t, "{ 0: 1, 1: 2 }", v.String())
}

func TestOptionalKeySideEffectsAlwaysRun(t *testing.T) {
	// The key expression runs even when the property is omitted.
	v := run(t, `let i = 0; let o = { [i++]?: undefined }; i`)
	assert.Equal(t, float64(1), value.AsNumber(v))
}

func TestDuplicateKeys(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`({ a: 5, a?: undefined })`, "{ a: 5 }"},
		{`({ a?: undefined, a: 5 })`, "{ a: 5 }"},
		{`({ a: 1, a?: 2 })`, "{ a: 2 }"},
		{`({ a: 1, a: 2 })`, "{ a: 2 }"},
	}

	for _, tt := range tests {
		v := run(t, tt.input)
		assert.Equal(t, tt.expected, v.String(), "input %q", tt.input)
	}
}

func TestUndefinedComputedKey(t *testing.T) {
	v := run(t, `({ [undefined]?: 1 })`)
	assert.Equal(t, "{ undefined: 1 }", v.String())
}

func TestPropertyAccess(t *testing.T) {
	assert.Equal(t, float64(1), value.AsNumber(run(t, `let o = { a: 1 }; o.a`)))
	assert.True(t, value.IsUndefined(run(t, `let o = {}; o.missing`)))
	assert.Equal(t, float64(2), value.AsNumber(run(t, `let o = { a: 1 }; o.a = 2; o.a`)))
	assert.Equal(t, "b", value.AsString(run(t, `let a = ['a', 'b']; a[1]`)))
	assert.Equal(t, float64(2), value.AsNumber(run(t, `let a = [1, 2]; a.length`)))
}

func TestFeedsBackIntoOptionalProperties(t *testing.T) {
	// Missing properties read as undefined, so optional properties compose
	// with property access for object narrowing.
	v := run(t, `let src = { a: 1 }; ({ a?: src.a, b?: src.b })`)
	assert.Equal(t, "{ a: 1 }", v.String())
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`1 + 2 * 3`, "7"},
		{`'a' + 1`, "a1"},
		{`1 < 2 ? 'yes' : 'no'`, "yes"},
		{`null ?? 'fallback'`, "fallback"},
		{`0 ?? 'fallback'`, "0"},
		{`undefined == null`, "true"},
		{`undefined === null`, "false"},
		{`!0`, "true"},
	}

	for _, tt := range tests {
		v := run(t, tt.input)
		assert.Equal(t, tt.expected, v.String(), "input %q", tt.input)
	}
}

func TestUpdateTargetEvaluatesOnce(t *testing.T) {
	// a[i++]++ resolves the element reference once: i is bumped a single
	// time and the increment lands on the element that was read.
	v := run(t, `let i = 0; let a = [10, 20]; a[i++]++; i`)
	assert.Equal(t, float64(1), value.AsNumber(v))

	v = run(t, `let i = 0; let a = [10, 20]; a[i++]++; a[0]`)
	assert.Equal(t, float64(11), value.AsNumber(v))

	v = run(t, `let i = 0; let a = [10, 20]; a[i++]++; a[1]`)
	assert.Equal(t, float64(20), value.AsNumber(v))

	// Same for computed object keys and for the prefix form.
	v = run(t, `let i = 0; let keys = ['x']; let o = { x: 5 }; o[keys[i++]]++; o.x`)
	assert.Equal(t, float64(6), value.AsNumber(v))

	v = run(t, `let i = 0; let keys = ['x']; let o = { x: 5 }; o[keys[i++]]++; i`)
	assert.Equal(t, float64(1), value.AsNumber(v))

	v = run(t, `let i = 0; let a = [10]; ++a[i++]; i`)
	assert.Equal(t, float64(1), value.AsNumber(v))

	// Postfix still yields the old value while storing the new one.
	v = run(t, `let i = 0; let a = [5]; let r = a[i++]++; r`)
	assert.Equal(t, float64(5), value.AsNumber(v))
}

func TestAssignmentTargetBeforeValue(t *testing.T) {
	// The target reference resolves before the right side runs, so the
	// value expression sees the key's side effect.
	v := run(t, `let i = 0; let a = [10, 20]; a[i++] = i; a[0]`)
	assert.Equal(t, float64(1), value.AsNumber(v))

	v = run(t, `let i = 0; let a = [10, 20]; a[i++] = 99; a`)
	assert.Equal(t, "[99, 20]", v.String())
}

func TestEnvironmentPersistsAcrossEval(t *testing.T) {
	interp := New()

	eval := func(input string) value.Value {
		src := source.NewRepl(input)
		p := parser.NewParser(lexer.NewLexer(src))
		program, errs := p.ParseProgram()
		require.Empty(t, errs)
		v, err := interp.Eval(program, src)
		require.Nil(t, err)
		return v
	}

	eval(`let x = 40;`)
	v := eval(`x + 2`)
	assert.Equal(t, float64(42), value.AsNumber(v))
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string
	}{
		{`nope`, "nope is not defined"},
		{`const c = 1; c = 2;`, "Assignment to constant variable."},
		{`undefined.a`, "Cannot read properties of undefined (reading 'a')"},
		{`null.a`, "Cannot read properties of null (reading 'a')"},
		{`({ [boom]?: 1 })`, "boom is not defined"},
	}

	for _, tt := range tests {
		msg := runErr(t, tt.input)
		assert.Contains(t, msg, tt.wantMsg, "input %q", tt.input)
	}
}

func TestErrorInKeyAbortsBuild(t *testing.T) {
	// An error while evaluating a later key leaves no partial result and
	// stops evaluation of the remaining properties.
	msg := runErr(t, `let i = 0; let o = { a: i++, [nope]?: i++ };`)
	assert.Contains(t, msg, "nope is not defined")
}
