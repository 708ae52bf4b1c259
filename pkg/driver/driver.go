package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/Diokuz/optional-keys-in-objects/pkg/errors"
	"github.com/Diokuz/optional-keys-in-objects/pkg/interp"
	"github.com/Diokuz/optional-keys-in-objects/pkg/lexer"
	"github.com/Diokuz/optional-keys-in-objects/pkg/parser"
	"github.com/Diokuz/optional-keys-in-objects/pkg/source"
	"github.com/Diokuz/optional-keys-in-objects/pkg/value"
)

// Session is a persistent evaluation session. State defined in one
// evaluation (variables, constants) is visible to subsequent ones, which is
// what the REPL builds on.
type Session struct {
	interpreter *interp.Interpreter
}

// New creates a session with a fresh environment.
func New() *Session {
	return &Session{interpreter: interp.New()}
}

// parse lexes and parses a source file.
func parse(src *source.File) (*parser.Program, []errors.ScriptError) {
	l := lexer.NewLexer(src)
	p := parser.NewParser(l)
	return p.ParseProgram()
}

// RunString evaluates source code in the current session and returns the
// resulting value along with any errors.
func (s *Session) RunString(sourceCode string) (value.Value, []errors.ScriptError) {
	return s.runSource(source.NewEval(sourceCode))
}

// RunFile reads and evaluates a script file in the current session.
func (s *Session) RunFile(path string) (value.Value, []errors.ScriptError) {
	content, err := os.ReadFile(path)
	if err != nil {
		return value.Undefined(), []errors.ScriptError{&errors.RuntimeError{
			Msg:   fmt.Sprintf("failed to read %s", path),
			Cause: err,
		}}
	}
	return s.runSource(source.FromFile(path, string(content)))
}

func (s *Session) runSource(src *source.File) (value.Value, []errors.ScriptError) {
	program, parseErrs := parse(src)
	if len(parseErrs) > 0 {
		return value.Undefined(), parseErrs
	}

	result, runErr := s.interpreter.Eval(program, src)
	if runErr != nil {
		return value.Undefined(), []errors.ScriptError{runErr}
	}
	return result, nil
}

// DisplayResult writes either the errors or the final value to w.
// Errors render with the source line and a caret marker, taken from the
// source file the errors carry. Returns true when the evaluation succeeded.
func (s *Session) DisplayResult(w io.Writer, v value.Value, errs []errors.ScriptError) bool {
	if len(errs) > 0 {
		errors.DisplayErrors(w, errs)
		return false
	}
	fmt.Fprintln(w, v.String())
	return true
}

// TranspileString lowers source that uses the optional-key syntax to plain
// JavaScript.
func TranspileString(sourceCode string, opts Options) (string, []errors.ScriptError) {
	return transpileSource(source.NewEval(sourceCode), opts)
}

// TranspileFile transpiles inPath and writes the result to outPath.
// When outPath is empty, the output lands next to the input with the
// configured suffix.
func TranspileFile(inPath, outPath string, opts Options) (string, error) {
	content, err := os.ReadFile(inPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", inPath, err)
	}

	out, errs := transpileSource(source.FromFile(inPath, string(content)), opts)
	if len(errs) > 0 {
		return "", fmt.Errorf("transpile %s: %w", inPath, errs[0])
	}

	if outPath == "" {
		outPath = OutputPath(inPath, opts)
	}
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	return outPath, nil
}

func transpileSource(src *source.File, opts Options) (string, []errors.ScriptError) {
	program, parseErrs := parse(src)
	if len(parseErrs) > 0 {
		return "", parseErrs
	}
	emitter := parser.NewEmitter(opts.emitterOptions())
	return emitter.Emit(program), nil
}
