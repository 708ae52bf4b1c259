package errors

import (
	"fmt"
	"io"
	"strings"
)

// ScriptError is the interface implemented by all errors produced while
// lexing, parsing, or evaluating script source.
type ScriptError interface {
	error
	Pos() Position
	Kind() string // "Syntax" or "Runtime"
	// Message returns the specific error message without position info,
	// for callers that want to format the error differently.
	Message() string
	Unwrap() error
}

// SyntaxError represents an error during lexing or parsing.
type SyntaxError struct {
	Position
	Msg   string
	Cause error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// RuntimeError represents an error raised while evaluating an expression.
// The position points to the start of the operation that failed.
type RuntimeError struct {
	Position
	Msg   string
	Cause error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Runtime Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *RuntimeError) Pos() Position   { return e.Position }
func (e *RuntimeError) Kind() string    { return "Runtime" }
func (e *RuntimeError) Message() string { return e.Msg }
func (e *RuntimeError) Unwrap() error   { return e.Cause }
func (e *RuntimeError) CausedBy(cause error) *RuntimeError {
	e.Cause = cause
	return e
}

// DisplayErrors writes a list of script errors to w in a user-friendly
// format, including the offending source line and a caret marker. The
// source text comes from the Position each error carries, so callers do
// not have to keep the original input around.
func DisplayErrors(w io.Writer, errs []ScriptError) {
	for _, err := range errs {
		pos := err.Pos()
		kind := err.Kind()
		msg := err.Message()

		var lines []string
		if pos.Source != nil {
			lines = pos.Source.Lines()
		}

		lineIdx := pos.Line - 1
		if lineIdx < 0 || lineIdx >= len(lines) {
			fmt.Fprintf(w, "%s Error: %s\n", kind, msg)
			continue
		}

		sourceLine := strings.TrimRight(lines[lineIdx], "\r\n\t ")

		fmt.Fprintf(w, "%s Error at %d:%d: %s\n", kind, pos.Line, pos.Column, msg)
		fmt.Fprintf(w, "  %s\n", sourceLine)

		marker := strings.Repeat(" ", pos.Column-1) + "^"
		fmt.Fprintf(w, "  %s\n", marker)
		fmt.Fprintln(w)
	}
}
