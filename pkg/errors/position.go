package errors

import "github.com/Diokuz/optional-keys-in-objects/pkg/source"

// Position represents a specific location in the source code.
// Line and column are 1-based for human-readability; byte offsets are
// 0-based for tooling.
type Position struct {
	Line     int          // 1-based line number
	Column   int          // 1-based column number
	StartPos int          // 0-based byte offset of the start of the span
	EndPos   int          // 0-based byte offset of the end of the span (exclusive)
	Source   *source.File // Reference to the source file
}
