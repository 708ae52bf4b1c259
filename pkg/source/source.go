package source

import (
	"path/filepath"
	"strings"
)

// File represents a unit of script source with its content and metadata.
type File struct {
	Name    string   // Display name (e.g., "demo.js", "<repl>", "<eval>")
	Path    string   // Full file path (empty for REPL/eval input)
	Content string   // The source text
	lines   []string // Cached split lines (lazy)
}

// New creates a source file with an explicit display name and path.
func New(name, path, content string) *File {
	return &File{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// NewEval creates a source file for eval input.
func NewEval(content string) *File {
	return &File{Name: "<eval>", Content: content}
}

// NewRepl creates a source file for a line of REPL input.
func NewRepl(content string) *File {
	return &File{Name: "<repl>", Content: content}
}

// FromFile creates a source file from a file path and its content.
func FromFile(path, content string) *File {
	return New(filepath.Base(path), path, content)
}

// Lines returns the source split into lines (cached).
func (f *File) Lines() []string {
	if f.lines == nil {
		f.lines = strings.Split(f.Content, "\n")
	}
	return f.lines
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name).
func (f *File) DisplayPath() string {
	if f.Path != "" {
		return f.Path
	}
	return f.Name
}

// IsFile reports whether this source came from an actual file.
func (f *File) IsFile() bool {
	return f.Path != ""
}
