// Package model defines the data structures shared by the lexer, parser,
// runtime and the CLI.
package model

import "fmt"

// Path represents a file system path.
type Path string

// SourceExt is the file extension of brack source files.
const SourceExt = ".brk"

// File represents a source code file.
type File struct {
	Path Path
	Hash string
}

// FilePosition is a 1-based line/column location inside a named file.
// Column 0 is used transiently by the scanner right after a newline.
type FilePosition struct {
	Line     int    `yaml:"line"`
	Column   int    `yaml:"column"`
	Filename string `yaml:"file"`
}

// NewPosition creates a FilePosition.
func NewPosition(filename string, line, column int) FilePosition {
	return FilePosition{Line: line, Column: column, Filename: filename}
}

func (p FilePosition) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// SourceSpan is a raw lexeme with the position of its first byte.
// Unclosed is set when a quoted literal or block comment ran into the end
// of the input.
type SourceSpan struct {
	Text     string
	Position FilePosition
	Unclosed bool
}
