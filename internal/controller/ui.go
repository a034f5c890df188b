// Package controller provides output adapters for displaying lexer, parser
// and check results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "brack.dev/pkg/brack/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeCompile StartMode = iota
	ModeCheck
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithCheckMode sets the UI to multi-file check mode.
func WithCheckMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCheck
	}
}

// WithViewMode sets the UI to report viewing mode, which may page output.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeCompile}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines how workflow results are shown to the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayTokens(ctx context.Context, tokens []m.Token) error
	DisplayTree(ctx context.Context, tree *m.SyntaxTree) error
	DisplayDiagnostics(ctx context.Context, diags m.Diagnostics) error
	DisplayCheckProgress(ctx context.Context, report m.Report)
	DisplayReports(ctx context.Context, reports []m.Report) error
	DisplaySource(ctx context.Context, source string) error
	DisplayDiff(ctx context.Context, diff string) error
}

// NewUI picks the TUI for terminals and SimpleUI otherwise. Colour is used
// only on terminals and when color is true.
func NewUI(cmd *cobra.Command, tty bool, color bool) UI {
	styles := NewStyles(tty && color)

	if tty {
		return NewTUI(cmd, styles)
	}

	return NewSimpleUI(cmd, styles)
}

// IsTTY reports whether f is a terminal.
func IsTTY(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
