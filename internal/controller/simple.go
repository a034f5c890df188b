package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	m "brack.dev/pkg/brack/internal/model"
)

// SimpleUI implements UI by printing to the command's output streams.
// Results go to stdout, diagnostics to stderr.
type SimpleUI struct {
	cmd    *cobra.Command
	styles Styles
	mode   StartMode
	mu     sync.Mutex // serializes writes from check workers
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, styles Styles) *SimpleUI {
	return &SimpleUI{cmd: cmd, styles: styles}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = newStartConfig(options).mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayTokens prints the token table.
func (s *SimpleUI) DisplayTokens(ctx context.Context, tokens []m.Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.print(renderTokens(tokens))
}

// DisplayTree prints the syntax tree, one node per line.
func (s *SimpleUI) DisplayTree(ctx context.Context, tree *m.SyntaxTree) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := renderTree(tree, s.styles)
	if err != nil {
		return err
	}

	return s.print(out)
}

// DisplayDiagnostics prints diagnostics and their counters to stderr.
func (s *SimpleUI) DisplayDiagnostics(ctx context.Context, diags m.Diagnostics) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprint(s.cmd.ErrOrStderr(), renderDiagnostics(diags, s.styles))

	return err
}

// DisplayCheckProgress prints one line per checked file.
func (s *SimpleUI) DisplayCheckProgress(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	_ = s.printf("checked %s -> %s\n", report.Path, report.Status())
}

// DisplayReports prints the diagnostics of all reports and the summary table.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.mode == ModeCheck {
		// separate from the progress lines
		if err := s.print("\n"); err != nil {
			return err
		}
	}

	return s.print(renderReports(reports, s.styles))
}

// DisplaySource prints formatted source as is.
func (s *SimpleUI) DisplaySource(ctx context.Context, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.print(source)
}

// DisplayDiff prints a unified diff.
func (s *SimpleUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.print(diff)
}

func (s *SimpleUI) print(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprint(s.cmd.OutOrStdout(), text)
	return err
}

func (s *SimpleUI) printf(format string, args ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
	return err
}
