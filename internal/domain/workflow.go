// Package domain implements the brack use cases on top of the lexer, parser
// and runtime packages.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"brack.dev/pkg/brack/internal/adapter"
	"brack.dev/pkg/brack/internal/controller"
	"brack.dev/pkg/brack/internal/domain/runtime"
	m "brack.dev/pkg/brack/internal/model"
	"brack.dev/pkg/brack/pkg/spill"
)

var (
	// ErrSourceErrors is returned when a unit has error diagnostics.
	ErrSourceErrors = errors.New("source contains errors")
	// ErrCommentsDropped is returned when writing formatted source would
	// lose comments.
	ErrCommentsDropped = errors.New("formatting would drop comments")
)

// FileArgs names a single source file.
type FileArgs struct {
	Path m.Path
}

// RunArgs contains the arguments for evaluating a file.
type RunArgs struct {
	FileArgs
	Stdout io.Writer
}

// CheckArgs contains the arguments for checking many files.
type CheckArgs struct {
	Paths   []m.Path
	Exclude []string
	Reports m.Path
	Threads int
	// SpillDir holds the temporary report spill; empty uses the OS default.
	SpillDir string
}

// FormatArgs contains the arguments for formatting a file.
type FormatArgs struct {
	FileArgs
	Write bool
	Diff  bool
}

// ViewArgs contains the arguments for viewing saved reports.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the brack use cases.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Lex(ctx context.Context, args FileArgs) error
	Parse(ctx context.Context, args FileArgs) error
	Check(ctx context.Context, args CheckArgs) error
	Format(ctx context.Context, args FormatArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ReportStore
	adapter.SourceFSAdapter
	controller.UI
	Compiler
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	compiler Compiler,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Compiler:        compiler,
	}
}

func (w *workflow) read(path m.Path) ([]byte, error) {
	src, err := w.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read source", "path", path, "error", err)
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return src, nil
}

// report shows diags and turns error diagnostics into ErrSourceErrors.
func (w *workflow) report(ctx context.Context, path m.Path, diags m.Diagnostics) error {
	if err := w.DisplayDiagnostics(ctx, diags); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if n := diags.Count(m.LevelError); n > 0 {
		return fmt.Errorf("%s: %d error(s): %w", path, n, ErrSourceErrors)
	}

	return nil
}

// Run compiles a file and evaluates it when no errors were reported.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	src, err := w.read(args.Path)
	if err != nil {
		return err
	}

	unit, err := w.Compile(ctx, args.Path, src)
	if err != nil {
		_ = w.DisplayDiagnostics(ctx, unit.Diagnostics)
		return err
	}

	if err := w.report(ctx, args.Path, unit.Diagnostics); err != nil {
		return err
	}

	err = w.Evaluate(ctx, unit, args.Stdout)

	var rerr *runtime.RuntimeError
	if errors.As(err, &rerr) {
		if derr := w.DisplayDiagnostics(ctx, m.Diagnostics{rerr.Diagnostic()}); derr != nil {
			slog.Error("Failed to display runtime error", "error", derr)
		}
	}

	if err != nil {
		return fmt.Errorf("run %s: %w", args.Path, err)
	}

	return nil
}

// Lex prints the tokens of a file.
func (w *workflow) Lex(ctx context.Context, args FileArgs) error {
	src, err := w.read(args.Path)
	if err != nil {
		return err
	}

	unit, err := w.Compiler.Lex(ctx, args.Path, src)
	if err != nil {
		_ = w.DisplayDiagnostics(ctx, unit.Diagnostics)
		return err
	}

	if err := w.DisplayTokens(ctx, unit.Tokens); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return w.report(ctx, args.Path, unit.Diagnostics)
}

// Parse prints the syntax tree of a file.
func (w *workflow) Parse(ctx context.Context, args FileArgs) error {
	src, err := w.read(args.Path)
	if err != nil {
		return err
	}

	unit, err := w.Compile(ctx, args.Path, src)
	if err != nil {
		_ = w.DisplayDiagnostics(ctx, unit.Diagnostics)
		return err
	}

	if err := w.DisplayTree(ctx, unit.Tree); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return w.report(ctx, args.Path, unit.Diagnostics)
}

// Check lexes and parses every file the paths denote, saves the reports
// and displays them. Files are processed concurrently, each worker owning
// its own lexer and parser.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	if err := w.Start(ctx, controller.WithCheckMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	files, err := w.Get(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return fmt.Errorf("get sources: %w", err)
	}

	reports, failures, err := w.checkFiles(ctx, files, args)
	if err != nil {
		return err
	}

	if err := w.SaveReports(args.Reports, reports); err != nil {
		slog.Error("Failed to save reports", "error", err)
		return fmt.Errorf("save reports: %w", err)
	}

	if err := w.DisplayReports(ctx, reports); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if err := failures.ErrorOrNil(); err != nil {
		return err
	}

	if failed := m.Summarize(reports).Failed; failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed: %w", failed, len(reports), ErrSourceErrors)
	}

	return nil
}

func (w *workflow) checkFiles(ctx context.Context, files []m.File, args CheckArgs) ([]m.Report, *multierror.Error, error) {
	collected, err := spill.New[m.Report](args.SpillDir)
	if err != nil {
		return nil, nil, fmt.Errorf("create report spill: %w", err)
	}

	defer func() {
		if err := collected.Close(); err != nil {
			slog.Error("Failed to close report spill", "error", err)
		}
	}()

	var (
		failures   *multierror.Error
		failuresMu sync.Mutex
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Threads > 0 {
		group.SetLimit(args.Threads)
	}

	for _, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			report, err := w.checkFile(groupCtx, file)
			if err != nil {
				failuresMu.Lock()
				failures = multierror.Append(failures, err)
				failuresMu.Unlock()
			}

			if err := collected.Append(report); err != nil {
				return err
			}

			w.DisplayCheckProgress(groupCtx, report)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, fmt.Errorf("check: %w", err)
	}

	reports, err := collected.Collect()
	if err != nil {
		return nil, nil, fmt.Errorf("collect reports: %w", err)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Path < reports[j].Path
	})

	return reports, failures, nil
}

// checkFile builds the report of one file. I/O and fatal lexer failures are
// recorded in the report and also returned.
func (w *workflow) checkFile(ctx context.Context, file m.File) (m.Report, error) {
	report := m.Report{Path: file.Path, Hash: file.Hash}

	src, err := w.read(file.Path)
	if err != nil {
		report.Err = err.Error()
		return report, err
	}

	unit, err := w.Compile(ctx, file.Path, src)
	report.Diagnostics = unit.Diagnostics

	if err != nil {
		report.Err = err.Error()
		return report, err
	}

	report.Tokens = len(unit.Tokens)
	report.Nodes = unit.Tree.Count()

	slog.Debug("checked file", "path", file.Path, "status", report.Status())

	return report, nil
}

// Format prints the canonical form of a file, a diff against it, or
// rewrites the file in place.
func (w *workflow) Format(ctx context.Context, args FormatArgs) error {
	src, err := w.read(args.Path)
	if err != nil {
		return err
	}

	unit, err := w.Compiler.Lex(ctx, args.Path, src)
	if err != nil {
		_ = w.DisplayDiagnostics(ctx, unit.Diagnostics)
		return err
	}

	if err := w.report(ctx, args.Path, unit.Diagnostics); err != nil {
		return err
	}

	formatted := Format(unit.Tokens)

	switch {
	case args.Diff:
		diff, err := Diff(args.Path, string(src), formatted)
		if err != nil {
			return err
		}

		return w.DisplayDiff(ctx, diff)
	case args.Write:
		if n := unit.Comments(); n > 0 {
			return fmt.Errorf("%s has %d comment(s): %w", args.Path, n, ErrCommentsDropped)
		}

		if formatted == string(src) {
			return nil
		}

		info, err := w.FileInfo(args.Path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", args.Path, err)
		}

		if err := w.WriteFile(args.Path, []byte(formatted), info.Mode().Perm()); err != nil {
			return fmt.Errorf("write %s: %w", args.Path, err)
		}

		slog.Info("formatted file", "path", args.Path)

		return nil
	default:
		return w.DisplaySource(ctx, formatted)
	}
}

// Diff returns a unified diff from original to formatted, or "" when they
// are equal.
func Diff(path m.Path, original, formatted string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: string(path),
		ToFile:   string(path) + " (formatted)",
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}

	return diff, nil
}

// View displays previously saved check reports.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	if err := w.DisplayReports(ctx, reports); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	// Wait for UI to be closed by user (press 'q')
	w.Wait(ctx)
	w.Close(ctx)

	return nil
}
