// Package adapter contains filesystem and persistence adapters for the brack CLI.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	m "brack.dev/pkg/brack/internal/model"
)

// recursiveSuffix marks a path pattern that descends into subdirectories.
const recursiveSuffix = "/..."

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when looking for source files. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get resolves path patterns (`./...`, directories, files) into the
	// source files they denote. Paths matching any exclude regex are skipped.
	Get(ctx context.Context, roots []m.Path, exclude ...string) ([]m.File, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns a SHA-256 fingerprint for the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get resolves roots into a sorted, de-duplicated list of source files. An
// empty roots list means the current directory, recursively. Explicitly named
// files are returned whatever their extension; directories contribute only
// files ending in m.SourceExt.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, roots []m.Path, exclude ...string) ([]m.File, error) {
	patterns, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(roots) == 0 {
		roots = []m.Path{"." + recursiveSuffix}
	}

	seen := make(map[string]bool)

	var files []m.File

	collect := func(path string) error {
		clean := filepath.Clean(path)
		if seen[clean] || excluded(patterns, clean) {
			return nil
		}

		seen[clean] = true

		hash, err := a.HashFile(m.Path(clean))
		if err != nil {
			return fmt.Errorf("hash %s: %w", clean, err)
		}

		files = append(files, m.File{Path: m.Path(clean), Hash: hash})

		return nil
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir, recursive := splitPattern(string(root))

		info, err := a.FileInfo(m.Path(dir))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			if err := collect(dir); err != nil {
				return nil, err
			}

			continue
		}

		err = a.Walk(m.Path(dir), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if err := ctx.Err(); err != nil {
				return err
			}

			if info.IsDir() || filepath.Ext(path) != m.SourceExt {
				return nil
			}

			return collect(path)
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	slog.Debug("resolved sources", "roots", len(roots), "files", len(files))

	return files, nil
}

// splitPattern turns `dir/...` into (dir, true) and anything else into
// (path, false).
func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}

	if dir, ok := strings.CutSuffix(pattern, recursiveSuffix); ok {
		if dir == "" {
			dir = "."
		}

		return dir, true
	}

	return pattern, false
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	var result *multierror.Error

	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid exclude pattern %q: %w", expr, err))
			continue
		}

		patterns = append(patterns, re)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return patterns, nil
}

func excluded(patterns []*regexp.Regexp, path string) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}
