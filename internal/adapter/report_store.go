package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "brack.dev/pkg/brack/internal/model"
)

// ReportFileName is the name of the check report inside the reports directory.
const ReportFileName = "check.yaml"

const reportFormatVersion = 1

// ErrNoReport is returned by LoadReports when the directory holds no report.
var ErrNoReport = errors.New("no check report found")

// ReportStore persists check reports.
type ReportStore interface {
	SaveReports(dir m.Path, reports []m.Report) error
	LoadReports(dir m.Path) ([]m.Report, error)
}

type reportDocument struct {
	Version int        `yaml:"version"`
	Summary summaryDoc `yaml:"summary"`
	Reports []m.Report `yaml:"reports"`
}

type summaryDoc struct {
	Files    int `yaml:"files"`
	Failed   int `yaml:"failed"`
	Errors   int `yaml:"errors"`
	Warnings int `yaml:"warnings"`
	Infos    int `yaml:"infos"`
}

// YAMLReportStore stores reports as a single YAML document per directory.
type YAMLReportStore struct{}

// NewReportStore creates a YAMLReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReports writes reports to dir/check.yaml, creating dir when needed.
func (s *YAMLReportStore) SaveReports(dir m.Path, reports []m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	sum := m.Summarize(reports)
	doc := reportDocument{
		Version: reportFormatVersion,
		Summary: summaryDoc{
			Files:    sum.Files,
			Failed:   sum.Failed,
			Errors:   sum.Errors,
			Warnings: sum.Warnings,
			Infos:    sum.Infos,
		},
		Reports: reports,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal reports: %w", err)
	}

	path := filepath.Join(string(dir), ReportFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	slog.Debug("saved reports", "path", path, "count", len(reports))

	return nil
}

// LoadReports reads the reports saved in dir.
func (s *YAMLReportStore) LoadReports(dir m.Path) ([]m.Report, error) {
	path := filepath.Join(string(dir), ReportFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoReport, dir)
		}

		return nil, fmt.Errorf("read reports: %w", err)
	}

	var doc reportDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if doc.Version > reportFormatVersion {
		return nil, fmt.Errorf("unsupported report version %d in %s", doc.Version, path)
	}

	return doc.Reports, nil
}
