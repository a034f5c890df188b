package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "brack.dev/pkg/brack/internal/model"
)

func TestYAMLReportStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	store := NewReportStore()

	reports := []m.Report{
		{Path: "a.brk", Hash: "abc", Tokens: 5, Nodes: 3},
		{
			Path:   "b.brk",
			Hash:   "def",
			Tokens: 2,
			Diagnostics: m.Diagnostics{{
				Level:    m.LevelWarning,
				Position: m.NewPosition("b.brk", 1, 4),
				Text:     "99999999999999999999",
				Message:  "number is too large",
				Help:     "make the number smaller or use a different type",
			}},
		},
		{Path: "c.brk", Err: "lexeme too long"},
	}

	require.NoError(t, store.SaveReports(m.Path(dir), reports))

	data, err := os.ReadFile(filepath.Join(dir, ReportFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "level: warning")
	assert.Contains(t, string(data), "failed: 1")

	loaded, err := store.LoadReports(m.Path(dir))
	require.NoError(t, err)
	assert.Equal(t, reports, loaded)
}

func TestYAMLReportStore_LoadMissing(t *testing.T) {
	_, err := NewReportStore().LoadReports(m.Path(t.TempDir()))
	assert.ErrorIs(t, err, ErrNoReport)
}

func TestYAMLReportStore_LoadInvalid(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ReportFileName), "reports: [\n")

	_, err := NewReportStore().LoadReports(m.Path(dir))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoReport)
}

func TestYAMLReportStore_LoadNewerVersion(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ReportFileName), "version: 99\nreports: []\n")

	_, err := NewReportStore().LoadReports(m.Path(dir))
	assert.ErrorContains(t, err, "unsupported report version")
}
