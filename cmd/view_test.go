package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brack.dev/pkg/brack/internal/adapter"
	"brack.dev/pkg/brack/internal/domain"
	m "brack.dev/pkg/brack/internal/model"
)

func TestViewCmd_UsesRootOutputFlagByDefault(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Reports == m.Path(".brack-reports")
	})).Return(nil)

	cmd.SetArgs([]string{"view"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestViewCmd_RootOutputFlagIsPassedThrough(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Reports == m.Path("./reports-dir")
	})).Return(nil)

	cmd.SetArgs([]string{"view", "--output", "./reports-dir"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestViewCmd_MissingReport(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newViewCmd())

	mockWorkflow.On("View", mock.Anything, mock.Anything).Return(adapter.ErrNoReport)

	cmd.SetArgs([]string{"view"})
	require.ErrorIs(t, cmd.Execute(), adapter.ErrNoReport)
}

func TestViewCmd_PositionalArgsAreRejected(t *testing.T) {
	cmd, _, _ := newTestRootCmd(t, newViewCmd())

	cmd.SetArgs([]string{"view", "./custom-reports"})
	err := cmd.Execute()
	require.Error(t, err)
}
