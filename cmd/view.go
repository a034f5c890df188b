package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"brack.dev/pkg/brack/internal/domain"
	m "brack.dev/pkg/brack/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the last check report",
		Long:  "View the report saved by the last check from the reports directory. Long reports are paged on a terminal.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.View(cmd.Context(), domain.ViewArgs{Reports: reportsPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
