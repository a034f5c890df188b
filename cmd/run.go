package cmd

import (
	"github.com/spf13/cobra"

	"brack.dev/pkg/brack/internal/domain"
	m "brack.dev/pkg/brack/internal/model"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Evaluate a brack file",
		Long: `Lex and parse the file and print its diagnostics. When no errors were
reported the file is evaluated and its output written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(cmd.Context(), domain.RunArgs{
				FileArgs: fileArgs(args),
				Stdout:   cmd.OutOrStdout(),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func fileArgs(args []string) domain.FileArgs {
	return domain.FileArgs{Path: m.Path(args[0])}
}
