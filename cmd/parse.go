package cmd

import (
	"github.com/spf13/cobra"
)

// parseCmd represents the parse command.
var parseCmd = newParseCmd()

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the syntax tree of a brack file",
		Long:  "Print the syntax tree of the file, one node per line, followed by the lexer and parser diagnostics.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Parse(cmd.Context(), fileArgs(args))
		},
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
