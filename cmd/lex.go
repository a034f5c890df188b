package cmd

import (
	"github.com/spf13/cobra"
)

// lexCmd represents the lex command.
var lexCmd = newLexCmd()

func newLexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the tokens of a brack file",
		Long:  "Print every classified token of the file with its position and kind, followed by the lexer diagnostics.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Lex(cmd.Context(), fileArgs(args))
		},
	}
}

func init() {
	rootCmd.AddCommand(lexCmd)
}
