package cmd

import (
	"github.com/spf13/cobra"

	"brack.dev/pkg/brack/internal/domain"
)

const (
	fmtDiffFlagName  = "diff"
	fmtWriteFlagName = "write"
)

var fmtDiffFlag bool
var fmtWriteFlag bool

// fmtCmd represents the fmt command.
var fmtCmd = newFmtCmd()

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Format a brack file",
		Long: `Print the file in canonical form: one top-level form per line and single
spaces between tokens. Comments are not kept, so --write refuses files
that contain any.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Format(cmd.Context(), domain.FormatArgs{
				FileArgs: fileArgs(args),
				Diff:     fmtDiffFlag,
				Write:    fmtWriteFlag,
			})
		},
	}

	cmd.Flags().BoolVarP(&fmtDiffFlag, fmtDiffFlagName, "d", false, "print a unified diff instead of the formatted source")
	cmd.Flags().BoolVarP(&fmtWriteFlag, fmtWriteFlagName, "w", false, "rewrite the file in place")
	cmd.MarkFlagsMutuallyExclusive(fmtDiffFlagName, fmtWriteFlagName)

	return cmd
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}
