// Package cmd provides the root command and CLI setup for brack.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"brack.dev/pkg/brack/internal/adapter"
	"brack.dev/pkg/brack/internal/controller"
	"brack.dev/pkg/brack/internal/domain"
	"brack.dev/pkg/brack/internal/domain/lexer"
	m "brack.dev/pkg/brack/internal/model"
)

var sourceFSAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var compiler domain.Compiler
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// noColorFlag disables coloured output on terminals.
var noColorFlag bool

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var verboseFlag bool
var logFileFlag string
var maxLexemeFlag int

func init() {
	configureRootFlags(rootCmd)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./lib/...      recursively scan lib directory
  - ./a ./b        scan multiple directories
  - main.brk       check a single file`

const rootLongDescription = `Brack is a toolchain for a small bracket language: forms are written as
[function args...], values are typed literals and definitions use the
def, set, struct and sign keywords. Brack lexes, parses, checks, formats
and evaluates brack source files.

` + pathPatternsHelp

const checkLongDescription = `Lex and parse every .brk file under the given paths (default: ./...),
print the diagnostics and a summary table, and save the report to the
output directory.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "brack",
		Short:        "Bracket language lexer, parser and evaluator",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
			setupDependencies(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd returns a root command with its persistent flags, for tests
// and embedding.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for check reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&noColorFlag, noColorFlagName, viper.GetBool(noColorFlagName), "disable coloured output")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noColorFlagName), noColorFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().IntVar(&maxLexemeFlag, maxLexemeFlagName, viper.GetInt(maxLexemeConfigKey), "longest accepted lexeme in bytes")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(maxLexemeFlagName), maxLexemeConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// setupDependencies builds the workflow once flags and config are parsed.
// A workflow installed beforehand is kept.
func setupDependencies(cmd *cobra.Command) {
	if workflow != nil {
		return
	}

	ui = controller.NewUI(cmd.Root(), controller.IsTTY(os.Stdout), !viper.GetBool(noColorFlagName))
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	compiler = domain.NewCompiler(lexer.WithMaxLexemeLength(viper.GetInt(maxLexemeConfigKey)))
	workflow = domain.NewWorkflow(sourceFSAdapter, reportStore, ui, compiler)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
