package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	m "brack.dev/pkg/brack/internal/model"
)

const revisionSetting = "vcs.revision"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the brack toolchain version, the VCS revision it was built from and the source file extension it reads.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, _ := debug.ReadBuildInfo()
			cmd.Print(formatVersion(info))
		},
	}
}

// formatVersion renders the version block; a nil info prints unknown fields.
func formatVersion(info *debug.BuildInfo) string {
	version, goVersion, revision := "unknown", "unknown", "unknown"

	if info != nil {
		if info.Main.Version != "" {
			version = info.Main.Version
		}

		if info.GoVersion != "" {
			goVersion = info.GoVersion
		}

		for _, s := range info.Settings {
			if s.Key == revisionSetting && s.Value != "" {
				revision = s.Value
			}
		}
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "brack version\t%s\n", version)
	fmt.Fprintf(&sb, "revision\t%s\n", revision)
	fmt.Fprintf(&sb, "source files\t*%s\n", m.SourceExt)
	fmt.Fprintf(&sb, "go version\t%s\n", goVersion)

	return sb.String()
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
