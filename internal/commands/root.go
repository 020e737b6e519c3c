package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/hatch"
	"github.com/simonhull/firebird-suite/hatch/fledge/output"
)

// RootCmd creates and returns the root command for the hatch CLI
func RootCmd() *cobra.Command {
	var verbose bool
	var configFile string

	cmd := &cobra.Command{
		Use:   "hatch",
		Short: "Scaffold feature folders and files from blueprints",
		Long: `Hatch turns a name into a set of files.

• hatch feat generates a feature folder (index, implementation, types, test)
• hatch gen generates files described by a YAML or JSON blueprint
• Existing files are never overwritten unless you pass --force

Settings are read from hatch.yml (or .yaml, .json, .toml) in the current
directory and from HATCH_* environment variables. Flags win over both.`,
		Version:       hatch.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetOutput(cmd.OutOrStdout())
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: hatch.* in the current directory)")

	return cmd
}
