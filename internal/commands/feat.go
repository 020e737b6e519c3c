package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simonhull/firebird-suite/hatch/fledge/blueprint"
	"github.com/simonhull/firebird-suite/hatch/fledge/generator"
	"github.com/simonhull/firebird-suite/hatch/internal/config"
)

// FeatCmd creates the 'feat' command, which generates the built-in feature blueprint
func FeatCmd() *cobra.Command {
	var flags generateFlags
	var dir string
	var withTests, noTests bool

	cmd := &cobra.Command{
		Use:   "feat <name>",
		Short: "Generate a feature folder",
		Long: `Generate a feature folder under the base directory:

  <dir>/<kebab-name>/index.ts
  <dir>/<kebab-name>/<kebab-name>.ts
  <dir>/<kebab-name>/<kebab-name>.type.ts
  <dir>/<kebab-name>/<kebab-name>.test.ts

The name may be written in any case: "user auth", "userAuth", "UserAuth",
"user-auth" and "user_auth" all produce the same files.

Examples:
  hatch feat "user auth"
  hatch feat billing --dir app --no-test
  hatch feat userAuth --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseName(args[0])
			if err != nil {
				return err
			}
			if withTests && noTests {
				return errors.New("--test and --no-test cannot be used together")
			}
			strategy, err := flags.strategy(cmd)
			if err != nil {
				return err
			}

			env, err := setup(cmd)
			if err != nil {
				return err
			}

			skipTests := boolFlag(cmd, "no-test", noTests)
			if cmd.Flags().Changed("test") {
				skipTests = boolFlag(cmd, "test", !withTests)
			}
			baseDir := config.Resolve(stringFlag(cmd, "dir", dir), env.cfg.BaseDir, config.DefaultBaseDir)
			includeTests := !config.Resolve(skipTests, env.cfg.SkipTests, config.DefaultSkipTests)

			env.log.Debug("feat",
				zap.String("name", name),
				zap.String("baseDir", baseDir),
				zap.Bool("includeTests", includeTests),
				zap.Bool("dryRun", flags.dryRun))

			report, err := generator.Run(cmd.Context(), name, blueprint.Feature(baseDir), generator.RunOptions{
				Force:        flags.force,
				IncludeTests: includeTests,
				DryRun:       flags.dryRun,
				Conflicts:    strategy,
				Logger:       env.log,
				WorkDir:      env.workDir,
			})
			if err != nil {
				return err
			}
			return printReport(report, env.workDir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", config.DefaultBaseDir, "Base directory for the feature folder")
	cmd.Flags().BoolVar(&withTests, "test", false, "Generate the test file (overrides skipTests in config)")
	cmd.Flags().BoolVar(&noTests, "no-test", false, "Do not generate the test file")
	flags.register(cmd)

	return cmd
}
