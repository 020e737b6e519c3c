package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simonhull/firebird-suite/hatch"
	"github.com/simonhull/firebird-suite/hatch/fledge/blueprint"
	"github.com/simonhull/firebird-suite/hatch/fledge/generator"
	"github.com/simonhull/firebird-suite/hatch/fledge/output"
	"github.com/simonhull/firebird-suite/hatch/internal/config"
)

// GenCmd creates the 'gen' command, which generates files from a blueprint file
func GenCmd() *cobra.Command {
	var flags generateFlags
	var dir string
	var noTests bool

	cmd := &cobra.Command{
		Use:   "gen <blueprint-file> <name>",
		Short: "Generate files from a blueprint file",
		Long: `Generate files described by a YAML or JSON blueprint.

A blueprint lists files; each has a path and a template (or templateFile)
written with Go templates. Templates see the name in every case:

  {{ .Raw }} {{ .Pascal }} {{ .Camel }} {{ .Kebab }} {{ .Snake }} {{ .Lower }}

Example blueprint:

  name: component
  files:
    - path: src/components/{{ .Kebab }}/{{ .Pascal }}.tsx
      template: |
        export function {{ .Pascal }}() {
          return null;
        }

The blueprint is validated before anything is written. Relative paths are
resolved against the current directory, or against --dir when given.

Examples:
  hatch gen blueprints/component.yml "nav bar"
  hatch gen api.blueprint.yml user --dir packages/api --no-test`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			name, err := parseName(args[1])
			if err != nil {
				return err
			}
			strategy, err := flags.strategy(cmd)
			if err != nil {
				return err
			}

			env, err := setup(cmd)
			if err != nil {
				return err
			}

			bp, manifest, err := blueprint.Load(file, blueprint.LoadOptions{Version: hatch.Version})
			if err != nil {
				return err
			}
			if manifest.Name != "" {
				output.Verbose(fmt.Sprintf("Blueprint %s: %d entries", manifest.Name, len(bp)))
			}

			workDir := env.workDir
			if dir != "" {
				if filepath.IsAbs(dir) {
					workDir = filepath.Clean(dir)
				} else {
					workDir = filepath.Join(env.workDir, dir)
				}
			}
			includeTests := !config.Resolve(boolFlag(cmd, "no-test", noTests), env.cfg.SkipTests, config.DefaultSkipTests)

			env.log.Debug("gen",
				zap.String("blueprint", file),
				zap.String("name", name),
				zap.String("workDir", workDir),
				zap.Bool("includeTests", includeTests))

			report, err := generator.Run(cmd.Context(), name, bp, generator.RunOptions{
				Force:        flags.force,
				IncludeTests: includeTests,
				DryRun:       flags.dryRun,
				Conflicts:    strategy,
				Logger:       env.log,
				WorkDir:      workDir,
			})
			if err != nil {
				return err
			}
			return printReport(report, env.workDir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory that relative blueprint paths resolve against (default: current directory)")
	cmd.Flags().BoolVar(&noTests, "no-test", false, "Skip files whose path contains .test.")
	flags.register(cmd)

	return cmd
}
