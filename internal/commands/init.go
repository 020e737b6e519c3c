package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/hatch/fledge/generator"
	"github.com/simonhull/firebird-suite/hatch/fledge/input"
	"github.com/simonhull/firebird-suite/hatch/fledge/output"
	"github.com/simonhull/firebird-suite/hatch/internal/config"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
)

// InitCmd creates the 'init' command, which writes hatch.yml for the current directory
func InitCmd() *cobra.Command {
	var yes, force, dryRun bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a hatch.yml config file",
		Long: `Create hatch.yml in the current directory.

You are asked for the base directory used by 'hatch feat' and whether test
files should be generated. Use --yes to accept the defaults without prompts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			path := filepath.Join(wd, config.FileName+".yml")

			file := config.File{BaseDir: config.DefaultBaseDir, SkipTests: config.DefaultSkipTests}
			if !yes {
				p := input.New(cmd.InOrStdin(), cmd.OutOrStdout())
				file.BaseDir = p.Prompt("Base directory for features", config.DefaultBaseDir)
				file.SkipTests = !p.Confirm("Generate test files?", !config.DefaultSkipTests)
			}

			content, err := config.Encode(file)
			if err != nil {
				return err
			}

			op := &generator.WriteFileOp{Path: path, Content: content}
			err = generator.Execute(cmd.Context(), []generator.Operation{op}, generator.ExecuteOptions{
				DryRun: dryRun,
				Force:  force,
				Writer: cmd.OutOrStdout(),
				Logger: logger.New(logger.Options{Verbose: verbose, Writer: cmd.ErrOrStderr()}),
			})
			if errors.Is(err, generator.ErrFileExists) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", filepath.Base(path))
			}
			if err != nil {
				return err
			}

			if !dryRun {
				output.Success("Wrote " + filepath.Base(path))
				output.Step(`Next: hatch feat "user auth"`)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept defaults without prompting")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing hatch.yml")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written")

	return cmd
}
