package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simonhull/firebird-suite/hatch/fledge/generator"
	"github.com/simonhull/firebird-suite/hatch/fledge/naming"
	"github.com/simonhull/firebird-suite/hatch/fledge/output"
	"github.com/simonhull/firebird-suite/hatch/internal/config"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
)

// ErrGenerationFailed is returned after a report with failures has been
// printed. main exits non-zero without printing it again.
var ErrGenerationFailed = errors.New("generation failed")

// runtimeEnv is what every generating command needs before it starts.
type runtimeEnv struct {
	cfg     *config.Config
	log     *zap.Logger
	workDir string
}

func setup(cmd *cobra.Command) (*runtimeEnv, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	cfgFile, _ := cmd.Flags().GetString("config")
	log := logger.New(logger.Options{Verbose: verbose, Writer: cmd.ErrOrStderr()})

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Load(config.LoadOptions{File: cfgFile, Dir: wd})
	if err != nil {
		output.Warn(err.Error() + " (using defaults)")
	}
	if cfg.Source != "" {
		output.Verbose("Using config file: " + cfg.Source)
		log.Debug("config loaded", zap.String("source", cfg.Source))
	}

	return &runtimeEnv{cfg: cfg, log: log, workDir: wd}, nil
}

// generateFlags are shared by feat and gen.
type generateFlags struct {
	force       bool
	dryRun      bool
	skip        bool
	diff        bool
	interactive bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be generated without writing files")
	cmd.Flags().BoolVar(&f.skip, "skip", false, "Keep existing files and continue")
	cmd.Flags().BoolVar(&f.diff, "diff", false, "Show how existing files differ from the generated ones, then keep them")
	cmd.Flags().BoolVar(&f.interactive, "interactive", false, "Ask what to do for each existing file")
}

func (f *generateFlags) strategy(cmd *cobra.Command) (generator.ConflictStrategy, error) {
	return generator.NewConflictStrategy(generator.ConflictFlags{
		Force:       f.force,
		Skip:        f.skip,
		Diff:        f.diff,
		Interactive: f.interactive,
	}, cmd.InOrStdin(), cmd.OutOrStdout())
}

// parseName rejects names that contain no words, such as "" or "--".
func parseName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if naming.ToCases(name).Empty() {
		return "", fmt.Errorf("invalid name %q: must contain at least one word", raw)
	}
	return name, nil
}

// boolFlag returns a pointer to value when the flag was given on the
// command line, nil otherwise, for use with config.Resolve.
func boolFlag(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func stringFlag(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

// printReport writes the "Created:" and "Skipped/Failed:" sections and
// returns ErrGenerationFailed if any entry failed.
func printReport(report *generator.Report, workDir string) error {
	if report.Empty() {
		output.Info("No files generated.")
		return nil
	}

	if created := report.Succeeded(); len(created) > 0 {
		if report.DryRun {
			output.Header("Would create:")
		} else {
			output.Header("Created:")
		}
		for _, res := range created {
			output.Step(displayPath(workDir, res))
		}
	}

	var problems []generator.Result
	for _, res := range report.Results {
		if !res.OK {
			problems = append(problems, res)
		}
	}
	if len(problems) > 0 {
		output.Header("Skipped/Failed:")
		for _, res := range problems {
			reason := res.Error()
			if res.Skipped {
				reason = "skipped, file exists"
			}
			output.Step(fmt.Sprintf("%s: %s", displayPath(workDir, res), reason))
		}
	}

	if report.HasFailures() {
		return ErrGenerationFailed
	}
	if n := len(report.Succeeded()); n > 0 && !report.DryRun {
		output.Success(fmt.Sprintf("Generated %d %s", n, pluralFiles(n)))
	}
	return nil
}

func pluralFiles(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}

// displayPath shows paths inside workDir relative to it.
func displayPath(workDir string, res generator.Result) string {
	if res.Path == "" {
		if res.Name != "" {
			return "<" + res.Name + ">"
		}
		return "<unresolved path>"
	}
	rel, err := filepath.Rel(workDir, res.Path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return res.Path
	}
	return rel
}
