package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/simonhull/firebird-suite/hatch/fledge/blueprint"
	"github.com/simonhull/firebird-suite/hatch/fledge/naming"
)

// DefaultTestMarker identifies test files by the path a blueprint entry
// renders, before it is joined onto the working directory.
const DefaultTestMarker = ".test."

// ErrCancelled marks entries abandoned after a conflict was answered with Cancel.
var ErrCancelled = errors.New("generation cancelled")

// RunOptions configures Run.
type RunOptions struct {
	Force        bool             // overwrite existing files
	IncludeTests bool             // keep entries whose path contains TestMarker
	DryRun       bool             // check the overwrite guard but write nothing
	TestMarker   string           // defaults to DefaultTestMarker
	Conflicts    ConflictStrategy // consulted when the guard trips; nil means fail
	Logger       *zap.Logger      // defaults to zap.NewNop()
	WorkDir      string           // base for relative paths; defaults to the cwd
}

// Result is the outcome of one blueprint entry.
type Result struct {
	Name    string // FileSpec.Name, may be empty
	Path    string // resolved path, empty if the path function failed
	OK      bool
	Skipped bool // kept the existing file on a conflict strategy's request
	Err     error
}

// Error returns the failure message, or "" for a successful result.
func (r Result) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Report collects results in blueprint order.
type Report struct {
	Results []Result
	DryRun  bool
}

// Succeeded returns the written (or, in a dry run, writable) entries.
func (r *Report) Succeeded() []Result {
	return r.filter(func(res Result) bool { return res.OK })
}

// Failed returns entries that neither succeeded nor were skipped.
func (r *Report) Failed() []Result {
	return r.filter(func(res Result) bool { return !res.OK && !res.Skipped })
}

// Skipped returns entries left untouched by a conflict strategy.
func (r *Report) Skipped() []Result {
	return r.filter(func(res Result) bool { return res.Skipped })
}

// HasFailures reports whether any entry failed.
func (r *Report) HasFailures() bool {
	return len(r.Failed()) > 0
}

// Empty reports whether nothing was attempted.
func (r *Report) Empty() bool {
	return len(r.Results) == 0
}

func (r *Report) filter(keep func(Result) bool) []Result {
	var out []Result
	for _, res := range r.Results {
		if keep(res) {
			out = append(out, res)
		}
	}
	return out
}

// plannedEntry is a blueprint entry whose path has been resolved.
type plannedEntry struct {
	spec blueprint.FileSpec
	path string
	err  error
}

// Run generates every entry of bp for name.
//
// Entries are processed sequentially in order and never short-circuit one
// another: each gets its own Result and nothing already written is rolled
// back. The only exceptions are a Cancel answer from the conflict strategy
// and ctx cancellation, after which the remaining entries fail with
// ErrCancelled or the context error.
//
// A blueprint that fails Validate is rejected with a *blueprint.ShapeError
// before any entry is attempted.
func Run(ctx context.Context, name string, bp blueprint.Blueprint, opts RunOptions) (*Report, error) {
	if err := bp.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	marker := opts.TestMarker
	if marker == "" {
		marker = DefaultTestMarker
	}

	cases := naming.ToCases(name)
	log.Debug("generating", zap.String("name", name), zap.String("kebab", cases.Kebab), zap.Int("entries", len(bp)))

	plan := make([]plannedEntry, 0, len(bp))
	for _, spec := range bp {
		rel, err := callSpec(spec.Path, cases, "path")
		if err == nil && !opts.IncludeTests && strings.Contains(rel, marker) {
			log.Debug("skipping test file", zap.String("path", rel))
			continue
		}
		var path string
		if err == nil {
			path, err = resolvePath(rel, opts.WorkDir)
		}
		plan = append(plan, plannedEntry{spec: spec, path: path, err: err})
	}

	report := &Report{Results: make([]Result, 0, len(plan)), DryRun: opts.DryRun}
	var abort error
	for _, entry := range plan {
		res := Result{Name: entry.spec.Name, Path: entry.path}

		if abort == nil {
			abort = ctx.Err()
		}
		switch {
		case abort != nil:
			res.Err = abort
		case entry.err != nil:
			res.Err = entry.err
		default:
			res = generate(ctx, entry, cases, opts, log)
			if errors.Is(res.Err, ErrCancelled) {
				abort = ErrCancelled
			}
		}

		if res.Err != nil && !res.Skipped {
			log.Debug("entry failed", zap.String("path", res.Path), zap.Error(res.Err))
		}
		report.Results = append(report.Results, res)
	}

	return report, nil
}

func generate(ctx context.Context, entry plannedEntry, cases naming.Cases, opts RunOptions, log *zap.Logger) Result {
	res := Result{Name: entry.spec.Name, Path: entry.path}

	content, err := callSpec(entry.spec.Template, cases, "template")
	if err != nil {
		res.Err = err
		return res
	}

	if opts.DryRun {
		res.Err = dryRunCheck(entry.path, opts.Force)
		res.OK = res.Err == nil
		return res
	}

	err = WriteText(entry.path, content, WriteOptions{Force: opts.Force})
	if errors.Is(err, ErrFileExists) && opts.Conflicts != nil {
		return resolveConflict(ctx, res, content, err, opts.Conflicts, log)
	}
	if err != nil {
		res.Err = err
		return res
	}

	log.Debug("wrote file", zap.String("path", entry.path), zap.Int("bytes", len(content)))
	res.OK = true
	return res
}

func resolveConflict(ctx context.Context, res Result, content string, guardErr error, strategy ConflictStrategy, log *zap.Logger) Result {
	existing, err := os.ReadFile(res.Path)
	if err != nil {
		res.Err = fmt.Errorf("reading existing %s: %w", res.Path, err)
		return res
	}

	resolution, err := strategy.Resolve(ctx, Conflict{
		Path:      res.Path,
		Existing:  existing,
		Generated: []byte(content),
	})
	if err != nil {
		res.Err = err
		return res
	}
	log.Debug("conflict resolved", zap.String("path", res.Path), zap.Stringer("resolution", resolution))

	switch resolution {
	case Overwrite:
		if err := WriteText(res.Path, content, WriteOptions{Force: true}); err != nil {
			res.Err = err
			return res
		}
		res.OK = true
	case Cancel:
		res.Err = ErrCancelled
	default:
		res.Skipped = true
		res.Err = guardErr
	}
	return res
}

func dryRunCheck(path string, force bool) error {
	if force {
		return nil
	}
	exists, err := Exists(path)
	if err != nil {
		return err
	}
	if exists {
		return &FileExistsError{Path: path}
	}
	return nil
}

func resolvePath(path, workDir string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path function returned an empty path")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if workDir == "" {
		return filepath.Abs(path)
	}
	return filepath.Join(workDir, path), nil
}

// callSpec invokes a blueprint function, turning a panic into an error so
// that one broken entry cannot take down the rest of the run.
func callSpec(fn func(naming.Cases) (string, error), cases naming.Cases, what string) (out string, err error) {
	if fn == nil {
		return "", fmt.Errorf("missing %s function", what)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s function panicked: %v", what, r)
		}
	}()
	out, err = fn(cases)
	if err != nil {
		return "", fmt.Errorf("%s: %w", what, err)
	}
	return out, nil
}
