package generator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// ExecuteOptions configures Execute.
type ExecuteOptions struct {
	DryRun bool
	Force  bool
	Writer io.Writer   // one line per operation; nil discards
	Logger *zap.Logger // defaults to zap.NewNop()
}

// Execute applies a small fixed set of operations, such as the hatch.yml
// written by "hatch init". Every operation is validated first and nothing
// runs unless all of them pass, so a refused overwrite leaves the project
// untouched. Blueprints go through Run instead, which reports per entry.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	w := opts.Writer
	if w == nil {
		w = io.Discard
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var invalid []error
	for _, op := range ops {
		if err := op.Validate(ctx, opts.Force); err != nil {
			log.Debug("operation rejected", zap.String("op", op.Description()), zap.Error(err))
			invalid = append(invalid, err)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(invalid...))
	}

	for _, op := range ops {
		if opts.DryRun {
			fmt.Fprintf(w, "[dry run] %s\n", op.Description())
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := op.Execute(ctx); err != nil {
			return fmt.Errorf("%s: %w", op.Description(), err)
		}
		log.Debug("operation done", zap.String("op", op.Description()))
		fmt.Fprintf(w, "✓ %s\n", op.Description())
	}

	return nil
}
