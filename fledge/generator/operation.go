package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrFileExists is matched by every *FileExistsError.
var ErrFileExists = errors.New("file already exists")

// FileExistsError reports a write refused by the overwrite guard.
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("file already exists: %s (use --force to overwrite)", e.Path)
}

// Is lets errors.Is(err, ErrFileExists) match.
func (e *FileExistsError) Is(target error) bool {
	return target == ErrFileExists
}

// WriteOptions configures WriteText.
type WriteOptions struct {
	Force bool        // replace an existing file
	Mode  fs.FileMode // defaults to 0o644
}

// Exists reports whether anything is present at path. Symlinks are not
// followed, so a dangling link still counts as present. Errors other than
// "not exist" are returned rather than treated as absence.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
}

// WriteText writes content to path, creating missing parent directories.
//
// Without opts.Force an existing path is left untouched and a
// *FileExistsError is returned. The guard runs before any directory is
// created, so a refused write has no side effects.
func WriteText(path, content string, opts WriteOptions) error {
	if !opts.Force {
		exists, err := Exists(path)
		if err != nil {
			return err
		}
		if exists {
			return &FileExistsError{Path: path}
		}
	}

	mode := opts.Mode
	if mode == 0 {
		mode = 0o644
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and
// has no side effects. force=true skips the overwrite guard.
//
// Execute performs the operation. Only call it after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create hatch.yml (48 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp writes a single file through WriteText.
type WriteFileOp struct {
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions; zero means 0o644
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	if force {
		return nil
	}

	exists, err := Exists(op.Path)
	if err != nil {
		return err
	}
	if exists {
		return &FileExistsError{Path: op.Path}
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteText(op.Path, string(op.Content), WriteOptions{Force: true, Mode: op.Mode})
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}
