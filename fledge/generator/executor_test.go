package generator_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/hatch/fledge/generator"
)

func TestExecute_DryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hatch.yml")
	ops := []generator.Operation{
		&generator.WriteFileOp{Path: path, Content: []byte("baseDir: src\n")},
	}

	var buf bytes.Buffer
	err := generator.Execute(context.Background(), ops, generator.ExecuteOptions{DryRun: true, Writer: &buf})

	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "dry run created file")
	assert.Contains(t, buf.String(), "[dry run] Create")
}

func TestExecute_RealRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "hatch.yml")
	ops := []generator.Operation{
		&generator.WriteFileOp{Path: path, Content: []byte("baseDir: src\n")},
	}

	var buf bytes.Buffer
	require.NoError(t, generator.Execute(context.Background(), ops, generator.ExecuteOptions{Writer: &buf}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "baseDir: src\n", string(content))
	assert.Contains(t, buf.String(), "✓ Create")
}

func TestExecute_ValidationFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.yml")
	fresh := filepath.Join(dir, "fresh.yml")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0o644))

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: fresh, Content: []byte("new")},
		&generator.WriteFileOp{Path: existing, Content: []byte("new")},
	}

	var buf bytes.Buffer
	err := generator.Execute(context.Background(), ops, generator.ExecuteOptions{Writer: &buf})

	require.Error(t, err)
	assert.ErrorIs(t, err, generator.ErrFileExists)
	assert.Contains(t, err.Error(), "validation failed")
	_, statErr := os.Stat(fresh)
	assert.True(t, os.IsNotExist(statErr), "no operation runs when validation fails")
}

func TestExecute_ForceOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hatch.yml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: path, Content: []byte("new")},
	}

	var buf bytes.Buffer
	require.NoError(t, generator.Execute(context.Background(), ops, generator.ExecuteOptions{Force: true, Writer: &buf}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestExecute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "hatch.yml")
	ops := []generator.Operation{
		&generator.WriteFileOp{Path: path, Content: []byte("x")},
	}

	var buf bytes.Buffer
	err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: &buf})

	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecute_ReportsEveryRejectedOperation(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.yml")
	second := filepath.Join(dir, "b.yml")
	require.NoError(t, os.WriteFile(first, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("b"), 0o644))

	ops := []generator.Operation{
		&generator.WriteFileOp{Path: first, Content: []byte("new")},
		&generator.WriteFileOp{Path: second, Content: []byte("new")},
	}

	err := generator.Execute(context.Background(), ops, generator.ExecuteOptions{})

	require.ErrorIs(t, err, generator.ErrFileExists)
	assert.Contains(t, err.Error(), first)
	assert.Contains(t, err.Error(), second)
}
