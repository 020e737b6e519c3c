package blueprint

import (
	"fmt"

	"github.com/simonhull/firebird-suite/hatch/fledge/naming"
)

// PathFunc resolves the output path of a file. Relative paths are resolved
// against the working directory by the generator.
type PathFunc func(naming.Cases) (string, error)

// TemplateFunc renders the content of a file.
type TemplateFunc func(naming.Cases) (string, error)

// FileSpec describes one file to generate.
type FileSpec struct {
	Name     string // Optional label used in logs
	Path     PathFunc
	Template TemplateFunc
}

// Blueprint is an ordered list of files to generate for a name.
type Blueprint []FileSpec

// Validate checks that every entry exposes both generator functions.
func (b Blueprint) Validate() error {
	var issues []Issue
	for i, spec := range b {
		if spec.Path == nil {
			issues = append(issues, Issue{Location: fmt.Sprintf("/%d/path", i), Message: "missing path function"})
		}
		if spec.Template == nil {
			issues = append(issues, Issue{Location: fmt.Sprintf("/%d/template", i), Message: "missing template function"})
		}
	}
	if len(issues) > 0 {
		return &ShapeError{Issues: issues}
	}
	return nil
}

// Static adapts a plain string function into a PathFunc or TemplateFunc.
func Static(fn func(naming.Cases) string) func(naming.Cases) (string, error) {
	return func(c naming.Cases) (string, error) {
		return fn(c), nil
	}
}
