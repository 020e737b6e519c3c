package blueprint

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBlueprintShape is matched by every *ShapeError.
var ErrBlueprintShape = errors.New("invalid blueprint")

// Issue is a single problem found in a blueprint.
type Issue struct {
	Location string // JSON pointer into the blueprint document, e.g. "/files/0/path"
	Message  string
}

func (i Issue) String() string {
	if i.Location == "" {
		return i.Message
	}
	return i.Location + ": " + i.Message
}

// ShapeError reports a blueprint that does not satisfy the blueprint
// contract. Nothing can be generated from it.
type ShapeError struct {
	Source string // File the blueprint was loaded from, empty for in-process blueprints
	Issues []Issue
}

func (e *ShapeError) Error() string {
	var b strings.Builder
	b.WriteString("invalid blueprint")
	if e.Source != "" {
		fmt.Fprintf(&b, " %s", e.Source)
	}
	for i, issue := range e.Issues {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(issue.String())
	}
	return b.String()
}

// Is makes errors.Is(err, ErrBlueprintShape) true for any *ShapeError.
func (e *ShapeError) Is(target error) bool {
	return target == ErrBlueprintShape
}
