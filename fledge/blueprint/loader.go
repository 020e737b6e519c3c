package blueprint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/hatch/fledge/naming"
	"github.com/simonhull/firebird-suite/hatch/fledge/render"
)

// Manifest is the decoded form of a blueprint file.
type Manifest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Requires    string  `json:"requires"` // semver constraint on the hatch version
	Files       []Entry `json:"files"`
	Blueprint   []Entry `json:"blueprint"` // alias of Files
}

// Entry is one file of a blueprint file. Exactly one of Template and
// TemplateFile is set; TemplateFile is relative to the blueprint file.
type Entry struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Template     string `json:"template"`
	TemplateFile string `json:"templateFile"`
}

// Entries returns the file entries regardless of which key declared them.
func (m *Manifest) Entries() []Entry {
	if m.Files != nil {
		return m.Files
	}
	return m.Blueprint
}

func (m *Manifest) entriesKey() string {
	if m.Files != nil {
		return "files"
	}
	return "blueprint"
}

// LoadOptions configures Load and Parse.
type LoadOptions struct {
	// Version of the running tool, checked against the blueprint's requires
	// constraint. Empty or "dev" skips the check.
	Version string

	// Renderer used to parse and execute templates. A new one is created when nil.
	Renderer *render.Renderer
}

// sampleName is rendered through every template at load time so that
// references to unknown fields fail before anything is written.
const sampleName = "sample name"

// Load reads and validates a blueprint file.
func Load(path string, opts LoadOptions) (Blueprint, *Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading blueprint %s: %w", path, err)
	}
	return Parse(data, path, filepath.Dir(path), opts)
}

// Parse validates a blueprint document. source names the document in errors
// and baseDir anchors relative templateFile references.
func Parse(data []byte, source, baseDir string, opts LoadOptions) (Blueprint, *Manifest, error) {
	shapeErr := func(issues ...Issue) error {
		return &ShapeError{Source: source, Issues: issues}
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, shapeErr(Issue{Message: fmt.Sprintf("parsing document: %v", err)})
	}
	if raw == nil {
		return nil, nil, shapeErr(Issue{Message: "document is empty"})
	}

	// A bare sequence is shorthand for {files: [...]}.
	if seq, ok := raw.([]any); ok {
		raw = map[string]any{"files": seq}
	}

	doc := normalize(raw)
	issues, err := validateDocument(doc)
	if err != nil {
		return nil, nil, err
	}
	if len(issues) > 0 {
		return nil, nil, shapeErr(issues...)
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("converting to JSON: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(encoded, &m); err != nil {
		return nil, nil, fmt.Errorf("decoding blueprint: %w", err)
	}

	if issue, ok := checkRequires(m.Requires, opts.Version); !ok {
		return nil, nil, shapeErr(issue)
	}

	r := opts.Renderer
	if r == nil {
		r = render.NewRenderer()
	}

	bp, issues := compile(&m, source, baseDir, r)
	if len(issues) > 0 {
		return nil, nil, shapeErr(issues...)
	}
	return bp, &m, nil
}

// checkRequires reports whether version satisfies the requires constraint.
func checkRequires(requires, version string) (Issue, bool) {
	if requires == "" {
		return Issue{}, true
	}

	constraint, err := semver.NewConstraint(requires)
	if err != nil {
		return Issue{Location: "/requires", Message: fmt.Sprintf("invalid version constraint %q: %v", requires, err)}, false
	}

	if version == "" || version == "dev" {
		return Issue{}, true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		// Custom builds carry arbitrary version strings; don't block them.
		return Issue{}, true
	}

	if !constraint.Check(v) {
		return Issue{
			Location: "/requires",
			Message:  fmt.Sprintf("blueprint requires hatch %s, running %s", requires, v),
		}, false
	}
	return Issue{}, true
}

// compile parses every template and turns the entries into FileSpecs.
func compile(m *Manifest, source, baseDir string, r *render.Renderer) (Blueprint, []Issue) {
	sample := naming.ToCases(sampleName)
	key := m.entriesKey()

	var issues []Issue
	bp := make(Blueprint, 0, len(m.Entries()))

	for i, e := range m.Entries() {
		loc := fmt.Sprintf("/%s/%d", key, i)

		pathTmpl, err := r.Parse(source+"#"+loc+"/path", e.Path)
		if err != nil {
			issues = append(issues, Issue{Location: loc + "/path", Message: err.Error()})
			continue
		}

		contentLoc := loc + "/template"
		var contentTmpl *template.Template
		if e.TemplateFile != "" {
			contentLoc = loc + "/templateFile"
			file := e.TemplateFile
			if !filepath.IsAbs(file) {
				file = filepath.Join(baseDir, file)
			}
			contentTmpl, err = r.ParseFile(file)
		} else {
			contentTmpl, err = r.Parse(source+"#"+contentLoc, e.Template)
		}
		if err != nil {
			issues = append(issues, Issue{Location: contentLoc, Message: err.Error()})
			continue
		}

		spec := FileSpec{
			Name:     e.Name,
			Path:     executor(r, pathTmpl),
			Template: executor(r, contentTmpl),
		}
		if spec.Name == "" {
			spec.Name = e.Path
		}

		p, err := spec.Path(sample)
		switch {
		case err != nil:
			issues = append(issues, Issue{Location: loc + "/path", Message: err.Error()})
			continue
		case strings.TrimSpace(p) == "":
			issues = append(issues, Issue{Location: loc + "/path", Message: "path renders to an empty string"})
			continue
		}
		if _, err := spec.Template(sample); err != nil {
			issues = append(issues, Issue{Location: contentLoc, Message: err.Error()})
			continue
		}

		bp = append(bp, spec)
	}

	return bp, issues
}

func executor(r *render.Renderer, tmpl *template.Template) func(naming.Cases) (string, error) {
	return func(c naming.Cases) (string, error) {
		out, err := r.Execute(tmpl, c)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}
