package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/simonhull/firebird-suite/hatch/fledge/naming"
)

// Renderer handles template parsing and rendering with caching
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer with built-in helper functions
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// Parse parses a template from a string. The name is used in error messages;
// the cache is keyed by name and text so edited templates are never stale.
func (r *Renderer) Parse(name, text string) (*template.Template, error) {
	return r.cached("string:"+name+"\x00"+text, func() (*template.Template, error) {
		return r.parse(name, text)
	})
}

// ParseFile parses a template from a file path.
func (r *Renderer) ParseFile(path string) (*template.Template, error) {
	return r.cached("file:"+path, func() (*template.Template, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template file '%s': %w", path, err)
		}
		return r.parse(path, string(data))
	})
}

// Execute executes a parsed template with the given data
func (r *Renderer) Execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) cached(key string, load func() (*template.Template, error)) (*template.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	tmpl, err := load()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = tmpl
	r.mu.Unlock()

	return tmpl, nil
}

func (r *Renderer) parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(r.funcMap).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}
	return tmpl, nil
}

// defaultFuncMap returns the default template function map
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Case conversion
		"pascalCase": naming.Pascal, // user_name → UserName
		"camelCase":  naming.Camel,  // user_name → userName
		"kebabCase":  naming.Kebab,  // UserName → user-name
		"snakeCase":  naming.Snake,  // UserName → user_name

		// String manipulation
		"plural":    naming.Pluralize, // user → users
		"quote":     Quote,            // test → "test"
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"title":     Title,
		"trim":      strings.TrimSpace,
		"join":      Join,
		"split":     Split,
		"contains":  Contains,
		"hasPrefix": HasPrefix,
		"hasSuffix": HasSuffix,
		"replace":   Replace,

		// Utilities
		"dict":    Dict,    // Create map for passing multiple values
		"default": Default, // Provide default value if nil/empty
	}
}

// The string helpers below take the piped value last so they compose in
// pipelines: {{ .Kebab | replace "-" "/" }}.

// Join joins elems with sep.
func Join(sep string, elems []string) string { return strings.Join(elems, sep) }

// Split splits s around sep.
func Split(sep, s string) []string { return strings.Split(s, sep) }

// Contains reports whether substr is within s.
func Contains(substr, s string) bool { return strings.Contains(s, substr) }

// HasPrefix reports whether s begins with prefix.
func HasPrefix(prefix, s string) bool { return strings.HasPrefix(s, prefix) }

// HasSuffix reports whether s ends with suffix.
func HasSuffix(suffix, s string) bool { return strings.HasSuffix(s, suffix) }

// Replace replaces every old with newer in s.
func Replace(old, newer, s string) string { return strings.ReplaceAll(s, old, newer) }

// Quote wraps a string in double quotes
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// Title converts a string to title case (first letter of each word capitalized)
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}

// Dict creates a map from alternating key-value pairs
// Usage in template: {{ template "partial" (dict "key1" val1 "key2" val2) }}
func Dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments")
	}

	result := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings, got %T at position %d", values[i], i)
		}
		result[key] = values[i+1]
	}
	return result, nil
}

// Default returns the default value if the given value is nil or empty
func Default(defaultVal, val any) any {
	if val == nil {
		return defaultVal
	}

	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}

	switch v := val.(type) {
	case []any:
		if len(v) == 0 {
			return defaultVal
		}
	case map[string]any:
		if len(v) == 0 {
			return defaultVal
		}
	}

	// Numeric zero is a valid value, only nil, "" and empty collections count as empty
	return val
}
