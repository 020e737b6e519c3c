// Package blueprint defines the ordered set of files a scaffold produces.
//
// A Blueprint is a slice of FileSpec. Each FileSpec pairs a path function
// with a content function; both receive the naming.Cases of the scaffolded
// name. Order matters only for reporting, every entry is independent.
//
// # Built-in blueprints
//
// Feature returns the four-file feature blueprint (barrel, implementation,
// types and test) rooted at a base directory.
//
// # Blueprint files
//
// Load reads a YAML or JSON blueprint file. Paths and contents are
// text/template strings rendered against naming.Cases:
//
//	name: api-service
//	requires: ">=0.1.0"
//	files:
//	  - path: "src/services/{{ .Kebab }}.ts"
//	    template: |
//	      export class {{ .Pascal }} {}
//	  - path: "src/services/{{ .Kebab }}.test.ts"
//	    templateFile: templates/service.test.ts.tmpl
//
// The document is untrusted input: it is validated against an embedded JSON
// Schema and every template is parsed and test-rendered before a single file
// is written. Any problem is reported as a *ShapeError.
package blueprint
