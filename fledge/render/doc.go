// Package render parses and executes text/template templates with a shared
// cache and the helper functions hatch blueprints rely on.
//
// Templates are executed with missingkey=error so that a typo such as
// {{ .Kebeb }} fails loudly instead of producing "<no value>" in a
// generated file.
//
// # Helpers
//
//	pascalCase, camelCase, kebabCase, snakeCase   case conversion (via naming)
//	plural                                        English pluralization
//	upper, lower, title, trim                     string casing and cleanup
//	replace, join, split, contains,
//	hasPrefix, hasSuffix, quote                   string manipulation
//	dict, default                                 utilities
package render
