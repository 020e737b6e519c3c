package blueprint

import (
	"fmt"

	"github.com/simonhull/firebird-suite/hatch/fledge/naming"
)

// DefaultBaseDir is where Feature puts files when no base directory is given.
const DefaultBaseDir = "src"

// Feature returns the built-in feature blueprint: a barrel file, an
// implementation, a type definition and a test, all under
// <baseDir>/<kebab-name>/.
func Feature(baseDir string) Blueprint {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}

	return Blueprint{
		{
			Name: "index",
			Path: Static(func(n naming.Cases) string {
				return fmt.Sprintf("%s/%s/index.ts", baseDir, n.Kebab)
			}),
			Template: Static(func(n naming.Cases) string {
				return fmt.Sprintf("export * from './%[1]s';\nexport * from './%[1]s.type';\n", n.Kebab)
			}),
		},
		{
			Name: "implementation",
			Path: Static(func(n naming.Cases) string {
				return fmt.Sprintf("%s/%s/%s.ts", baseDir, n.Kebab, n.Kebab)
			}),
			Template: Static(func(n naming.Cases) string {
				return fmt.Sprintf("// %[1]s feature\n\n"+
					"export function %[2]s() {\n"+
					"  // TODO: implement %[1]s\n"+
					"  return '%[1]s works';\n"+
					"}\n", n.Pascal, n.Camel)
			}),
		},
		{
			Name: "types",
			Path: Static(func(n naming.Cases) string {
				return fmt.Sprintf("%s/%s/%s.type.ts", baseDir, n.Kebab, n.Kebab)
			}),
			Template: Static(func(n naming.Cases) string {
				return fmt.Sprintf("export interface %[1]sOptions {\n"+
					"  // define options for %[1]s\n"+
					"}\n", n.Pascal)
			}),
		},
		{
			Name: "test",
			Path: Static(func(n naming.Cases) string {
				return fmt.Sprintf("%s/%s/%s.test.ts", baseDir, n.Kebab, n.Kebab)
			}),
			Template: Static(func(n naming.Cases) string {
				return fmt.Sprintf("import { %[1]s } from './%[2]s';\n\n"+
					"describe('%[3]s', () => {\n"+
					"  it('should work', () => {\n"+
					"    expect(%[1]s()).toBe('%[3]s works');\n"+
					"  });\n"+
					"});\n", n.Camel, n.Kebab, n.Pascal)
			}),
		},
	}
}
