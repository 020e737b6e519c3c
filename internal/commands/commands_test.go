package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/hatch/fledge/blueprint"
	"github.com/simonhull/firebird-suite/hatch/fledge/generator"
	"github.com/simonhull/firebird-suite/hatch/fledge/output"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the CLI in a fresh temporary working directory unless the
// test already changed into one.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	root := RootCmd()
	root.AddCommand(FeatCmd(), GenCmd(), InitCmd(), VersionCmd())

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	t.Cleanup(func() {
		output.SetOutput(nil)
		output.SetVerbose(false)
	})

	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// workspace changes into an empty directory with no HATCH_* overrides.
func workspace(t *testing.T) string {
	t.Helper()
	t.Setenv("HATCH_BASE_DIR", "")
	t.Setenv("HATCH_SKIP_TESTS", "")
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "%s should not exist", path)
}

var featureFiles = []string{
	"src/user-auth/index.ts",
	"src/user-auth/user-auth.ts",
	"src/user-auth/user-auth.type.ts",
	"src/user-auth/user-auth.test.ts",
}

func TestFeat_CreatesFeatureFolder(t *testing.T) {
	dir := workspace(t)

	res := run(t, "", "feat", "user auth")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Created:")
	for _, f := range featureFiles {
		assert.Contains(t, res.stdout, f)
		assert.FileExists(t, filepath.Join(dir, f))
	}
	assert.Contains(t, res.stdout, "Generated 4 files")
	assert.Contains(t, readFile(t, filepath.Join(dir, "src/user-auth/user-auth.ts")), "export function userAuth()")
}

func TestFeat_NameFormsAreEquivalent(t *testing.T) {
	for _, name := range []string{"userAuth", "UserAuth", "user-auth", "user_auth"} {
		t.Run(name, func(t *testing.T) {
			dir := workspace(t)

			require.NoError(t, run(t, "", "feat", name).err)
			assert.FileExists(t, filepath.Join(dir, "src/user-auth/user-auth.type.ts"))
		})
	}
}

func TestFeat_RerunFailsWithoutForce(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, run(t, "", "feat", "user auth").err)
	writeFile(t, filepath.Join(dir, "src/user-auth/user-auth.ts"), "hand edited\n")

	res := run(t, "", "feat", "user auth")

	require.ErrorIs(t, res.err, ErrGenerationFailed)
	assert.Contains(t, res.stdout, "Skipped/Failed:")
	assert.Contains(t, res.stdout, "file already exists")
	assert.NotContains(t, res.stdout, "Created:")
	assert.Equal(t, "hand edited\n", readFile(t, filepath.Join(dir, "src/user-auth/user-auth.ts")))
}

func TestFeat_Force(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "src/user-auth/user-auth.ts"), "hand edited\n")

	res := run(t, "", "feat", "user auth", "--force")

	require.NoError(t, res.err)
	assert.NotContains(t, readFile(t, filepath.Join(dir, "src/user-auth/user-auth.ts")), "hand edited")
}

func TestFeat_PartialFailureStillCreatesOthers(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "src/user-auth/index.ts"), "keep\n")

	res := run(t, "", "feat", "user auth")

	require.ErrorIs(t, res.err, ErrGenerationFailed)
	assert.Contains(t, res.stdout, "Created:")
	assert.Contains(t, res.stdout, "src/user-auth/index.ts: file already exists")
	assert.FileExists(t, filepath.Join(dir, "src/user-auth/user-auth.test.ts"))
}

func TestFeat_DirAndNoTest(t *testing.T) {
	dir := workspace(t)

	res := run(t, "", "feat", "billing", "-d", "app", "--no-test")

	require.NoError(t, res.err)
	assert.FileExists(t, filepath.Join(dir, "app/billing/billing.ts"))
	assertMissing(t, filepath.Join(dir, "app/billing/billing.test.ts"))
	assert.Contains(t, res.stdout, "Generated 3 files")
}

func TestFeat_TestFlagsConflict(t *testing.T) {
	workspace(t)

	res := run(t, "", "feat", "billing", "--test", "--no-test")

	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "cannot be used together")
}

func TestFeat_ConflictFlags(t *testing.T) {
	workspace(t)

	for _, flag := range []string{"--skip", "--diff", "--interactive"} {
		res := run(t, "", "feat", "billing", "--force", flag)
		require.ErrorIs(t, res.err, generator.ErrConflictFlags, flag)
	}
}

func TestFeat_InvalidName(t *testing.T) {
	dir := workspace(t)

	for _, name := range []string{"", "   ", "-_-"} {
		res := run(t, "", "feat", "--", name)
		require.Error(t, res.err, "name %q", name)
		assert.Contains(t, res.err.Error(), "invalid name")
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFeat_ConfigFile(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "hatch.yml"), "baseDir: lib\nskipTests: true\n")

	require.NoError(t, run(t, "", "feat", "orders").err)
	assert.FileExists(t, filepath.Join(dir, "lib/orders/orders.ts"))
	assertMissing(t, filepath.Join(dir, "lib/orders/orders.test.ts"))

	require.NoError(t, run(t, "", "feat", "invoices", "--test", "--dir", "pkg").err)
	assert.FileExists(t, filepath.Join(dir, "pkg/invoices/invoices.test.ts"), "flags override config")
}

func TestFeat_ExplicitConfigFlag(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "conf/custom.yml"), "baseDir: modules\n")

	require.NoError(t, run(t, "", "--config", "conf/custom.yml", "feat", "orders").err)
	assert.FileExists(t, filepath.Join(dir, "modules/orders/index.ts"))
}

func TestFeat_EnvironmentOverridesFile(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "hatch.yml"), "baseDir: lib\n")
	t.Setenv("HATCH_BASE_DIR", "env")

	require.NoError(t, run(t, "", "feat", "orders").err)
	assert.FileExists(t, filepath.Join(dir, "env/orders/index.ts"))
}

func TestFeat_BrokenConfigIsWarning(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "hatch.yml"), "baseDir: [oops\n")

	res := run(t, "", "feat", "orders")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "failed to load config")
	assert.Contains(t, res.stdout, "using defaults")
	assert.FileExists(t, filepath.Join(dir, "src/orders/index.ts"))
}

func TestFeat_DryRun(t *testing.T) {
	dir := workspace(t)

	res := run(t, "", "feat", "user auth", "--dry-run")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Would create:")
	assert.NotContains(t, res.stdout, "Generated")
	assertMissing(t, filepath.Join(dir, "src"))
}

func TestFeat_Skip(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "src/user-auth/index.ts"), "keep\n")

	res := run(t, "", "feat", "user auth", "--skip")

	require.NoError(t, res.err, "skipped files are not failures")
	assert.Contains(t, res.stdout, "src/user-auth/index.ts: skipped")
	assert.Equal(t, "keep\n", readFile(t, filepath.Join(dir, "src/user-auth/index.ts")))
}

func TestFeat_Diff(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "src/user-auth/index.ts"), "export * from './legacy';\n")

	res := run(t, "", "feat", "user auth", "--diff")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "-export * from './legacy';")
	assert.Contains(t, res.stdout, "+export * from './user-auth';")
	assert.Equal(t, "export * from './legacy';\n", readFile(t, filepath.Join(dir, "src/user-auth/index.ts")))
}

func TestFeat_InteractiveWithoutTerminalFails(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "src/user-auth/index.ts"), "keep\n")

	res := run(t, "", "feat", "user auth", "--interactive")

	require.ErrorIs(t, res.err, ErrGenerationFailed)
	assert.Contains(t, res.stdout, "requires a terminal")
}

func TestFeat_VerboseLogsToStderr(t *testing.T) {
	workspace(t)

	res := run(t, "", "feat", "orders", "-v")

	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "DEBUG")
	assert.Contains(t, res.stderr, "wrote file")
	assert.NotContains(t, res.stdout, "DEBUG")
}

const serviceBlueprint = `name: service
files:
  - path: "{{ .Kebab }}/{{ .Kebab }}.service.ts"
    template: "export class {{ .Pascal }}Service {}\n"
  - path: "{{ .Kebab }}/{{ .Kebab }}.service.test.ts"
    template: "test('{{ .Pascal }}Service', () => {});\n"
`

func TestGen_FromBlueprint(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "service.yml"), serviceBlueprint)

	res := run(t, "", "gen", "service.yml", "order line")

	require.NoError(t, res.err)
	assert.Equal(t, "export class OrderLineService {}\n", readFile(t, filepath.Join(dir, "order-line/order-line.service.ts")))
	assert.FileExists(t, filepath.Join(dir, "order-line/order-line.service.test.ts"))
}

func TestGen_DirAndNoTest(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "blueprints/service.yml"), serviceBlueprint)

	res := run(t, "", "gen", "blueprints/service.yml", "order", "--dir", "packages/api", "--no-test")

	require.NoError(t, res.err)
	assert.FileExists(t, filepath.Join(dir, "packages/api/order/order.service.ts"))
	assertMissing(t, filepath.Join(dir, "packages/api/order/order.service.test.ts"))
	assert.Contains(t, res.stdout, filepath.Join("packages/api/order/order.service.ts"))
}

func TestGen_NoTestWithDottedDir(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "service.yml"), serviceBlueprint)

	res := run(t, "", "gen", "service.yml", "order", "--dir", "some.test.dir", "--no-test")

	require.NoError(t, res.err)
	assert.FileExists(t, filepath.Join(dir, "some.test.dir/order/order.service.ts"))
	assertMissing(t, filepath.Join(dir, "some.test.dir/order/order.service.test.ts"))
	assert.NotContains(t, res.stdout, "No files generated.")
}

func TestGen_InvalidBlueprintWritesNothing(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "bad.yml"), "files:\n  - path: a.ts\n")

	res := run(t, "", "gen", "bad.yml", "order")

	require.ErrorIs(t, res.err, blueprint.ErrBlueprintShape)
	assert.NotErrorIs(t, res.err, ErrGenerationFailed)
	assertMissing(t, filepath.Join(dir, "a.ts"))
}

func TestGen_MissingBlueprint(t *testing.T) {
	workspace(t)

	res := run(t, "", "gen", "nope.yml", "order")

	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, os.ErrNotExist)
}

func TestGen_RequiresArgs(t *testing.T) {
	workspace(t)
	require.Error(t, run(t, "", "gen", "only-one-arg").err)
}

func TestGen_EmptyBlueprint(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "empty.yml"), "files: []\n")

	res := run(t, "", "gen", "empty.yml", "order")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No files generated.")
}

func TestInit_Defaults(t *testing.T) {
	dir := workspace(t)

	res := run(t, "", "init", "--yes")

	require.NoError(t, res.err)
	assert.Equal(t, "baseDir: src\nskipTests: false\n", readFile(t, filepath.Join(dir, "hatch.yml")))
	assert.Contains(t, res.stdout, "Wrote hatch.yml")
}

func TestInit_Prompts(t *testing.T) {
	dir := workspace(t)

	res := run(t, "lib\nn\n", "init")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Base directory for features")
	assert.Equal(t, "baseDir: lib\nskipTests: true\n", readFile(t, filepath.Join(dir, "hatch.yml")))

	// The written config drives the next feat.
	require.NoError(t, run(t, "", "feat", "orders").err)
	assert.FileExists(t, filepath.Join(dir, "lib/orders/orders.ts"))
	assertMissing(t, filepath.Join(dir, "lib/orders/orders.test.ts"))
}

func TestInit_ExistingConfig(t *testing.T) {
	dir := workspace(t)
	writeFile(t, filepath.Join(dir, "hatch.yml"), "baseDir: mine\n")

	res := run(t, "", "init", "--yes")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "already exists")
	assert.Equal(t, "baseDir: mine\n", readFile(t, filepath.Join(dir, "hatch.yml")))

	require.NoError(t, run(t, "", "init", "--yes", "--force").err)
	assert.Contains(t, readFile(t, filepath.Join(dir, "hatch.yml")), "baseDir: src")
}

func TestInit_DryRun(t *testing.T) {
	dir := workspace(t)

	res := run(t, "", "init", "--yes", "--dry-run")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "[dry run] Create")
	assertMissing(t, filepath.Join(dir, "hatch.yml"))
}

func TestVersion(t *testing.T) {
	res := run(t, "", "version")

	require.NoError(t, res.err)
	assert.Equal(t, "hatch dev\n", res.stdout)
}

func TestDisplayPath(t *testing.T) {
	work := filepath.FromSlash("/work/project")

	tests := []struct {
		name string
		res  generator.Result
		want string
	}{
		{"inside", generator.Result{Path: filepath.FromSlash("/work/project/src/a.ts")}, filepath.FromSlash("src/a.ts")},
		{"outside", generator.Result{Path: filepath.FromSlash("/elsewhere/a.ts")}, filepath.FromSlash("/elsewhere/a.ts")},
		{"sibling with shared prefix", generator.Result{Path: filepath.FromSlash("/work/project-b/a.ts")}, filepath.FromSlash("/work/project-b/a.ts")},
		{"unresolved named", generator.Result{Name: "types"}, "<types>"},
		{"unresolved", generator.Result{}, "<unresolved path>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayPath(work, tt.res))
		})
	}
}
