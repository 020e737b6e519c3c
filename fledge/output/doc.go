// Package output provides styled terminal output for the hatch CLI.
//
// # Usage
//
//	output.Header("Created:")
//	output.Step("src/user-auth/index.ts")
//	output.Warn("ignoring hatch.yml: yaml: line 2: did not find expected key")
//	output.Error("src/user-auth/user-auth.ts: file already exists")
//
// # Redirecting
//
// Output goes to os.Stdout unless SetOutput is called. Commands point it
// at cobra's output writer so tests can capture it:
//
//	prev := output.SetOutput(cmd.OutOrStdout())
//	defer output.SetOutput(prev)
//
// # Styling
//
//   - Success: 🐣 green bold
//   - Error: ❌ red bold
//   - Warn: ⚠️ yellow bold
//   - Info: ℹ️ cyan
//   - Header: bold
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
package output
