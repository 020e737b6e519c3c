// Package input provides interactive terminal input utilities.
//
// # Usage
//
// Create a Prompter over the command's streams so that tests can script
// the answers:
//
//	p := input.New(cmd.InOrStdin(), cmd.OutOrStdout())
//	baseDir := p.Prompt("Base directory", "src")
//	skipTests := !p.Confirm("Generate test files?", true)
//
// # Styling
//
//   - Prompts are displayed in cyan and bold
//   - Hints (defaults, [Y/n]) are displayed in gray
//
// # Non-Interactive Mode
//
// Use flags to bypass prompts in CI, as "hatch init --yes" does.
package input
