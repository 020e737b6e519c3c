// Package output provides styled terminal output for the hatch CLI.
//
// Functions use lipgloss for styling but abstract away the details from callers.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle  = lipgloss.NewStyle().Bold(true)

	mu          sync.Mutex
	writer      io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// SetOutput redirects all output to w and returns the previous writer.
// A nil w restores os.Stdout.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := writer
	if w == nil {
		w = os.Stdout
	}
	writer = w
	return prev
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(writer, s)
}

// Success prints a success message with 🐣 emoji and green color.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Generated 4 files for user-auth")
func Success(msg string) {
	emit(successStyle.Render("🐣 " + msg))
}

// Error prints an error message with ❌ emoji and red color.
// Use this for failures that need user attention.
func Error(msg string) {
	emit(errorStyle.Render("❌ " + msg))
}

// Warn prints a warning with ⚠️ emoji and yellow color.
// Use this for problems that do not stop the command, such as an
// unreadable config file.
func Warn(msg string) {
	emit(warnStyle.Render("⚠️  " + msg))
}

// Info prints an informational message with ℹ️ emoji and cyan color.
func Info(msg string) {
	emit(infoStyle.Render("ℹ️  " + msg))
}

// Header prints a bold section title such as "Created:".
func Header(msg string) {
	emit(headerStyle.Render(msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("src/user-auth/index.ts")
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message with 🔍 emoji only if verbose mode is enabled.
func Verbose(msg string) {
	mu.Lock()
	on := verboseMode
	mu.Unlock()
	if on {
		emit(stepStyle.Render("🔍 " + msg))
	}
}
