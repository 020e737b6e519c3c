package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompter reads answers from one input stream. Reuse a single Prompter for
// a sequence of questions so buffered input is not lost between them.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Prompt asks the user for text input with an optional default value.
// If the user presses Enter without typing anything, or input ends, the
// default is returned.
//
// Example:
//
//	baseDir := p.Prompt("Base directory", "src")
//	// Displays: Base directory (src): _
func (p *Prompter) Prompt(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return defaultValue
	}
	return answer
}

// Confirm asks the user a yes/no question.
// Returns true if the user answers yes (y/Y/yes/YES), false otherwise.
// If defaultYes is true, pressing Enter returns true. Otherwise, returns false.
//
// Example:
//
//	if p.Confirm("Generate test files?", true) {
//	    // User said yes (or pressed Enter with defaultYes=true)
//	}
//	// Displays: Generate test files? [Y/n]: _
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return defaultYes
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// readLine returns the next trimmed line. A final line without a newline
// still counts; ok is false only when nothing could be read.
func (p *Prompter) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}
