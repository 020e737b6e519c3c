package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ConflictResolution represents what to do with an existing file
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel
)

func (r ConflictResolution) String() string {
	switch r {
	case Skip:
		return "skip"
	case Overwrite:
		return "overwrite"
	case ShowDiff:
		return "show-diff"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("resolution(%d)", int(r))
	}
}

// ErrConflictFlags is returned for mutually exclusive overwrite flags.
var ErrConflictFlags = errors.New("conflicting overwrite flags")

// ErrNotInteractive is returned when the interactive strategy has no terminal.
var ErrNotInteractive = errors.New("interactive conflict resolution requires a terminal")

// Conflict describes a file the overwrite guard refused to replace.
type Conflict struct {
	Path      string
	Existing  []byte
	Generated []byte
}

// ConflictStrategy determines how to resolve conflicts
type ConflictStrategy interface {
	Resolve(ctx context.Context, c Conflict) (ConflictResolution, error)
}

// ConflictFlags mirrors the command line overwrite flags.
type ConflictFlags struct {
	Force       bool
	Skip        bool
	Diff        bool
	Interactive bool
}

// Lipgloss styles for terminal output
var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	borderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
)

// NewConflictStrategy picks the strategy selected by flags. It returns a nil
// strategy when no strategy flag is set (or with --force, which bypasses the
// guard entirely), in which case an existing file is a plain failure.
// Strategies print to out; the interactive one also reads keys from in.
func NewConflictStrategy(flags ConflictFlags, in io.Reader, out io.Writer) (ConflictStrategy, error) {
	selected := 0
	for _, set := range []bool{flags.Skip, flags.Diff, flags.Interactive} {
		if set {
			selected++
		}
	}
	if flags.Force && selected > 0 {
		return nil, fmt.Errorf("%w: --force cannot be combined with --skip, --diff or --interactive", ErrConflictFlags)
	}
	if selected > 1 {
		return nil, fmt.Errorf("%w: choose only one of --skip, --diff or --interactive", ErrConflictFlags)
	}

	switch {
	case flags.Skip:
		return &SkipStrategy{}, nil
	case flags.Diff:
		return &DiffStrategy{Out: out}, nil
	case flags.Interactive:
		return &InteractiveStrategy{In: in, Out: out}, nil
	default:
		return nil, nil
	}
}

// SkipStrategy always returns Skip (no prompts)
type SkipStrategy struct{}

func (s *SkipStrategy) Resolve(ctx context.Context, c Conflict) (ConflictResolution, error) {
	return Skip, nil
}

// DiffStrategy prints what --force would change and keeps the existing file.
type DiffStrategy struct {
	Out     io.Writer
	Options DiffOptions
}

func (s *DiffStrategy) Resolve(ctx context.Context, c Conflict) (ConflictResolution, error) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	d := ComputeDiff(c.Path, c.Existing, c.Generated, s.Options)
	if d.Empty() {
		fmt.Fprintf(out, "%s\n", mutedStyle.Render("  unchanged: "+c.Path))
		return Skip, nil
	}
	fmt.Fprintf(out, "%s\n%s", warningStyle.Render(d.Summary()), d.Render(s.Options))
	return Skip, nil
}

// InteractiveStrategy shows a menu with keyboard navigation. Choosing
// "Show diff and decide" displays the diff and returns to the menu, so the
// diff can be reviewed as often as needed before deciding.
type InteractiveStrategy struct {
	In  io.Reader // defaults to os.Stdin
	Out io.Writer // defaults to os.Stdout

	// IsTerminal overrides terminal detection on In.
	IsTerminal func() bool
}

func (s *InteractiveStrategy) Resolve(ctx context.Context, c Conflict) (ConflictResolution, error) {
	in, out := s.In, s.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if !s.terminal(in) {
		return Cancel, ErrNotInteractive
	}

	fileInfo, err := os.Stat(c.Path)
	if err != nil && !os.IsNotExist(err) {
		return Cancel, fmt.Errorf("failed to stat file: %w", err)
	}

	for {
		p := tea.NewProgram(newConflictMenuModel(c.Path, fileInfo),
			tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
		finalModel, err := p.Run()
		if err != nil {
			return Cancel, fmt.Errorf("failed to show menu: %w", err)
		}

		result := finalModel.(conflictMenuModel)
		if result.selected == nil {
			return Cancel, nil
		}
		if *result.selected != ShowDiff {
			return *result.selected, nil
		}

		if err := s.showDiff(ctx, c, in, out); err != nil {
			return Cancel, err
		}
	}
}

func (s *InteractiveStrategy) showDiff(ctx context.Context, c Conflict, in io.Reader, out io.Writer) error {
	d := ComputeDiff(c.Path, c.Existing, c.Generated, DiffOptions{})
	rendered := d.Render(DiffOptions{})
	if d.Empty() {
		rendered = mutedStyle.Render("Files are identical") + "\n"
	}

	if strings.Count(rendered, "\n") <= 20 {
		_, err := fmt.Fprint(out, rendered)
		return err
	}

	p := tea.NewProgram(newDiffViewerModel(c.Path, rendered),
		tea.WithAltScreen(), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to show diff: %w", err)
	}
	return nil
}

func (s *InteractiveStrategy) terminal(in io.Reader) bool {
	if s.IsTerminal != nil {
		return s.IsTerminal()
	}
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// conflictMenuModel is the BubbleTea model for the conflict menu
type conflictMenuModel struct {
	path     string
	fileInfo os.FileInfo
	choices  []string
	cursor   int
	selected *ConflictResolution
}

func newConflictMenuModel(path string, fileInfo os.FileInfo) conflictMenuModel {
	return conflictMenuModel{
		path:     path,
		fileInfo: fileInfo,
		choices: []string{
			"Show diff and decide",
			"Skip (keep existing file)",
			"Overwrite (replace with generated file)",
			"Cancel remaining files",
		},
	}
}

func (m conflictMenuModel) Init() tea.Cmd {
	return nil
}

func (m conflictMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "s":
		return m.choose(Skip)
	case "o":
		return m.choose(Overwrite)
	case "d":
		return m.choose(ShowDiff)
	case "enter":
		return m.choose(mapChoiceToResolution(m.cursor))
	}
	return m, nil
}

func (m conflictMenuModel) choose(r ConflictResolution) (tea.Model, tea.Cmd) {
	m.selected = &r
	return m, tea.Quit
}

func (m conflictMenuModel) View() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("⚠️  File conflict detected: ") + titleStyle.Render(m.path) + "\n")
	if m.fileInfo != nil {
		b.WriteString(mutedStyle.Render("    Last modified: ") + formatRelativeTime(m.fileInfo.ModTime()) + "\n")
		b.WriteString(mutedStyle.Render("    Size: ") + formatFileSize(m.fileInfo.Size()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [d/s/o] Shortcut    [q] Cancel") + "\n\n")

	for i, choice := range m.choices {
		if m.cursor == i {
			b.WriteString("    " + selectedStyle.Render("> "+choice) + "\n")
		} else {
			b.WriteString("      " + choice + "\n")
		}
	}

	return b.String()
}

// mapChoiceToResolution maps cursor position to resolution
func mapChoiceToResolution(cursor int) ConflictResolution {
	switch cursor {
	case 0:
		return ShowDiff
	case 1:
		return Skip
	case 2:
		return Overwrite
	default:
		return Cancel
	}
}

// diffViewerModel is the BubbleTea model for showing diffs
type diffViewerModel struct {
	path     string
	diff     string
	viewport viewport.Model
	ready    bool
}

func newDiffViewerModel(path, diff string) diffViewerModel {
	return diffViewerModel{path: path, diff: diff}
}

func (m diffViewerModel) Init() tea.Cmd {
	return nil
}

func (m diffViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			m.viewport.LineUp(1)
		case "down", "j":
			m.viewport.LineDown(1)
		case "pgup", "b":
			m.viewport.ViewUp()
		case "pgdown", "f", "space":
			m.viewport.ViewDown()
		}

	case tea.WindowSizeMsg:
		const verticalMargin = 5 // header and footer
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-verticalMargin)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - verticalMargin
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m diffViewerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	title := fmt.Sprintf("─ Diff: %s ", m.path)
	b.WriteString(borderStyle.Render(fmt.Sprintf("┌%s%s┐\n", title, strings.Repeat("─", max(0, m.viewport.Width-len(title)+4)))))

	for _, line := range strings.Split(m.viewport.View(), "\n") {
		b.WriteString(borderStyle.Render("│") + " " + line)
		b.WriteString(strings.Repeat(" ", max(0, m.viewport.Width-lipgloss.Width(line)-1)) + borderStyle.Render("│") + "\n")
	}

	footer := " [↑/↓] Scroll    [q] Return to menu "
	b.WriteString(borderStyle.Render(fmt.Sprintf("└%s%s┘\n", strings.Repeat("─", max(0, m.viewport.Width-len(footer)+4)), footer)))

	return b.String()
}

// formatRelativeTime formats a time as relative (e.g., "2 hours ago")
func formatRelativeTime(t time.Time) string {
	d := time.Since(t)

	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24/7), "week")
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/24/30), "month")
	default:
		return plural(int(d.Hours()/24/365), "year")
	}
}

// formatFileSize formats file size in human-readable format
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
