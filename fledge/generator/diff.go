package generator

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// maxDiffLines bounds the Myers search, which is quadratic in the worst case.
const maxDiffLines = 10000

// DiffOptions configures how diffs are computed and displayed.
// Zero values select the defaults.
type DiffOptions struct {
	ContextLines int  // unchanged lines around each change, default 3
	TabWidth     int  // spaces per tab, default 4
	Width        int  // truncate lines to this width, default terminal width
	ShowLineNums bool // prefix lines with their number in the existing file
}

func (o DiffOptions) withDefaults() DiffOptions {
	if o.ContextLines <= 0 {
		o.ContextLines = 3
	}
	if o.TabWidth <= 0 {
		o.TabWidth = 4
	}
	if o.Width <= 0 {
		o.Width = terminalWidth()
	}
	return o
}

// Diff is the line difference between an existing file and the content
// generated for it.
type Diff struct {
	Path     string
	Added    int
	Removed  int
	Binary   bool
	TooLarge bool
	hunks    []hunk
}

// ComputeDiff compares existing with generated line by line.
func ComputeDiff(path string, existing, generated []byte, opts DiffOptions) Diff {
	opts = opts.withDefaults()
	d := Diff{Path: path}

	if bytes.Equal(existing, generated) {
		return d
	}
	if isBinary(existing) || isBinary(generated) {
		d.Binary = true
		return d
	}

	oldLines := splitLines(string(existing))
	newLines := splitLines(string(generated))
	if slices.Equal(oldLines, newLines) {
		return d
	}
	if len(oldLines) > maxDiffLines || len(newLines) > maxDiffLines {
		d.TooLarge = true
		return d
	}

	script := editScript(oldLines, newLines)
	for _, l := range script {
		switch l.op {
		case opAdded:
			d.Added++
		case opRemoved:
			d.Removed++
		}
	}
	d.hunks = buildHunks(script, opts.ContextLines)
	return d
}

// Empty reports whether the two sides are identical.
func (d Diff) Empty() bool {
	return !d.Binary && !d.TooLarge && len(d.hunks) == 0
}

// Summary is a one-line description such as "src/user/user.ts: +3 -1".
func (d Diff) Summary() string {
	switch {
	case d.Binary:
		return d.Path + ": binary files differ"
	case d.TooLarge:
		return d.Path + ": too large to diff"
	default:
		return fmt.Sprintf("%s: +%d -%d", d.Path, d.Added, d.Removed)
	}
}

// Render formats the diff in unified style, colored through lipgloss.
func (d Diff) Render(opts DiffOptions) string {
	if d.Binary {
		return "Binary files differ\n"
	}
	if d.TooLarge {
		return "Files too large for diff\n"
	}
	if len(d.hunks) == 0 {
		return ""
	}
	opts = opts.withDefaults()

	var buf strings.Builder
	buf.WriteString(headerStyle.Render("--- "+d.Path+" (existing)") + "\n")
	buf.WriteString(headerStyle.Render("+++ "+d.Path+" (generated)") + "\n")
	for _, h := range d.hunks {
		h.format(&buf, opts)
	}
	return buf.String()
}

type operation int

const (
	opUnchanged operation = iota
	opAdded
	opRemoved
)

type diffLine struct {
	oldLineNum int // 0 if added
	newLineNum int // 0 if removed
	content    string
	op         operation
}

// hunk is a contiguous block of changes with surrounding context.
type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []diffLine
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
	lineNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
)

// editScript computes the shortest edit script between a and b using the
// greedy algorithm from Myers, "An O(ND) Difference Algorithm and Its
// Variations" (1986). v is indexed by diagonal k shifted by offset.
func editScript(a, b []string) []diffLine {
	n, m := len(a), len(b)
	maxD := n + m
	offset := maxD + 1
	v := make([]int, 2*maxD+3)

	var trace [][]int
search:
	for d := 0; d <= maxD; d++ {
		trace = append(trace, slices.Clone(v))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1] // down: insertion
			} else {
				x = v[offset+k-1] + 1 // right: deletion
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				break search
			}
		}
	}

	var script []diffLine
	x, y := n, m
	for d := len(trace) - 1; d >= 0; d-- {
		v := trace[d]
		k := x - y

		prevK := k - 1
		if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
			prevK = k + 1
		}
		prevX := v[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			script = append(script, diffLine{oldLineNum: x + 1, newLineNum: y + 1, content: a[x], op: opUnchanged})
		}
		if d == 0 {
			break
		}
		if x == prevX {
			y--
			script = append(script, diffLine{newLineNum: y + 1, content: b[y], op: opAdded})
		} else {
			x--
			script = append(script, diffLine{oldLineNum: x + 1, content: a[x], op: opRemoved})
		}
	}

	slices.Reverse(script)
	return script
}

// buildHunks groups changes that are at most 2*context unchanged lines
// apart, padding each group with context on both sides.
func buildHunks(lines []diffLine, context int) []hunk {
	var hunks []hunk
	for i := 0; i < len(lines); {
		if lines[i].op == opUnchanged {
			i++
			continue
		}

		last := i
		for j := i + 1; j < len(lines) && j-last <= 2*context; j++ {
			if lines[j].op != opUnchanged {
				last = j
			}
		}

		start := max(0, i-context)
		stop := min(len(lines), last+context+1)
		hunks = append(hunks, newHunk(lines[start:stop]))
		i = stop
	}
	return hunks
}

func newHunk(lines []diffLine) hunk {
	h := hunk{lines: lines}
	for _, l := range lines {
		if l.op != opAdded {
			if h.oldStart == 0 {
				h.oldStart = l.oldLineNum
			}
			h.oldCount++
		}
		if l.op != opRemoved {
			if h.newStart == 0 {
				h.newStart = l.newLineNum
			}
			h.newCount++
		}
	}
	return h
}

func (h hunk) format(buf *strings.Builder, opts DiffOptions) {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)
	buf.WriteString(hunkStyle.Render(header) + "\n")

	for _, l := range h.lines {
		// Leave room for the prefix and line numbers.
		content := truncateLine(expandTabs(l.content, opts.TabWidth), opts.Width-10)

		var formatted string
		switch l.op {
		case opAdded:
			formatted = addedStyle.Render("+" + content)
		case opRemoved:
			formatted = removedStyle.Render("-" + content)
		default:
			formatted = " " + content
		}

		if opts.ShowLineNums {
			num := "    "
			if l.oldLineNum > 0 {
				num = fmt.Sprintf("%4d", l.oldLineNum)
			}
			formatted = lineNumStyle.Render(num) + " " + formatted
		}
		buf.WriteString(formatted + "\n")
	}
}

// isBinary treats a NUL byte in the first 8 KiB as binary content.
func isBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), 8192)], 0) != -1
}

// splitLines splits on newlines, ignoring a single trailing newline.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func expandTabs(s string, tabWidth int) string {
	var buf strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - col%tabWidth
			buf.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		buf.WriteRune(r)
		col++
	}
	return buf.String()
}

// truncateLine shortens s to maxWidth runes, marking the cut with "...".
func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 80
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return "..."[:maxWidth]
	}
	runes := []rune(s)
	return string(runes[:maxWidth-3]) + "..."
}

// terminalWidth returns the stdout width, defaulting to 80.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
