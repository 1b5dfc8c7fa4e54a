package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/joelmoss/tfx/internal/tfvc"
)

// DisplayPath replaces the user's home directory prefix with ~.
func DisplayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

// PrintTable writes an optional bold header and the rows, aligned on the
// widest cell of each column.
func PrintTable(w io.Writer, header []string, rows [][]string, indent int) {
	if len(header) > 0 {
		bold := make([]string, len(header))
		for i, h := range header {
			bold[i] = Bold(h)
		}
		rows = append([][]string{bold}, rows...)
	}
	if len(rows) == 0 {
		return
	}

	maxCols := 0
	for _, row := range rows {
		maxCols = max(maxCols, len(row))
	}
	widths := make([]int, maxCols)
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(stripAnsi(cell)))
		}
	}

	prefix := strings.Repeat(" ", indent)
	for _, row := range rows {
		var line strings.Builder
		line.WriteString(prefix)
		for i, cell := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(cell)
			if pad := widths[i] - len(stripAnsi(cell)); i < len(row)-1 && pad > 0 {
				line.WriteString(strings.Repeat(" ", pad))
			}
		}
		fmt.Fprintln(w, line.String())
	}
}

// PrintList writes a titled list of items, or nothing when items is empty.
func PrintList(w io.Writer, title string, items []string, colorize func(a ...any) string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, Bold(title))
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", colorize(item))
	}
}

// ChangeTypes colours a change type list the way tf status reads it: adds
// green, deletes red, everything else yellow.
func ChangeTypes(types []tfvc.ChangeType) string {
	s := tfvc.JoinChangeTypes(types)
	switch {
	case tfvc.HasChangeType(types, tfvc.ChangeAdd), tfvc.HasChangeType(types, tfvc.ChangeBranch):
		return Green(s)
	case tfvc.HasChangeType(types, tfvc.ChangeDelete):
		return Red(s)
	default:
		return Yellow(s)
	}
}

// stripAnsi removes ANSI escape codes for width calculation.
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// Color helpers
var (
	Green  = color.New(color.FgGreen).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
	Bold   = color.New(color.Bold).SprintFunc()
	Dim    = color.New(color.FgHiBlack).SprintFunc()
	Plain  = fmt.Sprint
)
