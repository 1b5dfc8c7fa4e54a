package tf

import (
	"path/filepath"
	"strings"
)

// warningPrefix marks diagnostic lines some tf builds print before the
// real output.
const warningPrefix = "WARN "

// splitLines normalises line endings, drops leading WARN lines and trailing
// blank lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for len(lines) > 0 && hasPrefixFold(lines[0], warningPrefix) {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// isFolderLine reports whether a line of hierarchical output names the folder
// for the lines that follow, e.g. "/home/me/ws/src:".
func isFolderLine(line string) bool {
	return strings.HasSuffix(strings.TrimRight(line, " \t"), ":")
}

// isFilePath is the stricter test used when folder lines are mixed with
// free text: the line must also contain a path separator.
func isFilePath(line string) bool {
	return isFolderLine(line) && strings.ContainsAny(line, `\/`)
}

// joinItem joins an item to the active folder with the platform separator.
// An empty folder yields the item alone.
func joinItem(folder, item string) string {
	if folder == "" {
		return item
	}
	return filepath.Join(folder, item)
}

func folderOf(line string) string {
	return strings.TrimSuffix(strings.TrimSpace(line), ":")
}

// walkHierarchy calls fn for every item line with the folder it belongs to.
// Blank lines are skipped; a folder line replaces the active folder.
func walkHierarchy(lines []string, fn func(folder, item string)) {
	folder := ""
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case isFolderLine(trimmed):
			folder = folderOf(trimmed)
		default:
			fn(folder, trimmed)
		}
	}
}

// hierarchicalPaths decodes a path-prefixed list into full item paths.
func hierarchicalPaths(stdout string) []string {
	var paths []string
	walkHierarchy(splitLines(stdout), func(folder, item string) {
		paths = append(paths, joinItem(folder, item))
	})
	return paths
}

// columnEnds computes the end offset of every column but the last from the
// dash line under a table header. Column i+1 starts one space after column
// i ends.
func columnEnds(dashes string) []int {
	runs := strings.Fields(dashes)
	ends := make([]int, 0, len(runs))
	end := 0
	for i, run := range runs {
		if i > 0 {
			end++
		}
		end += len(run)
		ends = append(ends, end)
	}
	return ends
}

// splitColumns cuts a table row at the given column ends. The last column
// runs to the end of the row so that free text such as comments survives.
func splitColumns(row string, ends []int) []string {
	if len(ends) == 0 {
		return []string{strings.TrimSpace(row)}
	}
	cols := make([]string, len(ends))
	start := 0
	for i := range ends {
		if i == len(ends)-1 {
			cols[i] = strings.TrimSpace(substring(row, start, len(row)))
			break
		}
		cols[i] = strings.TrimSpace(substring(row, start, ends[i]))
		start = ends[i]
	}
	return cols
}

// substring clamps both bounds to the string.
func substring(s string, start, end int) string {
	if start > len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return ""
	}
	return s[start:end]
}

// valueAfter returns the trimmed text after the first ": ", as in
// "Workspace:  MyWorkspace".
func valueAfter(line string) string {
	_, value, found := strings.Cut(line, ": ")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}

// splitKeyValue splits "Key:   value" at the first colon.
func splitKeyValue(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}
