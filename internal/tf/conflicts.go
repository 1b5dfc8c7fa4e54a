package tf

import (
	"strings"

	"github.com/joelmoss/tfx/internal/tfvc"
)

// NewFindConflicts previews the conflicts under root without resolving them.
//
//	resolve -noprompt -preview [-recursive] <root>
func NewFindConflicts(ctx *Context, workingDir, root string, recursive bool) (*Command[tfvc.ConflictResults], error) {
	if err := required(KindFindConflicts, "root", root); err != nil {
		return nil, err
	}
	return newCommand(KindFindConflicts, ctx, func(b *ArgumentBuilder) {
		b.SetWorkingDirectory(workingDir)
		b.AddSwitch("preview")
		if recursive {
			b.AddSwitch("recursive")
		}
		b.Add(root)
	}, decodeConflicts), nil
}

// decodeConflicts reads the conflicts, which tf prints on stderr:
//
//	/ws/a.txt: The item content has changed
//	/ws/b.txt: The item name has changed
//	/ws/c.txt: The item name and content have changed
func decodeConflicts(stdout, stderr string) (tfvc.ConflictResults, error) {
	results := tfvc.ConflictResults{
		ContentConflicts: []string{},
		RenameConflicts:  []string{},
		BothConflicts:    []string{},
	}
	for _, line := range splitLines(stderr) {
		if strings.TrimSpace(line) == "" || isNoConflictsLine(line) {
			continue
		}
		item, kind := parseConflictLine(line)
		switch kind {
		case contentConflict:
			results.ContentConflicts = append(results.ContentConflicts, item)
		case renameConflict:
			results.RenameConflicts = append(results.RenameConflicts, item)
		case bothConflict:
			results.BothConflicts = append(results.BothConflicts, item)
		default:
			return results, toolError(stderr)
		}
	}
	return results, nil
}

// NewResolve resolves the conflicts of paths automatically and returns the
// resolved items.
//
//	resolve -noprompt -auto:<type> <paths>
func NewResolve(ctx *Context, paths []string, resolution tfvc.ResolveType) (*Command[[]string], error) {
	if err := requiredItems(KindResolve, "paths", paths); err != nil {
		return nil, err
	}
	if err := required(KindResolve, "resolution", string(resolution)); err != nil {
		return nil, err
	}
	return newCommand(KindResolve, ctx, func(b *ArgumentBuilder) {
		b.AddSwitchValue("auto", string(resolution)).Add(paths...)
	}, decodeResolve), nil
}

func decodeResolve(stdout, stderr string) ([]string, error) {
	if err := failIfStderr(stderr); err != nil {
		return nil, err
	}
	resolved := []string{}
	for _, line := range splitLines(stdout) {
		if item, ok := resolvedItem(strings.TrimSpace(line)); ok {
			resolved = append(resolved, item)
		} else if strings.TrimSpace(line) != "" {
			logSkipped(KindResolve, line)
		}
	}
	return resolved, nil
}
