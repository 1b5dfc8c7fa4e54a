package tf

import (
	"log/slog"
	"strings"

	"github.com/joelmoss/tfx/internal/tfvc"
)

const (
	upToDateMessage = "All files up to date."
	summaryPrefix   = "---- Summary:"
	gettingPrefix   = "Getting "
	replacingPrefix = "Replacing "
	deletingPrefix  = "Deleting "
)

// SyncOptions control `tf get`.
type SyncOptions struct {
	Recursive bool
	Force     bool
	// IgnoreExitCode accepts any exit code and leaves the judgement to the
	// decoded exceptions.
	IgnoreExitCode bool
}

// NewSync brings items up to date with the server.
//
//	get -noprompt <paths> [-recursive] [-force]
func NewSync(ctx *Context, paths []string, opts SyncOptions) (*Command[tfvc.SyncResults], error) {
	if err := requiredItems(KindGet, "paths", paths); err != nil {
		return nil, err
	}
	cmd := newCommand(KindGet, ctx, func(b *ArgumentBuilder) {
		b.Add(paths...)
		if opts.Recursive {
			b.AddSwitch("recursive")
		}
		if opts.Force {
			b.AddSwitch("force")
		}
	}, decodeSync)
	if opts.IgnoreExitCode {
		cmd.checkExit = false
	}
	return cmd, nil
}

// decodeSync reads the files get touched:
//
//	/home/me/ws/src:
//	Getting New.java
//	Replacing Changed.java
//	Deleting Old.java
//
// Conflicts are only flagged; the resolve command lists them.
func decodeSync(stdout, stderr string) (tfvc.SyncResults, error) {
	results := tfvc.SyncResults{
		NewFiles:     []string{},
		UpdatedFiles: []string{},
		DeletedFiles: []string{},
		Exceptions:   syncExceptions(stderr),
	}
	if strings.Contains(stdout, upToDateMessage) {
		results.Exceptions = []tfvc.SyncException{}
		return results, nil
	}
	results.ConflictsExist = strings.Contains(stderr, syncConflictMarker)

	folder := ""
	for _, line := range splitLines(stdout) {
		switch {
		case line == "", strings.HasPrefix(line, summaryPrefix):
		case isFilePath(line):
			folder = folderOf(line)
		case strings.HasPrefix(line, gettingPrefix):
			results.NewFiles = append(results.NewFiles, joinItem(folder, strings.TrimPrefix(line, gettingPrefix)))
		case strings.HasPrefix(line, replacingPrefix):
			results.UpdatedFiles = append(results.UpdatedFiles, joinItem(folder, strings.TrimPrefix(line, replacingPrefix)))
		case strings.HasPrefix(line, deletingPrefix):
			results.DeletedFiles = append(results.DeletedFiles, joinItem(folder, strings.TrimPrefix(line, deletingPrefix)))
		default:
			slog.Warn("unknown response from get", "line", line)
		}
	}
	return results, nil
}

// syncExceptions reads the per-item problems get prints. Every problem is
// printed twice, first with the file name and then with the full path, and
// all short forms come first, so only the second half of the lines is used:
//
//	Warning - Unable to refresh a.txt because you have a pending edit.
//	Warning - Unable to refresh /ws/dir/a.txt because you have a pending edit.
//
// Conflict lines are not exceptions.
func syncExceptions(stderr string) []tfvc.SyncException {
	exceptions := []tfvc.SyncException{}
	lines := splitLines(stderr)
	for _, line := range lines[len(lines)/2:] {
		if line == "" || isSyncConflictLine(line) {
			continue
		}
		exceptions = append(exceptions, tfvc.SyncException{
			Message:   line,
			IsWarning: isSyncWarningLine(line),
		})
	}
	return exceptions
}
