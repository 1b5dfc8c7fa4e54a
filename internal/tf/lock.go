package tf

import (
	"strings"

	"github.com/joelmoss/tfx/internal/tfvc"
)

// NewLock locks or unlocks items. LockNone unlocks.
//
//	lock -noprompt -lock:<level> [-recursive] <items>
func NewLock(ctx *Context, workingDir string, level tfvc.LockLevel, recursive bool, items []string) (*Command[string], error) {
	if err := required(KindLock, "working folder", workingDir); err != nil {
		return nil, err
	}
	if err := requiredItems(KindLock, "items", items); err != nil {
		return nil, err
	}
	if level == "" {
		level = tfvc.LockNone
	}
	return newCommand(KindLock, ctx, func(b *ArgumentBuilder) {
		b.SetWorkingDirectory(workingDir)
		b.AddSwitchValue("lock", string(level))
		if recursive {
			b.AddSwitch("recursive")
		}
		b.Add(items...)
	}, decodeLock), nil
}

// decodeLock only looks for errors; stdout just echoes the items:
//
//	Folder333:
//	Folder333
//	TF14090: Cannot unlock $/proj/Folder333. It is not currently locked in your workspace.
//
// Without any stdout, all stderr is an error. Otherwise unlocking an item
// that is not locked is ignored.
func decodeLock(stdout, stderr string) (string, error) {
	if stdout == "" {
		return "", failIfStderr(stderr)
	}
	var real []string
	for _, line := range splitLines(stderr) {
		if isNotLockedLine(line) {
			continue
		}
		real = append(real, line)
	}
	return "", failIfStderr(strings.Join(real, "\n"))
}
