package tf

import (
	"encoding/xml"
	"strings"

	"github.com/joelmoss/tfx/internal/tfvc"
)

// NewAdd schedules files for addition.
//
//	add -noprompt <paths>
func NewAdd(ctx *Context, paths []string) (*Command[[]string], error) {
	if err := requiredItems(KindAdd, "paths", paths); err != nil {
		return nil, err
	}
	return newCommand(KindAdd, ctx, func(b *ArgumentBuilder) {
		b.Add(paths...)
	}, decodeAdd), nil
}

// decodeAdd returns the full path of every added file:
//
//	/home/me/ws/src:
//	Main.java
func decodeAdd(stdout, stderr string) ([]string, error) {
	if err := failIfStderr(stderr); err != nil {
		return nil, err
	}
	return hierarchicalPaths(stdout), nil
}

const undoLinePrefix = "Undoing "

// NewUndo reverts pending changes.
//
//	undo -noprompt [-recursive] <paths>
func NewUndo(ctx *Context, paths []string, recursive bool) (*Command[[]string], error) {
	if err := requiredItems(KindUndo, "paths", paths); err != nil {
		return nil, err
	}
	return newCommand(KindUndo, ctx, func(b *ArgumentBuilder) {
		if recursive {
			b.AddSwitch("recursive")
		}
		b.Add(paths...)
	}, decodeUndo), nil
}

// decodeUndo returns the paths whose changes were undone:
//
//	/home/me/ws/src:
//	Undoing edit: Main.java
//
// Items without pending changes are reported on stderr and ignored.
func decodeUndo(stdout, stderr string) ([]string, error) {
	var unexpected []string
	for _, line := range splitLines(stderr) {
		if strings.TrimSpace(line) != "" && !isNothingToUndoLine(line) {
			unexpected = append(unexpected, line)
		}
	}
	if len(unexpected) > 0 {
		return nil, toolError(strings.Join(unexpected, "\n"))
	}

	var undone []string
	walkHierarchy(splitLines(stdout), func(folder, item string) {
		if strings.HasPrefix(item, undoLinePrefix) {
			// "Undoing edit: Main.java"
			if _, name, found := strings.Cut(item, ": "); found {
				item = name
			}
		}
		undone = append(undone, joinItem(folder, item))
	})
	return undone, nil
}

// NewCheckout checks out files for edit. Items that cannot be found do not
// fail the command; they are reported in the result.
//
//	checkout -noprompt [-recursive] <paths>
func NewCheckout(ctx *Context, paths []string, recursive bool) (*Command[tfvc.CheckoutResult], error) {
	if err := requiredItems(KindCheckout, "paths", paths); err != nil {
		return nil, err
	}
	return newCommand(KindCheckout, ctx, func(b *ArgumentBuilder) {
		if recursive {
			b.AddSwitch("recursive")
		}
		b.Add(paths...)
	}, decodeCheckout), nil
}

func decodeCheckout(stdout, stderr string) (tfvc.CheckoutResult, error) {
	notFound, errors := splitNotFound(stderr)
	return tfvc.CheckoutResult{
		CheckedOut: orEmpty(hierarchicalPaths(stdout)),
		NotFound:   notFound,
		Errors:     errors,
	}, nil
}

// NewDelete schedules items for deletion. Like checkout, missing items are
// part of the result rather than a failure.
//
//	delete -noprompt [-recursive] <paths>
func NewDelete(ctx *Context, workingDir string, paths []string, recursive bool) (*Command[tfvc.DeleteResult], error) {
	if err := requiredItems(KindDelete, "paths", paths); err != nil {
		return nil, err
	}
	return newCommand(KindDelete, ctx, func(b *ArgumentBuilder) {
		b.SetWorkingDirectory(workingDir)
		if recursive {
			b.AddSwitch("recursive")
		}
		b.Add(paths...)
	}, decodeDelete), nil
}

func decodeDelete(stdout, stderr string) (tfvc.DeleteResult, error) {
	notFound, errors := splitNotFound(stderr)
	return tfvc.DeleteResult{
		Deleted:  orEmpty(hierarchicalPaths(stdout)),
		NotFound: notFound,
		Errors:   errors,
	}, nil
}

// splitNotFound sorts stderr lines into missing items and other errors.
func splitNotFound(stderr string) (notFound, errors []string) {
	notFound, errors = []string{}, []string{}
	for _, line := range splitLines(stderr) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if item, ok := notFoundItem(line); ok {
			notFound = append(notFound, item)
		} else {
			errors = append(errors, strings.TrimSpace(line))
		}
	}
	return notFound, errors
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// NewRename renames or moves an item.
//
//	rename -noprompt <old> <new>
func NewRename(ctx *Context, oldPath, newPath string) (*Command[string], error) {
	if err := required(KindRename, "old path", oldPath); err != nil {
		return nil, err
	}
	if err := required(KindRename, "new path", newPath); err != nil {
		return nil, err
	}
	return newCommand(KindRename, ctx, func(b *ArgumentBuilder) {
		b.Add(oldPath, newPath)
	}, decodeEmpty), nil
}

// NewStatus lists the pending changes under the given paths, or under the
// working directory when there are none.
//
//	status -noprompt -format:xml -recursive [paths]
func NewStatus(ctx *Context, paths ...string) *Command[[]tfvc.PendingChange] {
	return newCommand(KindStatus, ctx, func(b *ArgumentBuilder) {
		b.AddSwitchValue("format", "xml").AddSwitch("recursive").Add(paths...)
	}, decodeStatus)
}

type xmlStatus struct {
	Pending   []xmlPendingChange `xml:"pending-changes>pending-change"`
	Candidate []xmlPendingChange `xml:"candidate-pending-changes>pending-change"`
}

type xmlPendingChange struct {
	ServerItem string `xml:"server-item,attr"`
	LocalItem  string `xml:"local-item,attr"`
	Version    string `xml:"version,attr"`
	Owner      string `xml:"owner,attr"`
	Date       string `xml:"date,attr"`
	Lock       string `xml:"lock,attr"`
	ChangeType string `xml:"change-type,attr"`
	Workspace  string `xml:"workspace,attr"`
	Computer   string `xml:"computer,attr"`
	SourceItem string `xml:"source-item,attr"`
}

func (x xmlPendingChange) model(candidate bool) tfvc.PendingChange {
	return tfvc.PendingChange{
		ServerItem:  x.ServerItem,
		LocalItem:   x.LocalItem,
		Version:     x.Version,
		Owner:       x.Owner,
		Date:        x.Date,
		Lock:        x.Lock,
		ChangeTypes: tfvc.ParseChangeTypes(x.ChangeType),
		Workspace:   x.Workspace,
		Computer:    x.Computer,
		IsCandidate: candidate,
		SourceItem:  x.SourceItem,
	}
}

// decodeStatus reads /status/pending-changes/pending-change and
// /status/candidate-pending-changes/pending-change. Candidates are changes
// tf detected on disk but that are not pended yet.
func decodeStatus(stdout, stderr string) ([]tfvc.PendingChange, error) {
	if err := dollarInPath(stderr); err != nil {
		return nil, err
	}
	if err := failIfStderr(stderr); err != nil {
		return nil, err
	}
	var doc struct {
		XMLName xml.Name `xml:"status"`
		xmlStatus
	}
	changes := []tfvc.PendingChange{}
	ok, err := decodeXML(stdout, &doc)
	if err != nil || !ok {
		return changes, err
	}
	for _, p := range doc.Pending {
		changes = append(changes, p.model(false))
	}
	for _, p := range doc.Candidate {
		changes = append(changes, p.model(true))
	}
	return changes, nil
}

// NewInfo shows local and server information for items.
//
//	info -noprompt <paths>
func NewInfo(ctx *Context, workingDir string, paths []string) (*Command[[]tfvc.ItemInfo], error) {
	if err := requiredItems(KindInfo, "paths", paths); err != nil {
		return nil, err
	}
	return newCommand(KindInfo, ctx, func(b *ArgumentBuilder) {
		b.SetWorkingDirectory(workingDir)
		b.Add(paths...)
	}, decodeInfo), nil
}

const (
	localInfoSection  = "Local information:"
	serverInfoSection = "Server information:"
	localKeyPrefix    = "local "
	serverKeyPrefix   = "server "
)

// decodeInfo reads key:value blocks, one record per "Local information:"
// section:
//
//	Local information:
//	Local path:  /path/to/build.xml
//	Server path: $/TFVC_1/build.xml
//	Changeset:   18
//	Server information:
//	Changeset:     19
//	Lock:          none
func decodeInfo(stdout, stderr string) ([]tfvc.ItemInfo, error) {
	if err := failIfStderr(stderr); err != nil {
		return nil, err
	}
	infos := []tfvc.ItemInfo{}
	var fields map[string]string
	prefix := ""
	flush := func() {
		if len(fields) > 0 {
			infos = append(infos, itemInfo(fields))
		}
		fields = map[string]string{}
	}
	flush()

	for _, line := range splitLines(stdout) {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case strings.EqualFold(trimmed, localInfoSection):
			flush()
			prefix = localKeyPrefix
		case strings.EqualFold(trimmed, serverInfoSection):
			if hasServerFields(fields) {
				// an item that only exists on the server
				flush()
			}
			prefix = serverKeyPrefix
		default:
			key, value, ok := splitKeyValue(trimmed)
			if !ok {
				logSkipped(KindInfo, line)
				continue
			}
			fields[prefix+strings.ToLower(key)] = value
		}
	}
	flush()
	return infos, nil
}

func hasServerFields(fields map[string]string) bool {
	for k := range fields {
		if strings.HasPrefix(k, serverKeyPrefix) {
			return true
		}
	}
	return false
}

func itemInfo(f map[string]string) tfvc.ItemInfo {
	info := tfvc.ItemInfo{
		LocalItem:     f["local local path"],
		ServerItem:    f["local server path"],
		LocalVersion:  f["local changeset"],
		ChangeType:    f["local change"],
		Type:          f["local type"],
		ServerVersion: f["server changeset"],
		DeletionID:    f["server deletion id"],
		Lock:          f["server lock"],
		LockOwner:     f["server lock owner"],
		LastModified:  f["server last modified"],
		FileType:      f["server file type"],
		FileSize:      f["server size"],
	}
	if info.ServerItem == "" {
		info.ServerItem = f["server server path"]
	}
	if info.Type == "" {
		info.Type = f["server type"]
	}
	return info
}
