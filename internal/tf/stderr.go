package tf

import (
	"regexp"
	"strings"

	"github.com/joelmoss/tfx/internal/errs"
)

// Each function here matches one piece of tf's English diagnostics. They are
// kept small so a change in tf's wording is a one-line fix.

const (
	mergeConflictPrefix   = "Conflict ("
	cannotUnlockPrefix    = "TF14090: Cannot unlock"
	cannotUnlockSuffix    = "It is not currently locked in your workspace."
	noPendingChangePrefix = "No pending changes were found for "
	checkinLinePrefix     = "Checking in"
	checkinNothingPrefix  = "No files checked in"
	syncConflictMarker    = "you have a conflicting"
	syncWarningPrefix     = "Warning"
	authServerPrefix      = "An error occurred: Access denied connecting to TFS server"
	authFederatedText     = "Federated authentication to this server requires a username and password."
	workspaceUnknownText  = "The workspace could not be determined from any argument paths or the current working directory."
	workspaceNotFoundText = "could not be found"
)

var (
	itemNotFoundPattern = regexp.MustCompile(`^(?:.+?: )?(?:TF\d+: )?The item (.+) could not be found in your workspace, or you do not have permission to access it\.?$`)
	dollarInPathPattern = regexp.MustCompile(`TF10122: The path '(.*?)' contains a '\$' at the beginning of a path component\. Remove the '\$' and try again\.`)
	changesetPattern    = regexp.MustCompile(`#(\d+)`)
)

// isMergeConflictOutput reports whether merge stderr carries conflict lines
// rather than an error.
func isMergeConflictOutput(stderr string) bool {
	return hasPrefixFold(stderr, mergeConflictPrefix)
}

// isNotLockedLine matches the warning tf prints when unlocking an item that
// is not locked.
func isNotLockedLine(line string) bool {
	return strings.HasPrefix(line, cannotUnlockPrefix) && strings.HasSuffix(line, cannotUnlockSuffix)
}

// isNothingToUndoLine matches the warning for undoing an item without
// pending changes.
func isNothingToUndoLine(line string) bool {
	return strings.HasPrefix(line, noPendingChangePrefix)
}

// isExpectedCheckinLine is true for blank lines, folder lines and the
// progress lines checkin prints for each file.
func isExpectedCheckinLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" ||
		isFilePath(trimmed) ||
		hasPrefixFold(trimmed, checkinLinePrefix) ||
		hasPrefixFold(trimmed, checkinNothingPrefix)
}

// isSyncConflictLine matches get's per-item conflict message.
func isSyncConflictLine(line string) bool {
	return strings.Contains(line, syncConflictMarker)
}

func isSyncWarningLine(line string) bool {
	return strings.HasPrefix(line, syncWarningPrefix)
}

// notFoundItem returns the item named by an "item not found" line.
func notFoundItem(line string) (string, bool) {
	m := itemNotFoundPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// workfoldError maps the failures of workfold that callers handle
// differently from a generic tool error.
func workfoldError(stderr string) error {
	switch {
	case strings.HasPrefix(stderr, authServerPrefix), strings.Contains(stderr, authFederatedText):
		return errs.ErrAuthentication
	case strings.Contains(stderr, workspaceUnknownText):
		return errs.ErrWorkspaceNotDetermined
	}
	return failIfStderr(stderr)
}

// isWorkspaceNotFound matches delete-workspace stderr for a workspace that
// does not exist, which counts as success.
func isWorkspaceNotFound(stderr string) bool {
	return strings.Contains(stderr, workspaceNotFoundText)
}

// dollarInPath reports TF10122 for a server path with a '$' component.
func dollarInPath(stderr string) error {
	m := dollarInPathPattern.FindStringSubmatch(stderr)
	if m == nil || m[1] == "" {
		return nil
	}
	return &errs.DollarInPathError{ServerPath: m[1]}
}

// changesetNumber finds "#123" in checkin and branch output.
func changesetNumber(stdout string) string {
	m := changesetPattern.FindStringSubmatch(stdout)
	if m == nil {
		return ""
	}
	return m[1]
}

// conflictKind is what changed on both sides of a conflict.
type conflictKind int

const (
	noConflict conflictKind = iota
	contentConflict
	renameConflict
	bothConflict
)

const (
	noConflictsText      = "There are no conflicts to resolve."
	bothChangedText      = "The item name and content have changed"
	nameChangedText      = "The item name has changed"
	contentChangedText   = "The item content has changed"
	newerVersionText     = "A newer version exists on the server"
	conflictItemSep      = ": "
	resolvedLinePrefix   = "Resolved "
	resolvedLineInfix    = " as "
	labelCreatedPrefix   = "Created label"
	labelUpdatedPrefix   = "Updated label"
	noLabelsFoundMessage = "No labels found."
)

func isNoConflictsLine(line string) bool {
	return strings.Contains(line, noConflictsText)
}

// parseConflictLine splits a line of `resolve -preview` such as
// "/ws/a.txt: The item content has changed" into the item and its kind.
func parseConflictLine(line string) (string, conflictKind) {
	i := strings.LastIndex(line, conflictItemSep)
	if i <= 0 {
		return "", noConflict
	}
	item, message := strings.TrimSpace(line[:i]), line[i+len(conflictItemSep):]
	switch {
	case strings.Contains(message, bothChangedText):
		return item, bothConflict
	case strings.Contains(message, nameChangedText):
		return item, renameConflict
	case strings.Contains(message, contentChangedText), strings.Contains(message, newerVersionText):
		return item, contentConflict
	}
	return "", noConflict
}

// resolvedItem reads "Resolved /ws/a.txt as AcceptYours".
func resolvedItem(line string) (string, bool) {
	if !strings.HasPrefix(line, resolvedLinePrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(line, resolvedLinePrefix)
	i := strings.LastIndex(rest, resolvedLineInfix)
	if i <= 0 {
		return "", false
	}
	return rest[:i], true
}

// isNoLabelsOutput matches the text labels prints instead of an empty
// document.
func isNoLabelsOutput(stdout string) bool {
	return strings.Contains(strings.ToLower(stdout), strings.ToLower(noLabelsFoundMessage))
}
