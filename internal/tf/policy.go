package tf

// Kind identifies one tf command variant. The set is closed; every Kind has
// an entry in the variants table.
type Kind int

const (
	KindWorkspaces Kind = iota
	KindDetailedWorkspace
	KindFindWorkspace
	KindCreateWorkspace
	KindUpdateWorkspace
	KindDeleteWorkspace
	KindUpdateMapping
	KindLocalPath
	KindAdd
	KindUndo
	KindCheckout
	KindDelete
	KindRename
	KindStatus
	KindInfo
	KindGet
	KindCheckin
	KindMerge
	KindBranches
	KindCreateBranch
	KindFindConflicts
	KindResolve
	KindLabels
	KindCreateLabel
	KindHistory
	KindLock
	KindPrint
	KindVersion

	kindCount
)

// ExitPolicy remaps a raw exit code before it is checked.
type ExitPolicy func(code int) int

func identity(code int) int { return code }

// remap treats one partial-success exit code as success.
func remap(from int) ExitPolicy {
	return func(code int) int {
		if code == from {
			return 0
		}
		return code
	}
}

type variant struct {
	name       string
	subcommand string
	policy     ExitPolicy
	// checkExit is false when the decoded result itself separates failures
	// from successes.
	checkExit bool
}

var variants = [kindCount]variant{
	KindWorkspaces:        {"workspaces", "workspaces", identity, true},
	KindDetailedWorkspace: {"detailed-workspace", "workspaces", identity, true},
	KindFindWorkspace:     {"find-workspace", "workfold", identity, true},
	KindCreateWorkspace:   {"create-workspace", "workspace", identity, true},
	KindUpdateWorkspace:   {"update-workspace", "workspace", identity, true},
	KindDeleteWorkspace:   {"delete-workspace", "workspace", remap(100), true},
	KindUpdateMapping:     {"update-mapping", "workfold", identity, true},
	KindLocalPath:         {"local-path", "workfold", identity, true},
	KindAdd:               {"add", "add", identity, true},
	KindUndo:              {"undo", "undo", identity, true},
	KindCheckout:          {"checkout", "checkout", identity, false},
	KindDelete:            {"delete", "delete", identity, false},
	KindRename:            {"rename", "rename", identity, true},
	KindStatus:            {"status", "status", identity, true},
	KindInfo:              {"info", "info", identity, true},
	KindGet:               {"get", "get", identity, true},
	KindCheckin:           {"checkin", "checkin", identity, true},
	KindMerge:             {"merge", "merge", remap(1), true},
	KindBranches:          {"branches", "branches", identity, true},
	KindCreateBranch:      {"create-branch", "branch", identity, true},
	KindFindConflicts:     {"find-conflicts", "resolve", remap(1), true},
	KindResolve:           {"resolve", "resolve", identity, true},
	KindLabels:            {"get-labels", "labels", remap(100), true},
	KindCreateLabel:       {"create-label", "label", identity, true},
	KindHistory:           {"history", "history", identity, true},
	KindLock:              {"lock", "lock", remap(1), true},
	KindPrint:             {"print", "print", identity, true},
	KindVersion:           {"version", "add", identity, true},
}

// Kinds returns every command variant.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return variants[k].name
}

// Subcommand is the tf subcommand the variant runs.
func (k Kind) Subcommand() string {
	return variants[k].subcommand
}

// RemapExitCode applies the exit code policy of the variant.
func (k Kind) RemapExitCode(code int) int {
	return variants[k].policy(code)
}

// ChecksExitCode reports whether a non-zero remapped exit code fails the
// command by default.
func (k Kind) ChecksExitCode() bool {
	return variants[k].checkExit
}
