package tfvc

import (
	"fmt"
	"strconv"
	"strings"
)

// MergeMapping is one line of `tf merge -format:detailed`.
type MergeMapping struct {
	SourceItem    string       `json:"sourceItem" yaml:"sourceItem"`
	SourceVersion VersionRange `json:"sourceVersion" yaml:"sourceVersion"`
	TargetItem    string       `json:"targetItem" yaml:"targetItem"`
	TargetVersion VersionSpec  `json:"targetVersion" yaml:"targetVersion"`
	ChangeTypes   []ChangeType `json:"changeTypes" yaml:"changeTypes"`
	// IsConflict is only set for lines of the form "Conflict (...): ...".
	IsConflict bool `json:"isConflict,omitempty" yaml:"isConflict,omitempty"`
}

type MergeResults struct {
	Mappings []MergeMapping `json:"mappings" yaml:"mappings"`
}

// ConflictsExist reports whether any mapping is a conflict.
func (r MergeResults) ConflictsExist() bool {
	for _, m := range r.Mappings {
		if m.IsConflict {
			return true
		}
	}
	return false
}

// NoChangesToMerge reports whether merge found nothing to do.
func (r MergeResults) NoChangesToMerge() bool {
	return len(r.Mappings) == 0
}

// ConflictResults splits conflicting item paths by kind. The lists are
// disjoint.
type ConflictResults struct {
	ContentConflicts []string `json:"contentConflicts" yaml:"contentConflicts"`
	RenameConflicts  []string `json:"renameConflicts" yaml:"renameConflicts"`
	BothConflicts    []string `json:"bothConflicts" yaml:"bothConflicts"`
}

// All returns every conflicting path.
func (r ConflictResults) All() []string {
	all := make([]string, 0, len(r.ContentConflicts)+len(r.RenameConflicts)+len(r.BothConflicts))
	all = append(all, r.ContentConflicts...)
	all = append(all, r.RenameConflicts...)
	return append(all, r.BothConflicts...)
}

// SyncException is one problem reported by get for a single item.
type SyncException struct {
	Message   string `json:"message" yaml:"message"`
	IsWarning bool   `json:"isWarning,omitempty" yaml:"isWarning,omitempty"`
}

type SyncResults struct {
	ConflictsExist bool            `json:"conflictsExist" yaml:"conflictsExist"`
	NewFiles       []string        `json:"newFiles" yaml:"newFiles"`
	UpdatedFiles   []string        `json:"updatedFiles" yaml:"updatedFiles"`
	DeletedFiles   []string        `json:"deletedFiles" yaml:"deletedFiles"`
	Exceptions     []SyncException `json:"exceptions" yaml:"exceptions"`
}

// ItemInfo is one record of `tf info`.
type ItemInfo struct {
	ServerItem    string `json:"serverItem" yaml:"serverItem"`
	LocalItem     string `json:"localItem,omitempty" yaml:"localItem,omitempty"`
	LocalVersion  string `json:"localVersion,omitempty" yaml:"localVersion,omitempty"`
	ServerVersion string `json:"serverVersion,omitempty" yaml:"serverVersion,omitempty"`
	ChangeType    string `json:"changeType,omitempty" yaml:"changeType,omitempty"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	Lock          string `json:"lock,omitempty" yaml:"lock,omitempty"`
	LockOwner     string `json:"lockOwner,omitempty" yaml:"lockOwner,omitempty"`
	DeletionID    string `json:"deletionId,omitempty" yaml:"deletionId,omitempty"`
	LastModified  string `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
	FileType      string `json:"fileType,omitempty" yaml:"fileType,omitempty"`
	FileSize      string `json:"fileSize,omitempty" yaml:"fileSize,omitempty"`
}

// LabelItem is one item version captured by a label.
type LabelItem struct {
	ServerItem string `json:"serverItem" yaml:"serverItem"`
	Changeset  string `json:"changeset" yaml:"changeset"`
}

type Label struct {
	Name    string      `json:"name" yaml:"name"`
	Scope   string      `json:"scope" yaml:"scope"`
	User    string      `json:"user" yaml:"user"`
	Date    string      `json:"date" yaml:"date"`
	Comment string      `json:"comment,omitempty" yaml:"comment,omitempty"`
	Items   []LabelItem `json:"items" yaml:"items"`
}

// CheckoutResult carries per-item outcomes; not-found items and error lines
// do not fail the whole checkout.
type CheckoutResult struct {
	CheckedOut []string `json:"checkedOut" yaml:"checkedOut"`
	NotFound   []string `json:"notFound" yaml:"notFound"`
	Errors     []string `json:"errors" yaml:"errors"`
}

type DeleteResult struct {
	Deleted  []string `json:"deleted" yaml:"deleted"`
	NotFound []string `json:"notFound" yaml:"notFound"`
	Errors   []string `json:"errors" yaml:"errors"`
}

// ResolveType is an automatic conflict resolution accepted by `tf resolve`.
type ResolveType string

const (
	AcceptYours       ResolveType = "AcceptYours"
	AcceptTheirs      ResolveType = "AcceptTheirs"
	AcceptMerge       ResolveType = "AcceptMerge"
	AcceptYoursRename ResolveType = "AcceptYoursRenameTheirs"
	OverwriteLocal    ResolveType = "OverwriteLocal"
)

// ParseResolveType matches case-insensitively.
func ParseResolveType(s string) (ResolveType, error) {
	for _, t := range []ResolveType{AcceptYours, AcceptTheirs, AcceptMerge, AcceptYoursRename, OverwriteLocal} {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown resolve type %q", s)
}

// LabelStatus tells whether `tf label` created a new label or updated one.
type LabelStatus string

const (
	LabelCreated LabelStatus = "Created"
	LabelUpdated LabelStatus = "Updated"
)

// ToolVersion is the version reported by the command line client, such as
// 14.0.3.201603291047.
type ToolVersion struct {
	Major    int    `json:"major" yaml:"major"`
	Minor    int    `json:"minor" yaml:"minor"`
	Revision int    `json:"revision" yaml:"revision"`
	Build    string `json:"build,omitempty" yaml:"build,omitempty"`
}

// MinimumToolVersion is the oldest client whose output formats are understood.
var MinimumToolVersion = ToolVersion{Major: 14, Minor: 0, Revision: 3}

// ParseToolVersion reads "14.0.3.201603291047"; missing parts default to 0.
func ParseToolVersion(s string) (ToolVersion, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ".", 4)
	nums := [3]int{}
	for i := 0; i < 3 && i < len(parts); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return ToolVersion{}, fmt.Errorf("invalid tool version %q", s)
		}
		nums[i] = n
	}
	v := ToolVersion{Major: nums[0], Minor: nums[1], Revision: nums[2]}
	if len(parts) == 4 {
		v.Build = parts[3]
	}
	return v, nil
}

// Compare returns -1, 0 or 1. The build part is not compared.
func (v ToolVersion) Compare(o ToolVersion) int {
	for _, d := range [3]int{v.Major - o.Major, v.Minor - o.Minor, v.Revision - o.Revision} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return 0
}

func (v ToolVersion) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
	if v.Build != "" {
		s += "." + v.Build
	}
	return s
}
