package tfvc

import (
	"fmt"
	"strings"
)

// ChangeType is one flag of a pending or committed change, as tf prints it.
type ChangeType string

const (
	ChangeAdd          ChangeType = "add"
	ChangeBranch       ChangeType = "branch"
	ChangeDelete       ChangeType = "delete"
	ChangeEdit         ChangeType = "edit"
	ChangeEncoding     ChangeType = "encoding"
	ChangeLock         ChangeType = "lock"
	ChangeMerge        ChangeType = "merge"
	ChangeRename       ChangeType = "rename"
	ChangeSourceRename ChangeType = "source rename"
	ChangeUndelete     ChangeType = "undelete"
	ChangeRollback     ChangeType = "rollback"
	ChangeUnknown      ChangeType = "unknown"
)

var knownChangeTypes = map[string]ChangeType{
	"add":           ChangeAdd,
	"branch":        ChangeBranch,
	"delete":        ChangeDelete,
	"edit":          ChangeEdit,
	"encoding":      ChangeEncoding,
	"lock":          ChangeLock,
	"merge":         ChangeMerge,
	"rename":        ChangeRename,
	"source rename": ChangeSourceRename,
	"source_rename": ChangeSourceRename,
	"undelete":      ChangeUndelete,
	"rollback":      ChangeRollback,
}

// ParseChangeTypes splits a comma separated list such as "merge, edit".
// Unrecognised names map to ChangeUnknown so that no flag is silently dropped.
func ParseChangeTypes(s string) []ChangeType {
	var types []ChangeType
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if t, ok := knownChangeTypes[name]; ok {
			types = append(types, t)
		} else {
			types = append(types, ChangeUnknown)
		}
	}
	return types
}

// HasChangeType reports whether t is among types.
func HasChangeType(types []ChangeType, t ChangeType) bool {
	for _, ct := range types {
		if ct == t {
			return true
		}
	}
	return false
}

// JoinChangeTypes renders types the way tf prints them.
func JoinChangeTypes(types []ChangeType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// LockLevel is the lock a change holds on an item.
type LockLevel string

const (
	LockNone     LockLevel = "none"
	LockCheckin  LockLevel = "checkin"
	LockCheckout LockLevel = "checkout"
)

// ParseLockLevel ignores case and dashes, so "Check-In" is LockCheckin. An
// empty string means no lock.
func ParseLockLevel(s string) (LockLevel, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "") {
	case "", "none":
		return LockNone, nil
	case "checkin":
		return LockCheckin, nil
	case "checkout":
		return LockCheckout, nil
	default:
		return "", fmt.Errorf("unknown lock level %q", s)
	}
}

// PendingChange is one entry of `tf status` or one item of a changeset.
type PendingChange struct {
	ServerItem  string       `json:"serverItem" yaml:"serverItem"`
	LocalItem   string       `json:"localItem,omitempty" yaml:"localItem,omitempty"`
	Version     string       `json:"version,omitempty" yaml:"version,omitempty"`
	Owner       string       `json:"owner,omitempty" yaml:"owner,omitempty"`
	Date        string       `json:"date,omitempty" yaml:"date,omitempty"`
	Lock        string       `json:"lock,omitempty" yaml:"lock,omitempty"`
	ChangeTypes []ChangeType `json:"changeTypes" yaml:"changeTypes"`
	Workspace   string       `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	Computer    string       `json:"computer,omitempty" yaml:"computer,omitempty"`
	IsCandidate bool         `json:"isCandidate,omitempty" yaml:"isCandidate,omitempty"`
	// SourceItem is only set for renames and branches.
	SourceItem string `json:"sourceItem,omitempty" yaml:"sourceItem,omitempty"`
}

// ChangeSet is one entry of `tf history`.
type ChangeSet struct {
	ID        string          `json:"id" yaml:"id"`
	Owner     string          `json:"owner" yaml:"owner"`
	Committer string          `json:"committer" yaml:"committer"`
	Date      string          `json:"date" yaml:"date"`
	Comment   string          `json:"comment,omitempty" yaml:"comment,omitempty"`
	Changes   []PendingChange `json:"changes" yaml:"changes"`
}
