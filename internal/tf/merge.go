package tf

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joelmoss/tfx/internal/errs"
	"github.com/joelmoss/tfx/internal/tfvc"
)

const (
	nothingToMergeMessage = "There are no changes to merge."
	mergeChangesSep       = ":"
	mergeFileSep          = "->"
	mergeVersionSep       = ";"
)

// MergeOptions control `tf merge`. A nil Version merges everything.
type MergeOptions struct {
	Version   *tfvc.VersionSpec
	Recursive bool
}

// NewMerge pends a merge from source into target.
//
//	merge -noprompt -format:detailed [-version:v] [-recursive] <source> <target>
func NewMerge(ctx *Context, workingDir, source, target string, opts MergeOptions) (*Command[tfvc.MergeResults], error) {
	if err := required(KindMerge, "source", source); err != nil {
		return nil, err
	}
	if err := required(KindMerge, "target", target); err != nil {
		return nil, err
	}
	return newCommand(KindMerge, ctx, func(b *ArgumentBuilder) {
		b.SetWorkingDirectory(workingDir)
		b.AddSwitchValue("format", "detailed")
		if opts.Version != nil {
			b.AddSwitchValue("version", opts.Version.String())
		}
		if opts.Recursive {
			b.AddSwitch("recursive")
		}
		b.Add(source, target)
	}, decodeMerge), nil
}

// decodeMerge reads one mapping per line from stderr conflicts and stdout:
//
//	Conflict (merge, edit): $/p/src/A.java;C222~C222 -> $/p/branch/A.java;C222
//	merge, edit: $/p/src/B.java;C222~C222 -> $/p/branch/B.java;C213
//	merge, branch: $/p/src/C.java;C215 -> $/p/branch/C.java
func decodeMerge(stdout, stderr string) (tfvc.MergeResults, error) {
	results := tfvc.MergeResults{Mappings: []tfvc.MergeMapping{}}
	if strings.Contains(stdout, nothingToMergeMessage) {
		return results, nil
	}

	var lines []string
	if isMergeConflictOutput(stderr) {
		lines = append(lines, splitLines(stderr)...)
	} else if err := failIfStderr(stderr); err != nil {
		return results, err
	}
	lines = append(lines, splitLines(stdout)...)

	for _, line := range lines {
		changesEnd := strings.Index(line, mergeChangesSep)
		sourceEnd := strings.Index(line, mergeFileSep)
		if changesEnd <= 0 || sourceEnd <= changesEnd {
			if strings.TrimSpace(line) != "" {
				slog.Warn("unknown response from merge", "line", line)
			}
			continue
		}
		m, err := parseMergeLine(line, changesEnd, sourceEnd)
		if err != nil {
			return results, &errs.DecodeError{Line: line, Err: err}
		}
		results.Mappings = append(results.Mappings, m)
	}
	return results, nil
}

func parseMergeLine(line string, changesEnd, sourceEnd int) (tfvc.MergeMapping, error) {
	changeTypes := line[:changesEnd]
	conflict := false
	if i := strings.Index(line, mergeConflictPrefix); i >= 0 && i < changesEnd {
		// "Conflict (merge, edit)": the types sit inside the parentheses
		changeTypes = strings.TrimSuffix(line[i+len(mergeConflictPrefix):changesEnd], ")")
		conflict = true
	}

	sourceItem, sourceVersion, _ := strings.Cut(strings.TrimSpace(line[changesEnd+1:sourceEnd]), mergeVersionSep)
	targetItem, targetVersion, _ := strings.Cut(strings.TrimSpace(line[sourceEnd+len(mergeFileSep):]), mergeVersionSep)

	versions, err := tfvc.ParseVersionRange(sourceVersion)
	if err != nil {
		return tfvc.MergeMapping{}, fmt.Errorf("source %s: %w", sourceItem, err)
	}
	return tfvc.MergeMapping{
		SourceItem:    sourceItem,
		SourceVersion: versions,
		TargetItem:    targetItem,
		TargetVersion: tfvc.ParseVersionSpec(targetVersion),
		ChangeTypes:   tfvc.ParseChangeTypes(changeTypes),
		IsConflict:    conflict,
	}, nil
}

// branchMarker flags the queried item in the branch tree.
const branchMarker = ">>"

// NewBranches lists the branches related to item, excluding item itself.
//
//	branches -noprompt <item>
func NewBranches(ctx *Context, workingDir, item string) (*Command[[]string], error) {
	if err := required(KindBranches, "item", item); err != nil {
		return nil, err
	}
	return newCommand(KindBranches, ctx, func(b *ArgumentBuilder) {
		b.SetWorkingDirectory(workingDir)
		b.Add(item)
	}, decodeBranches), nil
}

// decodeBranches reads the branch tree:
//
//	$/proj/main
//	>>  $/proj/dev
//	        $/proj/feature
func decodeBranches(stdout, stderr string) ([]string, error) {
	if err := failIfStderr(stderr); err != nil {
		return nil, err
	}
	branches := []string{}
	for _, line := range splitLines(stdout) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, branchMarker) {
			continue
		}
		if strings.HasPrefix(trimmed, "$/") {
			branches = append(branches, trimmed)
		}
	}
	return branches, nil
}

// BranchOptions control `tf branch`.
type BranchOptions struct {
	// Checkin commits the branch immediately instead of pending it.
	Checkin   bool
	Comment   string
	Author    string
	Recursive bool
}

// NewCreateBranch branches existingItem into newItem. With Checkin the
// result is the changeset number, otherwise it is empty.
//
//	branch -noprompt [-checkin] [-comment:c] [-author:a] [-recursive] <existing> <new>
func NewCreateBranch(ctx *Context, workingDir, existingItem, newItem string, opts BranchOptions) (*Command[string], error) {
	if err := required(KindCreateBranch, "existing item", existingItem); err != nil {
		return nil, err
	}
	if err := required(KindCreateBranch, "new item", newItem); err != nil {
		return nil, err
	}
	return newCommand(KindCreateBranch, ctx, func(b *ArgumentBuilder) {
		b.SetWorkingDirectory(workingDir)
		if opts.Checkin {
			b.AddSwitch("checkin")
		}
		if opts.Comment != "" {
			b.AddSwitchValue("comment", opts.Comment)
		}
		if opts.Author != "" {
			b.AddSwitchValue("author", opts.Author)
		}
		if opts.Recursive {
			b.AddSwitch("recursive")
		}
		b.Add(existingItem, newItem)
	}, func(stdout, stderr string) (string, error) {
		if err := failIfStderr(stderr); err != nil {
			return "", err
		}
		return changesetNumber(stdout), nil
	}), nil
}
