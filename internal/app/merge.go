package app

import (
	"fmt"

	"github.com/joelmoss/tfx/internal/tf"
	"github.com/joelmoss/tfx/internal/tfvc"
	"github.com/joelmoss/tfx/internal/ui"
)

// Merge pends a merge from source into target.
func (s *Service) Merge(dir, source, target string, opts tf.MergeOptions) error {
	cmd, err := tf.NewMerge(s.context(), dir, source, target, opts)
	if err != nil {
		return err
	}
	result, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.render(result, func() {
		if result.NoChangesToMerge() {
			s.say("There are no changes to merge.")
			return
		}
		var rows [][]string
		for _, m := range result.Mappings {
			types := ui.ChangeTypes(m.ChangeTypes)
			if m.IsConflict {
				types = ui.Red("conflict: " + tfvc.JoinChangeTypes(m.ChangeTypes))
			}
			rows = append(rows, []string{types, m.SourceItem + ui.Dim(";"+m.SourceVersion.String()), m.TargetItem})
		}
		s.table([]string{"Change", "Source", "Target"}, rows)
		if result.ConflictsExist() {
			s.say("")
			s.sayColor("Conflicts exist. Run `tfx resolve` to resolve them.", ui.Red)
		}
	})
}

// Branches lists the branches related to item.
func (s *Service) Branches(dir, item string) error {
	cmd, err := tf.NewBranches(s.context(), dir, item)
	if err != nil {
		return err
	}
	branches, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.render(branches, func() {
		if len(branches) == 0 {
			s.say("No related branches found.")
			return
		}
		for _, b := range branches {
			s.say(b)
		}
	})
}

// Branch creates newItem as a branch of existingItem.
func (s *Service) Branch(dir, existingItem, newItem string, opts tf.BranchOptions) error {
	cmd, err := tf.NewCreateBranch(s.context(), dir, existingItem, newItem, opts)
	if err != nil {
		return err
	}
	changeset, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.render(map[string]string{"branch": newItem, "changeset": changeset}, func() {
		if changeset != "" {
			s.sayColor(fmt.Sprintf("Branched %s to %s in changeset #%s.", existingItem, newItem, changeset), ui.Green)
			return
		}
		s.sayColor(fmt.Sprintf("Pended branch of %s to %s.", existingItem, newItem), ui.Green)
	})
}

func (s *Service) findConflicts(dir, root string, recursive bool) (tfvc.ConflictResults, error) {
	cmd, err := tf.NewFindConflicts(s.context(), dir, root, recursive)
	if err != nil {
		return tfvc.ConflictResults{}, err
	}
	return run(s, cmd)
}

// Conflicts lists the conflicts under root without resolving them.
func (s *Service) Conflicts(dir, root string, recursive bool) error {
	result, err := s.findConflicts(dir, root, recursive)
	if err != nil {
		return err
	}
	return s.render(result, func() {
		if len(result.All()) == 0 {
			s.say("There are no conflicts to resolve.")
			return
		}
		ui.PrintList(s.output(), "Content changed", result.ContentConflicts, ui.Red)
		ui.PrintList(s.output(), "Name changed", result.RenameConflicts, ui.Red)
		ui.PrintList(s.output(), "Name and content changed", result.BothConflicts, ui.Red)
	})
}

// Resolve resolves the conflicts of paths. Without paths the conflicts under
// dir are offered for selection.
func (s *Service) Resolve(dir string, paths []string, resolution tfvc.ResolveType) error {
	if len(paths) == 0 {
		result, err := s.findConflicts(dir, dir, true)
		if err != nil {
			return err
		}
		conflicts := result.All()
		if len(conflicts) == 0 {
			s.say("There are no conflicts to resolve.")
			return nil
		}
		selected, err := s.PromptFn(fmt.Sprintf("Select conflicts to resolve with %s", resolution), conflicts)
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			s.sayColor("Nothing selected.", ui.Yellow)
			return nil
		}
		paths = selected
	}

	cmd, err := tf.NewResolve(s.context(), paths, resolution)
	if err != nil {
		return err
	}
	resolved, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.renderItems("Resolved as "+string(resolution), resolved, ui.Green)
}

// Lock sets or clears the lock on items.
func (s *Service) Lock(dir string, level tfvc.LockLevel, recursive bool, items []string) error {
	cmd, err := tf.NewLock(s.context(), dir, level, recursive, items)
	if err != nil {
		return err
	}
	if _, err := run(s, cmd); err != nil {
		return err
	}
	if level == tfvc.LockNone || level == "" {
		s.done(fmt.Sprintf("Unlocked %d item(s).", len(items)))
	} else {
		s.done(fmt.Sprintf("Locked %d item(s) for %s.", len(items), level))
	}
	return nil
}

// Print downloads one version of item to destination.
func (s *Service) Print(item string, version *tfvc.VersionSpec, destination string) error {
	cmd, err := tf.NewPrint(s.context(), item, version, destination)
	if err != nil {
		return err
	}
	path, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.render(map[string]string{"item": item, "path": path}, func() {
		s.sayColor(fmt.Sprintf("Downloaded %s to %s.", item, ui.DisplayPath(path)), ui.Green)
	})
}
