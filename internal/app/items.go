package app

import (
	"fmt"
	"strings"

	"github.com/joelmoss/tfx/internal/tf"
	"github.com/joelmoss/tfx/internal/tfvc"
	"github.com/joelmoss/tfx/internal/ui"
)

// Status lists the pending changes under paths, then the candidate changes
// tf detected but has not pended.
func (s *Service) Status(paths []string) error {
	changes, err := run(s, tf.NewStatus(s.context(), paths...))
	if err != nil {
		return err
	}
	return s.render(changes, func() {
		if len(changes) == 0 {
			s.say("There are no pending changes.")
			return
		}
		var pending, candidates [][]string
		for _, c := range changes {
			local := c.LocalItem
			if local == "" {
				local = c.ServerItem
			}
			row := []string{ui.ChangeTypes(c.ChangeTypes), ui.DisplayPath(local)}
			if c.Lock != "" && c.Lock != string(tfvc.LockNone) {
				row = append(row, ui.Dim("locked: "+c.Lock))
			}
			if c.IsCandidate {
				candidates = append(candidates, row)
			} else {
				pending = append(pending, row)
			}
		}
		s.table(nil, pending)
		if len(candidates) > 0 {
			s.say("")
			s.say(ui.Bold("Detected changes"))
			ui.PrintTable(s.output(), nil, candidates, 2)
		}
	})
}

// Info prints the local and server details of items.
func (s *Service) Info(dir string, paths []string) error {
	cmd, err := tf.NewInfo(s.context(), dir, paths)
	if err != nil {
		return err
	}
	infos, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.render(infos, func() {
		for i, info := range infos {
			if i > 0 {
				s.say("")
			}
			rows := [][]string{{ui.Dim("Server item"), ui.Bold(info.ServerItem)}}
			for _, f := range [][2]string{
				{"Local item", ui.DisplayPath(info.LocalItem)},
				{"Local version", info.LocalVersion},
				{"Server version", info.ServerVersion},
				{"Change", info.ChangeType},
				{"Type", info.Type},
				{"Lock", info.Lock},
				{"Lock owner", info.LockOwner},
				{"Last modified", info.LastModified},
				{"File type", info.FileType},
				{"Size", info.FileSize},
			} {
				if f[1] != "" {
					rows = append(rows, []string{ui.Dim(f[0]), f[1]})
				}
			}
			s.table(nil, rows)
		}
	})
}

// Add pends the addition of paths.
func (s *Service) Add(paths []string) error {
	cmd, err := tf.NewAdd(s.context(), paths)
	if err != nil {
		return err
	}
	added, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.renderItems("Added", added, ui.Green)
}

// Undo reverts the pending changes of paths.
func (s *Service) Undo(paths []string, recursive bool) error {
	cmd, err := tf.NewUndo(s.context(), paths, recursive)
	if err != nil {
		return err
	}
	undone, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.renderItems("Undone", undone, ui.Plain)
}

// Checkout pends an edit of paths. Items that do not exist are reported
// but do not fail the command.
func (s *Service) Checkout(paths []string, recursive bool) error {
	cmd, err := tf.NewCheckout(s.context(), paths, recursive)
	if err != nil {
		return err
	}
	result, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.render(result, func() {
		ui.PrintList(s.output(), "Checked out", result.CheckedOut, ui.Yellow)
		ui.PrintList(s.output(), "Not found", result.NotFound, ui.Dim)
		ui.PrintList(s.output(), "Errors", result.Errors, ui.Red)
	})
}

// Delete pends the deletion of paths.
func (s *Service) Delete(dir string, paths []string, recursive bool) error {
	cmd, err := tf.NewDelete(s.context(), dir, paths, recursive)
	if err != nil {
		return err
	}
	result, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.render(result, func() {
		ui.PrintList(s.output(), "Deleted", result.Deleted, ui.Red)
		ui.PrintList(s.output(), "Not found", result.NotFound, ui.Dim)
		ui.PrintList(s.output(), "Errors", result.Errors, ui.Red)
	})
}

// Rename pends a rename or move.
func (s *Service) Rename(oldPath, newPath string) error {
	cmd, err := tf.NewRename(s.context(), oldPath, newPath)
	if err != nil {
		return err
	}
	if _, err := run(s, cmd); err != nil {
		return err
	}
	s.done(fmt.Sprintf("Renamed %s to %s.", oldPath, newPath))
	return nil
}

// Checkin commits the pending changes of paths.
func (s *Service) Checkin(paths []string, comment string, workItems []int) error {
	cmd, err := tf.NewCheckin(s.context(), paths, comment, workItems...)
	if err != nil {
		return err
	}
	changeset, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.render(map[string]string{"changeset": changeset}, func() {
		s.sayColor(fmt.Sprintf("Changeset #%s checked in.", changeset), ui.Green)
	})
}

// Get brings paths up to date with the server.
func (s *Service) Get(paths []string, opts tf.SyncOptions) error {
	cmd, err := tf.NewSync(s.context(), paths, opts)
	if err != nil {
		return err
	}
	result, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.render(result, func() {
		if len(result.NewFiles)+len(result.UpdatedFiles)+len(result.DeletedFiles)+len(result.Exceptions) == 0 {
			s.say("All files up to date.")
			return
		}
		ui.PrintList(s.output(), "New", result.NewFiles, ui.Green)
		ui.PrintList(s.output(), "Updated", result.UpdatedFiles, ui.Yellow)
		ui.PrintList(s.output(), "Deleted", result.DeletedFiles, ui.Red)
		for _, e := range result.Exceptions {
			if e.IsWarning {
				s.sayColor(e.Message, ui.Yellow)
			} else {
				s.sayColor(e.Message, ui.Red)
			}
		}
		if result.ConflictsExist {
			s.sayColor("Conflicts exist. Run `tfx conflicts` to list them.", ui.Red)
		}
	})
}

// History lists the changesets of item, newest first.
func (s *Service) History(dir, item string, opts tf.HistoryOptions) error {
	cmd, err := tf.NewHistory(s.context(), dir, item, opts)
	if err != nil {
		return err
	}
	changesets, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.render(changesets, func() {
		var rows [][]string
		for _, cs := range changesets {
			rows = append(rows, []string{ui.Bold(cs.ID), cs.Owner, ui.Dim(cs.Date), firstLine(cs.Comment)})
		}
		s.table([]string{"Changeset", "User", "Date", "Comment"}, rows)
	})
}

// Labels lists the labels matching filter.
func (s *Service) Labels(dir, filter string) error {
	labels, err := run(s, tf.NewLabels(s.context(), dir, filter))
	if err != nil {
		return err
	}
	return s.render(labels, func() {
		if len(labels) == 0 {
			s.say("No labels found.")
			return
		}
		var rows [][]string
		for _, l := range labels {
			rows = append(rows, []string{ui.Bold(l.Name), l.Scope, l.User, ui.Dim(l.Date), firstLine(l.Comment)})
		}
		s.table([]string{"Label", "Scope", "Owner", "Date", "Comment"}, rows)
	})
}

// Label applies or moves a label onto items.
func (s *Service) Label(dir, name string, items []string, opts tf.LabelOptions) error {
	cmd, err := tf.NewCreateLabel(s.context(), dir, name, items, opts)
	if err != nil {
		return err
	}
	status, err := run(s, cmd)
	if err != nil {
		return err
	}
	return s.render(map[string]string{"label": name, "status": string(status)}, func() {
		s.sayColor(fmt.Sprintf("%s label %s.", status, name), ui.Green)
	})
}

func (s *Service) renderItems(title string, items []string, colorize func(a ...any) string) error {
	return s.render(items, func() {
		if len(items) == 0 {
			s.say("Nothing to do.")
			return
		}
		ui.PrintList(s.output(), title, items, colorize)
	})
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
