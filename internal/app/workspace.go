package app

import (
	"fmt"
	"strings"

	"github.com/joelmoss/tfx/internal/tf"
	"github.com/joelmoss/tfx/internal/tfvc"
	"github.com/joelmoss/tfx/internal/ui"
)

// ParseMapping reads SERVER=LOCAL. A trailing /* on the server path maps
// only the folder itself.
func ParseMapping(s string) (tfvc.Mapping, error) {
	server, local, ok := strings.Cut(s, "=")
	server, local = strings.TrimSpace(server), strings.TrimSpace(local)
	if !ok || server == "" || local == "" {
		return tfvc.Mapping{}, fmt.Errorf("%w: mapping %q must look like $/project/folder=/local/folder", ErrArgument, s)
	}
	return tfvc.Mapping{ServerPath: server, LocalPath: local}, nil
}

func (s *Service) credentials() (string, *tf.Credentials) {
	ctx := s.context()
	if ctx == nil {
		return "", nil
	}
	return ctx.Collection, ctx.Credentials
}

// Workspaces lists the workspaces of every known collection.
func (s *Service) Workspaces() error {
	servers, err := run(s, tf.NewWorkspaces(s.context()))
	if err != nil {
		return err
	}
	return s.render(servers, func() {
		var rows [][]string
		for _, srv := range servers {
			for _, ws := range srv.Workspaces {
				rows = append(rows, []string{ui.Bold(ws.Name), ws.Owner, ws.Computer, ui.Dim(srv.Name), ws.Comment})
			}
		}
		if len(rows) == 0 {
			s.say("No workspaces found.")
			return
		}
		s.table([]string{"Workspace", "Owner", "Computer", "Collection", "Comment"}, rows)
	})
}

// ShowWorkspace prints a workspace with its mappings.
func (s *Service) ShowWorkspace(name string) error {
	ws, err := s.detailedWorkspace(name)
	if err != nil {
		return err
	}
	return s.render(ws, func() { s.printWorkspace(ws) })
}

// FindWorkspace finds the workspace mapping dir, or the named workspace
// when a collection is configured.
func (s *Service) FindWorkspace(dir, name string) error {
	var cmd *tf.Command[*tfvc.Workspace]
	var err error
	if collection, creds := s.credentials(); name != "" && collection != "" {
		cmd, err = tf.NewFindWorkspaceByName(collection, name, creds)
	} else {
		cmd, err = tf.NewFindWorkspace(dir)
	}
	if err != nil {
		return err
	}
	ws, err := run(s, cmd)
	if err != nil {
		return err
	}
	if ws == nil {
		return ErrWorkspaceNotDetermined
	}
	return s.render(ws, func() { s.printWorkspace(ws) })
}

func (s *Service) detailedWorkspace(name string) (*tfvc.Workspace, error) {
	collection, creds := s.credentials()
	cmd, err := tf.NewDetailedWorkspace(collection, name, creds)
	if err != nil {
		return nil, err
	}
	ws, err := run(s, cmd)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, fmt.Errorf("%w: workspace %q not found", ErrArgument, name)
	}
	return ws, nil
}

func (s *Service) printWorkspace(ws *tfvc.Workspace) {
	rows := [][]string{
		{ui.Dim("Workspace"), ui.Bold(ws.Name)},
		{ui.Dim("Collection"), ws.Collection},
	}
	for _, f := range [][2]string{{"Owner", ws.Owner}, {"Computer", ws.Computer}, {"Location", string(ws.Location)}, {"Comment", ws.Comment}} {
		if f[1] != "" {
			rows = append(rows, []string{ui.Dim(f[0]), f[1]})
		}
	}
	s.table(nil, rows)
	if len(ws.Mappings) == 0 {
		return
	}
	s.say("")
	s.say(ui.Bold("Working folders"))
	var mappings [][]string
	for _, m := range ws.Mappings {
		if m.Cloaked {
			mappings = append(mappings, []string{m.ServerPath, ui.Yellow("(cloaked)")})
			continue
		}
		mappings = append(mappings, []string{m.ServerPath, ui.DisplayPath(m.LocalPath)})
	}
	ui.PrintTable(s.output(), nil, mappings, 2)
}

// CreateWorkspace creates a workspace and maps its working folders.
func (s *Service) CreateWorkspace(name string, opts tf.WorkspaceOptions, mappings []tfvc.Mapping) error {
	cmd, err := tf.NewCreateWorkspace(s.context(), name, opts)
	if err != nil {
		return err
	}
	if _, err := run(s, cmd); err != nil {
		return err
	}
	for _, m := range mappings {
		if err := s.updateMapping(name, tf.MappingMap, m); err != nil {
			return err
		}
	}
	s.done(fmt.Sprintf("Workspace '%s' created.", name))
	return nil
}

// UpdateWorkspace renames a workspace, updates its settings and, when
// mappings are given, replaces its working folders with them.
func (s *Service) UpdateWorkspace(name, newName string, opts tf.WorkspaceOptions, mappings []tfvc.Mapping) error {
	var current *tfvc.Workspace
	if len(mappings) > 0 {
		ws, err := s.detailedWorkspace(name)
		if err != nil {
			return err
		}
		current = ws
	}

	cmd, err := tf.NewUpdateWorkspace(s.context(), name, newName, opts)
	if err != nil {
		return err
	}
	if _, err := run(s, cmd); err != nil {
		return err
	}
	if newName == "" {
		newName = name
	}

	if current != nil && tfvc.MappingsDiffer(current.Mappings, mappings) {
		for _, m := range tfvc.MappingsToRemove(current.Mappings, mappings) {
			if err := s.updateMapping(newName, tf.MappingUnmap, m); err != nil {
				return err
			}
		}
		for _, m := range mappings {
			action := tf.MappingMap
			if m.Cloaked {
				action = tf.MappingCloak
			}
			if err := s.updateMapping(newName, action, m); err != nil {
				return err
			}
		}
	}
	s.done(fmt.Sprintf("Workspace '%s' updated.", newName))
	return nil
}

// DeleteWorkspace deletes a workspace after confirmation. A confirmValue
// matching the name skips the prompt.
func (s *Service) DeleteWorkspace(name, confirmValue string) error {
	if confirmValue != "" {
		if confirmValue != name {
			return fmt.Errorf("--confirm value '%s' does not match workspace name '%s'", confirmValue, name)
		}
	} else {
		confirmed, err := s.ConfirmFn(fmt.Sprintf("Are you sure you want to delete workspace '%s'?", name))
		if err != nil {
			return err
		}
		if !confirmed {
			s.sayColor(fmt.Sprintf("Aborting. Workspace '%s' was not deleted.", name), ui.Yellow)
			return nil
		}
	}

	cmd, err := tf.NewDeleteWorkspace(s.context(), name)
	if err != nil {
		return err
	}
	if _, err := run(s, cmd); err != nil {
		return err
	}
	s.done(fmt.Sprintf("Workspace '%s' deleted.", name))
	return nil
}

// Map, Unmap and Cloak change one working folder of a workspace.
func (s *Service) Map(workspace string, m tfvc.Mapping, oneLevel bool) error {
	if oneLevel {
		m.ServerPath = tfvc.OneLevelServerPath(m.ServerPath)
	}
	if err := s.updateMapping(workspace, tf.MappingMap, m); err != nil {
		return err
	}
	s.done(fmt.Sprintf("Mapped %s to %s.", m.ServerPath, ui.DisplayPath(m.LocalPath)))
	return nil
}

func (s *Service) Unmap(workspace, serverPath string) error {
	if err := s.updateMapping(workspace, tf.MappingUnmap, tfvc.Mapping{ServerPath: serverPath}); err != nil {
		return err
	}
	s.done(fmt.Sprintf("Unmapped %s.", serverPath))
	return nil
}

func (s *Service) Cloak(workspace, serverPath string) error {
	if err := s.updateMapping(workspace, tf.MappingCloak, tfvc.Mapping{ServerPath: serverPath, Cloaked: true}); err != nil {
		return err
	}
	s.done(fmt.Sprintf("Cloaked %s.", serverPath))
	return nil
}

func (s *Service) updateMapping(workspace string, action tf.MappingAction, m tfvc.Mapping) error {
	cmd, err := tf.NewUpdateMapping(s.context(), workspace, action, m)
	if err != nil {
		return err
	}
	s.sayStatus(string(action), m.ServerPath)
	_, err = run(s, cmd)
	return err
}

// LocalPath prints the local folder serverPath is mapped to.
func (s *Service) LocalPath(workspace, serverPath string) error {
	cmd, err := tf.NewLocalPath(s.context(), workspace, serverPath)
	if err != nil {
		return err
	}
	local, err := run(s, cmd)
	if err != nil {
		return err
	}
	if local == "" {
		return fmt.Errorf("%w: %s is not mapped in workspace %q", ErrArgument, serverPath, workspace)
	}
	return s.render(map[string]string{"serverPath": serverPath, "localPath": local}, func() {
		s.say(local)
	})
}
