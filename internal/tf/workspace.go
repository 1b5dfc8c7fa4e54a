package tf

import (
	"log/slog"
	"strings"

	"github.com/joelmoss/tfx/internal/errs"
	"github.com/joelmoss/tfx/internal/tfvc"
)

const (
	collectionPrefix     = "Collection:"
	workspaceFieldPrefix = "Workspace:"
	ownerPrefix          = "Owner:"
	computerPrefix       = "Computer:"
	commentPrefix        = "Comment:"
	locationPrefix       = "Location:"
	workingFoldersPrefix = "Working folders:"
	cloakedPrefix        = "(cloaked)"
	separatorRun         = "=========="
)

// NewWorkspaces lists the workspaces of every collection known to tf. With a
// server, only that collection is queried, using its credentials.
//
//	workspaces -noprompt [-login:... -collection:uri]
func NewWorkspaces(server *Context) *Command[[]tfvc.Server] {
	return newCommand(KindWorkspaces, nil, func(b *ArgumentBuilder) {
		if server == nil || server.Collection == "" {
			return
		}
		if server.Credentials != nil {
			b.AddCredentials(*server.Credentials)
		}
		b.AddSwitchValue("collection", server.Collection)
	}, decodeWorkspaces)
}

// decodeWorkspaces reads one fixed-column table per "Collection:" heading:
//
//	Collection: http://server:8080/tfs/DefaultCollection/
//	Workspace  Owner      Computer     Comment
//	---------- ---------- ------------ ---------
//	ws1        John Smith computerName a comment
func decodeWorkspaces(stdout, stderr string) ([]tfvc.Server, error) {
	if err := failIfStderr(stderr); err != nil {
		return nil, err
	}
	lines := splitLines(stdout)
	var servers []tfvc.Server
	for i := 0; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], collectionPrefix) {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(lines[i], collectionPrefix))
		// skip the header to reach the dashes
		i += 2
		if i >= len(lines) {
			break
		}
		ends := columnEnds(lines[i])
		server := tfvc.Server{Name: name, Workspaces: []tfvc.Workspace{}}
		for i++; i < len(lines) && strings.TrimSpace(lines[i]) != ""; i++ {
			cols := splitColumns(lines[i], ends)
			ws := tfvc.Workspace{Name: cols[0], Collection: name}
			if len(cols) > 1 {
				ws.Owner = cols[1]
			}
			if len(cols) > 2 {
				ws.Computer = cols[2]
			}
			if len(cols) > 3 {
				ws.Comment = cols[3]
			}
			server.Workspaces = append(server.Workspaces, ws)
		}
		servers = append(servers, server)
	}
	return servers, nil
}

// NewDetailedWorkspace describes one workspace including its mappings.
//
//	workspaces -noprompt -format:detailed <name> [-login:...] [-collection:uri]
func NewDetailedWorkspace(collection, name string, creds *Credentials) (*Command[*tfvc.Workspace], error) {
	if err := required(KindDetailedWorkspace, "workspace", name); err != nil {
		return nil, err
	}
	return newCommand(KindDetailedWorkspace, nil, func(b *ArgumentBuilder) {
		b.AddSwitchValue("format", "detailed").Add(name)
		if creds != nil {
			b.AddCredentials(*creds)
		}
		if collection != "" {
			b.AddSwitchValue("collection", collection)
		}
	}, decodeDetailedWorkspace), nil
}

// decodeDetailedWorkspace reads the key:value block of a detailed listing,
// followed by the mappings under "Working folders:". A nil workspace means
// tf printed nothing.
func decodeDetailedWorkspace(stdout, stderr string) (*tfvc.Workspace, error) {
	if err := failIfStderr(stderr); err != nil {
		return nil, err
	}
	if strings.TrimSpace(stdout) == "" {
		return nil, nil
	}
	lines := splitLines(stdout)
	ws := &tfvc.Workspace{}
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, workspaceFieldPrefix):
			ws.Name = fieldValue(line, workspaceFieldPrefix)
		case strings.HasPrefix(line, ownerPrefix):
			ws.Owner = fieldValue(line, ownerPrefix)
		case strings.HasPrefix(line, computerPrefix):
			ws.Computer = fieldValue(line, computerPrefix)
		case strings.HasPrefix(line, commentPrefix):
			ws.Comment = fieldValue(line, commentPrefix)
		case strings.HasPrefix(line, collectionPrefix):
			ws.Collection = fieldValue(line, collectionPrefix)
		case strings.HasPrefix(line, locationPrefix):
			ws.Location = tfvc.ParseLocation(fieldValue(line, locationPrefix))
		case strings.HasPrefix(line, workingFoldersPrefix):
			// a blank line separates the heading from the mappings
			for i += 2; i < len(lines) && lines[i] != ""; i++ {
				if m, ok := parseMapping(lines[i]); ok {
					ws.Mappings = append(ws.Mappings, m)
				}
			}
		}
	}
	return ws, nil
}

func fieldValue(line, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, prefix))
}

// parseMapping reads "$/proj/folder: /local/folder" or
// "(cloaked) $/proj/folder:".
func parseMapping(line string) (tfvc.Mapping, bool) {
	trimmed := strings.TrimSpace(line)
	cloaked := hasPrefixFold(trimmed, cloakedPrefix)
	if cloaked {
		trimmed = strings.TrimSpace(trimmed[len(cloakedPrefix):])
	}
	server, local, found := strings.Cut(trimmed, ":")
	if !found {
		return tfvc.Mapping{}, false
	}
	return tfvc.Mapping{
		ServerPath: strings.TrimSpace(server),
		LocalPath:  strings.TrimSpace(local),
		Cloaked:    cloaked,
	}, true
}

// NewFindWorkspace finds the workspace that maps localPath by running
// workfold in it. workfold insists on a login here but never checks it.
//
//	workfold -noprompt -login:username,pw
func NewFindWorkspace(localPath string) (*Command[*tfvc.Workspace], error) {
	if err := required(KindFindWorkspace, "local path", localPath); err != nil {
		return nil, err
	}
	return newCommand(KindFindWorkspace, nil, func(b *ArgumentBuilder) {
		b.SetWorkingDirectory(localPath)
		b.AddSecretSwitch("login", "username,pw")
	}, decodeWorkfold), nil
}

// NewFindWorkspaceByName reads the mappings of a named workspace.
//
//	workfold -noprompt -collection:uri -workspace:name [-login:...]
func NewFindWorkspaceByName(collection, workspace string, creds *Credentials) (*Command[*tfvc.Workspace], error) {
	if err := required(KindFindWorkspace, "collection", collection); err != nil {
		return nil, err
	}
	if err := required(KindFindWorkspace, "workspace", workspace); err != nil {
		return nil, err
	}
	return newCommand(KindFindWorkspace, nil, func(b *ArgumentBuilder) {
		b.AddSwitchValue("collection", collectionArgument(collection))
		b.AddSwitchValue("workspace", workspace)
		if creds != nil {
			b.AddCredentials(*creds)
		}
	}, decodeWorkfold), nil
}

// decodeWorkfold reads the output of workfold:
//
//	Access denied connecting to TFS server ... (optional)
//	=============================================
//	Workspace:  MyWorkspace
//	Collection: http://server:8080/tfs/
//	$/project: /path/to/project
//
// Without the separator there is no workspace and the result is nil.
func decodeWorkfold(stdout, stderr string) (*tfvc.Workspace, error) {
	if err := workfoldError(stderr); err != nil {
		return nil, err
	}
	lines := splitLines(stdout)
	for i := range lines {
		if !strings.Contains(lines[i], separatorRun) || i+2 >= len(lines) {
			continue
		}
		ws := &tfvc.Workspace{
			Name:       valueAfter(lines[i+1]),
			Collection: valueAfter(lines[i+2]),
		}
		for _, line := range lines[i+3:] {
			if m, ok := parseMapping(line); ok {
				ws.Mappings = append(ws.Mappings, m)
			}
		}
		return ws, nil
	}
	return nil, nil
}

// WorkspaceOptions are the optional settings of create and update.
type WorkspaceOptions struct {
	Comment    string
	FileTime   tfvc.FileTime
	Permission tfvc.Permission
}

func (o WorkspaceOptions) apply(b *ArgumentBuilder) {
	b.AddSwitchValue("comment", o.Comment)
	if o.FileTime != "" {
		b.AddSwitchValue("filetime", string(o.FileTime))
	}
	if o.Permission != "" {
		b.AddSwitchValue("permission", string(o.Permission))
	}
}

// NewCreateWorkspace creates a workspace on the server.
//
//	workspace -noprompt -new <name> -comment:c [-filetime:t] [-permission:p]
func NewCreateWorkspace(ctx *Context, name string, opts WorkspaceOptions) (*Command[string], error) {
	if err := required(KindCreateWorkspace, "workspace", name); err != nil {
		return nil, err
	}
	return newCommand(KindCreateWorkspace, ctx, func(b *ArgumentBuilder) {
		b.AddSwitch("new").Add(name)
		opts.apply(b)
	}, decodeEmpty), nil
}

// NewUpdateWorkspace renames a workspace and updates its settings.
//
//	workspace -noprompt <name> -newname:n -comment:c [-filetime:t] [-permission:p]
func NewUpdateWorkspace(ctx *Context, name, newName string, opts WorkspaceOptions) (*Command[string], error) {
	if err := required(KindUpdateWorkspace, "workspace", name); err != nil {
		return nil, err
	}
	if newName == "" {
		newName = name
	}
	return newCommand(KindUpdateWorkspace, ctx, func(b *ArgumentBuilder) {
		b.Add(name).AddSwitchValue("newname", newName)
		opts.apply(b)
	}, decodeEmpty), nil
}

// NewDeleteWorkspace deletes a workspace. Deleting a workspace that does not
// exist succeeds.
//
//	workspace -noprompt -delete <name>
func NewDeleteWorkspace(ctx *Context, name string) (*Command[string], error) {
	if err := required(KindDeleteWorkspace, "workspace", name); err != nil {
		return nil, err
	}
	return newCommand(KindDeleteWorkspace, ctx, func(b *ArgumentBuilder) {
		b.AddSwitch("delete").Add(name)
	}, decodeDeleteWorkspace), nil
}

func decodeDeleteWorkspace(_, stderr string) (string, error) {
	if isWorkspaceNotFound(stderr) {
		slog.Info("workspace to delete was not found", "stderr", strings.TrimSpace(stderr))
		return "", nil
	}
	return "", failIfStderr(stderr)
}

// MappingAction is the workfold operation applied to a mapping.
type MappingAction string

const (
	MappingMap   MappingAction = "map"
	MappingUnmap MappingAction = "unmap"
	MappingCloak MappingAction = "cloak"
)

// NewUpdateMapping maps, unmaps or cloaks one server path of a workspace. A
// one-level mapping carries the /* suffix on its server path.
//
//	workfold -noprompt -workspace:ws -map <server> <local>
//	workfold -noprompt -workspace:ws -unmap <server>
//	workfold -noprompt -workspace:ws -cloak <server>
func NewUpdateMapping(ctx *Context, workspace string, action MappingAction, m tfvc.Mapping) (*Command[string], error) {
	if err := required(KindUpdateMapping, "workspace", workspace); err != nil {
		return nil, err
	}
	if err := required(KindUpdateMapping, "server path", m.ServerPath); err != nil {
		return nil, err
	}
	switch action {
	case MappingMap:
		if err := required(KindUpdateMapping, "local path", m.LocalPath); err != nil {
			return nil, err
		}
	case MappingUnmap, MappingCloak:
	default:
		return nil, &errs.ArgumentError{Command: KindUpdateMapping.String(), Field: "action", Reason: "must be map, unmap or cloak"}
	}
	return newCommand(KindUpdateMapping, ctx, func(b *ArgumentBuilder) {
		b.AddSwitchValue("workspace", workspace).AddSwitch(string(action)).Add(m.ServerPath)
		if action == MappingMap {
			b.Add(m.LocalPath)
		}
	}, decodeEmpty), nil
}

// NewLocalPath resolves the local folder a server path is mapped to.
//
//	workfold -noprompt -workspace:ws <serverPath>
func NewLocalPath(ctx *Context, workspace, serverPath string) (*Command[string], error) {
	if err := required(KindLocalPath, "workspace", workspace); err != nil {
		return nil, err
	}
	if err := required(KindLocalPath, "server path", serverPath); err != nil {
		return nil, err
	}
	return newCommand(KindLocalPath, ctx, func(b *ArgumentBuilder) {
		b.AddSwitchValue("workspace", workspace).Add(serverPath)
	}, func(stdout, stderr string) (string, error) {
		ws, err := decodeWorkfold(stdout, stderr)
		if err != nil || ws == nil {
			return "", err
		}
		for _, m := range ws.Mappings {
			if strings.EqualFold(m.Folder(), serverPath) && !m.Cloaked {
				return m.LocalPath, nil
			}
		}
		for _, m := range ws.Mappings {
			if !m.Cloaked {
				return m.LocalPath, nil
			}
		}
		return "", nil
	}), nil
}

// decodeEmpty is for commands whose only meaningful output is an error.
func decodeEmpty(_, stderr string) (string, error) {
	return "", failIfStderr(stderr)
}
