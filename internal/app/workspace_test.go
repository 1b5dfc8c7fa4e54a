package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelmoss/tfx/internal/tf"
	"github.com/joelmoss/tfx/internal/tfvc"
)

const detailedWorkspaceOutput = "===========================================================================================================================================================================================================\n" +
	"Workspace:   WorkspaceName\n" +
	"Owner:       John Smith\n" +
	"Computer:    computerName\n" +
	"Comment:     Workspace created through IntelliJ\n" +
	"Collection:  http://server:8080/tfs/defaultcollection\n" +
	"Permissions: Private\n" +
	"File Time:   Current\n" +
	"Location:    Local\n" +
	"File Time:   Current\n" +
	"\n" +
	"Working folders:\n" +
	"\n" +
	"$/WorkspaceName: /Users/JohnSmith/WorkspaceName\n" +
	"$/WorkspaceName/old: /Users/JohnSmith/WorkspaceName/old\n"

func TestWorkspaces(t *testing.T) {
	svc, buf, _ := newTestService(t, map[string]response{
		"workspaces": {stdout: "Collection: http://server:8080/tfs/DefaultCollection/\n" +
			"Workspace Owner      Computer     Comment\n" +
			"--------- ---------- ------------ -------\n" +
			"ws1       John Smith computerName hello"},
	})
	require.NoError(t, svc.Workspaces())
	assert.Contains(t, buf.String(), "ws1")
	assert.Contains(t, buf.String(), "John Smith")
}

func TestWorkspacesEmpty(t *testing.T) {
	svc, buf, _ := newTestService(t, map[string]response{"workspaces": {}})
	require.NoError(t, svc.Workspaces())
	assert.Contains(t, buf.String(), "No workspaces found.")
}

func TestShowWorkspace(t *testing.T) {
	svc, buf, runner := newTestService(t, map[string]response{"workspaces": {stdout: detailedWorkspaceOutput}})
	require.NoError(t, svc.ShowWorkspace("WorkspaceName"))

	assert.Equal(t, []string{"workspaces -noprompt -format:detailed WorkspaceName"}, runner.commands())
	out := buf.String()
	assert.Contains(t, out, "WorkspaceName")
	assert.Contains(t, out, "Working folders")
	assert.Contains(t, out, "$/WorkspaceName/old")
}

func TestShowWorkspaceNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, map[string]response{"workspaces": {}})
	err := svc.ShowWorkspace("nope")
	assert.True(t, errors.Is(err, ErrArgument))
}

func TestFindWorkspace(t *testing.T) {
	svc, buf, runner := newTestService(t, map[string]response{
		"workfold": {stdout: "=====================================\n" +
			"Workspace:  MyWorkspace\n" +
			"Collection: http://server:8080/tfs/\n" +
			"$/project: /path/to/project"},
	})
	require.NoError(t, svc.FindWorkspace("/path/to/project", ""))
	assert.Equal(t, []string{"workfold -noprompt -login:username,pw"}, runner.commands())
	assert.Contains(t, buf.String(), "MyWorkspace")
}

func TestFindWorkspaceNone(t *testing.T) {
	svc, _, _ := newTestService(t, map[string]response{"workfold": {}})
	err := svc.FindWorkspace(t.TempDir(), "")
	assert.ErrorIs(t, err, ErrWorkspaceNotDetermined)
}

func TestCreateWorkspaceMapsFolders(t *testing.T) {
	svc, _, runner := newTestService(t, map[string]response{})
	err := svc.CreateWorkspace("ws", tf.WorkspaceOptions{Comment: "new"}, []tfvc.Mapping{
		{ServerPath: "$/proj", LocalPath: "/src/proj"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"workspace -noprompt -new ws -comment:new",
		"workfold -noprompt -workspace:ws -map $/proj /src/proj",
	}, runner.commands())
}

func TestUpdateWorkspaceReplacesMappings(t *testing.T) {
	svc, _, runner := newTestService(t, map[string]response{"workspaces": {stdout: detailedWorkspaceOutput}})
	err := svc.UpdateWorkspace("WorkspaceName", "", tf.WorkspaceOptions{Comment: "c"}, []tfvc.Mapping{
		{ServerPath: "$/WorkspaceName", LocalPath: "/Users/JohnSmith/WorkspaceName"},
		{ServerPath: "$/WorkspaceName/new", Cloaked: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"workspaces -noprompt -format:detailed WorkspaceName",
		"workspace -noprompt WorkspaceName -newname:WorkspaceName -comment:c",
		"workfold -noprompt -workspace:WorkspaceName -unmap $/WorkspaceName/old",
		"workfold -noprompt -workspace:WorkspaceName -map $/WorkspaceName /Users/JohnSmith/WorkspaceName",
		"workfold -noprompt -workspace:WorkspaceName -cloak $/WorkspaceName/new",
	}, runner.commands())
}

func TestUpdateWorkspaceSameMappings(t *testing.T) {
	svc, _, runner := newTestService(t, map[string]response{"workspaces": {stdout: detailedWorkspaceOutput}})
	err := svc.UpdateWorkspace("WorkspaceName", "Renamed", tf.WorkspaceOptions{}, []tfvc.Mapping{
		{ServerPath: "$/WorkspaceName", LocalPath: "/Users/JohnSmith/WorkspaceName"},
		{ServerPath: "$/WorkspaceName/old", LocalPath: "/Users/JohnSmith/WorkspaceName/old"},
	})
	require.NoError(t, err)
	assert.Len(t, runner.commands(), 2)
}

func TestDeleteWorkspaceConfirmMismatch(t *testing.T) {
	svc, _, runner := newTestService(t, nil)
	err := svc.DeleteWorkspace("ws", "other")
	require.Error(t, err)
	assert.Empty(t, runner.commands())
}

func TestDeleteWorkspaceAborted(t *testing.T) {
	svc, buf, runner := newTestService(t, nil)
	svc.ConfirmFn = func(string) (bool, error) { return false, nil }
	require.NoError(t, svc.DeleteWorkspace("ws", ""))
	assert.Empty(t, runner.commands())
	assert.Contains(t, buf.String(), "Aborting")
}

func TestDeleteWorkspaceMissingSucceeds(t *testing.T) {
	svc, buf, runner := newTestService(t, map[string]response{
		"workspace": {stderr: "The workspace 'ws;John Smith' could not be found.", code: 100},
	})
	require.NoError(t, svc.DeleteWorkspace("ws", "ws"))
	assert.Equal(t, []string{"workspace -noprompt -delete ws"}, runner.commands())
	assert.Contains(t, buf.String(), "Workspace 'ws' deleted.")
}

func TestMapOneLevel(t *testing.T) {
	svc, _, runner := newTestService(t, nil)
	require.NoError(t, svc.Map("ws", tfvc.Mapping{ServerPath: "$/proj/", LocalPath: "/src"}, true))
	assert.Equal(t, []string{"workfold -noprompt -workspace:ws -map $/proj/* /src"}, runner.commands())
}

func TestUnmapAndCloak(t *testing.T) {
	svc, _, runner := newTestService(t, nil)
	require.NoError(t, svc.Unmap("ws", "$/proj/a"))
	require.NoError(t, svc.Cloak("ws", "$/proj/b"))
	assert.Equal(t, []string{
		"workfold -noprompt -workspace:ws -unmap $/proj/a",
		"workfold -noprompt -workspace:ws -cloak $/proj/b",
	}, runner.commands())
}

func TestLocalPath(t *testing.T) {
	svc, buf, _ := newTestService(t, map[string]response{
		"workfold": {stdout: "=====================================\n" +
			"Workspace:  ws\n" +
			"Collection: http://server:8080/tfs/\n" +
			"$/proj/a: /src/a\n" +
			"$/proj/b: /src/b"},
	})
	require.NoError(t, svc.LocalPath("ws", "$/proj/b"))
	assert.Equal(t, "/src/b\n", buf.String())
}
