package tf

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelmoss/tfx/internal/errs"
	"github.com/joelmoss/tfx/internal/tfvc"
)

func TestDecodeAddHierarchicalOutput(t *testing.T) {
	stdout := "/path/to/folder:\n" +
		"file1\n" +
		"file2\n" +
		"\n" +
		"/path/to/folder/sub:\n" +
		"file3\n"
	paths, err := decodeAdd(stdout, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/path/to/folder", "file1"),
		filepath.Join("/path/to/folder", "file2"),
		filepath.Join("/path/to/folder/sub", "file3"),
	}, paths)

	_, err = decodeAdd("", "TF10125: The path 'x' must start with $/")
	assert.ErrorIs(t, err, errs.ErrTool)
}

func TestDecodeAddSkipsLeadingWarnings(t *testing.T) {
	paths, err := decodeAdd("WARN 1 java.lang.Something\r\n/ws:\r\na.txt\r\n", "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("/ws", "a.txt")}, paths)
}

func TestDecodeUndo(t *testing.T) {
	stdout := "/ws/src:\n" +
		"Undoing edit: Main.java\n" +
		"Undoing add: New.java\n"
	stderr := "No pending changes were found for /ws/src/Other.java.\n"

	paths, err := decodeUndo(stdout, stderr)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("/ws/src", "Main.java"), filepath.Join("/ws/src", "New.java")}, paths)

	_, err = decodeUndo(stdout, stderr+"TF14087: Cannot undo changes for $/proj/x\n")
	var toolErr *errs.ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "TF14087: Cannot undo changes for $/proj/x", toolErr.Message)
}

func TestUndoArguments(t *testing.T) {
	cmd, err := NewUndo(nil, []string{"/ws/a", "/ws/b"}, true)
	require.NoError(t, err)
	assert.Equal(t, "undo -noprompt -recursive /ws/a /ws/b", cmd.Arguments().String())
}

func TestDecodeDelete(t *testing.T) {
	stdout := "/ws:\n" + "a.txt\n"
	stderr := "/ws/b.txt: The item /ws/b.txt could not be found in your workspace, or you do not have permission to access it.\n" +
		"TF10169: Unsupported pending change attempted on team project folder $/proj.\n"

	result, err := decodeDelete(stdout, stderr)
	require.NoError(t, err)
	assert.Equal(t, tfvc.DeleteResult{
		Deleted:  []string{filepath.Join("/ws", "a.txt")},
		NotFound: []string{"/ws/b.txt"},
		Errors:   []string{"TF10169: Unsupported pending change attempted on team project folder $/proj."},
	}, result)
}

func TestDeleteArguments(t *testing.T) {
	cmd, err := NewDelete(nil, "/ws", []string{"a.txt"}, true)
	require.NoError(t, err)
	args := cmd.Arguments()
	assert.Equal(t, "delete -noprompt -recursive a.txt", args.String())
	assert.Equal(t, "/ws", args.WorkingDirectory())
}

func TestRenameArguments(t *testing.T) {
	cmd, err := NewRename(nil, "/ws/old.txt", "/ws/new.txt")
	require.NoError(t, err)
	assert.Equal(t, "rename -noprompt /ws/old.txt /ws/new.txt", cmd.Arguments().String())

	_, err = cmd.Decode("", "", 0)
	assert.NoError(t, err)
}

const statusOutput = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
	"<status>\n" +
	"<pending-changes>\n" +
	"<pending-change server-item=\"$/tfsTest_01/renamed.txt\" version=\"8\" owner=\"jason\" date=\"2016-07-13T12:36:51.060-0400\" lock=\"none\" change-type=\"rename, edit\" workspace=\"MyNewWorkspace2\" computer=\"machine\" local-item=\"/path/path/renamed.txt\" source-item=\"$/tfsTest_01/original.txt\"/>\n" +
	"</pending-changes>\n" +
	"<candidate-pending-changes>\n" +
	"<pending-change server-item=\"$/tfsTest_01/test.txt\" version=\"0\" owner=\"jason\" date=\"2016-07-13T12:36:51.060-0400\" lock=\"none\" change-type=\"add\" workspace=\"MyNewWorkspace2\" computer=\"machine\" local-item=\"/path/path/text.txt\"/>\n" +
	"</candidate-pending-changes>\n" +
	"</status>"

func TestDecodeStatus(t *testing.T) {
	changes, err := decodeStatus(statusOutput, "")
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, tfvc.PendingChange{
		ServerItem:  "$/tfsTest_01/renamed.txt",
		LocalItem:   "/path/path/renamed.txt",
		Version:     "8",
		Owner:       "jason",
		Date:        "2016-07-13T12:36:51.060-0400",
		Lock:        "none",
		ChangeTypes: []tfvc.ChangeType{tfvc.ChangeRename, tfvc.ChangeEdit},
		Workspace:   "MyNewWorkspace2",
		Computer:    "machine",
		SourceItem:  "$/tfsTest_01/original.txt",
	}, changes[0])

	candidate := changes[1]
	assert.True(t, candidate.IsCandidate)
	assert.Equal(t, "$/tfsTest_01/test.txt", candidate.ServerItem)
	assert.Equal(t, "/path/path/text.txt", candidate.LocalItem)
	assert.Equal(t, "0", candidate.Version)
	assert.Equal(t, []tfvc.ChangeType{tfvc.ChangeAdd}, candidate.ChangeTypes)
	assert.Empty(t, candidate.SourceItem)
}

func TestDecodeStatusEmptyAndJunk(t *testing.T) {
	changes, err := decodeStatus("", "")
	require.NoError(t, err)
	assert.Empty(t, changes)

	changes, err = decodeStatus("Picked up _JAVA_OPTIONS: -Xmx1g\n"+statusOutput, "")
	require.NoError(t, err)
	assert.Len(t, changes, 2)

	_, err = decodeStatus("<status><pending-changes>", "")
	assert.ErrorIs(t, err, errs.ErrDecode)
}

func TestDecodeStatusErrors(t *testing.T) {
	_, err := decodeStatus("/path/path", "error")
	assert.ErrorIs(t, err, errs.ErrTool)

	_, err = decodeStatus("", "TF10122: The path '$/proj/$tf/file.txt' contains a '$' at the beginning of a path component. Remove the '$' and try again.")
	var dollarErr *errs.DollarInPathError
	require.ErrorAs(t, err, &dollarErr)
	assert.Equal(t, "$/proj/$tf/file.txt", dollarErr.ServerPath)
}

const infoOutput = "" +
	"Local information:\n" +
	"Local path:  /path/to/build.xml\n" +
	"Server path: $/TFVC_1/build.xml\n" +
	"Changeset:   18\n" +
	"Change:      none\n" +
	"Type:        file\n" +
	"Server information:\n" +
	"Server path:   $/TFVC_1/build.xml\n" +
	"Changeset:     19\n" +
	"Deletion ID:   0\n" +
	"Lock:          none\n" +
	"Lock owner:\n" +
	"Last modified: Nov 18, 2016 11:10:20 AM\n" +
	"Type:          file\n" +
	"File type:     windows-1252\n" +
	"Size:          1385\n" +
	"\n" +
	"Local information:\n" +
	"Local path:  /path/to/HelloWorld.java\n" +
	"Server path: $/TFVC_1/src/com/microsoft/demo/HelloWorld.java\n" +
	"Changeset:   13\n" +
	"Change:      edit\n" +
	"Type:        file\n" +
	"Server information:\n" +
	"Server path:   $/TFVC_1/src/com/microsoft/demo/HelloWorld.java\n" +
	"Changeset:     13\n" +
	"Deletion ID:   0\n" +
	"Lock:          none\n" +
	"Lock owner:\n" +
	"Last modified: Sep 8, 2016 4:34:33 PM\n" +
	"Type:          file\n" +
	"File type:     windows-1252\n" +
	"Size:          164"

func TestDecodeInfo(t *testing.T) {
	infos, err := decodeInfo(infoOutput, "")
	require.NoError(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, tfvc.ItemInfo{
		ServerItem:    "$/TFVC_1/build.xml",
		LocalItem:     "/path/to/build.xml",
		LocalVersion:  "18",
		ServerVersion: "19",
		ChangeType:    "none",
		Type:          "file",
		Lock:          "none",
		DeletionID:    "0",
		LastModified:  "Nov 18, 2016 11:10:20 AM",
		FileType:      "windows-1252",
		FileSize:      "1385",
	}, infos[0])

	assert.Equal(t, "/path/to/HelloWorld.java", infos[1].LocalItem)
	assert.Equal(t, "$/TFVC_1/src/com/microsoft/demo/HelloWorld.java", infos[1].ServerItem)
	assert.Equal(t, "13", infos[1].LocalVersion)
	assert.Equal(t, "13", infos[1].ServerVersion)
	assert.Equal(t, "edit", infos[1].ChangeType)
}

func TestDecodeInfoServerOnlyItems(t *testing.T) {
	stdout := "Server information:\n" +
		"Server path:   $/proj/a.txt\n" +
		"Changeset:     5\n" +
		"Server information:\n" +
		"Server path:   $/proj/b.txt\n" +
		"Changeset:     6\n"
	infos, err := decodeInfo(stdout, "")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "$/proj/a.txt", infos[0].ServerItem)
	assert.Equal(t, "6", infos[1].ServerVersion)
	assert.Empty(t, infos[1].LocalItem)
}

func TestDecodeInfoErrors(t *testing.T) {
	_, err := decodeInfo("", "error")
	assert.ErrorIs(t, err, errs.ErrTool)
}
