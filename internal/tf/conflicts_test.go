package tf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelmoss/tfx/internal/errs"
	"github.com/joelmoss/tfx/internal/tfvc"
)

func TestFindConflictsArguments(t *testing.T) {
	cmd, err := NewFindConflicts(nil, "/ws", "/ws/src", true)
	require.NoError(t, err)
	args := cmd.Arguments()
	assert.Equal(t, "resolve -noprompt -preview -recursive /ws/src", args.String())
	assert.Equal(t, "/ws", args.WorkingDirectory())
}

func TestDecodeConflicts(t *testing.T) {
	stderr := "/ws/a.txt: The item content has changed\n" +
		"/ws/b.txt: The item name has changed\n" +
		"/ws/c.txt: The item name and content have changed\n" +
		"/ws/d.txt: A newer version exists on the server\n"

	results, err := decodeConflicts("", stderr)
	require.NoError(t, err)
	assert.Equal(t, tfvc.ConflictResults{
		ContentConflicts: []string{"/ws/a.txt", "/ws/d.txt"},
		RenameConflicts:  []string{"/ws/b.txt"},
		BothConflicts:    []string{"/ws/c.txt"},
	}, results)
	assert.Len(t, results.All(), 4)
}

func TestDecodeConflictsNone(t *testing.T) {
	results, err := decodeConflicts("", "There are no conflicts to resolve.\n")
	require.NoError(t, err)
	assert.Empty(t, results.All())
}

func TestDecodeConflictsUnknownLine(t *testing.T) {
	_, err := decodeConflicts("", "TF30063: You are not authorized to access the server.")
	assert.ErrorIs(t, err, errs.ErrTool)
}

func TestFindConflictsPartialSuccess(t *testing.T) {
	cmd, err := NewFindConflicts(nil, "", "/ws", false)
	require.NoError(t, err)
	results, err := cmd.Decode("", "/ws/a.txt: The item content has changed", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"/ws/a.txt"}, results.ContentConflicts)
}

func TestResolve(t *testing.T) {
	cmd, err := NewResolve(nil, []string{"/ws/a.txt", "/ws/b.txt"}, tfvc.AcceptTheirs)
	require.NoError(t, err)
	assert.Equal(t, "resolve -noprompt -auto:AcceptTheirs /ws/a.txt /ws/b.txt", cmd.Arguments().String())

	resolved, err := cmd.Decode("Resolved /ws/a.txt as AcceptTheirs\nResolved /ws/b.txt as AcceptTheirs\n", "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"/ws/a.txt", "/ws/b.txt"}, resolved)

	_, err = NewResolve(nil, []string{"/ws/a.txt"}, "")
	assert.ErrorIs(t, err, errs.ErrArgument)
}
