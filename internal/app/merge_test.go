package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelmoss/tfx/internal/tf"
	"github.com/joelmoss/tfx/internal/tfvc"
)

func TestMergeWithConflicts(t *testing.T) {
	svc, buf, runner := newTestService(t, map[string]response{
		"merge": {
			stdout: "merge, edit: $/p/src/B.java;C222~C222 -> $/p/dst/B.java;C213",
			stderr: "Conflict (merge, edit): $/p/src/A.java;C222~C222 -> $/p/dst/A.java;C222",
			code:   1,
		},
	})
	require.NoError(t, svc.Merge("/ws", "$/p/src", "$/p/dst", tf.MergeOptions{Recursive: true}))

	assert.Equal(t, []string{"merge -noprompt -format:detailed -recursive $/p/src $/p/dst"}, runner.commands())
	out := buf.String()
	assert.Contains(t, out, "conflict: merge, edit")
	assert.Contains(t, out, "$/p/dst/B.java")
	assert.Contains(t, out, "Conflicts exist.")
}

func TestMergeNothing(t *testing.T) {
	svc, buf, _ := newTestService(t, map[string]response{"merge": {stdout: "There are no changes to merge."}})
	require.NoError(t, svc.Merge("/ws", "$/p/src", "$/p/dst", tf.MergeOptions{}))
	assert.Contains(t, buf.String(), "There are no changes to merge.")
}

func TestBranches(t *testing.T) {
	svc, buf, _ := newTestService(t, map[string]response{
		"branches": {stdout: "$/proj/main\n>>  $/proj/dev\n        $/proj/feature"},
	})
	require.NoError(t, svc.Branches("/ws", "$/proj/dev"))
	assert.Equal(t, "$/proj/main\n$/proj/feature\n", buf.String())
}

func TestBranchCheckedIn(t *testing.T) {
	svc, buf, runner := newTestService(t, map[string]response{"branch": {stdout: "Changeset #31 checked in."}})
	require.NoError(t, svc.Branch("/ws", "$/proj/main", "$/proj/rel", tf.BranchOptions{Checkin: true, Comment: "release"}))
	assert.Equal(t, []string{"branch -noprompt -checkin -comment:release $/proj/main $/proj/rel"}, runner.commands())
	assert.Contains(t, buf.String(), "changeset #31")
}

func TestConflicts(t *testing.T) {
	svc, buf, _ := newTestService(t, map[string]response{
		"resolve": {stderr: "/ws/a.txt: The item content has changed\n/ws/b.txt: The item name has changed", code: 1},
	})
	require.NoError(t, svc.Conflicts("/ws", "/ws", true))
	out := buf.String()
	assert.Contains(t, out, "Content changed")
	assert.Contains(t, out, "/ws/a.txt")
	assert.Contains(t, out, "Name changed")
}

func TestResolveWithPaths(t *testing.T) {
	svc, buf, runner := newTestService(t, map[string]response{
		"resolve": {stdout: "Resolved /ws/a.txt as AcceptTheirs"},
	})
	require.NoError(t, svc.Resolve("/ws", []string{"/ws/a.txt"}, tfvc.AcceptTheirs))
	assert.Equal(t, []string{"resolve -noprompt -auto:AcceptTheirs /ws/a.txt"}, runner.commands())
	assert.Contains(t, buf.String(), "/ws/a.txt")
}

func TestResolveInteractive(t *testing.T) {
	svc, _, runner := newTestService(t, map[string]response{
		"resolve -noprompt -preview": {stderr: "/ws/a.txt: The item content has changed\n/ws/b.txt: The item content has changed", code: 1},
		"resolve -noprompt -auto":    {stdout: "Resolved /ws/b.txt as AcceptYours"},
	})
	var offered []string
	svc.PromptFn = func(_ string, options []string) ([]string, error) {
		offered = options
		return []string{"/ws/b.txt"}, nil
	}

	require.NoError(t, svc.Resolve("/ws", nil, tfvc.AcceptYours))
	assert.Equal(t, []string{"/ws/a.txt", "/ws/b.txt"}, offered)
	assert.Equal(t, []string{
		"resolve -noprompt -preview -recursive /ws",
		"resolve -noprompt -auto:AcceptYours /ws/b.txt",
	}, runner.commands())
}

func TestResolveInteractiveNothingSelected(t *testing.T) {
	svc, buf, runner := newTestService(t, map[string]response{
		"resolve": {stderr: "/ws/a.txt: The item content has changed", code: 1},
	})
	require.NoError(t, svc.Resolve("/ws", nil, tfvc.AcceptYours))
	assert.Len(t, runner.commands(), 1)
	assert.Contains(t, buf.String(), "Nothing selected.")
}

func TestLock(t *testing.T) {
	svc, buf, runner := newTestService(t, map[string]response{"lock": {}})
	require.NoError(t, svc.Lock("/ws", tfvc.LockCheckin, false, []string{"/ws/a.txt"}))
	assert.Equal(t, []string{"lock -noprompt -lock:checkin /ws/a.txt"}, runner.commands())
	assert.Contains(t, buf.String(), "Locked 1 item(s) for checkin.")
}
