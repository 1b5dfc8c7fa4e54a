package tf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelmoss/tfx/internal/errs"
	"github.com/joelmoss/tfx/internal/tfvc"
)

const historyOutput = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
	"<history>\n" +
	"<changeset id=\"4\" owner=\"john\" committer=\"jane\" date=\"2016-06-07T11:18:18.790-0400\">\n" +
	"<comment>add readme</comment>\n" +
	"<item change-type=\"add\" server-item=\"$/tfs01/readme.txt\"/>\n" +
	"<item change-type=\"edit, encoding\" server-item=\"$/tfs01/build.xml\"/>\n" +
	"</changeset>\n" +
	"<changeset id=\"3\" owner=\"john\" committer=\"john\" date=\"2016-06-06T11:18:18.790-0400\">\n" +
	"<item change-type=\"delete\" server-item=\"$/tfs01/old.txt\"/>\n" +
	"</changeset>\n" +
	"</history>"

func TestHistoryArguments(t *testing.T) {
	cmd, err := NewHistory(nil, "/ws", "$/tfs01", HistoryOptions{
		Recursive: true,
		StopAfter: 5,
		User:      "john",
		Version:   "C1~C4",
		ItemMode:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "history -noprompt -format:xml -recursive -stopafter:5 -user:john -version:C1~C4 -itemmode $/tfs01", cmd.Arguments().String())

	cmd, err = NewHistory(nil, "", "$/tfs01", HistoryOptions{})
	require.NoError(t, err)
	assert.Equal(t, "history -noprompt -format:xml $/tfs01", cmd.Arguments().String())
}

func TestDecodeHistory(t *testing.T) {
	changesets, err := decodeHistory(historyOutput, "")
	require.NoError(t, err)
	require.Len(t, changesets, 2)

	cs := changesets[0]
	assert.Equal(t, "4", cs.ID)
	assert.Equal(t, "john", cs.Owner)
	assert.Equal(t, "jane", cs.Committer)
	assert.Equal(t, "add readme", cs.Comment)
	assert.Equal(t, []tfvc.PendingChange{
		{ServerItem: "$/tfs01/readme.txt", ChangeTypes: []tfvc.ChangeType{tfvc.ChangeAdd}, Version: "4", Date: "2016-06-07T11:18:18.790-0400"},
		{ServerItem: "$/tfs01/build.xml", ChangeTypes: []tfvc.ChangeType{tfvc.ChangeEdit, tfvc.ChangeEncoding}, Version: "4", Date: "2016-06-07T11:18:18.790-0400"},
	}, cs.Changes)

	assert.Empty(t, changesets[1].Comment)
	assert.Len(t, changesets[1].Changes, 1)
}

func TestDecodeHistoryEmptyAndErrors(t *testing.T) {
	changesets, err := decodeHistory("", "")
	require.NoError(t, err)
	assert.Empty(t, changesets)

	_, err = decodeHistory("", "TF10401: The value C99 is not a valid changeset")
	assert.ErrorIs(t, err, errs.ErrTool)
}
