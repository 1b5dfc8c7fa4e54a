package tfvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeResults(t *testing.T) {
	assert.True(t, MergeResults{}.NoChangesToMerge())

	r := MergeResults{Mappings: []MergeMapping{{SourceItem: "$/a"}, {SourceItem: "$/b", IsConflict: true}}}
	assert.False(t, r.NoChangesToMerge())
	assert.True(t, r.ConflictsExist())
}

func TestConflictResultsAll(t *testing.T) {
	r := ConflictResults{
		ContentConflicts: []string{"a"},
		RenameConflicts:  []string{"b"},
		BothConflicts:    []string{"c"},
	}
	assert.Equal(t, []string{"a", "b", "c"}, r.All())
}

func TestParseResolveType(t *testing.T) {
	rt, err := ParseResolveType("acceptyours")
	require.NoError(t, err)
	assert.Equal(t, AcceptYours, rt)

	rt, err = ParseResolveType("AcceptYoursRenameTheirs")
	require.NoError(t, err)
	assert.Equal(t, AcceptYoursRename, rt)

	_, err = ParseResolveType("TakeBoth")
	assert.Error(t, err)
}
