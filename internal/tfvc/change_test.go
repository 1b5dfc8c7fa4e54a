package tfvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChangeTypes(t *testing.T) {
	assert.Equal(t, []ChangeType{ChangeMerge, ChangeEdit}, ParseChangeTypes("merge, edit"))
	assert.Equal(t, []ChangeType{ChangeSourceRename, ChangeUnknown}, ParseChangeTypes("Source Rename,frobnicate"))
	assert.Empty(t, ParseChangeTypes(""))
	assert.Empty(t, ParseChangeTypes(" , "))
}

func TestChangeTypeHelpers(t *testing.T) {
	types := []ChangeType{ChangeRename, ChangeEdit}
	assert.True(t, HasChangeType(types, ChangeEdit))
	assert.False(t, HasChangeType(types, ChangeAdd))
	assert.Equal(t, "rename, edit", JoinChangeTypes(types))
}

func TestParseLockLevel(t *testing.T) {
	for in, want := range map[string]LockLevel{
		"":          LockNone,
		"none":      LockNone,
		"noNe":      LockNone,
		"checkin":   LockCheckin,
		"check-in":  LockCheckin,
		"CHECK-IN":  LockCheckin,
		"checkOut":  LockCheckout,
		"CHECK-OUT": LockCheckout,
	} {
		got, err := ParseLockLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLockLevel("failure")
	assert.Error(t, err)
}
