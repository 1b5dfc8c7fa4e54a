package tf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelmoss/tfx/internal/errs"
	"github.com/joelmoss/tfx/internal/tfvc"
)

func TestPrintWritesDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "Main.java")
	v := tfvc.ParseVersionSpec("C12")
	cmd, err := NewPrint(nil, "$/proj/Main.java", &v, dest)
	require.NoError(t, err)
	assert.Equal(t, "print -noprompt -version:C12 $/proj/Main.java", cmd.Arguments().String())

	r := &scriptedRunner{stdout: []string{"class Main {", "}"}}
	path, err := cmd.RunAndWait(r)
	require.NoError(t, err)
	assert.Equal(t, dest, path)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "class Main {\n}\n", string(content))
}

func TestPrintDoesNotWriteOnFailure(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "Main.java")
	cmd, err := NewPrint(nil, "$/proj/Main.java", nil, dest)
	require.NoError(t, err)
	assert.Equal(t, "print -noprompt $/proj/Main.java", cmd.Arguments().String())

	_, err = cmd.Decode("partial", "", 1)
	assert.ErrorIs(t, err, errs.ErrTool)
	assert.NoFileExists(t, dest)

	_, err = cmd.Decode("", "TF14019: The file $/proj/Main.java cannot be found.", 0)
	assert.ErrorIs(t, err, errs.ErrTool)
	assert.NoFileExists(t, dest)
}

func TestPrintRequiresDestination(t *testing.T) {
	_, err := NewPrint(nil, "$/proj/Main.java", nil, "")
	assert.ErrorIs(t, err, errs.ErrArgument)
}

func TestPrintNormalisesLineEndings(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "notes.txt")
	cmd, err := NewPrint(nil, "$/proj/notes.txt", nil, dest)
	require.NoError(t, err)
	cmd.args = func(b *ArgumentBuilder) {
		b.args = []argument{{value: "-c"}, {value: `printf 'one\r\ntwo'`}}
	}

	_, err = cmd.RunAndWait(&ExecRunner{Path: shell(t)})
	require.NoError(t, err)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(content))
}
