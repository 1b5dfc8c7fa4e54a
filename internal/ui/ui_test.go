package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/joelmoss/tfx/internal/tfvc"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestPrintTableAlignsColumns(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	PrintTable(&buf, []string{"NAME", "OWNER"}, [][]string{
		{"ws1", "alice"},
		{"longer-name", "bob"},
	}, 2)

	want := "  NAME         OWNER\n" +
		"  ws1          alice\n" +
		"  longer-name  bob\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, nil, 0)
	assert.Empty(t, buf.String())
}

func TestPrintTableIgnoresEscapesForWidth(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, [][]string{
		{"\033[32madd\033[0m", "a.txt"},
		{"edit", "b.txt"},
	}, 0)

	assert.Equal(t, "\033[32madd\033[0m   a.txt\nedit  b.txt\n", buf.String())
}

func TestPrintList(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	PrintList(&buf, "Added", []string{"a.txt", "b.txt"}, Plain)
	assert.Equal(t, "Added\n  a.txt\n  b.txt\n", buf.String())

	buf.Reset()
	PrintList(&buf, "Added", nil, Plain)
	assert.Empty(t, buf.String())
}

func TestChangeTypesText(t *testing.T) {
	noColor(t)
	assert.Equal(t, "add", ChangeTypes([]tfvc.ChangeType{tfvc.ChangeAdd}))
	assert.Equal(t, "delete", ChangeTypes([]tfvc.ChangeType{tfvc.ChangeDelete}))
}

func TestStripAnsi(t *testing.T) {
	assert.Equal(t, "hello", stripAnsi("\033[1;31mhello\033[0m"))
	assert.Equal(t, "plain", stripAnsi("plain"))
}

func TestDisplayPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no home directory")
	}
	assert.Equal(t, "~"+string(filepath.Separator)+"src", DisplayPath(filepath.Join(home, "src")))
	assert.Equal(t, "/elsewhere", DisplayPath("/elsewhere"))
}
