package tf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelmoss/tfx/internal/errs"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	return path
}

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDetectConfiguredPath(t *testing.T) {
	dir := t.TempDir()
	tf := touch(t, filepath.Join(dir, "tf"))

	path, err := Locator{Configured: tf, Getenv: env(nil), Dirs: []string{}, GOOS: "linux"}.Detect()
	require.NoError(t, err)
	assert.Equal(t, tf, path)

	path, err = Locator{Configured: dir, Getenv: env(nil), Dirs: []string{}, GOOS: "linux"}.Detect()
	require.NoError(t, err)
	assert.Equal(t, tf, path)
}

func TestDetectTFHome(t *testing.T) {
	home := t.TempDir()
	tf := touch(t, filepath.Join(home, "tf.sh"))

	path, err := Locator{Getenv: env(map[string]string{"TF_HOME": home}), Dirs: []string{}, GOOS: "linux"}.Detect()
	require.NoError(t, err)
	assert.Equal(t, tf, path)
}

func TestDetectOnPath(t *testing.T) {
	root := t.TempDir()
	tf := touch(t, filepath.Join(root, "TEE-CLC-14.0.3", "tf"))
	other := t.TempDir()
	touch(t, filepath.Join(other, "tf"))

	pathList := other + string(os.PathListSeparator) + filepath.Join(root, "TEE-CLC-14.0.3")
	path, err := Locator{Getenv: env(map[string]string{"PATH": pathList}), Dirs: []string{}, GOOS: "linux"}.Detect()
	require.NoError(t, err)
	assert.Equal(t, tf, path)
}

func TestDetectStandardDirs(t *testing.T) {
	opt := t.TempDir()
	tf := touch(t, filepath.Join(opt, "TEE-CLC-14.114.0", "tf.cmd"))

	path, err := Locator{Getenv: env(nil), Dirs: []string{filepath.Join(opt, "missing"), opt}, GOOS: "windows"}.Detect()
	require.NoError(t, err)
	assert.Equal(t, tf, path)
}

func TestDetectNotFound(t *testing.T) {
	_, err := Locator{Configured: filepath.Join(t.TempDir(), "nope"), Getenv: env(nil), Dirs: []string{t.TempDir()}, GOOS: "linux"}.Detect()
	assert.ErrorIs(t, err, errs.ErrToolNotFound)
}
