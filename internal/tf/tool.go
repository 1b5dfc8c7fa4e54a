package tf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joelmoss/tfx/internal/errs"
	"github.com/joelmoss/tfx/internal/tfvc"
)

// teeDirPrefix is the folder name Team Explorer Everywhere unpacks into,
// e.g. TEE-CLC-14.0.3.
const teeDirPrefix = "TEE-CLC"

// standardDirs are searched for a TEE-CLC* folder when nothing else finds tf.
var standardDirs = []string{
	"/opt/local/opt",
	"/opt",
	"/sbin",
	"/usr/share",
	"/usr/sbin",
	"/usr/local/opt",
	"/usr/local/share",
	"/usr/local",
}

// Locator finds the tf executable. The zero value searches the real
// environment.
type Locator struct {
	// Configured is an explicit path to tf or to its folder.
	Configured string
	Getenv     func(string) string
	// Dirs overrides standardDirs.
	Dirs []string
	GOOS string
}

func executableNames(goos string) []string {
	if goos == "windows" {
		return []string{"tf.exe", "tf.bat", "tf.cmd"}
	}
	return []string{"tf", "tf.sh"}
}

// Detect looks for tf, in order: the configured path, TF_HOME, TEE-CLC
// folders on PATH and TEE-CLC folders in the usual install locations.
func (l Locator) Detect() (string, error) {
	getenv, goos, dirs := l.Getenv, l.GOOS, l.Dirs
	if getenv == nil {
		getenv = os.Getenv
	}
	if goos == "" {
		goos = runtime.GOOS
	}
	if dirs == nil {
		dirs = standardDirs
	}
	names := executableNames(goos)

	if l.Configured != "" {
		if isFile(l.Configured) {
			return l.Configured, nil
		}
		if path, ok := findIn(l.Configured, names); ok {
			return path, nil
		}
		slog.Warn("configured tf path does not exist", "path", l.Configured)
	}
	if home := getenv("TF_HOME"); home != "" {
		if path, ok := findIn(home, names); ok {
			return path, nil
		}
	}
	for _, dir := range filepath.SplitList(getenv("PATH")) {
		if !strings.HasPrefix(filepath.Base(dir), teeDirPrefix) {
			continue
		}
		if path, ok := findIn(dir, names); ok {
			return path, nil
		}
	}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || !strings.HasPrefix(e.Name(), teeDirPrefix) {
				continue
			}
			if path, ok := findIn(filepath.Join(dir, e.Name()), names); ok {
				return path, nil
			}
		}
	}
	return "", errs.ErrToolNotFound
}

func findIn(dir string, names []string) (string, bool) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if isFile(path) {
			return path, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CheckVersion runs tf to read its version and fails with
// errs.ErrToolVersion when it is older than tfvc.MinimumToolVersion.
func CheckVersion(r Runner) (tfvc.ToolVersion, error) {
	v, err := NewVersion().RunAndWait(r)
	if err != nil {
		return v, err
	}
	if v.Compare(tfvc.MinimumToolVersion) < 0 {
		return v, fmt.Errorf("%w: found %s, need %s or later", errs.ErrToolVersion, v, tfvc.MinimumToolVersion)
	}
	return v, nil
}
