package tf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joelmoss/tfx/internal/tfvc"
)

// NewPrint downloads one version of item into destination and returns the
// destination path. The file is only written when tf succeeded.
//
// The content travels through the line-based runner, so the file is written
// with \n line endings and always ends in a newline. CRLF text files come
// back as LF and binary files are not reproduced byte for byte.
//
//	print -noprompt [-version:v] <item>
func NewPrint(ctx *Context, item string, version *tfvc.VersionSpec, destination string) (*Command[string], error) {
	if err := required(KindPrint, "item", item); err != nil {
		return nil, err
	}
	if err := required(KindPrint, "destination", destination); err != nil {
		return nil, err
	}
	cmd := newCommand(KindPrint, ctx, func(b *ArgumentBuilder) {
		if version != nil {
			b.AddSwitchValue("version", version.String())
		}
		b.Add(item)
	}, decodePrint)
	cmd.commit = func(content string) (string, error) {
		if err := writeDownload(destination, content); err != nil {
			return "", err
		}
		return destination, nil
	}
	return cmd, nil
}

// decodePrint returns the file content with \n line endings.
func decodePrint(stdout, stderr string) (string, error) {
	if err := failIfStderr(stderr); err != nil {
		return "", err
	}
	return stdout, nil
}

func writeDownload(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
