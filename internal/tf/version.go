package tf

import (
	"errors"
	"regexp"

	"github.com/joelmoss/tfx/internal/errs"
	"github.com/joelmoss/tfx/internal/tfvc"
)

var (
	toolVersionPattern = regexp.MustCompile(`version (\d+(?:\.\d+)*)`)
	errNoVersion       = errors.New("no version in the help banner")
)

// NewVersion reads the client version from the help banner, e.g.
// "Team Explorer Everywhere Command Line Client (version 14.0.3.201603291047)".
//
//	add -noprompt -?
func NewVersion() *Command[tfvc.ToolVersion] {
	return newCommand(KindVersion, nil, func(b *ArgumentBuilder) {
		b.Add("-?")
	}, decodeVersion)
}

func decodeVersion(stdout, _ string) (tfvc.ToolVersion, error) {
	m := toolVersionPattern.FindStringSubmatch(stdout)
	if m == nil {
		return tfvc.ToolVersion{}, &errs.DecodeError{Line: firstLine(stdout), Err: errNoVersion}
	}
	v, err := tfvc.ParseToolVersion(m[1])
	if err != nil {
		return tfvc.ToolVersion{}, &errs.DecodeError{Line: m[0], Err: err}
	}
	return v, nil
}
