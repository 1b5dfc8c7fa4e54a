package tf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joelmoss/tfx/internal/errs"
)

// NewCheckin commits the pending changes of paths and returns the new
// changeset number. Work items are associated by id.
//
//	checkin -noprompt -comment:c [-associate:1,2] <paths>
func NewCheckin(ctx *Context, paths []string, comment string, workItems ...int) (*Command[string], error) {
	if err := requiredItems(KindCheckin, "paths", paths); err != nil {
		return nil, err
	}
	return newCommand(KindCheckin, ctx, func(b *ArgumentBuilder) {
		b.AddSwitchValue("comment", comment)
		if len(workItems) > 0 {
			ids := make([]string, len(workItems))
			for i, id := range workItems {
				ids[i] = strconv.Itoa(id)
			}
			b.AddSwitchValue("associate", strings.Join(ids, ","))
		}
		b.Add(paths...)
	}, decodeCheckin), nil
}

// decodeCheckin finds the changeset in
//
//	/home/me/ws/src:
//	Checking in edit: Main.java
//
//	Changeset #20 checked in.
//
// A failed checkin prints its cause on stdout, so the first stdout line that
// is not progress output becomes the error message.
func decodeCheckin(stdout, stderr string) (string, error) {
	if strings.TrimSpace(stderr) != "" {
		for _, line := range splitLines(stdout) {
			if !isExpectedCheckinLine(line) {
				return "", toolError(line)
			}
		}
		return "", fmt.Errorf("%w: %s", errs.ErrCheckinFailed, strings.TrimSpace(stderr))
	}
	return changesetNumber(stdout), nil
}
