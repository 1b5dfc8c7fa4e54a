package tf

import (
	"encoding/xml"
	"strings"

	"github.com/joelmoss/tfx/internal/tfvc"
)

// NewLabels lists labels and the items they capture, optionally filtered by
// a name pattern.
//
//	labels -noprompt -format:xml [filter]
func NewLabels(ctx *Context, workingDir, filter string) *Command[[]tfvc.Label] {
	return newCommand(KindLabels, ctx, func(b *ArgumentBuilder) {
		b.SetWorkingDirectory(workingDir)
		b.AddSwitchValue("format", "xml")
		if filter != "" {
			b.Add(filter)
		}
	}, decodeLabels)
}

type xmlLabels struct {
	XMLName xml.Name   `xml:"labels"`
	Labels  []xmlLabel `xml:"label"`
}

type xmlLabel struct {
	Name    string `xml:"name,attr"`
	Scope   string `xml:"scope,attr"`
	User    string `xml:"user,attr"`
	Date    string `xml:"date,attr"`
	Comment string `xml:"comment"`
	Items   []struct {
		ServerItem string `xml:"server-item,attr"`
		Changeset  string `xml:"changeset,attr"`
	} `xml:"item"`
}

// decodeLabels reads /labels/label. With nothing to list tf prints a
// sentence instead of an empty document.
func decodeLabels(stdout, stderr string) ([]tfvc.Label, error) {
	if err := failIfStderr(stderr); err != nil {
		return nil, err
	}
	labels := []tfvc.Label{}
	if isNoLabelsOutput(stdout) {
		return labels, nil
	}
	var doc xmlLabels
	if ok, err := decodeXML(stdout, &doc); err != nil || !ok {
		return labels, err
	}
	for _, l := range doc.Labels {
		label := tfvc.Label{
			Name:    l.Name,
			Scope:   l.Scope,
			User:    l.User,
			Date:    l.Date,
			Comment: l.Comment,
			Items:   make([]tfvc.LabelItem, 0, len(l.Items)),
		}
		for _, item := range l.Items {
			label.Items = append(label.Items, tfvc.LabelItem{ServerItem: item.ServerItem, Changeset: item.Changeset})
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// LabelOptions control `tf label`.
type LabelOptions struct {
	Comment   string
	Recursive bool
}

// NewCreateLabel applies a label to items, creating it or moving it to the
// given versions when it exists.
//
//	label -noprompt -comment:c [-recursive] <name> <items>
func NewCreateLabel(ctx *Context, workingDir, name string, items []string, opts LabelOptions) (*Command[tfvc.LabelStatus], error) {
	if err := required(KindCreateLabel, "label name", name); err != nil {
		return nil, err
	}
	if err := requiredItems(KindCreateLabel, "items", items); err != nil {
		return nil, err
	}
	return newCommand(KindCreateLabel, ctx, func(b *ArgumentBuilder) {
		b.SetWorkingDirectory(workingDir)
		b.AddSwitchValue("comment", opts.Comment)
		if opts.Recursive {
			b.AddSwitch("recursive")
		}
		b.Add(name).Add(items...)
	}, decodeCreateLabel), nil
}

// decodeCreateLabel reads "Created label MyLabel@$/proj" or
// "Updated label MyLabel@$/proj".
func decodeCreateLabel(stdout, stderr string) (tfvc.LabelStatus, error) {
	if err := failIfStderr(stderr); err != nil {
		return "", err
	}
	for _, line := range splitLines(stdout) {
		switch trimmed := strings.TrimSpace(line); {
		case hasPrefixFold(trimmed, labelCreatedPrefix):
			return tfvc.LabelCreated, nil
		case hasPrefixFold(trimmed, labelUpdatedPrefix):
			return tfvc.LabelUpdated, nil
		}
	}
	return "", toolError("unexpected output from label: " + firstLine(stdout))
}
