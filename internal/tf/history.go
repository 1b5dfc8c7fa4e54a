package tf

import (
	"encoding/xml"
	"strconv"

	"github.com/joelmoss/tfx/internal/tfvc"
)

// HistoryOptions control `tf history`. Zero values leave the switch out.
type HistoryOptions struct {
	Version   string
	User      string
	StopAfter int
	Recursive bool
	// ItemMode queries the item itself rather than its namespace.
	ItemMode bool
}

// NewHistory lists the changesets that touched item, newest first.
//
//	history -noprompt -format:xml [-recursive] [-stopafter:n] [-user:u] [-version:v] [-itemmode] <item>
func NewHistory(ctx *Context, workingDir, item string, opts HistoryOptions) (*Command[[]tfvc.ChangeSet], error) {
	if err := required(KindHistory, "item", item); err != nil {
		return nil, err
	}
	return newCommand(KindHistory, ctx, func(b *ArgumentBuilder) {
		b.SetWorkingDirectory(workingDir)
		b.AddSwitchValue("format", "xml")
		if opts.Recursive {
			b.AddSwitch("recursive")
		}
		if opts.StopAfter > 0 {
			b.AddSwitchValue("stopafter", strconv.Itoa(opts.StopAfter))
		}
		if opts.User != "" {
			b.AddSwitchValue("user", opts.User)
		}
		if opts.Version != "" {
			b.AddSwitchValue("version", opts.Version)
		}
		if opts.ItemMode {
			b.AddSwitch("itemmode")
		}
		b.Add(item)
	}, decodeHistory), nil
}

type xmlHistory struct {
	XMLName    xml.Name `xml:"history"`
	Changesets []struct {
		ID        string `xml:"id,attr"`
		Owner     string `xml:"owner,attr"`
		Committer string `xml:"committer,attr"`
		Date      string `xml:"date,attr"`
		Comment   string `xml:"comment"`
		Items     []struct {
			ServerItem string `xml:"server-item,attr"`
			ChangeType string `xml:"change-type,attr"`
		} `xml:"item"`
	} `xml:"changeset"`
}

// decodeHistory reads /history/changeset. Each item inherits the id and date
// of its changeset.
func decodeHistory(stdout, stderr string) ([]tfvc.ChangeSet, error) {
	if err := failIfStderr(stderr); err != nil {
		return nil, err
	}
	changesets := []tfvc.ChangeSet{}
	var doc xmlHistory
	if ok, err := decodeXML(stdout, &doc); err != nil || !ok {
		return changesets, err
	}
	for _, cs := range doc.Changesets {
		changes := make([]tfvc.PendingChange, 0, len(cs.Items))
		for _, item := range cs.Items {
			changes = append(changes, tfvc.PendingChange{
				ServerItem:  item.ServerItem,
				ChangeTypes: tfvc.ParseChangeTypes(item.ChangeType),
				Version:     cs.ID,
				Date:        cs.Date,
			})
		}
		changesets = append(changesets, tfvc.ChangeSet{
			ID:        cs.ID,
			Owner:     cs.Owner,
			Committer: cs.Committer,
			Date:      cs.Date,
			Comment:   cs.Comment,
			Changes:   changes,
		})
	}
	return changesets, nil
}
