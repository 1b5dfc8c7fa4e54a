package tf

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/joelmoss/tfx/internal/errs"
)

const xmlPrefix = "<?xml "

// xmlDocument returns the XML part of stdout, skipping anything printed
// before the declaration. ok is false when there is no output at all.
func xmlDocument(stdout string) (doc string, ok bool) {
	if strings.TrimSpace(stdout) == "" {
		return "", false
	}
	if i := strings.Index(stdout, xmlPrefix); i > 0 {
		return stdout[i:], true
	}
	return stdout, true
}

// decodeXML unmarshals stdout into v. v selects its element path through
// its struct tags, e.g. a root tagged "labels" with a []label field tagged
// "label" selects /labels/label.
func decodeXML(stdout string, v any) (bool, error) {
	doc, ok := xmlDocument(stdout)
	if !ok {
		return false, nil
	}
	dec := xml.NewDecoder(strings.NewReader(doc))
	// tf declares the platform encoding; the bytes we read are already text.
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }
	if err := dec.Decode(v); err != nil {
		return false, &errs.DecodeError{Line: firstLine(doc), Err: err}
	}
	return true, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
