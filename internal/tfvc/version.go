package tfvc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// VersionType is the kind of a version spec, identified on the command line by
// its one letter prefix.
type VersionType string

const (
	VersionChangeset VersionType = "C"
	VersionLatest    VersionType = "T"
	VersionDate      VersionType = "D"
	VersionLabel     VersionType = "L"
	VersionWorkspace VersionType = "W"
)

const versionDateLayout = "2006-01-02T15:04:05"

// Latest is the tip version.
var Latest = VersionSpec{Type: VersionLatest}

// VersionSpec identifies a version of an item, e.g. C123, T, D2016-01-01T00:00,
// LMyLabel or Wworkspace;owner.
type VersionSpec struct {
	Type  VersionType `json:"type" yaml:"type"`
	Value string      `json:"value,omitempty" yaml:"value,omitempty"`
}

// ParseVersionSpec reads the textual form of a version spec. Empty and
// unknown prefixes yield Latest.
func ParseVersionSpec(s string) VersionSpec {
	if s == "" {
		return Latest
	}
	switch t := VersionType(strings.ToUpper(s[:1])); t {
	case VersionChangeset, VersionDate, VersionLabel, VersionWorkspace:
		return VersionSpec{Type: t, Value: s[1:]}
	default:
		return Latest
	}
}

// ChangesetVersion returns the spec for a changeset number, which must be
// positive.
func ChangesetVersion(id int) (VersionSpec, error) {
	if id <= 0 {
		return VersionSpec{}, fmt.Errorf("changeset number must be positive, got %d", id)
	}
	return VersionSpec{Type: VersionChangeset, Value: strconv.Itoa(id)}, nil
}

// DateVersion returns the spec for a point in time.
func DateVersion(t time.Time) VersionSpec {
	return VersionSpec{Type: VersionDate, Value: t.Format(versionDateLayout)}
}

func (v VersionSpec) String() string {
	if v.Type == "" || v.Type == VersionLatest {
		return string(VersionLatest)
	}
	return string(v.Type) + v.Value
}

// VersionRange is an inclusive range of versions, rendered as start~end.
type VersionRange struct {
	Start VersionSpec `json:"start" yaml:"start"`
	End   VersionSpec `json:"end" yaml:"end"`
}

// ParseVersionRange reads "C23~C24". A single version is expanded into a range
// that starts and ends with it.
func ParseVersionRange(s string) (VersionRange, error) {
	if s == "" {
		return VersionRange{}, fmt.Errorf("version range is empty")
	}
	start, end, found := strings.Cut(s, "~")
	if !found {
		v := ParseVersionSpec(s)
		return VersionRange{Start: v, End: v}, nil
	}
	return VersionRange{Start: ParseVersionSpec(start), End: ParseVersionSpec(end)}, nil
}

func (r VersionRange) String() string {
	return r.Start.String() + "~" + r.End.String()
}
