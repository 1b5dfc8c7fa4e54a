package tfvc

import (
	"strings"
)

// OneLevelSuffix marks a mapping that only covers the folder itself and its
// direct children.
const OneLevelSuffix = "/*"

// Location tells where the workspace metadata lives.
type Location string

const (
	LocationUnknown Location = ""
	LocationServer  Location = "server"
	LocationLocal   Location = "local"
)

// ParseLocation reads the "Location:" value of a detailed workspace listing.
func ParseLocation(s string) Location {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "server":
		return LocationServer
	case "local":
		return LocationLocal
	default:
		return LocationUnknown
	}
}

// Permission is the workspace permission profile accepted by `tf workspace`.
type Permission string

const (
	PermissionPrivate       Permission = "Private"
	PermissionPublicLimited Permission = "PublicLimited"
	PermissionPublic        Permission = "Public"
)

// FileTime controls the timestamp of files written by get.
type FileTime string

const (
	FileTimeCurrent FileTime = "current"
	FileTimeCheckin FileTime = "checkin"
)

// Mapping binds a server path to a local folder. Cloaked mappings have no
// local path.
type Mapping struct {
	ServerPath string `json:"serverPath" yaml:"serverPath"`
	LocalPath  string `json:"localPath,omitempty" yaml:"localPath,omitempty"`
	Cloaked    bool   `json:"cloaked,omitempty" yaml:"cloaked,omitempty"`
}

// IsOneLevel reports whether the mapping is not full depth.
func (m Mapping) IsOneLevel() bool {
	return strings.HasSuffix(m.ServerPath, OneLevelSuffix)
}

// Folder returns the server path without the one-level marker.
func (m Mapping) Folder() string {
	return strings.TrimSuffix(m.ServerPath, OneLevelSuffix)
}

// OneLevelServerPath appends the one-level marker to a server folder.
func OneLevelServerPath(serverPath string) string {
	if strings.HasSuffix(serverPath, OneLevelSuffix) {
		return serverPath
	}
	return strings.TrimSuffix(serverPath, "/") + OneLevelSuffix
}

// Workspace is a named set of mappings on one collection.
type Workspace struct {
	Name       string    `json:"name" yaml:"name"`
	Owner      string    `json:"owner,omitempty" yaml:"owner,omitempty"`
	Computer   string    `json:"computer,omitempty" yaml:"computer,omitempty"`
	Comment    string    `json:"comment,omitempty" yaml:"comment,omitempty"`
	Collection string    `json:"collection,omitempty" yaml:"collection,omitempty"`
	Location   Location  `json:"location,omitempty" yaml:"location,omitempty"`
	Mappings   []Mapping `json:"mappings,omitempty" yaml:"mappings,omitempty"`
}

// Server groups the workspaces listed under one "Collection:" heading.
type Server struct {
	Name       string      `json:"name" yaml:"name"`
	Workspaces []Workspace `json:"workspaces" yaml:"workspaces"`
}

// mappingKey compares server paths case-insensitively, as TFVC does.
func mappingKey(m Mapping) string {
	return strings.ToLower(m.ServerPath)
}

// MappingsDiffer reports whether the two mapping lists bind different
// server paths, local paths or cloak states. Order is ignored.
func MappingsDiffer(current, wanted []Mapping) bool {
	if len(current) != len(wanted) {
		return true
	}
	byKey := make(map[string]Mapping, len(current))
	for _, m := range current {
		byKey[mappingKey(m)] = m
	}
	for _, w := range wanted {
		c, ok := byKey[mappingKey(w)]
		if !ok || c.Cloaked != w.Cloaked || c.LocalPath != w.LocalPath {
			return true
		}
	}
	return false
}

// MappingsToRemove returns the mappings of current whose server path no
// longer appears in wanted.
func MappingsToRemove(current, wanted []Mapping) []Mapping {
	keep := make(map[string]struct{}, len(wanted))
	for _, w := range wanted {
		keep[mappingKey(w)] = struct{}{}
	}
	var remove []Mapping
	for _, c := range current {
		if _, ok := keep[mappingKey(c)]; !ok {
			remove = append(remove, c)
		}
	}
	return remove
}
