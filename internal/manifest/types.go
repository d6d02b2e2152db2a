package manifest

import "strings"

// VersionKey is the metadata key Readium uses for the EPUB package version.
const VersionKey = "http://www.idpf.org/2007/opf#version"

// Manifest is the subset of a publication manifest the reporter consumes.
type Manifest struct {
	Metadata  Metadata
	Resources []Resource
}

// Metadata holds the bibliographic and accessibility metadata of a publication.
type Metadata struct {
	Identifier    Text
	Title         Text
	Author        Text
	Publisher     Text
	Language      Text
	Version       Text
	Layout        Text
	Accessibility Accessibility
}

// Accessibility mirrors the schema.org accessibility properties Readium
// reports under metadata.accessibility.
type Accessibility struct {
	AccessMode           StringList
	AccessModeSufficient Sufficiency
	Summary              Text
	Hazard               StringList
	Feature              StringList
}

// Resource is one entry of the manifest's resources list.
type Resource struct {
	Type   Text
	Width  Dimension
	Height Dimension
}

// MediaType returns the lower-cased MIME type of the resource.
func (r Resource) MediaType() string {
	if !r.Type.IsString {
		return ""
	}
	return strings.ToLower(r.Type.Value)
}

// Text is a loosely typed scalar field. A JSON string is kept verbatim; any
// other JSON value is kept in its [Repr] form, so {"name": "Jane"} becomes
// {'name': 'Jane'}. Absent and null fields are empty.
type Text struct {
	Value    string
	IsString bool
}

func (t Text) String() string { return t.Value }

// StringList is a field that may hold either a single string or a list of
// strings. Non-string list elements are dropped.
type StringList []string

// Join concatenates the list with sep. A single-string source round-trips
// unchanged.
func (l StringList) Join(sep string) string {
	return strings.Join(l, sep)
}

// ModeGroup is one combination of access modes that is sufficient on its own.
type ModeGroup []string

// IsOnly reports whether the group consists of exactly the given mode.
func (g ModeGroup) IsOnly(mode string) bool {
	return len(g) == 1 && g[0] == mode
}

// Sufficiency is the normalized accessModeSufficient value: an ordered list
// of mode groups. A bare string element becomes a single-mode group.
type Sufficiency []ModeGroup

// String renders the groups with modes joined by "," and groups joined by ";".
func (s Sufficiency) String() string {
	parts := make([]string, 0, len(s))
	for _, group := range s {
		parts = append(parts, strings.Join(group, ","))
	}
	return strings.Join(parts, ";")
}

// Contains reports whether any group is exactly the single given mode.
func (s Sufficiency) Contains(mode string) bool {
	for _, group := range s {
		if group.IsOnly(mode) {
			return true
		}
	}
	return false
}

// Dimension is an image width or height. Valid is false when the field is
// absent or not an integer literal.
type Dimension struct {
	Value int64
	Valid bool
}
