package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

var jsonNull = []byte("null")

// object is a JSON object whose values are decoded on demand. Keys are
// matched exactly, unlike encoding/json struct decoding.
type object map[string]json.RawMessage

// decodeObject returns nil when data is not a JSON object.
func decodeObject(data []byte) object {
	if len(data) == 0 {
		return nil
	}
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	return obj
}

func (o object) text(key string) Text {
	var t Text
	_ = t.UnmarshalJSON(o[key])
	return t
}

func (o object) list(key string) StringList {
	var l StringList
	_ = l.UnmarshalJSON(o[key])
	return l
}

func (o object) dimension(key string) Dimension {
	var d Dimension
	_ = d.UnmarshalJSON(o[key])
	return d
}

func (o object) child(key string) object {
	return decodeObject(o[key])
}

// UnmarshalJSON decodes a manifest. The document must be syntactically valid
// JSON; beyond that any shape is accepted.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	*m = Manifest{}
	root := decodeObject(data)
	if root == nil {
		return nil
	}
	m.Metadata = decodeMetadata(root.child("metadata"))
	m.Resources = decodeResources(root["resources"])
	return nil
}

func decodeMetadata(meta object) Metadata {
	if meta == nil {
		return Metadata{}
	}
	a11y := meta.child("accessibility")
	var sufficient Sufficiency
	_ = sufficient.UnmarshalJSON(a11y["accessModeSufficient"])
	return Metadata{
		Identifier: meta.text("identifier"),
		Title:      meta.text("title"),
		Author:     meta.text("author"),
		Publisher:  meta.text("publisher"),
		Language:   meta.text("language"),
		Version:    meta.text(VersionKey),
		Layout:     meta.child("presentation").text("layout"),
		Accessibility: Accessibility{
			AccessMode:           a11y.list("accessMode"),
			AccessModeSufficient: sufficient,
			Summary:              a11y.text("summary"),
			Hazard:               a11y.list("hazard"),
			Feature:              a11y.list("feature"),
		},
	}
}

func decodeResources(data json.RawMessage) []Resource {
	var items []json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &items) != nil {
		return nil
	}
	resources := make([]Resource, 0, len(items))
	for _, raw := range items {
		res := decodeObject(raw)
		if res == nil {
			continue
		}
		resources = append(resources, Resource{
			Type:   res.text("type"),
			Width:  res.dimension("width"),
			Height: res.dimension("height"),
		})
	}
	return resources
}

// UnmarshalJSON never fails; see [Text].
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}
	if s, ok := decodeString(data); ok {
		*t = Text{Value: s, IsString: true}
		return nil
	}
	if repr, err := Repr(data); err == nil {
		t.Value = repr
	}
	return nil
}

// UnmarshalJSON never fails; see [StringList].
func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = nil
	if len(data) == 0 {
		return nil
	}
	if single, ok := decodeString(data); ok {
		*l = StringList{single}
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	*l = stringElements(items)
	return nil
}

// UnmarshalJSON never fails; see [Sufficiency].
func (s *Sufficiency) UnmarshalJSON(data []byte) error {
	*s = nil
	if len(data) == 0 {
		return nil
	}
	if single, ok := decodeString(data); ok {
		*s = Sufficiency{{single}}
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	groups := make(Sufficiency, 0, len(items))
	for _, raw := range items {
		if mode, ok := decodeString(raw); ok {
			groups = append(groups, ModeGroup{mode})
			continue
		}
		var combo []json.RawMessage
		if isArray(raw) && json.Unmarshal(raw, &combo) == nil {
			groups = append(groups, ModeGroup(stringElements(combo)))
		}
	}
	*s = groups
	return nil
}

// UnmarshalJSON accepts only JSON integer literals; anything else leaves the
// dimension invalid without failing. Integers beyond int64 saturate at
// math.MaxInt64 or math.MinInt64 and stay valid.
func (d *Dimension) UnmarshalJSON(data []byte) error {
	*d = Dimension{}
	n, err := strconv.ParseInt(string(bytes.TrimSpace(data)), 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil
	}
	*d = Dimension{Value: n, Valid: true}
	return nil
}

func stringElements(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, raw := range items {
		if s, ok := decodeString(raw); ok {
			out = append(out, s)
		}
	}
	return out
}

func isArray(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '['
}

// decodeString reports whether data is a JSON string. null is not a string.
func decodeString(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}
