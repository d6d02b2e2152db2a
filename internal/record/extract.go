package record

import (
	"math"
	"regexp"
	"strings"

	"github.com/tvdtogt/a11yExtractor/internal/manifest"
)

// isbnPattern matches a 13-digit ISBN with the 978 prefix anywhere in a string.
var isbnPattern = regexp.MustCompile(`978[0-9]{10}`)

const (
	smallAreaLimit  = 1000
	mediumAreaLimit = 10000

	textualMode = "textual"
)

// Extract flattens a manifest into a report row. fileName is the manifest's
// base name; it fills the fileName column and is the ISBN fallback source.
// Extract always produces a complete record; a nil manifest yields a row that
// only carries the file name and ISBN fallback.
func Extract(m *manifest.Manifest, fileName string) Record {
	if m == nil {
		m = &manifest.Manifest{}
	}
	md := m.Metadata
	a11y := md.Accessibility

	r := Record{
		FileName:             fileName,
		Identifier:           md.Identifier.Value,
		ISBN:                 ExtractISBN(md.Identifier, fileName),
		Title:                md.Title.Value,
		Author:               md.Author.Value,
		Publisher:            md.Publisher.Value,
		Language:             md.Language.Value,
		Version:              md.Version.Value,
		Layout:               md.Layout.Value,
		AccessMode:           a11y.AccessMode.Join(","),
		AccessModeSufficient: a11y.AccessModeSufficient.String(),
		NonVisualReading:     Flag(a11y.AccessModeSufficient.Contains(textualMode)),
		Summary:              a11y.Summary.Value,
		Hazard:               a11y.Hazard.Join(","),
	}
	r.applyFeatures(a11y.Feature)
	r.countImages(m.Resources)
	return r
}

// ExtractISBN searches the identifier, when it is a JSON string, and then the
// file name for a 978-prefixed 13-digit ISBN. It returns "" when neither holds one.
func ExtractISBN(identifier manifest.Text, fileName string) string {
	if identifier.IsString {
		if match := isbnPattern.FindString(identifier.Value); match != "" {
			return match
		}
	}
	return isbnPattern.FindString(fileName)
}

func (r *Record) applyFeatures(features manifest.StringList) {
	var other []string
	for _, feature := range features {
		if flag := r.featureFlag(feature); flag != nil {
			*flag = true
			continue
		}
		other = append(other, feature)
	}
	r.OtherAccessibilityFeatures = strings.Join(other, ",")
}

func (r *Record) countImages(resources []manifest.Resource) {
	for _, res := range resources {
		switch res.MediaType() {
		case "image/jpeg":
			r.JPEG++
		case "image/png":
			r.PNG++
		case "image/gif":
			r.GIF++
		default:
			continue
		}
		if !res.Width.Valid || !res.Height.Valid {
			continue
		}
		switch SizeClass(res.Width.Value, res.Height.Value) {
		case SizeSmall:
			r.SmallImages++
		case SizeMedium:
			r.MediumImages++
		case SizeLarge:
			r.LargeImages++
		}
	}
	r.Images = r.JPEG + r.PNG + r.GIF
}

// Size is an image pixel-area bucket.
type Size int

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
)

func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	default:
		return "large"
	}
}

// SizeClass buckets an image by width*height: below 1000 is small, up to and
// including 10000 is medium, anything larger is large.
func SizeClass(width, height int64) Size {
	area, ok := multiply(width, height)
	switch {
	case !ok:
		if (width < 0) != (height < 0) {
			return SizeSmall
		}
		return SizeLarge
	case area < smallAreaLimit:
		return SizeSmall
	case area <= mediumAreaLimit:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// multiply reports false when width*height overflows int64.
func multiply(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a == math.MinInt64 || b == math.MinInt64 {
		return 0, false
	}
	abs := func(v int64) int64 {
		if v < 0 {
			return -v
		}
		return v
	}
	if abs(a) > math.MaxInt64/abs(b) {
		return 0, false
	}
	return a * b, true
}
