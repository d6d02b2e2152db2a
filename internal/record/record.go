package record

import (
	"fmt"
	"strconv"
)

// Flag is a boolean report column written as 0 or 1.
type Flag bool

// Int returns 1 for a set flag and 0 otherwise.
func (f Flag) Int() int {
	if f {
		return 1
	}
	return 0
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (f Flag) MarshalCSV() (string, error) {
	return strconv.Itoa(f.Int()), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller. Only "1" and "true" set the flag.
func (f *Flag) UnmarshalCSV(value string) error {
	switch value {
	case "1", "true", "True":
		*f = true
	case "", "0", "false", "False":
		*f = false
	default:
		return fmt.Errorf("flag %q: %w", value, strconv.ErrSyntax)
	}
	return nil
}

// Record is one report row. Field order matches the CSV column order.
type Record struct {
	FileName   string `csv:"fileName" json:"fileName"`
	Identifier string `csv:"identifier" json:"identifier"`
	ISBN       string `csv:"ISBN" json:"ISBN"`
	Title      string `csv:"title" json:"title"`
	Author     string `csv:"author" json:"author"`
	Publisher  string `csv:"publisher" json:"publisher"`
	Language   string `csv:"language" json:"language"`

	JPEG         int `csv:"#jpeg" json:"#jpeg"`
	PNG          int `csv:"#png" json:"#png"`
	GIF          int `csv:"#gif" json:"#gif"`
	Images       int `csv:"#images" json:"#images"`
	SmallImages  int `csv:"#small_images" json:"#small_images"`
	MediumImages int `csv:"#medium_images" json:"#medium_images"`
	LargeImages  int `csv:"#large_images" json:"#large_images"`

	Version              string `csv:"version" json:"version"`
	Layout               string `csv:"layout" json:"layout"`
	AccessMode           string `csv:"accessMode" json:"accessMode"`
	AccessModeSufficient string `csv:"accessModeSufficient" json:"accessModeSufficient"`
	NonVisualReading     Flag   `csv:"nonVisualReading" json:"nonVisualReading"`
	Summary              string `csv:"summary" json:"summary"`
	Hazard               string `csv:"hazard" json:"hazard"`

	StructuralNavigation Flag `csv:"structuralNavigation" json:"structuralNavigation"`
	TableOfContents      Flag `csv:"tableOfContents" json:"tableOfContents"`
	AlternativeText      Flag `csv:"alternativeText" json:"alternativeText"`
	ARIA                 Flag `csv:"ARIA" json:"ARIA"`
	PageBreakMarkers     Flag `csv:"pageBreakMarkers" json:"pageBreakMarkers"`
	PageNavigation       Flag `csv:"pageNavigation" json:"pageNavigation"`
	PrintPageNumbers     Flag `csv:"printPageNumbers" json:"printPageNumbers"`

	OtherAccessibilityFeatures string `csv:"otherAccessibilityFeatures" json:"otherAccessibilityFeatures"`
}

// Field is one (column, value) pair of a record. Value is a string or an int.
type Field struct {
	Name  string
	Value any
}

// Fields returns the record as an ordered column mapping. Flags are rendered
// as 0/1 integers.
func (r Record) Fields() []Field {
	fields := []Field{
		{"fileName", r.FileName},
		{"identifier", r.Identifier},
		{"ISBN", r.ISBN},
		{"title", r.Title},
		{"author", r.Author},
		{"publisher", r.Publisher},
		{"language", r.Language},
		{"#jpeg", r.JPEG},
		{"#png", r.PNG},
		{"#gif", r.GIF},
		{"#images", r.Images},
		{"#small_images", r.SmallImages},
		{"#medium_images", r.MediumImages},
		{"#large_images", r.LargeImages},
		{"version", r.Version},
		{"layout", r.Layout},
		{"accessMode", r.AccessMode},
		{"accessModeSufficient", r.AccessModeSufficient},
		{"nonVisualReading", r.NonVisualReading.Int()},
		{"summary", r.Summary},
		{"hazard", r.Hazard},
	}
	for _, label := range FeatureLabels {
		fields = append(fields, Field{label, r.Feature(label).Int()})
	}
	return append(fields, Field{"otherAccessibilityFeatures", r.OtherAccessibilityFeatures})
}

// Columns is the fixed report column order.
var Columns = columnNames(Record{})

func columnNames(r Record) []string {
	fields := r.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// FeatureLabels is the recognized accessibility feature vocabulary, in column order.
var FeatureLabels = []string{
	"structuralNavigation",
	"tableOfContents",
	"alternativeText",
	"ARIA",
	"pageBreakMarkers",
	"pageNavigation",
	"printPageNumbers",
}

// Feature returns the flag for a recognized feature label. Unknown labels
// report false.
func (r Record) Feature(label string) Flag {
	if p := r.featureFlag(label); p != nil {
		return *p
	}
	return false
}

func (r *Record) featureFlag(label string) *Flag {
	switch label {
	case "structuralNavigation":
		return &r.StructuralNavigation
	case "tableOfContents":
		return &r.TableOfContents
	case "alternativeText":
		return &r.AlternativeText
	case "ARIA":
		return &r.ARIA
	case "pageBreakMarkers":
		return &r.PageBreakMarkers
	case "pageNavigation":
		return &r.PageNavigation
	case "printPageNumbers":
		return &r.PrintPageNumbers
	}
	return nil
}
