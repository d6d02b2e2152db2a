package summary

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"

	"github.com/tvdtogt/a11yExtractor/internal/language"
	"github.com/tvdtogt/a11yExtractor/internal/manifest"
	"github.com/tvdtogt/a11yExtractor/internal/record"
)

// Count is one row of a frequency table.
type Count struct {
	Key     string
	Label   string
	Count   int
	Percent float64
}

// Images totals the image columns over all rows.
type Images struct {
	JPEG   int
	PNG    int
	GIF    int
	Total  int
	Small  int
	Medium int
	Large  int
}

// Unsized returns the images that carried no usable dimensions.
func (i Images) Unsized() int {
	return i.Total - i.Small - i.Medium - i.Large
}

// Summary aggregates a report.
type Summary struct {
	Publications     int
	WithISBN         int
	NonVisualReading int
	WithSummary      int
	Images           Images
	// Features follows record.FeatureLabels order.
	Features      []Count
	OtherFeatures []Count
	Languages     []Count
	Layouts       []Count
	Hazards       []Count
}

// Build aggregates records.
func Build(records []record.Record) Summary {
	total := len(records)
	s := Summary{
		Publications:     total,
		WithISBN:         lo.CountBy(records, func(r record.Record) bool { return r.ISBN != "" }),
		NonVisualReading: lo.CountBy(records, func(r record.Record) bool { return bool(r.NonVisualReading) }),
		WithSummary:      lo.CountBy(records, func(r record.Record) bool { return strings.TrimSpace(r.Summary) != "" }),
		Images: Images{
			JPEG:   lo.SumBy(records, func(r record.Record) int { return r.JPEG }),
			PNG:    lo.SumBy(records, func(r record.Record) int { return r.PNG }),
			GIF:    lo.SumBy(records, func(r record.Record) int { return r.GIF }),
			Total:  lo.SumBy(records, func(r record.Record) int { return r.Images }),
			Small:  lo.SumBy(records, func(r record.Record) int { return r.SmallImages }),
			Medium: lo.SumBy(records, func(r record.Record) int { return r.MediumImages }),
			Large:  lo.SumBy(records, func(r record.Record) int { return r.LargeImages }),
		},
	}

	s.Features = lo.Map(record.FeatureLabels, func(label string, _ int) Count {
		n := lo.CountBy(records, func(r record.Record) bool { return bool(r.Feature(label)) })
		return newCount(label, label, n, total)
	})

	s.OtherFeatures = tally(records, total, func(r record.Record) []string {
		return splitList(r.OtherAccessibilityFeatures)
	}, nil)
	s.Hazards = tally(records, total, func(r record.Record) []string {
		return splitList(r.Hazard)
	}, nil)
	s.Layouts = tally(records, total, func(r record.Record) []string {
		return []string{orNone(r.Layout)}
	}, nil)
	s.Languages = tally(records, total, func(r record.Record) []string {
		codes := language.NormalizeList(languageValues(r.Language))
		if len(codes) == 0 {
			return []string{none}
		}
		return codes
	}, func(code string) string {
		if code == none {
			return "Unknown"
		}
		return language.DisplayName(code)
	})
	return s
}

// Vocabulary returns the distinct values of a comma-joined column, sorted.
func Vocabulary(records []record.Record, column func(record.Record) string) []string {
	set := mapset.NewSet[string]()
	for _, r := range records {
		for _, value := range splitList(column(r)) {
			set.Add(value)
		}
	}
	values := set.ToSlice()
	sort.Strings(values)
	return values
}

const none = "(none)"

func orNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return none
	}
	return value
}

// tally counts the publications carrying each value. A value repeated within
// one row counts once.
func tally(records []record.Record, total int, values func(record.Record) []string, label func(string) string) []Count {
	counts := map[string]int{}
	for _, r := range records {
		seen := mapset.NewSet[string](values(r)...)
		for _, value := range seen.ToSlice() {
			counts[value]++
		}
	}
	keys := lo.Keys(counts)
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return lo.Map(keys, func(key string, _ int) Count {
		display := key
		if label != nil {
			display = label(key)
		}
		return newCount(key, display, counts[key], total)
	})
}

func newCount(key, label string, n, total int) Count {
	c := Count{Key: key, Label: label, Count: n}
	if total > 0 {
		c.Percent = float64(n) * 100 / float64(total)
	}
	return c
}

// languageValues splits a language column. Manifests listing several
// languages reach the report as a list such as ['nl', 'en'].
func languageValues(value string) []string {
	if list, ok := manifest.ReprStrings(value); ok {
		return list
	}
	return splitList(value)
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return lo.Filter(lo.Map(strings.Split(value, ","), func(part string, _ int) string {
		return strings.TrimSpace(part)
	}), func(part string, _ int) bool {
		return part != ""
	})
}
