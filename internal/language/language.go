package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
)

// Undetermined is returned for values that do not name a language.
const Undetermined = "und"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2/T (3-letter)
	alt3    string   // ISO 639-2/B alternate (e.g. "dut" vs "nld")
	display string   // Human-readable name
	words   []string // English and native word forms
}

var languages = []entry{
	{"nl", "nld", "dut", "Dutch", []string{"dutch", "nederlands", "vlaams", "flemish"}},
	{"en", "eng", "", "English", []string{"english"}},
	{"fr", "fra", "fre", "French", []string{"french", "français", "francais"}},
	{"de", "deu", "ger", "German", []string{"german", "deutsch", "duits"}},
	{"fy", "fry", "", "Western Frisian", []string{"frisian", "frysk", "fries"}},
	{"es", "spa", "", "Spanish", []string{"spanish", "español", "espanol", "spaans"}},
	{"it", "ita", "", "Italian", []string{"italian", "italiano", "italiaans"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese", "português", "portugees"}},
	{"da", "dan", "", "Danish", []string{"danish", "dansk", "deens"}},
	{"sv", "swe", "", "Swedish", []string{"swedish", "svenska", "zweeds"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian", "norsk", "noors"}},
	{"fi", "fin", "", "Finnish", []string{"finnish", "suomi", "fins"}},
	{"pl", "pol", "", "Polish", []string{"polish", "polski", "pools"}},
	{"tr", "tur", "", "Turkish", []string{"turkish", "türkçe", "turks"}},
	{"ar", "ara", "", "Arabic", []string{"arabic", "arabisch"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"la", "lat", "", "Latin", []string{"latin", "latijn"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages)*3)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// Normalize reduces a metadata language value to a lower-case ISO 639-1
// code when one exists, or the base language subtag otherwise. Empty input
// returns ""; input that is not a language returns Undetermined.
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if e := lookup(value); e != nil {
		return e.code2
	}
	tag, err := xlanguage.Parse(value)
	if err != nil {
		return Undetermined
	}
	base, confidence := tag.Base()
	if confidence == xlanguage.No {
		return Undetermined
	}
	if e := lookup(base.String()); e != nil {
		return e.code2
	}
	return base.String()
}

// ToISO3 converts a language value to ISO 639-2/T. Unknown values return
// Undetermined.
func ToISO3(value string) string {
	code := Normalize(value)
	if e := lookup(code); e != nil {
		return e.code3
	}
	if code == "" {
		return Undetermined
	}
	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return Undetermined
	}
	return base.ISO3()
}

// DisplayName returns a human-readable name for a language value. It
// returns "Unknown" for empty or undetermined input and the upper-cased code
// for languages outside the table.
func DisplayName(value string) string {
	code := Normalize(value)
	if code == "" || code == Undetermined {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(code)
}

// NormalizeList deduplicates and normalizes a list of language values,
// keeping first-seen order.
func NormalizeList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		code := Normalize(value)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		normalized = append(normalized, code)
	}
	return normalized
}
