package manifest_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tvdtogt/a11yExtractor/internal/manifest"
)

func TestRepr(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"object", `{"name": "Jane", "role": "aut"}`, `{'name': 'Jane', 'role': 'aut'}`},
		{"list", `["en","fr"]`, `['en', 'fr']`},
		{"nested", `{"a": [1, {"b": null}], "c": {}}`, `{'a': [1, {'b': None}], 'c': {}}`},
		{"booleans", `[true, false, null]`, `[True, False, None]`},
		{"empty list", `[]`, `[]`},
		{"integer", `42`, `42`},
		{"negative zero", `-0`, `0`},
		{"big integer", `123456789012345678901234567890`, `123456789012345678901234567890`},
		{"float", `20.0`, `20.0`},
		{"float exponent", `1e3`, `1000.0`},
		{"small float", `0.00001`, `1e-05`},
		{"large float", `1e16`, `1e+16`},
		{"positional float", `0.0001`, `0.0001`},
		{"float overflow", `1e400`, `inf`},
		{"apostrophe", `"l'auteur"`, `"l'auteur"`},
		{"both quotes", `"it's \"x\""`, `'it\'s "x"'`},
		{"escapes", `"a\\b\n\tc\u0001"`, `'a\\b\n\tc\x01'`},
		{"unicode", `"Élodie 日本"`, `'Élodie 日本'`},
		{"non-printable", `"a\u00a0b\u200bc"`, `'a\xa0b\u200bc'`},
		{"duplicate key", `{"a": 1, "b": 2, "a": 3}`, `{'a': 3, 'b': 2}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := manifest.Repr([]byte(tc.doc))
			if err != nil {
				t.Fatalf("Repr returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Repr(%s) = %s, want %s", tc.doc, got, tc.want)
			}
		})
	}
}

func TestReprRejectsInvalidJSON(t *testing.T) {
	for _, doc := range []string{``, `{"a": }`, `[1, 2`, `1 2`} {
		if _, err := manifest.Repr([]byte(doc)); err == nil {
			t.Fatalf("Repr(%q): expected error", doc)
		}
	}
}

func TestReprStrings(t *testing.T) {
	got, ok := manifest.ReprStrings(`['en', 5, "l'x", 'a\'b']`)
	if !ok {
		t.Fatal("expected list")
	}
	if diff := cmp.Diff([]string{"en", "l'x", "a'b"}, got); diff != "" {
		t.Fatalf("ReprStrings mismatch (-want +got):\n%s", diff)
	}
	if _, ok := manifest.ReprStrings("en, fr"); ok {
		t.Fatal("expected plain text not to parse as a list")
	}
}

func TestDimensionSaturatesOutOfRangeIntegers(t *testing.T) {
	cases := []struct {
		doc       string
		wantValue int64
		wantValid bool
	}{
		{`99999999999999999999999`, math.MaxInt64, true},
		{`-99999999999999999999999`, math.MinInt64, true},
		{`640`, 640, true},
		{`1e30`, 0, false},
		{`"640"`, 0, false},
	}
	for _, tc := range cases {
		var d manifest.Dimension
		if err := d.UnmarshalJSON([]byte(tc.doc)); err != nil {
			t.Fatalf("%s: UnmarshalJSON returned error: %v", tc.doc, err)
		}
		if d.Valid != tc.wantValid || d.Value != tc.wantValue {
			t.Fatalf("%s: got %+v, want value=%d valid=%v", tc.doc, d, tc.wantValue, tc.wantValid)
		}
	}
}
