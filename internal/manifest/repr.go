package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Repr renders a JSON value the way the Python reporter printed decoded
// metadata: single-quoted strings, ", " and ": " separators, True, False and
// None. Object keys keep document order; a repeated key keeps its first
// position and its last value.
func Repr(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var b strings.Builder
	if err := writeRepr(&b, dec); err != nil {
		return "", err
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", errors.New("repr: trailing data after value")
	}
	return b.String(), nil
}

func writeRepr(b *strings.Builder, dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("repr: %w", err)
	}
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return writeListRepr(b, dec)
		}
		if v == '{' {
			return writeObjectRepr(b, dec)
		}
		return fmt.Errorf("repr: unexpected delimiter %q", v)
	default:
		b.WriteString(scalarRepr(v))
		return nil
	}
}

func writeListRepr(b *strings.Builder, dec *json.Decoder) error {
	b.WriteByte('[')
	for i := 0; dec.More(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := writeRepr(b, dec); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("repr: %w", err)
	}
	b.WriteByte(']')
	return nil
}

func writeObjectRepr(b *strings.Builder, dec *json.Decoder) error {
	var keys []string
	values := map[string]string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("repr: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("repr: object key %v is not a string", tok)
		}
		var value strings.Builder
		if err := writeRepr(&value, dec); err != nil {
			return err
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value.String()
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("repr: %w", err)
	}
	b.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteRepr(key))
		b.WriteString(": ")
		b.WriteString(values[key])
	}
	b.WriteByte('}')
	return nil
}

func scalarRepr(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case string:
		return quoteRepr(v)
	case json.Number:
		return numberRepr(string(v))
	default:
		return fmt.Sprint(v)
	}
}

// numberRepr keeps integer literals exact and prints other numbers as floats.
func numberRepr(text string) string {
	if !strings.ContainsAny(text, ".eE") {
		if text == "-0" {
			return "0"
		}
		return text
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return text
	}
	return floatRepr(f)
}

// floatRepr uses the shortest round-trip digits, in positional notation for
// decimal exponents from -4 to 15 and in scientific notation otherwise.
func floatRepr(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}
	fixed := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(fixed, '.') {
		fixed += ".0"
	}
	return fixed
}

func quoteRepr(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < ' ' || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < utf8.RuneSelf || unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}

// ReprStrings returns the string elements of a list rendered by [Repr].
// ok is false when value is not a list.
func ReprStrings(value string) (items []string, ok bool) {
	value = strings.TrimSpace(value)
	if len(value) < 2 || value[0] != '[' || value[len(value)-1] != ']' {
		return nil, false
	}
	body := value[1 : len(value)-1]
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\'' && c != '"' {
			i++
			continue
		}
		var elem strings.Builder
		j := i + 1
		for ; j < len(body) && body[j] != c; j++ {
			if body[j] == '\\' && j+1 < len(body) {
				j++
			}
			elem.WriteByte(body[j])
		}
		items = append(items, elem.String())
		i = j + 1
	}
	return items, true
}
