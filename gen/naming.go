package gen

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A cases.Caser is stateful, so each conversion makes its own.
func upper(s string) string { return cases.Upper(language.Und).String(s) }
func lower(s string) string { return cases.Lower(language.Und).String(s) }

// scope holds the identifiers declared in one Go scope.
type scope map[string]bool

// claim declares id, or id_2, id_3... when it is taken or a keyword.
func (s scope) claim(id string) string {
	name := id
	for n := 2; s[name] || token.IsKeyword(name); n++ {
		name = fmt.Sprintf("%s_%d", id, n)
	}
	s[name] = true
	return name
}

// words splits a hardware name at every character which cannot appear in a
// Go identifier, and at underscores.
func words(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
}

// fixLeading makes an identifier start with a letter.
func fixLeading(id string) string {
	if id == "" {
		return "X"
	}
	if unicode.IsDigit(rune(id[0])) {
		return "X" + id
	}
	return id
}

// exported converts REV_IN to RevIn.
func exported(name string) string {
	var sb strings.Builder
	for _, word := range words(name) {
		_, size := utf8.DecodeRuneInString(word)
		sb.WriteString(upper(word[:size]))
		sb.WriteString(lower(word[size:]))
	}
	return fixLeading(sb.String())
}

// constant converts rev-in to REV_IN.
func constant(parts ...string) string {
	var all []string
	for _, part := range parts {
		for _, word := range words(part) {
			all = append(all, upper(word))
		}
	}
	return fixLeading(strings.Join(all, "_"))
}

// verbatim keeps the case of name, replacing what cannot be in an identifier.
func verbatim(name string) string {
	return fixLeading(strings.Join(words(name), "_"))
}

// PackageName derives a Go package name from a device name.
func PackageName(name string) string {
	return lower(constant(name))
}
