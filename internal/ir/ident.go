package ir

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ident is a source identifier carried through the IR verbatim. Emitters use
// the casing helpers to render target-language names; the raw form is the
// single source of truth.
//
// The helpers assume Rust-convention raw names (snake_case identifiers,
// snake_case or kebab-case crate names).
type Ident struct {
	Raw string
}

// NewIdent wraps a raw source identifier.
func NewIdent(raw string) Ident {
	return Ident{Raw: raw}
}

func (i Ident) String() string { return i.Raw }

// PascalCase renders the identifier in PascalCase: words split on '_' and
// '-', first letter of each word uppercased, remaining letters untouched.
func (i Ident) PascalCase() string {
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, word := range strings.FieldsFunc(i.Raw, func(r rune) bool {
		return r == '_' || r == '-'
	}) {
		b.WriteString(title.String(word))
	}
	return b.String()
}

// CamelCase renders the identifier in camelCase (PascalCase with the first
// letter lowercased).
func (i Ident) CamelCase() string {
	pascal := i.PascalCase()
	if pascal == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(pascal)
	return string(unicode.ToLower(r)) + pascal[size:]
}

// MarshalJSON encodes the identifier as its raw string.
func (i Ident) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Raw)
}

// UnmarshalJSON decodes the identifier from a plain string.
func (i *Ident) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &i.Raw)
}
