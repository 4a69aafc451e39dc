package namespace

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IsStdlib reports whether pkg names a Go standard-library package or the
// BuiltinsModule pseudo-module. Standard-library import paths have no dot in
// their first element; "main" is never treated as standard.
func IsStdlib(pkg string) bool {
	if pkg == "" || pkg == "main" {
		return false
	}
	if pkg == BuiltinsModule {
		return true
	}
	first, _, _ := strings.Cut(pkg, "/")
	return !strings.Contains(first, ".")
}

// packagePath extracts the import path from a linker symbol such as
// "strings.ToUpper", "github.com/a/b.(*T).Run-fm" or "slices.Sort[...]".
func packagePath(symbol string) string {
	if i := strings.IndexByte(symbol, '['); i >= 0 {
		symbol = symbol[:i]
	}
	slash := strings.LastIndexByte(symbol, '/')
	dot := strings.IndexByte(symbol[slash+1:], '.')
	if dot < 0 {
		return ""
	}
	return symbol[:slash+1+dot]
}

// Identifier turns an arbitrary display name into a binding name: lower-cased
// with Unicode case mapping, with every rune that is not a letter, digit or
// underscore replaced by '_'. The result never contains '.'.
func Identifier(name string) string {
	// A Caser keeps state, so each call gets its own.
	lowered := cases.Lower(language.Und).String(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
