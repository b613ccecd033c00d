package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	textEscaper = strings.NewReplacer(
		`\`, `\\`,
		`;`, `\;`,
		`,`, `\,`,
		"\r\n", `\n`,
		"\r", `\n`,
		"\n", `\n`,
	)
	paramEncoder = strings.NewReplacer(
		`^`, `^^`,
		`"`, `^'`,
		"\r\n", `^n`,
		"\r", `^n`,
		"\n", `^n`,
	)
)

// Escape a TEXT value so it can be embedded in a property line without breaking
// its structure: backslash, semicolon and comma get a leading backslash, every
// line break (CRLF, CR or LF) becomes a literal `\n`.
func Escape(text string) string {
	return textEscaper.Replace(text)
}

// Encode a parameter value with RFC 6868 caret encoding: `^` -> `^^`,
// `"` -> `^'`, line breaks -> `^n`. Parameter values have no backslash
// escaping.
func EscapeParam(value string) string {
	return paramEncoder.Replace(value)
}

// Encode a parameter value and wrap it in double quotes, e.g. `CN="..."`.
// Quoting keeps `:`, `;` and `,` inside the value.
func QuoteParam(value string) string {
	return `"` + EscapeParam(value) + `"`
}

// Uppercase a property or parameter name, e.g. `x-foo` -> `X-FOO`.
// A Caser keeps state between calls, so a fresh one is built every time.
func UpperKey(key string) string {
	return cases.Upper(language.Und).String(key)
}
