package utils

import (
	"strings"
	"unicode/utf8"
)

const (
	maxLineOctets = 75
	lineBreak     = "\r\n"
)

// Transform a normal writer into a writer that takes one unfolded content line
// and writes it folded into chunks of at most 75 octets, each chunk terminated
// by CRLF and every continuation chunk prefixed with a single space. Example:
//
//	var sb strings.Builder
//	writer := Split75wrapper(sb.WriteString)
//	writer("DESCRIPTION:Hello,world!")
//	fmt.Println(sb.String())
//
// Output: (let's assume it splits into 16-octet lines)
//
//	`DESCRIPTION:Hell
//	 o,world!`
//
// A multi-byte UTF-8 character is never split across two chunks. The returned
// count is the number of bytes of the original line.
func Split75wrapper(writer func(string) (int, error)) func(string) (int, error) {
	return func(str string) (int, error) {
		if i, err := writer(FoldLine(str)); err != nil {
			return i, err
		}
		return len(str), nil
	}
}

// Fold a single content line per RFC 5545 section 3.1. The result always ends
// with CRLF.
func FoldLine(line string) string {
	// write right away if the string is short enough
	if len(line) <= maxLineOctets {
		return line + lineBreak
	}

	var sb strings.Builder
	sb.Grow(len(line) + len(line)/maxLineOctets*3 + 2)

	limit := maxLineOctets
	used := 0
	for _, r := range line {
		size := utf8.RuneLen(r)
		if size < 0 {
			size = len(string(utf8.RuneError))
		}
		if used+size > limit {
			sb.WriteString(lineBreak)
			sb.WriteByte(' ')
			// the leading space counts towards the continuation line
			limit = maxLineOctets - 1
			used = 0
		}
		sb.WriteRune(r)
		used += size
	}
	sb.WriteString(lineBreak)
	return sb.String()
}
