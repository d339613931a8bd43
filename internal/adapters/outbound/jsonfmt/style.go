// Package jsonfmt edits JSON documents while keeping the indentation unit,
// line endings and trailing newline they were written with.
package jsonfmt

import (
	"bytes"
	"strings"
)

const defaultIndent = "  "

// Style is the on-disk layout of a JSON document.
type Style struct {
	// Indent is one indentation unit, empty for single-line documents.
	Indent  string
	Newline string
	// FinalNewline reports whether the document ends with a line break.
	FinalNewline bool
}

// DetectStyle infers the style of src. The indentation unit is the leading
// whitespace of the first indented line.
func DetectStyle(src []byte) Style {
	style := Style{Newline: detectNewline(src)}

	trimmed := bytes.TrimRight(src, "\r\n")
	style.FinalNewline = len(trimmed) < len(src)

	body := strings.ReplaceAll(string(trimmed), "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	if !strings.Contains(strings.TrimSpace(body), "\n") {
		return style
	}

	style.Indent = defaultIndent
	for _, line := range strings.Split(body, "\n") {
		rest := strings.TrimLeft(line, " \t")
		if rest == "" || len(rest) == len(line) {
			continue
		}
		style.Indent = line[:len(line)-len(rest)]
		break
	}
	return style
}

// detectNewline returns the most frequent line ending, "\n" when there is
// none.
func detectNewline(src []byte) string {
	var crlf, lf, cr int
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		case '\n':
			lf++
		}
	}
	switch {
	case crlf > lf && crlf >= cr:
		return "\r\n"
	case cr > lf && cr > crlf:
		return "\r"
	default:
		return "\n"
	}
}

// Multiline reports whether documents in this style span several lines.
func (s Style) Multiline() bool { return s.Indent != "" }
