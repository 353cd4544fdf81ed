package lexer

import "strings"

// DedentBlockStringValue produces the value of a block string from its raw
// content: line terminators are normalized to \n, the common indentation of
// every line but the first is removed, and leading and trailing blank lines
// are dropped.
func DedentBlockStringValue(raw string) string {
	lines := strings.Split(normalizeNewlines(raw), "\n")

	common := -1
	for _, line := range lines[1:] {
		indent := leadingWhitespace(line)
		if indent < len(line) && (common < 0 || indent < common) {
			common = indent
		}
	}
	if common > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) < common {
				lines[i] = ""
				continue
			}
			lines[i] = lines[i][common:]
		}
	}

	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func leadingWhitespace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isBlank(s string) bool { return leadingWhitespace(s) == len(s) }
