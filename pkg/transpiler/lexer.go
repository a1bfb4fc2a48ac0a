package transpiler

import "strings"

// asciiSpace reports whether r is one of the ASCII whitespace characters words are split on.
func asciiSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// splitWords splits s on runs of ASCII whitespace.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, asciiSpace)
}

// trimLine removes surrounding ASCII whitespace.
func trimLine(s string) string {
	return strings.TrimFunc(s, asciiSpace)
}

// classify returns the Keyword for a line's first word.
func classify(words []string) Keyword {
	if len(words) == 0 {
		return UNKNOWN
	}
	if kw, ok := keywords[words[0]]; ok {
		return kw
	}
	return UNKNOWN
}

// Split breaks src into trimmed, non-empty lines in source order.
// Blank lines are dropped but still count towards line numbers.
func Split(src string) []Line {
	raw := strings.Split(src, "\n")
	lines := make([]Line, 0, len(raw))
	for i, r := range raw {
		text := trimLine(r)
		if text == "" {
			continue
		}
		words := splitWords(text)
		lines = append(lines, Line{
			Text:    text,
			Words:   words,
			Keyword: classify(words),
			Number:  i + 1,
		})
	}
	return lines
}
