package textutil

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits text into lines of at most width characters, breaking between words. A word longer
// than width gets a line of its own.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	var (
		lines         []string
		currentLine   []string
		currentLength int
	)
	for _, word := range words {
		wordLength := utf8.RuneCountInString(word)
		if currentLength+wordLength+1 > width {
			if len(currentLine) > 0 {
				lines = append(lines, strings.Join(currentLine, " "))
				currentLine = []string{word}
				currentLength = wordLength
			} else {
				lines = append(lines, word)
			}
		} else {
			currentLine = append(currentLine, word)
			if currentLength == 0 {
				currentLength = wordLength
			} else {
				currentLength += wordLength + 1
			}
		}
	}
	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}
	return lines
}

// Underline returns a line that marks length characters starting at the character offset start
// with carets, for printing below the text the offsets refer to. At least one caret is drawn.
func Underline(start, length int) string {
	start = max(start, 0)
	length = max(length, 1)
	return strings.Repeat(" ", start) + strings.Repeat("^", length)
}

// Columns formats name and description pairs as an aligned two-column list, indenting each row by
// two spaces and wrapping descriptions so rows fit in width characters.
func Columns(rows [][2]string, width int) string {
	maxNameLen := 0
	for _, row := range rows {
		maxNameLen = max(maxNameLen, utf8.RuneCountInString(row[0]))
	}
	nameWidth := maxNameLen + 4
	wrapWidth := width - nameWidth

	var b strings.Builder
	for _, row := range rows {
		name, description := row[0], row[1]
		if strings.TrimSpace(description) == "" {
			b.WriteString("  " + name + "\n")
			continue
		}
		lines := Wrap(description, wrapWidth)
		padding := strings.Repeat(" ", maxNameLen-utf8.RuneCountInString(name)+4)
		b.WriteString("  " + name + padding + lines[0] + "\n")

		indentPadding := strings.Repeat(" ", nameWidth+2)
		for _, line := range lines[1:] {
			b.WriteString(indentPadding + line + "\n")
		}
	}
	return b.String()
}
