package ioformat_test

import "strings"

// col places text at a fixed byte offset when composing a line of one
// of the column-oriented bulletin formats.
type col struct {
	at   int
	text string
}

func fixedLine(width int, cols ...col) string {
	b := []byte(strings.Repeat(" ", width))
	for _, c := range cols {
		copy(b[c.at:], c.text)
	}
	return string(b)
}
