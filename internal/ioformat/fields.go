package ioformat

import (
	"bufio"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// lines iterates over the input one line at a time, keeping a running
// line number for diagnostics. Lines longer than the default Scanner
// limit occur in HPL files, hence the enlarged buffer.
type lines struct {
	sc *bufio.Scanner
	n  int
}

func newLines(r io.Reader) *lines {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lines{sc: sc}
}

func (l *lines) Next() (string, bool) {
	if !l.sc.Scan() {
		return "", false
	}
	l.n++
	return l.sc.Text(), true
}

// N is the number of the line most recently returned by Next.
func (l *lines) N() int { return l.n }

// skipRecord logs a record-level format problem. The record is dropped
// and parsing continues.
func skipRecord(format Format, lineNo int, line, reason string) {
	slog.Warn("Skipping malformed record",
		"format", string(format),
		"line", lineNo,
		"reason", reason,
		"content", strings.TrimRight(line, "\r\n"),
	)
}

func blank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// slice returns line[from:to] with both bounds clamped to the line
// length, so short lines yield shorter (possibly empty) fields instead
// of panicking.
func slice(line string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	if to <= from {
		return ""
	}
	return line[from:to]
}

func field(line string, from, to int) string {
	return strings.TrimSpace(slice(line, from, to))
}

func floatAt(line string, from, to int) (float64, bool) {
	v, err := strconv.ParseFloat(field(line, from, to), 64)
	return v, err == nil
}

func intAt(line string, from, to int) (int, bool) {
	v, err := strconv.Atoi(field(line, from, to))
	return v, err == nil
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	return v, err == nil
}

// joinDecimal assembles a float from separately stored integer and
// fraction digit groups, the way JMA deck and HPL lines encode values
// without a decimal point. An empty fraction is allowed; an empty
// integer part is not.
func joinDecimal(intPart, fracPart string) (float64, bool) {
	intPart = strings.TrimSpace(intPart)
	fracPart = strings.TrimSpace(fracPart)
	if intPart == "" {
		return 0, false
	}
	if fracPart == "" {
		return parseFloat(intPart)
	}
	return parseFloat(intPart + "." + fracPart)
}
