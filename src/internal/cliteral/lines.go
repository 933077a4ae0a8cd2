// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cliteral

import "bytes"

// Terminator classifies how a source line ended.
type Terminator int

const (
	// TermNone marks a final fragment with no terminator.
	TermNone Terminator = iota
	// TermLF marks a line ending in a single line feed.
	TermLF
	// TermCR marks a final fragment ending in a single carriage return.
	TermCR
	// TermCRLF marks a line ending in carriage return + line feed.
	TermCRLF
)

// Len returns the number of terminator bytes.
func (t Terminator) Len() int {
	switch t {
	case TermCRLF:
		return 2
	case TermLF, TermCR:
		return 1
	default:
		return 0
	}
}

// Escape returns the C escape sequence spelling the terminator.
func (t Terminator) Escape() string {
	switch t {
	case TermCRLF:
		return `\r\n`
	case TermLF:
		return `\n`
	case TermCR:
		return `\r`
	default:
		return ""
	}
}

func (t Terminator) String() string {
	switch t {
	case TermCRLF:
		return "CRLF"
	case TermLF:
		return "LF"
	case TermCR:
		return "CR"
	default:
		return "none"
	}
}

// Line is one source line with its terminator stripped from Content.
type Line struct {
	Content []byte
	Term    Terminator
}

// SplitLines splits data on line feeds without losing terminator information.
//
// Content slices alias data.
func SplitLines(data []byte) []Line {
	var lines []Line
	for len(data) > 0 {
		var raw []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			raw, data = data[:i+1], data[i+1:]
		} else {
			raw, data = data, nil
		}
		lines = append(lines, classify(raw))
	}
	return lines
}

// classify inspects the last one or two bytes of raw.
func classify(raw []byte) Line {
	n := len(raw)
	term := TermNone
	switch {
	case n >= 2 && raw[n-2] == '\r' && raw[n-1] == '\n':
		term = TermCRLF
	case raw[n-1] == '\n':
		term = TermLF
	case raw[n-1] == '\r':
		term = TermCR
	}
	return Line{Content: raw[:n-term.Len()], Term: term}
}
