// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cliteral

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var (
	// ErrInvalidUTF8 indicates that the input bytes are not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("cliteral: input is not valid UTF-8 text")

	// ErrInvalidIdentifier indicates that the declaration name is not a C identifier.
	ErrInvalidIdentifier = errors.New("cliteral: invalid C identifier")
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Mode selects how line terminators are rendered in the literal.
type Mode int

const (
	// Normalize ends every segment with \r\n whatever the source terminator was.
	Normalize Mode = iota
	// Preserve ends every segment with the escape of its own source terminator.
	Preserve
)

func (m Mode) String() string {
	if m == Preserve {
		return "preserve"
	}
	return "normalize"
}

// ParseMode parses "normalize" or "preserve".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "normalize":
		return Normalize, nil
	case "preserve":
		return Preserve, nil
	default:
		return Normalize, fmt.Errorf("cliteral: unknown terminator mode %q", s)
	}
}

// Encoder builds string-literal declarations.
type Encoder struct {
	// Type is the declared C type, e.g. "const char *".
	Type string
	// Mode selects terminator rendering.
	Mode Mode
	// Align indents continuation segments under the first quote.
	Align bool
}

// New creates an Encoder producing aligned "const char *" declarations in [Normalize] mode.
func New() *Encoder {
	return &Encoder{
		Type:  "const char *",
		Mode:  Normalize,
		Align: true,
	}
}

// Declaration is a named string literal split into quoted segments.
type Declaration struct {
	Type     string
	Name     string
	Segments []string
	Align    bool
}

// Declare encodes data as a declaration named name.
//
// data must be valid UTF-8; otherwise [ErrInvalidUTF8] is returned and no
// declaration is produced. Empty data yields a single empty segment.
func (e *Encoder) Declare(name string, data []byte) (*Declaration, error) {
	if !identRe.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}

	if _, _, err := transform.Bytes(encoding.UTF8Validator, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidUTF8, name, err)
	}

	lines := SplitLines(data)
	d := &Declaration{
		Type:     e.Type,
		Name:     name,
		Segments: make([]string, 0, max(len(lines), 1)),
		Align:    e.Align,
	}
	for _, l := range lines {
		suffix := `\r\n`
		if e.Mode == Preserve {
			suffix = l.Term.Escape()
		}
		d.Segments = append(d.Segments, Quote(l.Content, suffix))
	}
	if len(d.Segments) == 0 {
		d.Segments = append(d.Segments, `""`)
	}

	return d, nil
}

// Encode writes the declaration of data named name to w.
func (e *Encoder) Encode(w io.Writer, name string, data []byte) error {
	d, err := e.Declare(name, data)
	if err != nil {
		return err
	}
	_, err = d.WriteTo(w)
	return err
}

// Prefix returns the text preceding the first segment, e.g. "const char *my_cert = ".
func (d *Declaration) Prefix() string {
	sep := " "
	if strings.HasSuffix(d.Type, "*") {
		sep = ""
	}
	return d.Type + sep + d.Name + " = "
}

// WriteTo writes the declaration followed by a blank line.
func (d *Declaration) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	prefix := d.Prefix()
	indent := ""
	if d.Align {
		indent = strings.Repeat(" ", len(prefix))
	}

	b.WriteString(prefix)
	for i, s := range d.Segments {
		if i > 0 {
			b.WriteByte('\n')
			b.WriteString(indent)
		}
		b.WriteString(s)
	}
	b.WriteString(";\n\n")

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (d *Declaration) String() string {
	var b strings.Builder
	d.WriteTo(&b)
	return b.String()
}

// Quote renders content as a double-quoted C string followed by the raw
// escape text suffix.
//
// Bytes outside printable ASCII become three-digit octal escapes, which never
// absorb a following digit the way hex escapes do. A '?' following another
// '?' is escaped so no trigraph can form.
func Quote(content []byte, suffix string) string {
	var b strings.Builder
	b.Grow(len(content) + len(suffix) + 2)

	b.WriteByte('"')
	var prev byte
	for _, c := range content {
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == '"':
			b.WriteString(`\"`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '?' && prev == '?':
			b.WriteString(`\?`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, `\%03o`, c)
		default:
			b.WriteByte(c)
		}
		prev = c
	}
	b.WriteString(suffix)
	b.WriteByte('"')

	return b.String()
}
