// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pkiheader

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/pki2include/src/internal/cliteral"
)

// DateLayout formats the generation timestamp in the provenance comment.
const DateLayout = "2006-01-02 15:04:05"

// Provenance is recorded in the comment above the declarations.
type Provenance struct {
	InputFile string
	Prefix    string
	Date      time.Time
}

// Assembler renders the complete header text.
type Assembler struct {
	Encoder *cliteral.Encoder
	// Guard is the include-guard macro.
	Guard string
	// Gate lists the macros that must all be defined for the body to take
	// effect. An empty gate omits the conditional.
	Gate []string
	// Banner is written verbatim before the include guard.
	Banner string
}

// Render writes the header for p to w.
//
// All four declarations are encoded before anything is written, so a
// decoding failure produces no output at all.
func (a *Assembler) Render(w io.Writer, prov Provenance, p *Payload) error {
	decls := make([]*cliteral.Declaration, 0, len(Roles))
	for _, r := range Roles {
		d, err := a.Encoder.Declare(r.Identifier(), p.Data(r))
		if err != nil {
			return fmt.Errorf("encoding %s: %w", r, err)
		}
		decls = append(decls, d)
	}

	hw := &headerWriter{w: w}

	hw.print(a.Banner)
	hw.printf("#ifndef %s\n", a.Guard)
	hw.printf("#define %s\n", a.Guard)
	if len(a.Gate) > 0 {
		hw.printf("#if %s\n", gateCondition(a.Gate))
	}
	hw.print("\n")

	hw.print("/* PKI certificate data\n")
	hw.printf(" input file = %s\n", prov.InputFile)
	hw.printf(" prefix = %s\n", prov.Prefix)
	hw.printf(" date %s\n", prov.Date.UTC().Format(DateLayout))
	hw.print("*/\n\n")

	for _, d := range decls {
		if hw.err == nil {
			_, hw.err = d.WriteTo(w)
		}
	}

	if len(a.Gate) > 0 {
		hw.printf("#endif /* %s */\n", strings.Join(a.Gate, " && "))
	}
	hw.printf("#endif /* %s */\n", a.Guard)

	return hw.err
}

// gateCondition returns "defined(A) && defined(B)" for gate {A, B}.
func gateCondition(gate []string) string {
	parts := make([]string, len(gate))
	for i, m := range gate {
		parts[i] = "defined(" + m + ")"
	}
	return strings.Join(parts, " && ")
}

// headerWriter keeps the first write error and skips writes after it.
type headerWriter struct {
	w   io.Writer
	err error
}

func (h *headerWriter) print(s string) {
	if h.err != nil || s == "" {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *headerWriter) printf(format string, v ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, v...)
}
