// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pkiheader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/H0llyW00dzZ/pki2include/src/internal/archive"
	"github.com/H0llyW00dzZ/pki2include/src/internal/cliteral"
	"github.com/H0llyW00dzZ/pki2include/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/pki2include/src/internal/templates"
	"github.com/H0llyW00dzZ/pki2include/src/logger"
	"github.com/spf13/afero"
)

const (
	// DefaultArchivePath is the bundle read when no archive path is given.
	DefaultArchivePath = "pki_certs.zip"
	// DefaultOutputPath is the header written when no output path is given.
	DefaultOutputPath = "pki_certs.h"
	// DefaultGuard is the default include-guard macro.
	DefaultGuard = "PKI_CERT_INCLUDE_H"
)

// DefaultGate is the default feature gate: the header only takes effect in
// builds with security and PKI support.
var DefaultGate = []string{"OC_SECURITY", "OC_PKI"}

var (
	// ErrWriteHeader indicates that the generated header could not be written.
	ErrWriteHeader = errors.New("pkiheader: failed to write header")

	// ErrNoBanner indicates that the embedded license banner could not be loaded.
	ErrNoBanner = errors.New("pkiheader: failed to load license banner")
)

// Options configures one header generation.
type Options struct {
	// ArchivePath is the zip bundle to read.
	ArchivePath string
	// OutputPath is the header to write.
	OutputPath string
	// Basename names the bundle members; derived from ArchivePath when empty.
	Basename string
	// Guard is the include-guard macro.
	Guard string
	// Gate lists the feature macros; nil selects DefaultGate, an empty
	// non-nil slice disables the conditional.
	Gate []string
	// Banner replaces the embedded license banner when non-empty.
	Banner string
	// NoBanner omits the license banner.
	NoBanner bool
	// Mode selects terminator rendering.
	Mode cliteral.Mode
	// NoAlign disables aligning continuation segments.
	NoAlign bool
	// Now returns the generation time; time.Now when nil.
	Now func() time.Time
}

// withDefaults returns a copy of o with empty fields filled in.
func (o Options) withDefaults() Options {
	if o.ArchivePath == "" {
		o.ArchivePath = DefaultArchivePath
	}
	if o.OutputPath == "" {
		o.OutputPath = DefaultOutputPath
	}
	if o.Basename == "" {
		o.Basename = Basename(o.ArchivePath)
	}
	if o.Guard == "" {
		o.Guard = DefaultGuard
	}
	if o.Gate == nil {
		o.Gate = DefaultGate
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Report summarizes a completed generation.
type Report struct {
	Outcome    Outcome
	Prefix     Prefix
	Cause      error
	OutputPath string
	Bytes      int
}

// Generator produces headers from archives.
type Generator struct {
	fs     afero.Fs
	opener archive.Opener
	log    logger.Logger
}

// New creates a Generator writing to fs and reading archives through opener.
// Nil arguments select the operating system filesystem, a zip opener on that
// filesystem and a CLI logger.
func New(fs afero.Fs, opener archive.Opener, log logger.Logger) *Generator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if opener == nil {
		opener = archive.NewZipOpener(fs)
	}
	if log == nil {
		log = logger.NewCLILogger()
	}
	return &Generator{fs: fs, opener: opener, log: log}
}

// Generate reads the bundle and writes the header described by opts.
//
// A missing or incomplete archive is not an error: the header is written
// with placeholder content and the report says so. Decoding failures,
// output failures and cancellation are returned as errors, and in those
// cases the output file is left as it was.
func (g *Generator) Generate(ctx context.Context, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assembler, err := g.assembler(opts)
	if err != nil {
		return nil, err
	}

	g.log.Printf("file        : %s", opts.ArchivePath)

	payload := Extract(g.opener, opts.ArchivePath, opts.Basename)
	switch payload.Outcome {
	case OutcomeFallback:
		g.log.Errorf(" ERROR zip file not found: no certificate data")
		g.log.Errorf(" cause: %v", payload.Cause)
	default:
		g.printDir(payload.Entries)
		if payload.Prefix.Dir != "" {
			g.log.Printf("parent dir  : %s", payload.Prefix.Dir)
		}
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	prov := Provenance{
		InputFile: filepath.Base(opts.ArchivePath),
		Prefix:    opts.Basename,
		Date:      opts.Now(),
	}
	if err := assembler.Render(buf, prov, payload); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", opts.OutputPath, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := writeAtomic(g.fs, opts.OutputPath, buf.Bytes()); err != nil {
		return nil, err
	}

	g.log.Printf("header      : %s (%d bytes, %s)", opts.OutputPath, buf.Len(), payload.Outcome)

	return &Report{
		Outcome:    payload.Outcome,
		Prefix:     payload.Prefix,
		Cause:      payload.Cause,
		OutputPath: opts.OutputPath,
		Bytes:      buf.Len(),
	}, nil
}

// assembler builds the Assembler for opts.
func (g *Generator) assembler(opts Options) (*Assembler, error) {
	enc := cliteral.New()
	enc.Mode = opts.Mode
	enc.Align = !opts.NoAlign

	banner := opts.Banner
	if opts.NoBanner {
		banner = ""
	} else if banner == "" {
		data, err := templates.MagicEmbed.ReadFile(templates.LicenseBanner)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoBanner, err)
		}
		banner = string(data)
	}

	return &Assembler{
		Encoder: enc,
		Guard:   opts.Guard,
		Gate:    opts.Gate,
		Banner:  banner,
	}, nil
}

// printDir logs the archive listing in the layout of a zip directory dump.
func (g *Generator) printDir(entries []archive.Entry) {
	g.log.Printf("%-46s %19s %12s", "File Name", "Modified", "Size")
	for _, e := range entries {
		g.log.Printf("%-46s %19s %12d", e.Name, e.Modified.Format(DateLayout), e.Size)
	}
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place, so readers never observe a partial header.
func writeAtomic(fs afero.Fs, path string, data []byte) (err error) {
	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteHeader, err)
	}
	defer func() {
		if err != nil {
			fs.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrWriteHeader, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteHeader, err)
	}
	if err = fs.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteHeader, err)
	}
	if err = fs.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteHeader, err)
	}

	return nil
}
