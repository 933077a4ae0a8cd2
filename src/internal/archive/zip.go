// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package archive

import (
	"fmt"

	"github.com/H0llyW00dzZ/pki2include/src/internal/helper/gc"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

// ZipOpener opens zip archives stored on an [afero.Fs].
type ZipOpener struct {
	Fs afero.Fs
}

// NewZipOpener creates a ZipOpener reading from fs.
// A nil fs selects the operating system filesystem.
func NewZipOpener(fs afero.Fs) *ZipOpener {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &ZipOpener{Fs: fs}
}

// zipReader implements Reader over a [zip.Reader] and the file backing it.
type zipReader struct {
	file    afero.File
	zr      *zip.Reader
	entries []Entry
	index   map[string]*zip.File
}

// Open opens the zip archive at path.
//
// The returned Reader keeps the underlying file open until Close is called.
// Any failure, including a file that is not a zip archive, is reported
// wrapped in [ErrOpenArchive].
func (o *ZipOpener) Open(path string) (Reader, error) {
	f, err := o.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenArchive, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenArchive, err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenArchive, path, err)
	}

	r := &zipReader{
		file:    f,
		zr:      zr,
		entries: make([]Entry, 0, len(zr.File)),
		index:   make(map[string]*zip.File, len(zr.File)),
	}
	for _, zf := range zr.File {
		r.entries = append(r.entries, Entry{
			Name:           zf.Name,
			Size:           zf.UncompressedSize64,
			CompressedSize: zf.CompressedSize64,
			Modified:       zf.Modified,
			Dir:            zf.FileInfo().IsDir(),
		})
		// First occurrence wins when a name is stored twice.
		if _, ok := r.index[zf.Name]; !ok {
			r.index[zf.Name] = zf
		}
	}

	return r, nil
}

func (r *zipReader) Entries() []Entry { return r.entries }

func (r *zipReader) Names() []string { return names(r.entries) }

func (r *zipReader) ReadFile(name string) ([]byte, error) {
	zf, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMemberNotFound, name)
	}

	rc, err := zf.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrReadMember, name, err)
	}
	defer rc.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	// The zip reader verifies the CRC-32 when the member is fully consumed.
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrReadMember, name, err)
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

func (r *zipReader) Close() error { return r.file.Close() }
