// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package archive

import (
	"errors"
	"time"
)

var (
	// ErrMemberNotFound indicates that the requested member is not stored in the archive.
	ErrMemberNotFound = errors.New("archive: member not found")

	// ErrOpenArchive indicates that the archive could not be opened or is not a valid zip file.
	ErrOpenArchive = errors.New("archive: failed to open archive")

	// ErrReadMember indicates a failure while reading the content of a member.
	ErrReadMember = errors.New("archive: failed to read member")
)

// Entry describes a single member stored in an archive.
//
// Name is the member path exactly as stored; it is never cleaned or case-folded.
type Entry struct {
	Name           string
	Size           uint64
	CompressedSize uint64
	Modified       time.Time
	Dir            bool
}

// Reader provides access to the members of an opened archive.
//
// A Reader is a scoped resource: callers must Close it once they are done,
// on success and failure paths alike.
type Reader interface {
	// Entries returns the members in archive order.
	Entries() []Entry

	// Names returns the member names in archive order.
	Names() []string

	// ReadFile returns the full content of the named member.
	// The name must match a stored member byte for byte.
	ReadFile(name string) ([]byte, error)

	// Close releases resources associated with the reader.
	Close() error
}

// Opener opens archives by path.
type Opener interface {
	Open(path string) (Reader, error)
}

// names extracts member names from entries, preserving order.
func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}
