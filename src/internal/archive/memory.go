// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package archive

import (
	"fmt"
	"sync"
)

// Member is a named chunk of content for building a [Memory] archive.
type Member struct {
	Name string
	Data []byte
}

// Memory is an in-memory archive. It implements both [Reader] and [Opener];
// Open ignores the path and returns the same archive.
//
// Memory is safe for concurrent use by multiple goroutines.
type Memory struct {
	mu      sync.Mutex
	members []Member
	closed  int
}

// NewMemory creates an in-memory archive holding members in the given order.
func NewMemory(members ...Member) *Memory {
	return &Memory{members: members}
}

// Open returns m itself.
func (m *Memory) Open(string) (Reader, error) { return m, nil }

func (m *Memory) Entries() []Entry {
	entries := make([]Entry, 0, len(m.members))
	for _, mb := range m.members {
		entries = append(entries, Entry{
			Name:           mb.Name,
			Size:           uint64(len(mb.Data)),
			CompressedSize: uint64(len(mb.Data)),
		})
	}
	return entries
}

func (m *Memory) Names() []string { return names(m.Entries()) }

func (m *Memory) ReadFile(name string) ([]byte, error) {
	for _, mb := range m.members {
		if mb.Name == name {
			return append([]byte(nil), mb.Data...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrMemberNotFound, name)
}

// Close records the call so tests can assert the archive was released.
func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed++
	m.mu.Unlock()
	return nil
}

// Closed reports how many times Close has been called.
func (m *Memory) Closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
