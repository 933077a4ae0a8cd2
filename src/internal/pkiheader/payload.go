// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pkiheader

import (
	"fmt"

	"github.com/H0llyW00dzZ/pki2include/src/internal/archive"
)

// Outcome tells where the content of a header came from.
type Outcome int

const (
	// OutcomeArchive means all four members were read from the archive.
	OutcomeArchive Outcome = iota
	// OutcomeFallback means every member was replaced by the placeholder.
	OutcomeFallback
)

func (o Outcome) String() string {
	if o == OutcomeFallback {
		return "fallback"
	}
	return "archive"
}

// Payload holds the member bytes for one header. It is either fully
// archive-derived or fully fallback; there is no mixed state.
type Payload struct {
	Outcome Outcome
	// Prefix is the resolved member location. Zero for fallback payloads.
	Prefix Prefix
	// Entries is the archive listing. Nil for fallback payloads.
	Entries []archive.Entry
	// Cause explains a fallback. Nil for archive payloads.
	Cause error

	members [len(Roles)][]byte
}

// Fallback returns a payload substituting [Placeholder] for all members.
func Fallback(cause error) *Payload {
	p := &Payload{Outcome: OutcomeFallback, Cause: cause}
	for _, r := range Roles {
		p.members[r] = FallbackData()
	}
	return p
}

// Data returns the bytes for role.
func (p *Payload) Data(r Role) []byte { return p.members[r] }

// Extract opens the archive at path and reads the four members of the bundle
// named basename.
//
// The archive is closed before Extract returns. Any failure to open the
// archive or read a member yields a [Fallback] payload carrying the cause;
// Extract itself never fails.
func Extract(opener archive.Opener, path, basename string) *Payload {
	r, err := opener.Open(path)
	if err != nil {
		return Fallback(err)
	}
	defer r.Close()

	p := &Payload{
		Outcome: OutcomeArchive,
		Prefix:  ResolvePrefix(r.Names(), basename),
		Entries: r.Entries(),
	}
	for _, role := range Roles {
		data, err := r.ReadFile(p.Prefix.Path(role))
		if err != nil {
			return Fallback(fmt.Errorf("%s: %w", role.Identifier(), err))
		}
		p.members[role] = data
	}

	return p
}
