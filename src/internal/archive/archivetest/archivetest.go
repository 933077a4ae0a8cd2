// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package archivetest builds zip bundles for tests.
package archivetest

import (
	"bytes"
	"testing"

	"github.com/H0llyW00dzZ/pki2include/src/internal/archive"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Zip returns the bytes of a deflate-compressed zip archive holding members in order.
func Zip(t testing.TB, members ...archive.Member) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, m := range members {
		w, err := zw.Create(m.Name)
		require.NoError(t, err, "creating zip member %q", m.Name)
		_, err = w.Write(m.Data)
		require.NoError(t, err, "writing zip member %q", m.Name)
	}
	require.NoError(t, zw.Close(), "closing zip writer")

	return buf.Bytes()
}

// WriteZip stores a zip archive holding members at path on fs.
func WriteZip(t testing.TB, fs afero.Fs, path string, members ...archive.Member) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, Zip(t, members...), 0o644))
}

// Bundle returns the four members of a top-level PKI bundle named basename,
// each holding the given content.
func Bundle(basename string, cert, key, intermediate, root []byte) []archive.Member {
	return []archive.Member{
		{Name: basename + "_cert.pem", Data: cert},
		{Name: basename + "_key.pem", Data: key},
		{Name: "chain/1-subca-cert.pem", Data: intermediate},
		{Name: "chain/0-root-cert.pem", Data: root},
	}
}

// Nest prefixes every member name with dir and a slash.
func Nest(dir string, members []archive.Member) []archive.Member {
	out := make([]archive.Member, 0, len(members))
	for _, m := range members {
		out = append(out, archive.Member{Name: dir + "/" + m.Name, Data: m.Data})
	}
	return out
}
