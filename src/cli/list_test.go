// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/H0llyW00dzZ/pki2include/src/internal/archive"
	"github.com/H0llyW00dzZ/pki2include/src/internal/archive/archivetest"
	"github.com/H0llyW00dzZ/pki2include/src/internal/pkiheader"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand(t *testing.T) {
	tests := []struct {
		name       string
		members    []archive.Member
		want       []string
		notWant    []string
		successful bool
	}{
		{
			name:       "Complete nested bundle",
			members:    archivetest.Nest("DeviceName1", abcBundle("pki_certs")),
			want:       []string{"DeviceName1/pki_certs_cert.pem", "my_cert", "root_ca", "parent dir  : DeviceName1"},
			notWant:    []string{"missing"},
			successful: true,
		},
		{
			name: "Missing members",
			members: append(abcBundle("pki_certs")[:2],
				archive.Member{Name: "README.txt", Data: []byte("hi")}),
			want: []string{
				"README.txt",
				"missing     : chain/1-subca-cert.pem (int_ca)",
				"missing     : chain/0-root-cert.pem (root_ca)",
				"generate would write placeholder content",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			archivetest.WriteZip(t, fs, "pki_certs.zip", tt.members...)

			out, err := run(t, fs, "list")
			require.NoError(t, err)

			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}
			assert.True(t, OperationPerformed)
			assert.Equal(t, tt.successful, OperationPerformedSuccessfully)

			exists, _ := afero.Exists(fs, "pki_certs.h")
			assert.False(t, exists, "list never writes a header")
		})
	}
}

func TestListCommandMissingArchive(t *testing.T) {
	_, err := run(t, afero.NewMemMapFs(), "list", "-a", "absent.zip")
	assert.ErrorIs(t, err, archive.ErrOpenArchive)
	assert.False(t, OperationPerformed)
}

func TestRenderListing(t *testing.T) {
	modified := time.Date(2021, time.October, 18, 11, 5, 50, 0, time.UTC)
	entries := []archive.Entry{
		{Name: "chain/", Dir: true},
		{Name: "pki_certs_cert.pem", Size: 1234, CompressedSize: 900, Modified: modified},
		{Name: "notes.txt", Size: 5, CompressedSize: 5},
	}

	var buf bytes.Buffer
	require.NoError(t, renderListing(&buf, entries, pkiheader.ResolvePrefix(nil, "pki_certs")))
	out := buf.String()

	assert.Contains(t, out, "2021-10-18 11:05:50")
	assert.Contains(t, out, "1234")
	assert.Contains(t, out, "my_cert")
	assert.Contains(t, out, "notes.txt")
	assert.NotContains(t, out, "chain/ ")
}
