// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"testing"

	"github.com/H0llyW00dzZ/pki2include/src/internal/archive/archivetest"
	"github.com/H0llyW00dzZ/pki2include/src/internal/x509/x509test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectCommand(t *testing.T) {
	pki := x509test.New(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "Table",
			args: []string{"inspect"},
			want: []string{"Device Certificate", "Test Sub CA", "Root CA", "valid", "chain       : ok", "key         : ok"},
		},
		{
			name: "Tree",
			args: []string{"inspect", "--format", "tree"},
			want: []string{"[+] Test Root CA (Root CA)", "└── [key] 256-bit ECDSA", "chain       : ok"},
		},
		{
			name: "Nested archive",
			args: []string{"inspect", "-f", "tree", "-a", "nested.zip", "--basename", "pki_certs"},
			want: []string{"[+] Test Device (Device Certificate)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			archivetest.WriteZip(t, fs, "pki_certs.zip", pki.Members(t, "pki_certs")...)
			archivetest.WriteZip(t, fs, "nested.zip", archivetest.Nest("dev", pki.Members(t, "pki_certs"))...)

			out, err := run(t, fs, tt.args...)
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			assert.True(t, OperationPerformedSuccessfully)
		})
	}
}

func TestInspectCommandJSON(t *testing.T) {
	pki := x509test.New(t)
	fs := afero.NewMemMapFs()
	archivetest.WriteZip(t, fs, "pki_certs.zip", pki.Members(t, "pki_certs")...)

	out, err := run(t, fs, "inspect", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		ChainLength int   `json:"chainLength"`
		KeyMatches  *bool `json:"keyMatches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc), "output is a single JSON document")
	assert.Equal(t, 3, doc.ChainLength)
	require.NotNil(t, doc.KeyMatches)
	assert.True(t, *doc.KeyMatches)
}

func TestInspectCommandErrors(t *testing.T) {
	pki := x509test.New(t)
	other := x509test.New(t)

	mismatched := pki.Members(t, "pki_certs")
	mismatched[1].Data = x509test.ECKeyPEM(t, other.LeafKey)

	foreignRoot := pki.Members(t, "pki_certs")
	foreignRoot[3].Data = x509test.CertPEM(other.Root)

	tests := []struct {
		name    string
		args    []string
		setup   func(t *testing.T, fs afero.Fs)
		wantErr error
		wantOut string
	}{
		{
			name: "Key does not match",
			setup: func(t *testing.T, fs afero.Fs) {
				archivetest.WriteZip(t, fs, "pki_certs.zip", mismatched...)
			},
			wantErr: ErrVerify,
			wantOut: "key         : FAILED",
		},
		{
			name: "Root does not sign the chain",
			setup: func(t *testing.T, fs afero.Fs) {
				archivetest.WriteZip(t, fs, "pki_certs.zip", foreignRoot...)
			},
			wantErr: ErrVerify,
			wantOut: "chain       : FAILED",
		},
		{
			name:    "Missing archive",
			setup:   func(*testing.T, afero.Fs) {},
			wantErr: ErrNoBundle,
		},
		{
			name: "Bad format",
			args: []string{"--format", "yaml"},
			setup: func(t *testing.T, fs afero.Fs) {
				archivetest.WriteZip(t, fs, "pki_certs.zip", pki.Members(t, "pki_certs")...)
			},
			wantErr: ErrOutputFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			tt.setup(t, fs)

			out, err := run(t, fs, append([]string{"inspect"}, tt.args...)...)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, out, tt.wantOut)
			assert.False(t, OperationPerformed)
		})
	}
}

func TestInspectPlaceholderMembers(t *testing.T) {
	fs := afero.NewMemMapFs()
	archivetest.WriteZip(t, fs, "pki_certs.zip", abcBundle("pki_certs")...)

	_, err := run(t, fs, "inspect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "certificate: ")
}
