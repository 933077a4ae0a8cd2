// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"testing"

	"github.com/H0llyW00dzZ/pki2include/src/internal/archive/archivetest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectConfigFormat(t *testing.T) {
	tests := []struct {
		path string
		want configFormat
	}{
		{path: "config.json", want: configFormatJSON},
		{path: "config.yaml", want: configFormatYAML},
		{path: "CONFIG.YML", want: configFormatYAML},
		{path: "config", want: configFormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, detectConfigFormat(tt.path))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    *Config
		wantErr bool
	}{
		{
			name: "YAML",
			path: "pki.yaml",
			content: `archive: certs/device.zip
output: include/device.h
guard: DEVICE_H
gate: [HAVE_PKI]
banner: false
terminators: preserve
align: false
`,
			want: &Config{
				Archive:     "certs/device.zip",
				Output:      "include/device.h",
				Guard:       "DEVICE_H",
				Gate:        []string{"HAVE_PKI"},
				Banner:      new(bool),
				Terminators: "preserve",
				Align:       new(bool),
			},
		},
		{
			name:    "JSON",
			path:    "pki.json",
			content: `{"archive": "a.zip", "basename": "pki_certs", "gate": []}`,
			want:    &Config{Archive: "a.zip", Basename: "pki_certs", Gate: []string{}},
		},
		{
			name:    "Empty YAML",
			path:    "empty.yml",
			content: "",
			want:    &Config{},
		},
		{
			name:    "Unknown key",
			path:    "pki.yaml",
			content: "archive: a.zip\nverbose: true\n",
			wantErr: true,
		},
		{
			name:    "Bad terminator mode",
			path:    "pki.json",
			content: `{"terminators": "crlf"}`,
			wantErr: true,
		},
		{
			name:    "Guard is not a macro",
			path:    "pki.json",
			content: `{"guard": "1BAD-GUARD"}`,
			wantErr: true,
		},
		{
			name:    "Wrong type",
			path:    "pki.yaml",
			content: "banner: yes please\n",
			wantErr: true,
		},
		{
			name:    "Malformed JSON",
			path:    "pki.json",
			content: `{"archive": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.content), 0o644))

			cfg, path, err := loadConfig(fs, tt.path)
			assert.Equal(t, tt.path, path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfig)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadConfigSources(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "env.json", []byte(`{"output": "env.h"}`), 0o644))

	t.Run("No config", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, "")
		cfg, path, err := loadConfig(fs, "")
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("Environment", func(t *testing.T) {
		t.Setenv(ConfigFileEnv, "env.json")
		cfg, path, err := loadConfig(fs, "")
		require.NoError(t, err)
		assert.Equal(t, "env.json", path)
		assert.Equal(t, "env.h", cfg.Output)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, _, err := loadConfig(fs, "nope.yaml")
		assert.ErrorIs(t, err, ErrConfig)
	})
}

func TestConfigWithFlags(t *testing.T) {
	fs := afero.NewMemMapFs()
	archivetest.WriteZip(t, fs, "certs/device.zip", abcBundle("device")...)
	require.NoError(t, afero.WriteFile(fs, "pki.yaml", []byte(`archive: certs/device.zip
output: from-config.h
guard: CONFIG_GUARD_H
banner: false
`), 0o644))

	_, err := run(t, fs, "--config", "pki.yaml", "-o", "from-flag.h")
	require.NoError(t, err)

	exists, _ := afero.Exists(fs, "from-config.h")
	assert.False(t, exists, "flag overrides config output")

	header := readFile(t, fs, "from-flag.h")
	assert.Contains(t, header, "#ifndef CONFIG_GUARD_H\n")
	assert.Contains(t, header, " prefix = device\n")
	assert.NotContains(t, header, "Open Interconnect Consortium")
	assert.True(t, OperationPerformedSuccessfully)

	_, err = run(t, fs, "--config", "pki.yaml", "--no-banner=false", "-o", "banner.h")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, fs, "banner.h"), "Open Interconnect Consortium")
}

func TestInvalidConfigFailsCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.json", []byte(`{"terminators": "both"}`), 0o644))

	_, err := run(t, fs, "--config", "bad.json")
	assert.ErrorIs(t, err, ErrConfig)
	exists, _ := afero.Exists(fs, "pki_certs.h")
	assert.False(t, exists)
}
