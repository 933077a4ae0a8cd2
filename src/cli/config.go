// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/pki2include/src/internal/templates"
	"github.com/spf13/afero"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileEnv names the environment variable consulted when --config is not given.
	ConfigFileEnv = "PKI2INCLUDE_CONFIG_FILE"

	// SourceDateEpochEnv pins the provenance date for reproducible builds.
	SourceDateEpochEnv = "SOURCE_DATE_EPOCH"
)

// ErrConfig indicates that the configuration file could not be used.
var ErrConfig = errors.New("cli: invalid configuration")

// configFormat represents the supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config mirrors the generate flags. Pointer fields distinguish "unset"
// from an explicit false.
type Config struct {
	Archive     string   `json:"archive,omitempty" yaml:"archive,omitempty"`
	Output      string   `json:"output,omitempty" yaml:"output,omitempty"`
	Basename    string   `json:"basename,omitempty" yaml:"basename,omitempty"`
	Guard       string   `json:"guard,omitempty" yaml:"guard,omitempty"`
	Gate        []string `json:"gate,omitempty" yaml:"gate,omitempty"`
	Banner      *bool    `json:"banner,omitempty" yaml:"banner,omitempty"`
	Terminators string   `json:"terminators,omitempty" yaml:"terminators,omitempty"`
	Align       *bool    `json:"align,omitempty" yaml:"align,omitempty"`
}

// detectConfigFormat determines the configuration file format based on file extension.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// decodeDocument parses data into a generic document for schema validation.
func decodeDocument(data []byte, format configFormat) (any, error) {
	var doc any
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	if doc == nil {
		// An empty YAML file decodes to nothing; treat it as an empty object.
		doc = map[string]any{}
	}
	return doc, nil
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// validateConfig checks doc against the embedded configuration schema.
func validateConfig(doc any) error {
	schema, err := templates.MagicEmbed.ReadFile(templates.ConfigSchema)
	if err != nil {
		return fmt.Errorf("failed to load config schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to validate config file: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New(strings.Join(msgs, "; "))
}

// loadConfig loads the configuration file at configPath, or at the path in
// [ConfigFileEnv] when configPath is empty. Without either, an empty Config
// is returned.
func loadConfig(fs afero.Fs, configPath string) (*Config, string, error) {
	if configPath == "" {
		configPath = os.Getenv(ConfigFileEnv)
	}
	config := &Config{}
	if configPath == "" {
		return config, "", nil
	}

	data, err := afero.ReadFile(fs, configPath)
	if err != nil {
		return nil, configPath, fmt.Errorf("%w: failed to read config file: %w", ErrConfig, err)
	}

	format := detectConfigFormat(configPath)
	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, configPath, fmt.Errorf("%w: %s: %w", ErrConfig, configPath, err)
	}
	if err := validateConfig(doc); err != nil {
		return nil, configPath, fmt.Errorf("%w: %s: %w", ErrConfig, configPath, err)
	}
	if err := unmarshalConfig(data, config, format); err != nil {
		return nil, configPath, fmt.Errorf("%w: %s: %w", ErrConfig, configPath, err)
	}

	return config, configPath, nil
}

// sourceDateEpoch returns the instant in [SourceDateEpochEnv], or ok false
// when it is unset.
func sourceDateEpoch() (t time.Time, ok bool, err error) {
	v := os.Getenv(SourceDateEpochEnv)
	if v == "" {
		return time.Time{}, false, nil
	}
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %s: %w", ErrConfig, SourceDateEpochEnv, err)
	}
	return time.Unix(secs, 0).UTC(), true, nil
}
