// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates provides embedded filesystem access for the static text
// the header generator ships with: the license banner written at the top of
// every generated header and the JSON schema used to validate config files.
//
// The package provides thread-safe access to embedded files through the [EmbedFS] interface,
// with [MagicEmbed] serving as the default implementation.
//
// Example usage:
//
//	import "github.com/H0llyW00dzZ/pki2include/src/internal/templates"
//
//	banner, err := templates.MagicEmbed.ReadFile(templates.LicenseBanner)
//	if err != nil {
//		return fmt.Errorf("failed to read license banner: %w", err)
//	}
package templates
