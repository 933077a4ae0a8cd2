// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for converting PKI bundles
// into C headers. It implements a Cobra-based CLI with three commands:
//   - generate (the default): write the header, falling back to placeholder
//     content when the bundle is missing or incomplete.
//   - list: show the archive members and the declaration each one becomes.
//   - inspect: verify the bundled chain and key offline, as a table, an
//     ASCII tree or JSON.
//
// Settings come from an optional JSON or YAML config file, validated against
// an embedded schema, overridden by flags. The package handles context
// cancellation and reports through the logger package.
package cli
