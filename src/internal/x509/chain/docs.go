// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain checks the [X.509] chain shipped in a PKI bundle.
// It provides capabilities to:
//   - Verify the device certificate up to the bundled root, offline.
//   - Confirm the bundled private key belongs to the device certificate.
//   - Render the chain as a markdown table, an ASCII tree or JSON.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain
