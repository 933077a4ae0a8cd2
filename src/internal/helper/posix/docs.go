// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix derives the program name shown in usage text, the same way
// on [POSIX] systems and on Windows.
//
//   - Linux/macOS: "/usr/bin/pki2include" → "pki2include"
//   - Windows: "C:\bin\pki2include.exe" → "pki2include"
//   - Fallback: empty args → "pki2include"
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
