// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package archive provides read-only access to the members of a PKI bundle.
//
// The header generator depends only on the [Reader] and [Opener] interfaces,
// so it never touches a concrete archive library. [ZipOpener] is the production
// implementation, reading zip bundles from an [afero.Fs] with the
// [klauspost/compress] zip package. [Memory] is an in-memory implementation
// used by tests and by callers that already hold member bytes.
//
// [klauspost/compress]: https://github.com/klauspost/compress
// [afero.Fs]: https://github.com/spf13/afero
package archive
