// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pkiheader turns a zip bundle of PKI PEM files into a C header that
// firmware can compile in.
//
// The bundle must provide four members: the device certificate, its private
// key, the intermediate CA and the root CA. Their paths are derived from a
// basename and an optional parent directory detected in the archive (see
// [ResolvePrefix]). The generated header declares them as my_cert, my_key,
// int_ca and root_ca, always in that order.
//
// Extraction is all-or-nothing. If the archive cannot be opened or any of
// the four members cannot be read, every declaration is built from the
// [Placeholder] payload instead, and a header is still produced. Text
// decoding and output failures are fatal and leave any existing header
// untouched.
package pkiheader
