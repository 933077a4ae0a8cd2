// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// pki2include converts a PKI certificate bundle (a zip archive holding a
// device certificate, its private key, an intermediate CA and a root CA)
// into a C header of string literals for firmware builds.
//
// # Installation
//
//	go install github.com/H0llyW00dzZ/pki2include/cmd/pki2include@latest
//
// # Usage
//
//	pki2include [generate] [FLAGS]
//	pki2include list [-a ARCHIVE]
//	pki2include inspect [-a ARCHIVE] [--format table|tree|json]
//
// # Flags
//
//	-a, --archive               Zip bundle (default "pki_certs.zip")
//	-o, --output                Header to write (default "pki_certs.h")
//	    --basename              Member basename (default: archive name)
//	    --guard                 Include-guard macro
//	    --gate                  Feature macros gating the body
//	    --no-gate               Omit the feature gate
//	    --no-banner             Omit the license banner
//	    --preserve-terminators  Keep each line's own terminator
//	    --no-align              Do not align continuation lines
//	    --config                JSON or YAML config file
//	    --log-format            text or json
//	    --debug                 Log resolved settings
//
// The archive members are expected at "<basename>_cert.pem",
// "<basename>_key.pem", "chain/1-subca-cert.pem" and
// "chain/0-root-cert.pem", optionally under a single parent directory.
// When any member is missing the header is still written, with " FAKE" in
// place of every member.
//
// SOURCE_DATE_EPOCH, when set, fixes the date recorded in the header.
//
// # Exit status
//
// 0 when a header was written (including placeholder output), 1 on
// decoding, configuration or write failure, 130 when interrupted.
package main
