// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cliteral encodes text as C string-literal declarations.
//
// Input is split on line feeds, and each line's terminator is classified by
// looking at its last one or two bytes (CR LF, LF, a bare CR on the final
// fragment, or nothing). Every line becomes one quoted segment on its own
// output line, so the generated source keeps the shape of the PEM file it
// came from:
//
//	const char *root_ca = "-----BEGIN CERTIFICATE-----\r\n"
//	                      "MIIB3zCCAYWgAwIBAgIJAPObjMBXKhGyMAoGCCqGSM49BAMCMFMxDDAKBgNVBAoM\r\n"
//	                      "-----END CERTIFICATE-----\r\n";
//
// In [Normalize] mode every segment ends with the escape \r\n, which is what
// the embedded TLS stack expects of PEM input. In [Preserve] mode each
// segment carries the escape of its original terminator, so the literal
// reproduces the input byte for byte.
package cliteral
