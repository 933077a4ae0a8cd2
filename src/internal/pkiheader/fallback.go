// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pkiheader

import "golang.org/x/text/encoding/charmap"

// Placeholder is the text substituted for every member when the bundle is unavailable.
const Placeholder = " FAKE"

// FallbackData returns the placeholder payload, encoded as Windows-1252 the
// way the firmware build has always received it.
func FallbackData() []byte {
	data, _ := charmap.Windows1252.NewEncoder().Bytes([]byte(Placeholder))
	return data
}
