// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"strings"
)

// DefaultName is used when the program name cannot be derived.
const DefaultName = "pki2include"

// GetExecutableName returns the name the program was invoked as, without
// directories or a ".exe" suffix.
func GetExecutableName() string { return ExecutableName(os.Args) }

// ExecutableName derives the program name from an argument vector. Both
// slash and backslash separate directories regardless of the host OS.
func ExecutableName(args []string) string {
	if len(args) == 0 {
		return DefaultName
	}

	name := args[0]
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".exe")

	if name == "" || name == "." {
		return DefaultName
	}
	return name
}
