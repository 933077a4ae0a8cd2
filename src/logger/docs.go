// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and provides two implementations: CLILogger for
// human-readable command-line output and ZapLogger for structured JSON logging
// backed by [zap], used when the generator runs inside build pipelines that
// collect machine-readable logs. Both implementations are thread-safe.
//
// [zap]: https://github.com/uber-go/zap
package logger
