// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/pki2include/src/internal/archive"
	"github.com/H0llyW00dzZ/pki2include/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/pki2include/src/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// OperationPerformed reports whether a command ran to completion.
	OperationPerformed bool
	// OperationPerformedSuccessfully reports whether that command also
	// produced archive-derived output (not a fallback).
	OperationPerformedSuccessfully bool
)

// ErrLogFormat indicates an unknown --log-format value.
var ErrLogFormat = errors.New("cli: unknown log format")

// app carries the dependencies and persistent flag values shared by all commands.
type app struct {
	fs      afero.Fs
	opener  archive.Opener
	log     logger.Logger
	version string

	archivePath string
	basename    string
	configPath  string
	logFormat   string
	debug       bool

	// now returns the generation time unless SOURCE_DATE_EPOCH is set.
	now func() time.Time
}

func newApp(fs afero.Fs, log logger.Logger, version string) *app {
	return &app{
		fs:      fs,
		opener:  archive.NewZipOpener(fs),
		log:     log,
		version: version,
		now:     time.Now,
	}
}

// Execute runs the command line against the operating system filesystem,
// logging through log.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	OperationPerformed = false
	OperationPerformedSuccessfully = false

	return newRootCmd(newApp(afero.NewOsFs(), log, version)).ExecuteContext(ctx)
}

// newRootCmd builds the command tree. The root command generates a header,
// so "pki2include" alone behaves like "pki2include generate".
func newRootCmd(a *app) *cobra.Command {
	name := posix.GetExecutableName()

	gen := &generateFlags{}
	rootCmd := &cobra.Command{
		Use:   name,
		Short: "Convert a PKI certificate bundle into a C header",
		Long: `Reads the device certificate, private key, intermediate CA and root CA
from a zip bundle and writes them as C string literals into a header for
firmware builds. A missing or incomplete bundle produces a header with
placeholder content.`,
		Example: fmt.Sprintf(`  %[1]s -a pki_certs.zip -o pki_certs.h
  %[1]s list -a pki_certs.zip
  %[1]s inspect -a pki_certs.zip --format tree`, name),
		Version:           a.version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, gen)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.archivePath, "archive", "a", "", "zip bundle to read (default \"pki_certs.zip\")")
	pf.StringVar(&a.basename, "basename", "", "member basename (default: archive name without extension)")
	pf.StringVar(&a.configPath, "config", "", "JSON or YAML config file (env "+ConfigFileEnv+")")
	pf.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")
	pf.BoolVar(&a.debug, "debug", false, "log resolved settings")

	gen.register(rootCmd)
	rootCmd.AddCommand(newGenerateCmd(a), newListCmd(a), newInspectCmd(a))

	return rootCmd
}

// setup selects the logger for --log-format and pins the clock for
// SOURCE_DATE_EPOCH.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch strings.ToLower(a.logFormat) {
	case "", "text":
		a.log.SetOutput(cmd.OutOrStdout())
	case "json":
		zl := logger.NewZapLogger(cmd.OutOrStdout(), false)
		if a.debug {
			zl.SetLevel(zap.DebugLevel)
		}
		a.log = zl
	default:
		return fmt.Errorf("%w: %q", ErrLogFormat, a.logFormat)
	}

	epoch, ok, err := sourceDateEpoch()
	if err != nil {
		return err
	}
	if ok {
		a.now = func() time.Time { return epoch }
		a.debugf("date        : %s from %s", epoch.Format(time.RFC3339), SourceDateEpochEnv)
	}

	return nil
}

// debugf logs only under --debug.
func (a *app) debugf(format string, v ...any) {
	if a.debug {
		a.log.Printf(format, v...)
	}
}
