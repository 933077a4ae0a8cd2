// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/H0llyW00dzZ/pki2include/src/internal/pkiheader"
	x509chain "github.com/H0llyW00dzZ/pki2include/src/internal/x509/chain"
	"github.com/spf13/cobra"
)

var (
	// ErrOutputFormat indicates an unknown --format value.
	ErrOutputFormat = errors.New("cli: unknown output format")

	// ErrNoBundle indicates that the archive did not yield all four members.
	ErrNoBundle = errors.New("cli: no certificate bundle in archive")

	// ErrVerify indicates that the bundle failed chain or key verification.
	ErrVerify = errors.New("cli: bundle verification failed")
)

func newInspectCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Verify the bundled chain and private key offline",
		Long: `Decodes the certificate members, checks that the private key belongs to
the device certificate and verifies the device certificate up to the
bundled root. No system roots or network lookups are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInspect(cmd, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, tree or json")
	return cmd
}

func (a *app) runInspect(cmd *cobra.Command, format string) error {
	format = strings.ToLower(format)
	switch format {
	case "table", "tree", "json":
	default:
		return fmt.Errorf("%w: %q", ErrOutputFormat, format)
	}

	opts, err := a.options(cmd, nil)
	if err != nil {
		return err
	}
	if err := cmd.Context().Err(); err != nil {
		return err
	}

	payload := pkiheader.Extract(a.opener, opts.ArchivePath, opts.Basename)
	if payload.Outcome == pkiheader.OutcomeFallback {
		return fmt.Errorf("%w: %w", ErrNoBundle, payload.Cause)
	}

	ch, err := x509chain.FromPEM(
		payload.Data(pkiheader.RoleCertificate),
		payload.Data(pkiheader.RolePrivateKey),
		payload.Data(pkiheader.RoleIntermediateCA),
		payload.Data(pkiheader.RoleRootCA),
	)
	if err != nil {
		return err
	}

	now := opts.Now()
	status := ch.Validity(now)
	if err := renderChain(cmd.OutOrStdout(), ch, status, format); err != nil {
		return err
	}

	verifyErr := ch.VerifyChain(now)
	keyErr := ch.CheckKey()
	if format != "json" {
		a.log.Printf("chain       : %s", result(verifyErr))
		a.log.Printf("key         : %s", result(keyErr))
	}
	if err := errors.Join(verifyErr, keyErr); err != nil {
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}

	OperationPerformed = true
	OperationPerformedSuccessfully = true
	return nil
}

func renderChain(w io.Writer, ch *x509chain.Chain, status map[string]string, format string) error {
	switch format {
	case "json":
		data, err := ch.ToVisualizationJSON(status)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "tree":
		_, err := io.WriteString(w, ch.RenderASCIITree(status))
		return err
	default:
		_, err := io.WriteString(w, ch.RenderTable(status))
		return err
	}
}

func result(err error) string {
	if err != nil {
		return "FAILED: " + err.Error()
	}
	return "ok"
}
