// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"strings"

	"github.com/H0llyW00dzZ/pki2include/src/internal/cliteral"
	"github.com/H0llyW00dzZ/pki2include/src/internal/pkiheader"
	"github.com/spf13/cobra"
)

// generateFlags holds the flags that only affect header generation.
type generateFlags struct {
	output   string
	guard    string
	gate     []string
	noGate   bool
	noBanner bool
	preserve bool
	noAlign  bool
}

// register adds the generate flags to cmd.
func (g *generateFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&g.output, "output", "o", "", "header to write (default \""+pkiheader.DefaultOutputPath+"\")")
	f.StringVar(&g.guard, "guard", "", "include-guard macro (default \""+pkiheader.DefaultGuard+"\")")
	f.StringSliceVar(&g.gate, "gate", nil, "feature macros gating the body (default "+strings.Join(pkiheader.DefaultGate, ",")+")")
	f.BoolVar(&g.noGate, "no-gate", false, "omit the feature-gate conditional")
	f.BoolVar(&g.noBanner, "no-banner", false, "omit the license banner")
	f.BoolVar(&g.preserve, "preserve-terminators", false, "keep each line's own terminator instead of \\r\\n")
	f.BoolVar(&g.noAlign, "no-align", false, "do not align continuation lines under the first quote")
}

func newGenerateCmd(a *app) *cobra.Command {
	gen := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the C header for a PKI bundle (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, gen)
		},
	}
	gen.register(cmd)
	return cmd
}

// options merges the config file, the persistent flags and the generate
// flags, later sources winning.
func (a *app) options(cmd *cobra.Command, g *generateFlags) (pkiheader.Options, error) {
	cfg, path, err := loadConfig(a.fs, a.configPath)
	if err != nil {
		return pkiheader.Options{}, err
	}
	if path != "" {
		a.debugf("config      : %s", path)
	}

	opts := pkiheader.Options{
		ArchivePath: cfg.Archive,
		OutputPath:  cfg.Output,
		Basename:    cfg.Basename,
		Guard:       cfg.Guard,
		Gate:        cfg.Gate,
		Now:         a.now,
	}
	if cfg.Banner != nil {
		opts.NoBanner = !*cfg.Banner
	}
	if cfg.Align != nil {
		opts.NoAlign = !*cfg.Align
	}
	if opts.Mode, err = cliteral.ParseMode(cfg.Terminators); err != nil {
		return pkiheader.Options{}, err
	}

	a.applyCommon(cmd, &opts)
	if g == nil {
		return opts, nil
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		opts.OutputPath = g.output
	}
	if flags.Changed("guard") {
		opts.Guard = g.guard
	}
	if flags.Changed("gate") {
		opts.Gate = g.gate
	}
	if g.noGate {
		opts.Gate = []string{}
	}
	if flags.Changed("no-banner") {
		opts.NoBanner = g.noBanner
	}
	if flags.Changed("preserve-terminators") {
		opts.Mode = cliteral.Normalize
		if g.preserve {
			opts.Mode = cliteral.Preserve
		}
	}
	if flags.Changed("no-align") {
		opts.NoAlign = g.noAlign
	}

	return opts, nil
}

// applyCommon overrides opts with the persistent flags set on cmd.
func (a *app) applyCommon(cmd *cobra.Command, opts *pkiheader.Options) {
	flags := cmd.Flags()
	if flags.Changed("archive") {
		opts.ArchivePath = a.archivePath
	}
	if flags.Changed("basename") {
		opts.Basename = a.basename
	}
	if opts.ArchivePath == "" {
		opts.ArchivePath = pkiheader.DefaultArchivePath
	}
	if opts.Basename == "" {
		opts.Basename = pkiheader.Basename(opts.ArchivePath)
	}
}

func (a *app) runGenerate(cmd *cobra.Command, g *generateFlags) error {
	opts, err := a.options(cmd, g)
	if err != nil {
		return err
	}
	a.debugf("options     : archive=%s basename=%s mode=%s align=%t banner=%t",
		opts.ArchivePath, opts.Basename, opts.Mode, !opts.NoAlign, !opts.NoBanner)

	report, err := pkiheader.New(a.fs, a.opener, a.log).Generate(cmd.Context(), opts)
	if err != nil {
		return err
	}

	OperationPerformed = true
	OperationPerformedSuccessfully = report.Outcome == pkiheader.OutcomeArchive
	return nil
}
