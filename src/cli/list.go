// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/H0llyW00dzZ/pki2include/src/internal/archive"
	"github.com/H0llyW00dzZ/pki2include/src/internal/pkiheader"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the archive members and the role each resolved member plays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd)
		},
	}
}

func (a *app) runList(cmd *cobra.Command) error {
	opts, err := a.options(cmd, nil)
	if err != nil {
		return err
	}

	r, err := a.opener.Open(opts.ArchivePath)
	if err != nil {
		return err
	}
	defer r.Close()

	prefix := pkiheader.ResolvePrefix(r.Names(), opts.Basename)
	entries := r.Entries()

	if err := renderListing(cmd.OutOrStdout(), entries, prefix); err != nil {
		return err
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Name] = true
	}
	missing := 0
	for _, role := range pkiheader.Roles {
		if p := prefix.Path(role); !present[p] {
			a.log.Printf("missing     : %s (%s)", p, role.Identifier())
			missing++
		}
	}
	if prefix.Dir != "" {
		a.log.Printf("parent dir  : %s", prefix.Dir)
	}
	if missing > 0 {
		a.log.Printf("generate would write placeholder content")
	}

	OperationPerformed = true
	OperationPerformedSuccessfully = missing == 0
	return nil
}

// renderListing writes entries as a markdown table, naming the declaration
// each resolved member becomes.
func renderListing(w io.Writer, entries []archive.Entry, prefix pkiheader.Prefix) error {
	roles := make(map[string]string, len(pkiheader.Roles))
	for _, r := range pkiheader.Roles {
		roles[prefix.Path(r)] = r.Identifier()
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"File Name", "Modified", "Size", "Compressed", "Declaration"})

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		if e.Dir {
			continue
		}
		modified := ""
		if !e.Modified.IsZero() {
			modified = e.Modified.Format(pkiheader.DateLayout)
		}
		rows = append(rows, []string{
			e.Name,
			modified,
			strconv.FormatUint(e.Size, 10),
			strconv.FormatUint(e.CompressedSize, 10),
			roles[e.Name],
		})
	}

	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("rendering listing: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering listing: %w", err)
	}
	return nil
}
