// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"cogentcore.org/molview/config"
	"cogentcore.org/molview/molecule"
	"github.com/aquasecurity/table"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info <source>",
		Short: "Print a summary of a structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.Config.Options()
			if err != nil {
				return err
			}
			ld, err := app.newLoader()
			if err != nil {
				return err
			}
			defer ld.Close()
			mol, err := ld.LoadNow(context.Background(), args[0], opts.Parse)
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), mol)
			return nil
		},
	}
}

// printInfo writes the summary table of mol.
func printInfo(w io.Writer, mol *molecule.Molecule) {
	out := termenv.NewOutput(w)
	title := mol.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintln(w, out.String(title).Bold())
	fmt.Fprintln(w, out.String(mol.Source).Faint())
	fmt.Fprintln(w)

	s := mol.Summary()
	tbl := table.New(w)
	tbl.SetBorders(false)
	tbl.SetHeaders("Property", "Value")
	tbl.AddRow("model", fmt.Sprintf("%d of %d", mol.Model, mol.NumModels))
	tbl.AddRow("chains", strconv.Itoa(s.Chains))
	tbl.AddRow("residues", strconv.Itoa(s.Residues))
	tbl.AddRow("atoms", strconv.Itoa(s.Atoms))
	tbl.AddRow("hetero atoms", strconv.Itoa(s.HetAtoms))
	tbl.AddRow("bonds", fmt.Sprintf("%d (%d inferred)", s.Bonds, s.InferredBonds))
	tbl.AddRow("helix residues", strconv.Itoa(s.HelixResidues))
	tbl.AddRow("sheet residues", strconv.Itoa(s.SheetResidues))
	tbl.AddRow("fingerprint", fmt.Sprintf("%016x", mol.Fingerprint))
	tbl.Render()
}

func newConfigCmd(app *App) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.FormatOf("config." + format)
			if err != nil {
				return err
			}
			return config.Write(app.Config, cmd.OutOrStdout(), f.Encoder)
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "output format (toml or yaml)")
	return cmd
}
