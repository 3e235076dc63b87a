package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nessydroid1192/may-tejiarte/internal/mediation"
)

type fullReport struct {
	Technique *mediation.TechnicalData `json:"technicalData"`
	Symbol    *mediation.CulturalData  `json:"culturalData"`
}

func (c *cli) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a photo of a weave",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "technique <image>",
		Short: "Critique tension, density and errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, d *deps) error {
				img, err := readMedia(args[0], d.MaxBytes)
				if err != nil {
					return err
				}
				td, err := d.Adapter.AnalyzeTechnique(ctx, img)
				if err != nil {
					return err
				}
				return c.print(td)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "symbol <image>",
		Short: "Identify and interpret a woven symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, d *deps) error {
				img, err := readMedia(args[0], d.MaxBytes)
				if err != nil {
					return err
				}
				cd, err := d.Adapter.ValidateSymbol(ctx, img)
				if err != nil {
					return err
				}
				return c.print(cd)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "all <image>",
		Short: "Run both analyses on the same photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, d *deps) error {
				img, err := readMedia(args[0], d.MaxBytes)
				if err != nil {
					return err
				}
				var report fullReport
				g, gctx := errgroup.WithContext(ctx)
				g.Go(func() error {
					td, err := d.Adapter.AnalyzeTechnique(gctx, img)
					if err != nil {
						return err
					}
					report.Technique = &td
					return nil
				})
				g.Go(func() error {
					cd, err := d.Adapter.ValidateSymbol(gctx, img)
					if err != nil {
						return err
					}
					report.Symbol = &cd
					return nil
				})
				if err := g.Wait(); err != nil {
					return err
				}
				return c.print(report)
			})
		},
	})
	return cmd
}
