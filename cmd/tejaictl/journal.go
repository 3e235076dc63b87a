package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nessydroid1192/may-tejiarte/internal/journal"
	"github.com/nessydroid1192/may-tejiarte/internal/media"
)

func (c *cli) journalCmd() *cobra.Command {
	var audioPath string
	cmd := &cobra.Command{
		Use:   "journal <text>",
		Short: "Write a journal entry and print the model's reflection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, d *deps) error {
				var text string
				if len(args) == 1 {
					text = args[0]
				}
				var audio *media.Media
				if strings.TrimSpace(audioPath) != "" {
					m, err := readMedia(audioPath, d.MaxBytes)
					if err != nil {
						return err
					}
					audio = &m
				}
				ctrl := journal.NewController(d.Adapter)
				ctrl.Timeout = c.timeout
				entry, err := ctrl.Save(ctx, text, audio)
				if err != nil {
					return err
				}
				return c.print(entry)
			})
		},
	}
	cmd.Flags().StringVar(&audioPath, "audio", "", "Voice memo to attach")
	return cmd
}
