package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) libraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Inspect the virtual library",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored pieces, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, d *deps) error {
				return c.print(d.Library.List(ctx))
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a piece by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, d *deps) error {
				items, err := d.Library.Delete(ctx, args[0])
				if err != nil {
					return fmt.Errorf("delete %s: %w", args[0], err)
				}
				return c.print(items)
			})
		},
	})
	return cmd
}
