package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nessydroid1192/may-tejiarte/internal/library"
	"github.com/nessydroid1192/may-tejiarte/internal/media"
	"github.com/nessydroid1192/may-tejiarte/internal/mediation"
)

// deps are built lazily so that --help works without configuration.
type deps struct {
	Adapter  *mediation.Adapter
	Library  *library.Repository
	MaxBytes int64

	closers []func() error
}

func (d *deps) close() {
	for _, c := range d.closers {
		_ = c()
	}
}

type builder func(ctx context.Context) (*deps, error)

type cli struct {
	build   builder
	timeout time.Duration
	out     io.Writer
}

func newRootCmd(build builder) *cobra.Command {
	c := &cli{build: build}
	root := &cobra.Command{
		Use:          "tejaictl",
		Short:        "TejAI command line",
		Long:         "Run technique and symbol analyses, write journal entries and manage the virtual library.",
		SilenceUsage: true,
	}
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		c.out = cmd.OutOrStdout()
	}
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 90*time.Second, "Operation timeout")

	root.AddCommand(c.analyzeCmd())
	root.AddCommand(c.journalCmd())
	root.AddCommand(c.libraryCmd())
	return root
}

// run builds deps, applies the timeout and closes deps afterwards.
func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context, d *deps) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
	defer cancel()
	d, err := c.build(ctx)
	if err != nil {
		return err
	}
	defer d.close()
	return fn(ctx, d)
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func readMedia(path string, maxBytes int64) (media.Media, error) {
	f, err := os.Open(path)
	if err != nil {
		return media.Media{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return media.Encode(f, mime.TypeByExtension(filepath.Ext(path)), maxBytes)
}
