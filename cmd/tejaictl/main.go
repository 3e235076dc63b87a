// Command tejaictl runs the weaving analyses and manages the library from a
// terminal, using the same configuration as the API.
package main

import (
	"context"
	"os"

	"github.com/nessydroid1192/may-tejiarte/internal/bootstrap"
	"github.com/nessydroid1192/may-tejiarte/internal/library"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/config"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.SetLogger(nil)

	root := newRootCmd(func(ctx context.Context) (*deps, error) {
		adapter, err := bootstrap.BuildAdapter(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store, sqlDB, err := bootstrap.BuildStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		d := &deps{Adapter: adapter, Library: library.NewRepository(store), MaxBytes: cfg.MaxUploadBytes}
		if sqlDB != nil {
			d.closers = append(d.closers, sqlDB.Close)
		}
		return d, nil
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
