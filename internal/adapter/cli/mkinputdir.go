package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-scenario-etl/internal/adapter/shakemap"
	"github.com/couchcryptid/quake-scenario-etl/internal/dialect"
	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
	"github.com/couchcryptid/quake-scenario-etl/internal/repository"
	"github.com/couchcryptid/quake-scenario-etl/internal/worker"
)

type mkInputDirFlags struct {
	file      string
	index     []int
	dirind    int
	shakeHome string
	reference string
	boundary  string
	workers   int
	force     bool
}

func newMkInputDirCmd(g *globals) *cobra.Command {
	f := &mkInputDirFlags{}
	cmd := &cobra.Command{
		Use:   "mkinputdir",
		Short: "Write ShakeMap input directories for catalog events",
		Long: `Convert the selected events of a rupture catalog and write one ShakeMap
input directory per scenario under <shakehome>/data.

Directivity is off unless -d is given: 0 and 2 are the unilateral
realizations, 1 is bilateral.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMkInputDir(cmd, g, f)
		},
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "rupture catalog file")
	cmd.Flags().IntSliceVarP(&f.index, "index", "i", nil, "event indices to convert (default all)")
	cmd.Flags().IntVarP(&f.dirind, "dirind", "d", -1, "directivity index (0, 1, or 2)")
	cmd.Flags().StringVarP(&f.shakeHome, "shakehome", "s", "", "ShakeMap home (default from settings)")
	cmd.Flags().StringVarP(&f.reference, "reference", "r", "", "rupture reference")
	cmd.Flags().StringVarP(&f.boundary, "boundary", "b", "", "stable tectonic boundary file for map extents")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", runtime.NumCPU(), "parallel conversions")
	cmd.Flags().BoolVar(&f.force, "force", false, "rewrite scenarios already in the store")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (f *mkInputDirFlags) options() (domain.Options, error) {
	opts := domain.Options{Index: f.index, Reference: f.reference}
	if f.dirind >= 0 {
		opts.Directivity = domain.Directivity{Enabled: true, Index: domain.DirectivityIndex(f.dirind)}
		if err := opts.Directivity.Validate(); err != nil {
			return domain.Options{}, err
		}
	}
	return opts, nil
}

// convertResult tallies one mkinputdir run.
type convertResult struct {
	written atomic.Int64
	skipped atomic.Int64
	failed  atomic.Int64
}

func runMkInputDir(cmd *cobra.Command, g *globals, f *mkInputDirFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log := g.logger(cmd)
	start := time.Now()

	opts, err := f.options()
	if err != nil {
		return err
	}

	cfg, err := g.loadSettings()
	if err != nil {
		return err
	}
	shakeHome := f.shakeHome
	if shakeHome == "" {
		shakeHome = cfg.ShakeHome
	}
	if shakeHome == "" {
		return fmt.Errorf("no ShakeMap home: pass -s or run 'scenarios settings shakehome DIR': %w", domain.ErrConfiguration)
	}

	raw, err := os.ReadFile(f.file)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	sources, err := dialect.Parse(raw, opts.Index)
	if err != nil {
		return fmt.Errorf("parse %s: %w", f.file, err)
	}

	var region *domain.StableRegion
	if f.boundary != "" {
		if region, err = domain.LoadStableRegion(f.boundary); err != nil {
			return err
		}
	}

	store, err := g.openStore()
	if err != nil {
		return err
	}
	var runID string
	if store != nil {
		defer store.Close()
		runID = repository.NewLoader(store).RunID()
	}

	var res convertResult
	worker.Run(ctx, f.workers, sources,
		func(ctx context.Context, src domain.Source) error {
			sc, err := domain.BuildScenario(src, opts, region)
			if err != nil {
				return err
			}
			if store != nil && !f.force {
				exists, err := store.Exists(ctx, sc.Event.ID)
				if err != nil {
					return err
				}
				if exists {
					res.skipped.Add(1)
					log.Debug("scenario exists, skipping", "event_id", sc.Event.ID)
					return nil
				}
			}
			dir, err := shakemap.WriteInputDir(shakeHome, sc, cfg.GMPE)
			if err != nil {
				return err
			}
			if store != nil {
				if err := store.Add(ctx, repository.NewRecord(sc, runID)); err != nil {
					return err
				}
			}
			res.written.Add(1)
			log.Debug("input dir written", "event_id", sc.Event.ID, "dir", dir)
			return nil
		},
		func(src domain.Source, err error) {
			res.failed.Add(1)
			log.Error("scenario failed", "name", src.Name, "error", err)
		},
	)

	cmd.Printf("%s catalog events from %s (%s) in %s: %s written, %s skipped, %s failed\n",
		humanize.Comma(int64(len(sources))), f.file, humanize.Bytes(uint64(len(raw))),
		time.Since(start).Round(time.Millisecond),
		humanize.Comma(res.written.Load()), humanize.Comma(res.skipped.Load()), humanize.Comma(res.failed.Load()))

	if n := res.failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d scenarios failed", n, len(sources))
	}
	return ctx.Err()
}
