package sim

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/equitysim/stats"
)

// BatchOptions controls a Monte-Carlo batch. Run i uses seed Seed+i, so
// a batch is reproducible regardless of how many workers execute it.
type BatchOptions struct {
	Runs    int
	Workers int
	Seed    uint64
	Logger  *zap.Logger

	// OnRunDone is called from worker goroutines after each run.
	OnRunDone func(i int, res Result)
}

// RunBatch executes independent runs of cfg in parallel and aggregates
// their outcomes. Cancelling ctx stops workers between runs.
func RunBatch(ctx context.Context, cfg Config, opts BatchOptions) (stats.BatchSummary, error) {
	if err := cfg.Validate(); err != nil {
		return stats.BatchSummary{}, err
	}
	if opts.Runs < 1 {
		return stats.BatchSummary{}, invalid("batch runs %d must be at least 1", opts.Runs)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	runs := make([]stats.RunStat, opts.Runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Runs; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Run(cfg, WithSeed(opts.Seed+uint64(i)))
			if err != nil {
				return err
			}
			runs[i] = stats.RunStat{
				Reached:        res.Status == StatusTargetReached,
				Ruined:         res.Status == StatusRuined,
				Trades:         len(res.Trades),
				EndingEquity:   res.Stats.EndingEquity,
				MaxDrawdownPct: res.Stats.MaxDrawdownPct,
			}
			if opts.OnRunDone != nil {
				opts.OnRunDone(i, res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats.BatchSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return stats.BatchSummary{}, err
	}

	sum := stats.Aggregate(runs)
	log.Info("batch finished",
		zap.Int("runs", sum.Runs),
		zap.Int("workers", workers),
		zap.Float64("ruin_probability", sum.RuinProbability),
		zap.Float64("target_probability", sum.TargetProbability),
	)
	return sum, nil
}
