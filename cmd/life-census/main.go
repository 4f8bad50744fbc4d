package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"life-grid/internal/census"
	"life-grid/pkg/life"
)

type options struct {
	rows, cols  int
	levels      []float64
	noise       bool
	seeds       int
	baseSeed    int64
	generations int
	history     int
	workers     int
	db          string
	noDB        bool
	top         int
	logLevel    string
}

func main() {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "life-census",
		Short: "Run many seeded Game of Life boards and classify how they end",
		Long: `life-census seeds boards at each density (or noise threshold), steps them ` +
			`until they die out, settle into a still life or oscillator, or hit the ` +
			`generation limit, and records per-generation population to SQLite.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), opts)
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&opts.rows, "rows", 32, "board rows")
	fs.IntVar(&opts.cols, "cols", 32, "board columns")
	fs.Float64SliceVar(&opts.levels, "levels", []float64{0.15, 0.3, 0.45}, "densities, or thresholds with --noise")
	fs.BoolVar(&opts.noise, "noise", false, "seed from Perlin noise instead of uniform random")
	fs.IntVar(&opts.seeds, "seeds", 20, "boards per level")
	fs.Int64Var(&opts.baseSeed, "base-seed", 1, "first seed; boards use base-seed+i")
	fs.IntVar(&opts.generations, "generations", 500, "generation limit per board")
	fs.IntVar(&opts.history, "history", 16, "longest oscillator period to detect")
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	fs.StringVar(&opts.db, "db", "", "SQLite output file (default: generated name)")
	fs.BoolVar(&opts.noDB, "no-db", false, "skip recording")
	fs.IntVar(&opts.top, "top", 5, "longest-lived boards to list")
	fs.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func run(ctx context.Context, opts options) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "census"})
	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	if opts.top < 0 {
		return errors.Errorf("[run] --top must not be negative, got %d", opts.top)
	}

	seeding := census.SeedRandom
	if opts.noise {
		seeding = census.SeedNoise
	}
	dims := life.Dimensions{Rows: opts.rows, Cols: opts.cols}.Clamp()

	var jobs []census.Job
	for _, lvl := range opts.levels {
		for i := 0; i < opts.seeds; i++ {
			jobs = append(jobs, census.Job{
				ID:      xid.New().String(),
				Dims:    dims,
				Seeding: seeding,
				Seed:    opts.baseSeed + int64(i),
				Level:   lvl,
			})
		}
	}

	var rec census.Recorder
	if !opts.noDB {
		sqlite, err := census.NewSQLiteRecorder(opts.db, 0)
		if err != nil {
			return err
		}
		atexit.Register(func() {
			if err := sqlite.Close(); err != nil {
				logger.Error("closing recorder", "err", err)
				return
			}
			logger.Info("recorded", "db", sqlite.String())
		})
		rec = sqlite
	}

	logger.Info("sweeping", "boards", len(jobs), "workers", opts.workers,
		"generations", opts.generations, "dims", fmt.Sprintf("%dx%d", dims.Rows, dims.Cols), "seeding", seeding)

	start := time.Now()
	results, err := census.Sweep(ctx, jobs, census.Options{
		MaxGenerations: opts.generations,
		HistorySize:    opts.history,
	}, rec, opts.workers)
	if err != nil {
		logger.Error("sweep failed", "err", err)
		return err
	}
	elapsed := time.Since(start)

	printSummary(opts, results, elapsed)
	return nil
}

func printSummary(opts options, results []census.Result, elapsed time.Duration) {
	fmt.Printf("\nOutcomes per level (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, lvl := range opts.levels {
		var subset []census.Result
		for _, r := range results {
			if r.Job.Level == lvl {
				subset = append(subset, r)
			}
		}
		t := census.Tally(subset)
		fmt.Printf("  level=%.2f extinct=%d still=%d oscillating=%d active=%d\n",
			lvl, t[census.OutcomeExtinct], t[census.OutcomeStill], t[census.OutcomeOscillating], t[census.OutcomeActive])
	}

	fmt.Printf("\nTop %d longest-lived boards:\n", opts.top)
	for i, r := range census.Longest(results, opts.top) {
		fmt.Printf("%2d) gens=%d outcome=%s period=%d pop=%d->%d peak=%d %s\n",
			i+1, r.Generations, r.Outcome, r.Period, r.InitialPop, r.FinalPopulation, r.PeakPopulation, r.Job)
	}
}
