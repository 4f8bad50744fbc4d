// Package census runs many seeded boards headlessly and classifies how each
// one ends.
package census

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"life-grid/internal/controller"
	"life-grid/pkg/life"
)

// Outcome is how a run settled.
type Outcome string

const (
	OutcomeExtinct     Outcome = "extinct"
	OutcomeStill       Outcome = "still"
	OutcomeOscillating Outcome = "oscillating"
	OutcomeActive      Outcome = "active"
)

// Seeding selects how a job's board is filled.
type Seeding string

const (
	SeedRandom Seeding = "random"
	SeedNoise  Seeding = "noise"
)

// Job describes one board to run.
type Job struct {
	ID      string
	Dims    life.Dimensions
	Seeding Seeding
	Seed    int64
	// Density for random boards, threshold for noise boards.
	Level float64
}

func (j Job) String() string {
	return fmt.Sprintf("%s %dx%d %s seed=%d level=%.2f", j.ID, j.Dims.Rows, j.Dims.Cols, j.Seeding, j.Seed, j.Level)
}

// Result summarises a finished run.
type Result struct {
	Job             Job
	Outcome         Outcome
	Period          int
	Generations     int
	InitialPop      int
	FinalPopulation int
	PeakPopulation  int
}

// Sample is the population of one run at one generation.
type Sample struct {
	RunID      string
	Generation int
	Population int
}

// Recorder receives samples and results. Implementations must be safe for
// concurrent use; Sweep calls them from several workers.
type Recorder interface {
	Record(s Sample) error
	Finish(r Result) error
}

// Options bounds each run.
type Options struct {
	MaxGenerations int
	// HistorySize is the longest oscillator period that is detected.
	HistorySize int
}

func (o Options) withDefaults() Options {
	if o.MaxGenerations <= 0 {
		o.MaxGenerations = 500
	}
	if o.HistorySize <= 0 {
		o.HistorySize = 16
	}
	return o
}

// Run steps one board until it dies, repeats, or reaches the generation
// limit. rec may be nil.
func Run(job Job, opts Options, rec Recorder) (Result, error) {
	opts = opts.withDefaults()

	ctrl := controller.New(controller.Options{})
	ctrl.ResizeReset(job.Dims)
	switch job.Seeding {
	case SeedNoise:
		ctrl.Noise(job.Seed, job.Level)
	default:
		ctrl.Randomize(job.Seed, job.Level)
	}

	res := Result{
		Job:        job,
		Outcome:    OutcomeActive,
		InitialPop: ctrl.Population(),
	}
	res.PeakPopulation = res.InitialPop

	history := life.NewHistory(opts.HistorySize)
	history.Observe(ctrl.Grid())
	if err := record(rec, Sample{RunID: job.ID, Generation: 0, Population: res.InitialPop}); err != nil {
		return res, err
	}

	ctrl.Start()
	for ctrl.Generation() < uint64(opts.MaxGenerations) {
		ctrl.Tick()
		pop := ctrl.Population()
		res.PeakPopulation = max(res.PeakPopulation, pop)
		if err := record(rec, Sample{RunID: job.ID, Generation: int(ctrl.Generation()), Population: pop}); err != nil {
			return res, err
		}

		period := history.Observe(ctrl.Grid())
		if pop == 0 {
			res.Outcome = OutcomeExtinct
			break
		}
		if period == 1 {
			res.Outcome = OutcomeStill
			res.Period = 1
			break
		}
		if period > 1 {
			res.Outcome = OutcomeOscillating
			res.Period = period
			break
		}
	}
	ctrl.Stop()

	res.Generations = int(ctrl.Generation())
	res.FinalPopulation = ctrl.Population()
	if rec != nil {
		if err := rec.Finish(res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func record(rec Recorder, s Sample) error {
	if rec == nil {
		return nil
	}
	return rec.Record(s)
}

// Sweep runs every job on up to workers goroutines. Results come back in
// job order. The first recorder error cancels the remaining jobs.
func Sweep(ctx context.Context, jobs []Job, opts Options, rec Recorder, workers int) ([]Result, error) {
	results := make([]Result, len(jobs))

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i, job := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(job, opts, rec)
			if err != nil {
				return fmt.Errorf("run %s: %w", job.ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Tally counts results per outcome.
func Tally(results []Result) map[Outcome]int {
	out := map[Outcome]int{}
	for _, r := range results {
		out[r.Outcome]++
	}
	return out
}

// Longest returns up to n results ordered by generations survived, longest
// first.
func Longest(results []Result, n int) []Result {
	sorted := append([]Result(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Generations > sorted[j].Generations })
	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
