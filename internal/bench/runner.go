package bench

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/elcruzo/topkbench/internal/generator"
	"github.com/elcruzo/topkbench/internal/metrics"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrInvalidCase      = errors.New("invalid case")
)

type Case struct {
	Algorithm string
	Size      int
	K         int
	Trials    int
}

func (c Case) validate() error {
	if c.Size < 0 {
		return fmt.Errorf("size cannot be negative: %d: %w", c.Size, ErrInvalidCase)
	}
	if c.K < 0 {
		return fmt.Errorf("k cannot be negative: %d: %w", c.K, ErrInvalidCase)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive: %d: %w", c.Trials, ErrInvalidCase)
	}
	return nil
}

type Report struct {
	RunID     string
	Algorithm string
	Elements  int
	InputSize string
	K         int
	Trials    int
	Results   int
	Min       time.Duration
	Mean      time.Duration
	Max       time.Duration
	Verified  bool
}

func (r *Report) Fields() []zap.Field {
	return []zap.Field{
		zap.String("run_id", r.RunID),
		zap.String("algorithm", r.Algorithm),
		zap.Int("elements", r.Elements),
		zap.String("input_size", r.InputSize),
		zap.Int("k", r.K),
		zap.Int("trials", r.Trials),
		zap.Int("results", r.Results),
		zap.Duration("min", r.Min),
		zap.Duration("mean", r.Mean),
		zap.Duration("max", r.Max),
		zap.Bool("verified", r.Verified),
	}
}

type Options struct {
	Algorithms map[string]Algorithm
	Generator  generator.Options
	Workers    int
	Verify     bool
}

type Runner struct {
	algorithms map[string]Algorithm
	generator  generator.Options
	workers    int
	verify     bool
	collector  *metrics.Collector
	logger     *zap.Logger
}

// NewRunner builds a Runner. collector may be nil.
func NewRunner(opts Options, collector *metrics.Collector, logger *zap.Logger) (*Runner, error) {
	if len(opts.Algorithms) == 0 {
		return nil, errors.New("at least one algorithm is required")
	}
	if err := opts.Generator.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator options: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Runner{
		algorithms: opts.Algorithms,
		generator:  opts.Generator,
		workers:    workers,
		verify:     opts.Verify,
		collector:  collector,
		logger:     logger,
	}, nil
}

// Run executes cases in order under one run ID. It stops at the first error
// and returns the reports collected so far.
func (r *Runner) Run(ctx context.Context, cases []Case) ([]*Report, error) {
	runID := uuid.NewString()
	r.logger.Info("Starting benchmark run",
		zap.String("run_id", runID),
		zap.Int("cases", len(cases)),
		zap.Int("workers", r.workers))

	reports := make([]*Report, 0, len(cases))
	for _, c := range cases {
		report, err := r.runCase(ctx, runID, c)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *Runner) RunCase(ctx context.Context, c Case) (*Report, error) {
	return r.runCase(ctx, uuid.NewString(), c)
}

func (r *Runner) runCase(ctx context.Context, runID string, c Case) (*Report, error) {
	alg, ok := r.algorithms[c.Algorithm]
	if !ok {
		r.recordError("run", "unknown_algorithm")
		return nil, fmt.Errorf("%s: %w", c.Algorithm, ErrUnknownAlgorithm)
	}
	if err := c.validate(); err != nil {
		r.recordError("run", "invalid_case")
		return nil, fmt.Errorf("%s: %w", c.Algorithm, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := generator.Generate(c.Size, r.generator)
	if err != nil {
		r.recordError("generate", "invalid_options")
		return nil, fmt.Errorf("generate input: %w", err)
	}
	if r.collector != nil {
		r.collector.SetInput(alg.Name, len(data), c.K)
	}

	report := &Report{
		RunID:     runID,
		Algorithm: alg.Name,
		Elements:  len(data),
		InputSize: units.HumanSize(float64(len(data) * 8)),
		K:         c.K,
		Trials:    c.Trials,
	}

	if r.verify {
		err := Verify(alg, data, c.K)
		if r.collector != nil {
			r.collector.RecordVerification(alg.Name, err == nil)
		}
		if err != nil {
			r.logger.Error("Verification failed", zap.String("algorithm", alg.Name), zap.Error(err))
			return nil, err
		}
		report.Verified = true
	}

	durations, results, err := r.timeTrials(ctx, alg, data, c)
	if err != nil {
		return nil, err
	}

	report.Results = results
	report.Min, report.Mean, report.Max = summarize(durations)

	r.logger.Info("Case completed", report.Fields()...)
	return report, nil
}

func (r *Runner) timeTrials(ctx context.Context, alg Algorithm, data []float64, c Case) ([]time.Duration, int, error) {
	durations := make([]time.Duration, c.Trials)
	results := make([]int, c.Trials)

	if r.workers == 1 || c.Trials == 1 {
		for i := 0; i < c.Trials; i++ {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
			durations[i], results[i] = r.trial(alg, data, c.K)
		}
		return durations, results[0], nil
	}

	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(r.workers, func(args any) {
		param, ok := args.(*trialParam)
		if !ok {
			panic("bench trial pool args type error")
		}
		defer param.wg.Done()
		durations[param.idx], results[param.idx] = r.trial(alg, data, c.K)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("create trial pool: %w", err)
	}
	defer pool.Release()

	var submitErr error
	for i := 0; i < c.Trials; i++ {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		wg.Add(1)
		if err := pool.Invoke(&trialParam{idx: i, wg: &wg}); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit trial %d: %w", i, err)
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return nil, 0, submitErr
	}
	return durations, results[0], nil
}

type trialParam struct {
	idx int
	wg  *sync.WaitGroup
}

func (r *Runner) trial(alg Algorithm, data []float64, k int) (time.Duration, int) {
	start := time.Now()
	n := alg.Run(data, k)
	elapsed := time.Since(start)

	if r.collector != nil {
		r.collector.RecordTrial(alg.Name, elapsed)
	}
	r.logger.Debug("Trial finished",
		zap.String("algorithm", alg.Name),
		zap.Duration("elapsed", elapsed),
		zap.Int("results", n))
	return elapsed, n
}

func (r *Runner) recordError(operation, errorType string) {
	if r.collector != nil {
		r.collector.IncrementError(operation, errorType)
	}
}

func summarize(durations []time.Duration) (fastest, mean, slowest time.Duration) {
	if len(durations) == 0 {
		return 0, 0, 0
	}
	fastest, slowest = durations[0], durations[0]
	var total time.Duration
	for _, d := range durations {
		if d < fastest {
			fastest = d
		}
		if d > slowest {
			slowest = d
		}
		total += d
	}
	return fastest, total / time.Duration(len(durations)), slowest
}
