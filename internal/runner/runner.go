package runner

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/zanderlewis/reachable/internal/classify"
	"github.com/zanderlewis/reachable/internal/domain"
)

// Classifier settles one target.
type Classifier interface {
	Classify(ctx context.Context, t domain.Target) (domain.Verdict, classify.Evidence)
}

// Recorder persists one classified target.
type Recorder interface {
	Record(target string, verdict domain.Verdict) error
}

// Reporter renders per-target progress. Implementations must tolerate
// concurrent calls.
type Reporter interface {
	Checking(target string)
	Detail(t domain.Target, ev classify.Evidence)
	Result(target string, v domain.Verdict)
	Finished(target string)
}

// Summary totals one run.
type Summary struct {
	Targets  int
	Active   int
	Inactive int
	Failed   int // workflows that panicked or could not be recorded
	Elapsed  time.Duration
}

// Runner fans one classification workflow out per target while a
// weighted semaphore keeps at most Concurrency of them probing at once.
type Runner struct {
	Logger      *zap.Logger
	Classifier  Classifier
	Recorder    Recorder
	Reporter    Reporter
	Concurrency int
	Progress    bool // draw a progress bar instead of per-target lines
}

func NewRunner(
	logger *zap.Logger,
	classifier Classifier,
	recorder Recorder,
	reporter Reporter,
	concurrency int,
	progress bool,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		Logger:      logger,
		Classifier:  classifier,
		Recorder:    recorder,
		Reporter:    reporter,
		Concurrency: concurrency,
		Progress:    progress,
	}
}

// Run classifies every target and records every verdict. It returns
// once the last workflow finishes. A failing workflow is logged and
// counted; it never stops the rest of the run, and its target ends up
// in neither output file.
func (r *Runner) Run(ctx context.Context, targets []string) Summary {
	start := time.Now()

	var (
		wg       sync.WaitGroup
		active   atomic.Int64
		inactive atomic.Int64
		failed   atomic.Int64
	)
	sem := semaphore.NewWeighted(int64(r.Concurrency))

	var bar *progressbar.ProgressBar
	if r.Progress && len(targets) > 0 {
		bar = progressbar.NewOptions(len(targets),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("checking targets"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
		)
	}

	for _, raw := range targets {
		wg.Add(1)
		go func(raw string) {
			defer wg.Done()
			if bar != nil {
				defer bar.Add(1)
			}

			if err := sem.Acquire(ctx, 1); err != nil {
				failed.Add(1)
				r.Logger.Warn("worker_slot_error", zap.String("target", raw), zap.Error(err))
				return
			}
			defer sem.Release(1)

			r.checkOne(ctx, raw, &active, &inactive, &failed)
		}(raw)
	}
	wg.Wait()

	if bar != nil {
		_ = bar.Finish()
	}

	sum := Summary{
		Targets:  len(targets),
		Active:   int(active.Load()),
		Inactive: int(inactive.Load()),
		Failed:   int(failed.Load()),
		Elapsed:  time.Since(start),
	}
	r.Logger.Info("run_complete",
		zap.Int("targets", sum.Targets),
		zap.Int("active", sum.Active),
		zap.Int("inactive", sum.Inactive),
		zap.Int("failed", sum.Failed),
		zap.Duration("elapsed", sum.Elapsed),
	)
	return sum
}

func (r *Runner) checkOne(ctx context.Context, raw string, active, inactive, failed *atomic.Int64) {
	defer func() {
		if p := recover(); p != nil {
			failed.Add(1)
			r.Logger.Error("target_panic", zap.String("target", raw), zap.Any("panic", p))
		}
	}()

	r.Reporter.Checking(raw)
	t := domain.NewTarget(raw)

	verdict, ev := r.Classifier.Classify(ctx, t)
	r.Reporter.Detail(t, ev)

	if err := r.Recorder.Record(t.Raw, verdict); err != nil {
		failed.Add(1)
		r.Logger.Warn("record_error",
			zap.String("target", raw),
			zap.String("verdict", verdict.String()),
			zap.Error(err),
		)
		return
	}

	r.Reporter.Result(t.Raw, verdict)
	r.Reporter.Finished(raw)

	// counted last: a panic anywhere above lands the target in failed,
	// never in two counters
	if verdict == domain.Active {
		active.Add(1)
	} else {
		inactive.Add(1)
	}
	r.Logger.Debug("target_checked",
		zap.String("target", raw),
		zap.String("url", t.URL),
		zap.String("verdict", verdict.String()),
	)
}
