package solver

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/statesearch/pkg/cache"
	errs "github.com/matzehuels/statesearch/pkg/errors"
	"github.com/matzehuels/statesearch/pkg/history"
	"github.com/matzehuels/statesearch/pkg/observability"
)

// progressEvery is the number of expansions between debug progress lines.
const progressEvery = 100_000

// errBudget is the cancellation cause used when MaxExpanded is reached.
var errBudget = errors.New("expansion budget exhausted")

// Runner executes solve requests with caching and history.
//
// The Runner holds no per-request state, so one Runner may serve many
// goroutines.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	History history.Store
	Logger  *log.Logger
}

// NewRunner creates a runner. Nil arguments select a NullCache, the
// DefaultKeyer, a NullStore and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, store history.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if store == nil {
		store = history.NullStore{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, History: store, Logger: logger}
}

// Solve validates opts, serves the result from cache when possible and
// otherwise runs the search.
//
// A search stopped by its timeout or expansion budget returns the partial
// result together with a TIMEOUT or LIMIT_EXCEEDED error. Cancellation of
// ctx itself returns ctx's error.
func (r *Runner) Solve(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	key := r.Keyer.SolutionKey(opts.keyOpts())
	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			r.Logger.Debug("cache hit", "strategy", opts.Strategy, "run", res.RunID)
			return res, nil
		}
	}

	hooks := observability.Search()
	hooks.OnSearchStart(ctx, opts.Domain, opts.Strategy)
	start := time.Now()

	res, err := r.run(ctx, opts)

	stats := observability.SearchStats{}
	if res != nil {
		res.Duration = time.Since(start)
		stats = observability.SearchStats{
			Status:     res.Status,
			Expanded:   res.Stats.Expanded,
			Generated:  res.Stats.Generated,
			PathLength: res.Moves(),
		}
	}
	hooks.OnSearchComplete(ctx, opts.Domain, opts.Strategy, stats, time.Since(start), err)

	if res == nil {
		return nil, err
	}
	res.RunID = uuid.NewString()
	res.Domain = opts.Domain
	res.Strategy = opts.Strategy
	res.Start = opts.Start
	res.Goal = opts.Goal

	r.Logger.Info("search finished",
		"strategy", opts.Strategy,
		"status", res.Status,
		"moves", res.Moves(),
		"expanded", res.Stats.Expanded,
		"duration", res.Duration)

	r.record(ctx, res)
	if err != nil {
		return res, err
	}
	r.store(ctx, key, res)
	return res, nil
}

// Close releases the cache and the history store.
func (r *Runner) Close() error {
	return errors.Join(r.Cache.Close(), r.History.Close())
}

// run parses the boards for opts.Domain and searches.
func (r *Runner) run(ctx context.Context, opts Options) (*Result, error) {
	switch opts.Domain {
	case DomainSlidingTile:
		return r.runSlidingTile(ctx, opts)
	case DomainTicTacToe:
		return r.runTicTacToe(ctx, opts)
	}
	return nil, errs.New(errs.ErrCodeInvalidDomain, "unknown domain %q", opts.Domain)
}

// bounded derives the context a single search runs under: the timeout and
// the expansion budget both cancel it. The returned observer enforces the
// budget and logs progress.
func (r *Runner) bounded(ctx context.Context, opts Options) (context.Context, func(), func(int)) {
	ctx, cancelTimeout := context.WithTimeout(ctx, opts.Timeout)
	ctx, cancel := context.WithCancelCause(ctx)
	observe := func(expanded int) {
		if expanded%progressEvery == 0 {
			r.Logger.Debug("searching", "strategy", opts.Strategy, "expanded", expanded)
		}
		if expanded >= opts.MaxExpanded {
			cancel(errBudget)
		}
	}
	return ctx, func() { cancel(nil); cancelTimeout() }, observe
}

// stopped translates the error of a stopped search.
func stopped(parent, ctx context.Context, err error, opts Options) error {
	if err == nil {
		return nil
	}
	if parent.Err() != nil {
		return parent.Err()
	}
	switch cause := context.Cause(ctx); {
	case errors.Is(cause, errBudget):
		return errs.Wrap(errs.ErrCodeLimitExceeded, cause, "stopped after %d expansions", opts.MaxExpanded)
	case errors.Is(cause, context.DeadlineExceeded):
		return errs.Wrap(errs.ErrCodeTimeout, cause, "search did not finish within %s", opts.Timeout)
	}
	return errs.Wrap(errs.ErrCodeInternal, err, "search stopped")
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "solution")
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		observability.Cache().OnCacheMiss(ctx, "solution")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "solution")
	res.Cached = true
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(res)
	if err != nil {
		r.Logger.Warn("encode result", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "solution", len(data))
}

func (r *Runner) record(ctx context.Context, res *Result) {
	rec := history.Record{
		ID:         res.RunID,
		Domain:     res.Domain,
		Strategy:   res.Strategy,
		Start:      res.Start,
		Goal:       res.Goal,
		Found:      res.Found,
		Status:     res.Status,
		PathLength: res.Moves(),
		Cost:       res.Cost,
		Expanded:   res.Stats.Expanded,
		Generated:  res.Stats.Generated,
		DurationMS: res.Duration.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	// History must outlive a cancelled request.
	if err := r.History.Save(context.WithoutCancel(ctx), rec); err != nil {
		r.Logger.Warn("history write failed", "run", res.RunID, "err", err)
	}
}

func (o Options) keyOpts() cache.SolutionKeyOpts {
	return cache.SolutionKeyOpts{
		Domain:     o.Domain,
		Strategy:   o.Strategy,
		Start:      o.Start,
		Goal:       o.Goal,
		DepthLimit: o.DepthLimit,
		Heuristic:  o.Heuristic,
		Player:     o.Player,
		Tree:       o.Tree,
		TreeLimit:  o.treeLimit(),
	}
}

// treeLimit is the tree export limit, or 0 when no tree is exported so that
// plain solves share one cache entry regardless of TreeLimit.
func (o Options) treeLimit() int {
	if !o.Tree {
		return 0
	}
	return o.TreeLimit
}
