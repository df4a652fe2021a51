package solver

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/statesearch/pkg/cache"
	errs "github.com/matzehuels/statesearch/pkg/errors"
	"github.com/matzehuels/statesearch/pkg/history"
	"github.com/matzehuels/statesearch/pkg/observability"
)

const nineMoves = "2,4,3,7,1,6,5,_,8"

func quietRunner(t *testing.T, c cache.Cache, store history.Store) *Runner {
	t.Helper()
	r := NewRunner(c, nil, store, log.New(io.Discard))
	t.Cleanup(func() { r.Close() })
	return r
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errs.Code
		check    func(t *testing.T, o Options)
	}{
		{
			name: "sliding tile defaults",
			opts: Options{},
			check: func(t *testing.T, o Options) {
				if o.Domain != DomainSlidingTile || o.Strategy != "astar" {
					t.Errorf("domain/strategy = %s/%s", o.Domain, o.Strategy)
				}
				if o.Start != DemoStart || o.Goal != "1,2,3,4,5,6,7,8,_" {
					t.Errorf("start/goal = %s / %s", o.Start, o.Goal)
				}
				if o.Heuristic != "manhattan" || o.Timeout != DefaultTimeout {
					t.Errorf("heuristic/timeout = %s/%s", o.Heuristic, o.Timeout)
				}
				if o.DepthLimit != 0 {
					t.Errorf("DepthLimit = %d, want 0 for astar", o.DepthLimit)
				}
			},
		},
		{
			name: "alias and depth limit",
			opts: Options{Strategy: "DLS"},
			check: func(t *testing.T, o Options) {
				if o.Strategy != "depth-limited" || o.DepthLimit != 10 {
					t.Errorf("strategy/limit = %s/%d", o.Strategy, o.DepthLimit)
				}
			},
		},
		{
			name: "tic-tac-toe defaults",
			opts: Options{Domain: "TicTacToe", Player: "o"},
			check: func(t *testing.T, o Options) {
				if o.Player != "O" || o.Goal != DefaultTicTacToeGoal || o.Start != "_,_,_,_,_,_,_,_,_" {
					t.Errorf("player/goal/start = %s/%s/%s", o.Player, o.Goal, o.Start)
				}
				if o.Heuristic != "" {
					t.Errorf("Heuristic = %q, want empty", o.Heuristic)
				}
			},
		},
		{name: "unknown domain", opts: Options{Domain: "chess"}, wantCode: errs.ErrCodeInvalidDomain},
		{name: "unknown strategy", opts: Options{Strategy: "dijkstra"}, wantCode: errs.ErrCodeInvalidStrategy},
		{name: "negative limit", opts: Options{DepthLimit: -1}, wantCode: errs.ErrCodeInvalidInput},
		{name: "bad heuristic", opts: Options{Heuristic: "euclid"}, wantCode: errs.ErrCodeInvalidInput},
		{name: "bad player", opts: Options{Domain: "tictactoe", Player: "Z"}, wantCode: errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.opts
			err := o.ValidateAndSetDefaults()
			if tt.wantCode != "" {
				if !errs.Is(err, tt.wantCode) {
					t.Fatalf("err = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, o)
		})
	}
}

func TestSolveSlidingTile(t *testing.T) {
	r := quietRunner(t, nil, nil)
	res, err := r.Solve(context.Background(), Options{Start: nineMoves})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !res.Found || res.Status != "found" {
		t.Fatalf("Found = %v, Status = %s", res.Found, res.Status)
	}
	if res.Moves() != 9 || res.Cost != 9 {
		t.Errorf("Moves() = %d, Cost = %d, want 9, 9", res.Moves(), res.Cost)
	}
	if res.Steps[0].Board != nineMoves || res.Steps[9].Board != "1,2,3,4,5,6,7,8,_" {
		t.Errorf("path %s ... %s", res.Steps[0].Board, res.Steps[9].Board)
	}
	if res.Title != "A* Search" || res.RunID == "" || res.Cached {
		t.Errorf("Title = %q, RunID = %q, Cached = %v", res.Title, res.RunID, res.Cached)
	}
	if res.Tree != nil {
		t.Error("tree should only be exported on request")
	}
}

func TestSolveErrors(t *testing.T) {
	r := quietRunner(t, nil, nil)
	tests := []struct {
		name string
		opts Options
		want errs.Code
	}{
		{"unsolvable", Options{Start: "1,2,3,4,5,6,8,7,_"}, errs.ErrCodeUnsolvable},
		{"bad start", Options{Start: "1,2,3"}, errs.ErrCodeInvalidBoard},
		{"bad goal", Options{Start: nineMoves, Goal: "9,9,9,9,9,9,9,9,9"}, errs.ErrCodeInvalidBoard},
		{"wildcard start", Options{Start: "1,2,3,?,?,?,?,?,?"}, errs.ErrCodeInvalidBoard},
		{"empty board text", Options{Domain: "tictactoe", Start: " "}, errs.ErrCodeInvalidBoard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Solve(context.Background(), tt.opts)
			if !errs.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want)
			}
			if res != nil {
				t.Errorf("res = %+v, want nil", res)
			}
		})
	}
}

func TestSolveBudgetAndTimeout(t *testing.T) {
	r := quietRunner(t, nil, nil)
	ctx := context.Background()

	res, err := r.Solve(ctx, Options{Strategy: "dfs", Start: nineMoves, MaxExpanded: 500})
	if !errs.Is(err, errs.ErrCodeLimitExceeded) {
		t.Fatalf("err = %v, want LIMIT_EXCEEDED", err)
	}
	if res == nil || res.Status != "cancelled" || res.Stats.Expanded != 500 {
		t.Errorf("partial result = %+v", res)
	}

	res, err = r.Solve(ctx, Options{Strategy: "dfs", Start: nineMoves, Timeout: time.Millisecond})
	if !errs.Is(err, errs.ErrCodeTimeout) {
		t.Fatalf("err = %v, want TIMEOUT", err)
	}
	if res == nil || res.Found {
		t.Errorf("timed out result = %+v", res)
	}
}

func TestSolveParentCancelled(t *testing.T) {
	r := quietRunner(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Solve(ctx, Options{Strategy: "bfs", Start: nineMoves})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSolveCachesResults(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(t, c, nil)
	ctx := context.Background()
	opts := Options{Strategy: "bfs", Start: "1,2,3,4,5,6,_,7,8"}

	first, err := r.Solve(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Solve(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.RunID != first.RunID || second.Moves() != first.Moves() {
		t.Errorf("second = cached %v run %s moves %d; first run %s", second.Cached, second.RunID, second.Moves(), first.RunID)
	}

	opts.Refresh = true
	third, err := r.Solve(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached || third.RunID == first.RunID {
		t.Error("Refresh should bypass the cache")
	}

	opts.Refresh = false
	opts.Strategy = "astar"
	if other, _ := r.Solve(ctx, opts); other.Cached {
		t.Error("a different strategy should not share a cache entry")
	}
}

func TestSolveTreeLimitKeysCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(t, c, nil)
	ctx := context.Background()
	solve := func(tree bool, limit int) *Result {
		t.Helper()
		res, err := r.Solve(ctx, Options{Strategy: "bfs", Start: nineMoves, Tree: tree, TreeLimit: limit})
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	small := solve(true, 5)
	large := solve(true, 1000)
	if large.Cached {
		t.Error("a larger TreeLimit should not reuse the truncated tree")
	}
	if len(large.Tree) <= len(small.Tree) {
		t.Errorf("len(Tree) = %d with limit 1000, want more than %d", len(large.Tree), len(small.Tree))
	}
	if again := solve(true, 5); !again.Cached || len(again.Tree) != len(small.Tree) {
		t.Errorf("repeat = cached %v with %d nodes, want cached with %d", again.Cached, len(again.Tree), len(small.Tree))
	}

	solve(false, 5)
	if plain := solve(false, 1000); !plain.Cached {
		t.Error("TreeLimit should not split cache entries without a tree")
	}
}

func TestSolveRecordsHistory(t *testing.T) {
	store, err := history.NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(t, nil, store)
	ctx := context.Background()

	res, err := r.Solve(ctx, Options{Start: nineMoves})
	if err != nil {
		t.Fatal(err)
	}
	rec, err := store.Get(ctx, res.RunID)
	if err != nil {
		t.Fatalf("Get(%s): %v", res.RunID, err)
	}
	if rec.Strategy != "astar" || rec.PathLength != 9 || !rec.Found || rec.Expanded != res.Stats.Expanded {
		t.Errorf("record = %+v", rec)
	}
}

func TestSolveTreeExport(t *testing.T) {
	r := quietRunner(t, nil, nil)
	res, err := r.Solve(context.Background(), Options{Strategy: "bfs", Start: nineMoves, Tree: true, TreeLimit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if !res.TreeTruncated {
		t.Error("TreeTruncated should be set")
	}
	onPath := 0
	for i, n := range res.Tree {
		if n.Index != i {
			t.Errorf("Tree[%d].Index = %d", i, n.Index)
		}
		if n.Parent >= i {
			t.Errorf("Tree[%d].Parent = %d, want earlier index", i, n.Parent)
		}
		if n.OnPath {
			onPath++
		}
	}
	if onPath != len(res.Steps) {
		t.Errorf("%d nodes on path, want %d", onPath, len(res.Steps))
	}
	// A fresh engine numbers nodes by arena position.
	want := 5
	for _, s := range res.Steps {
		if s.NodeID >= 5 {
			want++
		}
	}
	if len(res.Tree) != want {
		t.Errorf("len(Tree) = %d, want %d", len(res.Tree), want)
	}
}

func TestSolveTicTacToe(t *testing.T) {
	r := quietRunner(t, nil, nil)
	res, err := r.Solve(context.Background(), Options{
		Domain:   DomainTicTacToe,
		Strategy: "bfs",
		Start:    "X,O,_,_,X,_,_,O,_",
		Goal:     "?,?,?,?,X,?,?,?,X",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Found || res.Moves() != 1 {
		t.Errorf("Found = %v, Moves() = %d, want one move", res.Found, res.Moves())
	}
}

func TestSolveEmitsHooks(t *testing.T) {
	defer observability.Reset()
	rec := &hookRecorder{}
	observability.SetSearchHooks(rec)
	observability.SetCacheHooks(rec)

	c, _ := cache.NewFileCache(t.TempDir())
	r := quietRunner(t, c, nil)
	opts := Options{Start: "1,2,3,4,5,6,_,7,8"}
	for i := 0; i < 2; i++ {
		if _, err := r.Solve(context.Background(), opts); err != nil {
			t.Fatal(err)
		}
	}
	if rec.starts != 1 || rec.completes != 1 {
		t.Errorf("search hooks: %d starts, %d completes; want 1, 1", rec.starts, rec.completes)
	}
	if rec.misses != 1 || rec.hits != 1 || rec.sets != 1 {
		t.Errorf("cache hooks: %d misses, %d hits, %d sets", rec.misses, rec.hits, rec.sets)
	}
}

type hookRecorder struct {
	starts, completes, hits, misses, sets int
}

func (h *hookRecorder) OnSearchStart(context.Context, string, string) { h.starts++ }

func (h *hookRecorder) OnSearchComplete(context.Context, string, string, observability.SearchStats, time.Duration, error) {
	h.completes++
}

func (h *hookRecorder) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *hookRecorder) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *hookRecorder) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestCompare(t *testing.T) {
	r := quietRunner(t, nil, nil)
	opts := Options{Start: nineMoves, MaxExpanded: 20_000}
	results, err := r.Compare(context.Background(), opts, []string{"bfs", "a*", "dfs", "dls"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	want := []string{"breadth-first", "astar", "depth-first", "depth-limited"}
	if len(results) != len(want) {
		t.Fatalf("%d results, want %d", len(results), len(want))
	}
	for i, res := range results {
		if res.Strategy != want[i] {
			t.Errorf("results[%d].Strategy = %s, want %s", i, res.Strategy, want[i])
		}
	}
	if !results[1].Found || results[1].Moves() != 9 {
		t.Errorf("astar: found %v moves %d", results[1].Found, results[1].Moves())
	}
	if results[2].Found || results[2].Status != "cancelled" {
		t.Errorf("dfs should stop on its budget, got %s", results[2].Status)
	}
	if results[1].Stats.Expanded >= results[0].Stats.Expanded {
		t.Errorf("astar expanded %d, bfs %d", results[1].Stats.Expanded, results[0].Stats.Expanded)
	}
}

func TestCompareAllStrategies(t *testing.T) {
	r := quietRunner(t, nil, nil)
	results, err := r.Compare(context.Background(), Options{Start: "1,2,3,4,5,6,_,7,8"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 7 {
		t.Errorf("%d results, want 7", len(results))
	}
	for _, res := range results {
		if !res.Found {
			t.Errorf("%s did not solve a two-move board", res.Strategy)
		}
	}
}

func TestCompareInvalidStrategy(t *testing.T) {
	r := quietRunner(t, nil, nil)
	_, err := r.Compare(context.Background(), Options{Start: nineMoves}, []string{"astar", "nope"})
	if !errs.Is(err, errs.ErrCodeInvalidStrategy) {
		t.Errorf("err = %v, want INVALID_STRATEGY", err)
	}
}

func TestLoadProblem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.toml")
	doc := `
domain      = "slidingtile"
strategy    = "dls"
start       = "2,4,3,7,1,6,5,_,8"
depth_limit = 12
heuristic   = "misplaced"
timeout     = "5s"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	o, err := LoadProblem(path)
	if err != nil {
		t.Fatalf("LoadProblem: %v", err)
	}
	if o.Strategy != "dls" || o.DepthLimit != 12 || o.Heuristic != "misplaced" || o.Timeout != 5*time.Second {
		t.Errorf("options = %+v", o)
	}

	if _, err := ParseProblem(`strategi = "bfs"`); !errs.Is(err, errs.ErrCodeInvalidProblemFile) {
		t.Errorf("unknown key err = %v", err)
	}
	if _, err := ParseProblem(`start = [`); !errs.Is(err, errs.ErrCodeInvalidProblemFile) {
		t.Errorf("syntax err = %v", err)
	}
	if _, err := LoadProblem(filepath.Join(dir, "missing.toml")); !errs.Is(err, errs.ErrCodeInvalidProblemFile) {
		t.Errorf("missing file err = %v", err)
	}
}
