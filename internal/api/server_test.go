package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/statesearch/pkg/buildinfo"
	"github.com/matzehuels/statesearch/pkg/history"
	"github.com/matzehuels/statesearch/pkg/observability"
	"github.com/matzehuels/statesearch/pkg/solver"
)

const (
	twoMoves  = "1,2,3,4,5,6,_,7,8"
	nineMoves = "2,4,3,7,1,6,5,_,8"
)

func newTestServer(t *testing.T) (*Server, history.Store) {
	t.Helper()
	store, err := history.NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := solver.NewRunner(nil, nil, store, logger)
	t.Cleanup(func() { runner.Close() })
	return New(Config{Runner: runner, Logger: logger}), store
}

func do(t *testing.T, h http.Handler, method, path, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	var body healthResponse
	if code := do(t, srv, http.MethodGet, "/healthz", "", &body); code != http.StatusOK || body.Status != "ok" {
		t.Errorf("GET /healthz = %d %+v", code, body)
	}
	if body.Build.Version != buildinfo.Version {
		t.Errorf("build version = %q, want %q", body.Build.Version, buildinfo.Version)
	}
}

func TestStrategies(t *testing.T) {
	srv, _ := newTestServer(t)
	var out []strategyInfo
	if code := do(t, srv, http.MethodGet, "/v1/strategies", "", &out); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(out) != 7 {
		t.Fatalf("got %d strategies, want 7", len(out))
	}
	if out[0].Name != "breadth-first" || out[5].Name != "astar" || !out[5].Informed || out[0].Informed {
		t.Errorf("strategies = %+v", out)
	}
}

func TestSolve(t *testing.T) {
	srv, _ := newTestServer(t)
	var res solver.Result
	code := do(t, srv, http.MethodPost, "/v1/solve", `{"strategy":"astar","start":"`+nineMoves+`","timeout":"10s"}`, &res)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !res.Found || res.Moves() != 9 || res.Strategy != "astar" || res.RunID == "" {
		t.Errorf("result = %+v", res)
	}
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"bad json", `{`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"board":"x"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad timeout", `{"timeout":"soon"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad board", `{"start":"1,2,3"}`, http.StatusBadRequest, "INVALID_BOARD"},
		{"bad strategy", `{"strategy":"random"}`, http.StatusBadRequest, "INVALID_STRATEGY"},
		{"bad domain", `{"domain":"chess"}`, http.StatusBadRequest, "INVALID_DOMAIN"},
		{"unsolvable", `{"start":"1,2,3,4,5,6,8,7,_"}`, http.StatusBadRequest, "UNSOLVABLE"},
	}
	srv, _ := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out errorResponse
			code := do(t, srv, http.MethodPost, "/v1/solve", tt.body, &out)
			if code != tt.status || string(out.Error.Code) != tt.code {
				t.Errorf("got %d %s, want %d %s", code, out.Error.Code, tt.status, tt.code)
			}
			if out.Error.Message == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestSolveBudgetReturnsPartialResult(t *testing.T) {
	srv, _ := newTestServer(t)
	var out errorResponse
	code := do(t, srv, http.MethodPost, "/v1/solve", `{"strategy":"dfs","start":"`+nineMoves+`","max_expanded":300}`, &out)
	if code != http.StatusUnprocessableEntity || out.Error.Code != "LIMIT_EXCEEDED" {
		t.Fatalf("got %d %s", code, out.Error.Code)
	}
	if out.Result == nil || out.Result.Stats.Expanded != 300 {
		t.Errorf("partial result = %+v", out.Result)
	}
}

func TestTimeoutIsCapped(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.maxTimeout = time.Second
	req := httptest.NewRequest(http.MethodPost, "/v1/solve", strings.NewReader(`{"timeout":"1h"}`))
	opts, _, err := srv.decode(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Timeout != time.Second {
		t.Errorf("Timeout = %v, want 1s", opts.Timeout)
	}
}

func TestCompare(t *testing.T) {
	srv, _ := newTestServer(t)
	var out struct {
		Results []solver.Result `json:"results"`
	}
	code := do(t, srv, http.MethodPost, "/v1/compare", `{"start":"`+twoMoves+`","strategies":["bfs","astar"]}`, &out)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(out.Results) != 2 || out.Results[0].Strategy != "breadth-first" || out.Results[1].Strategy != "astar" {
		t.Fatalf("results = %+v", out.Results)
	}
	for _, r := range out.Results {
		if r.Moves() != 2 {
			t.Errorf("%s: moves = %d, want 2", r.Strategy, r.Moves())
		}
	}

	var bad errorResponse
	if code := do(t, srv, http.MethodPost, "/v1/compare", `{"strategies":["nope"]}`, &bad); code != http.StatusBadRequest {
		t.Errorf("invalid strategy: status = %d", code)
	}
}

func TestRuns(t *testing.T) {
	srv, _ := newTestServer(t)
	var res solver.Result
	if code := do(t, srv, http.MethodPost, "/v1/solve", `{"start":"`+twoMoves+`"}`, &res); code != http.StatusOK {
		t.Fatalf("solve status = %d", code)
	}

	var list struct {
		Runs []history.Record `json:"runs"`
	}
	if code := do(t, srv, http.MethodGet, "/v1/runs?limit=5", "", &list); code != http.StatusOK {
		t.Fatalf("list status = %d", code)
	}
	if len(list.Runs) != 1 || list.Runs[0].ID != res.RunID {
		t.Errorf("runs = %+v", list.Runs)
	}

	var rec history.Record
	if code := do(t, srv, http.MethodGet, "/v1/runs/"+res.RunID, "", &rec); code != http.StatusOK || rec.PathLength != 2 {
		t.Errorf("get run = %d %+v", code, rec)
	}

	var missing errorResponse
	if code := do(t, srv, http.MethodGet, "/v1/runs/nope", "", &missing); code != http.StatusNotFound || missing.Error.Code != "NOT_FOUND" {
		t.Errorf("missing run = %d %s", code, missing.Error.Code)
	}
	if code := do(t, srv, http.MethodGet, "/v1/runs?limit=-1", "", nil); code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d", code)
	}
}

func TestRunsEmpty(t *testing.T) {
	srv := New(Config{Logger: log.New(io.Discard)})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/runs", nil))
	if got := strings.TrimSpace(rec.Body.String()); got != `{"runs":[]}` {
		t.Errorf("body = %s", got)
	}
}

func TestMetricsMountedOnlyWhenConfigured(t *testing.T) {
	srv := New(Config{Logger: log.New(io.Discard)})
	if code := do(t, srv, http.MethodGet, "/metrics", "", nil); code != http.StatusNotFound {
		t.Errorf("without handler: status = %d, want 404", code)
	}

	called := false
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { called = true })
	srv = New(Config{Logger: log.New(io.Discard), Metrics: metrics})
	if code := do(t, srv, http.MethodGet, "/metrics", "", nil); code != http.StatusOK || !called {
		t.Errorf("with handler: status = %d called = %v", code, called)
	}
}

type httpRecorder struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	codes  []int
	starts []string
}

func (h *httpRecorder) OnRequest(_ context.Context, _, route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts = append(h.starts, route)
}

func (h *httpRecorder) OnResponse(_ context.Context, _, route string, code int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.codes = append(h.codes, code)
}

func TestObserveUsesRoutePattern(t *testing.T) {
	rec := &httpRecorder{}
	observability.SetHTTPHooks(rec)
	t.Cleanup(observability.Reset)

	srv, _ := newTestServer(t)
	do(t, srv, http.MethodGet, "/v1/runs/abc", "", nil)
	do(t, srv, http.MethodGet, "/healthz", "", nil)
	do(t, srv, http.MethodGet, "/a1", "", nil)
	do(t, srv, http.MethodGet, "/zz/xx", "", nil)

	want := []string{"/v1/runs/{id}", "/healthz", "unmatched", "unmatched"}
	codes := []int{http.StatusNotFound, http.StatusOK, http.StatusNotFound, http.StatusNotFound}
	if len(rec.routes) != len(want) {
		t.Fatalf("routes = %v, want %v", rec.routes, want)
	}
	for i := range want {
		if rec.routes[i] != want[i] {
			t.Errorf("routes[%d] = %q, want %q", i, rec.routes[i], want[i])
		}
		if rec.starts[i] != want[i] {
			t.Errorf("request route[%d] = %q, want %q", i, rec.starts[i], want[i])
		}
		if rec.codes[i] != codes[i] {
			t.Errorf("codes[%d] = %d, want %d", i, rec.codes[i], codes[i])
		}
	}
}

func TestListenAndServeShutsDown(t *testing.T) {
	srv := New(Config{Logger: log.New(io.Discard)})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
