package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/statesearch/pkg/buildinfo"
	errs "github.com/matzehuels/statesearch/pkg/errors"
	"github.com/matzehuels/statesearch/pkg/history"
	"github.com/matzehuels/statesearch/pkg/search"
	"github.com/matzehuels/statesearch/pkg/solver"
)

// solveRequest is the body of /v1/solve and /v1/compare.
type solveRequest struct {
	solver.Options
	Timeout    string   `json:"timeout,omitempty"`
	Strategies []string `json:"strategies,omitempty"` // compare only
}

type strategyInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Informed bool   `json:"informed"`
}

type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

type errorResponse struct {
	Error  errorBody      `json:"error"`
	Result *solver.Result `json:"result,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleStrategies(w http.ResponseWriter, _ *http.Request) {
	var out []strategyInfo
	for _, st := range search.Strategies() {
		out = append(out, strategyInfo{Name: st.String(), Title: st.Title(), Informed: st.Informed()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	opts, _, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	res, err := s.runner.Solve(r.Context(), opts)
	if err != nil {
		s.writeError(w, err, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	opts, strategies, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	results, err := s.runner.Compare(r.Context(), opts, strategies)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := history.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "limit must be a positive integer"), nil)
			return
		}
		limit = n
	}
	runs, err := s.runner.History.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "list runs"), nil)
		return
	}
	if runs == nil {
		runs = []history.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.runner.History.Get(r.Context(), id)
	switch {
	case errors.Is(err, history.ErrNotFound):
		s.writeError(w, errs.New(errs.ErrCodeNotFound, "run %s not found", id), nil)
	case err != nil:
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "get run %s", id), nil)
	default:
		writeJSON(w, http.StatusOK, run)
	}
}

// decode reads a solveRequest and resolves its timeout against the server cap.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (solver.Options, []string, error) {
	var req solveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return solver.Options{}, nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body")
	}

	opts := req.Options
	if req.Timeout != "" {
		d, err := time.ParseDuration(req.Timeout)
		if err != nil || d <= 0 {
			return opts, nil, errs.New(errs.ErrCodeInvalidInput, "invalid timeout %q", req.Timeout)
		}
		opts.Timeout = d
	}
	if opts.Timeout <= 0 {
		opts.Timeout = solver.DefaultTimeout
	}
	opts.Timeout = min(opts.Timeout, s.maxTimeout)
	return opts, req.Strategies, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error, res *solver.Result) {
	status := errs.HTTPStatus(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:  errorBody{Code: code, Message: errs.UserMessage(err)},
		Result: res,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
