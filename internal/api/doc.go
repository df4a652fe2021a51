// Package api serves the solver over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness probe
//	GET  /v1/strategies    available strategies
//	POST /v1/solve         solve one problem
//	POST /v1/compare       solve one problem with several strategies
//	GET  /v1/runs          recent runs from the history store
//	GET  /v1/runs/{id}     one recorded run
//	GET  /metrics          Prometheus metrics, when a handler is configured
//
// Request bodies are JSON encodings of [solver.Options] plus a "timeout"
// duration string such as "5s". Errors are returned as
//
//	{"error": {"code": "INVALID_BOARD", "message": "..."}}
//
// with the HTTP status chosen by [errors.HTTPStatus]. A search stopped by
// its timeout or expansion budget also carries the partial "result".
package api
