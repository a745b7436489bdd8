// internal/api/router.go
package api

import (
	"net/http"

	"freelance-match/internal/common/logger"
)

// NewMux wires the route table. /metrics and shutdown endpoints stay with
// main(), which owns the exporter and the server handle.
func NewMux(eng Ranker, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	ph := ProjectsHandler{Engine: eng}
	mux.Handle("/api/projects/", Chain(http.HandlerFunc(ph.ByPath), Auth))

	mh := MatchHandler{Engine: eng}
	mux.Handle("/api/match/query", Chain(methodMux(map[string]http.HandlerFunc{
		http.MethodPost: mh.Query,
	}), Auth))

	hh := HealthHandler{}
	mux.HandleFunc("/healthz", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}

// Handler wraps the mux with the cross-cutting middleware stack.
func Handler(eng Ranker, log logger.Logger) http.Handler {
	return Chain(NewMux(eng, log), RequestID, Recover(log), AccessLog(log))
}
