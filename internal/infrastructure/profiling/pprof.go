package profiling

import (
	"net/http"
	"net/http/pprof"
)

// RegisterPprof mounts the standard pprof endpoints under /debug/pprof/:
//   - /debug/pprof/heap
//   - /debug/pprof/goroutine
//   - /debug/pprof/profile (CPU, 30s default)
//   - /debug/pprof/allocs
//   - /debug/pprof/block
//   - /debug/pprof/mutex
func RegisterPprof(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}
