// Package pprofserver serves the net/http/pprof handlers on a loopback-only
// listener so profiles can be pulled from a running instance.
package pprofserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
)

// Handle registers the pprof handlers on mux.
func Handle(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
}

// Launch starts a pprof server on the ipv6 loopback address ::1 and the given
// port, e.g. ":6060". An empty port leaves profiling off.
func Launch(port string, logger *slog.Logger) {
	if port == "" {
		return
	}
	go func() {
		mux := http.NewServeMux()
		Handle(mux)
		addr := fmt.Sprintf("[::1]%s", port)
		logger.Info("starting pprof server", "addr", addr)
		err := (&http.Server{Addr: addr, Handler: mux}).ListenAndServe()
		logger.Error(err.Error())
		os.Exit(0)
	}()
}
