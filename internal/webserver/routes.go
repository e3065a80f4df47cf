package webserver

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzhttp"

	"github.com/afmlabs/evaldash/internal/gate"
	"github.com/afmlabs/evaldash/internal/observability"
	"github.com/afmlabs/evaldash/internal/webapi"
	"github.com/afmlabs/evaldash/web"
)

const loginPage = "login.html"

// registerRoutes sets up API and page routes on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config) error {
	webapi.RegisterRoutes(mux, webapi.NewHandlers(cfg.API))
	mux.HandleFunc("/api/", handleAPINotFound)

	pages, err := pageHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize page handler: %w", err)
	}
	mux.Handle("/", pages)
	return nil
}

// buildHandler wraps mux with the middleware chain, outermost first:
// recovery, request id, logging, gate, CORS, gzip, metrics.
func buildHandler(mux *http.ServeMux, cfg Config) http.Handler {
	var h http.Handler = mux
	h = cfg.Metrics.Middleware(h)
	h = gzhttp.GzipHandler(h)
	h = webapi.CORSMiddleware(h, cfg.AllowedOrigins...)
	h = cfg.Gate.Middleware(h)
	h = logMiddleware(h)
	h = requestIDMiddleware(cfg.Logger, h)
	return recoveryMiddleware(h)
}

// opsHandler serves Prometheus metrics and a liveness probe.
func opsHandler(m *observability.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok") //nolint:errcheck
	})
	return mux
}

// handleAPINotFound returns a JSON 404 for unknown API endpoints.
func handleAPINotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(webapi.ErrorResponse{Error: "not found", Code: http.StatusNotFound}) //nolint:errcheck
}

// pageHandler serves the embedded pages. /login gets the login page; any
// other path that is not an asset falls back to index.html for client routing.
func pageHandler() (http.Handler, error) {
	distFS, err := fs.Sub(web.Assets, "dist")
	if err != nil {
		return nil, fmt.Errorf("failed to create sub filesystem for web/dist: %w", err)
	}

	fileServer := http.FileServer(http.FS(distFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path == gate.LoginPath || strings.HasPrefix(path, gate.LoginPath+"/") {
			http.ServeFileFS(w, r, distFS, loginPage)
			return
		}

		if path != "/" {
			cleanPath := strings.TrimPrefix(path, "/")
			if f, err := distFS.Open(cleanPath); err == nil {
				f.Close() //nolint:errcheck
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	}), nil
}
