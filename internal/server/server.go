package server

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/natokghor/seoedge/api"
	"github.com/natokghor/seoedge/internal/bot"
	"github.com/natokghor/seoedge/internal/config"
	"github.com/natokghor/seoedge/internal/seo"
	"github.com/natokghor/seoedge/internal/sitemap"
	"github.com/natokghor/seoedge/internal/store"
)

// Server holds dependencies for the HTTP API.
type Server struct {
	store    store.Store
	cfg      *config.Config
	renderer *seo.Renderer
	builder  *sitemap.Builder
	mux      *http.ServeMux
}

// New creates a Server and registers routes.
func New(s store.Store, cfg *config.Config) *Server {
	srv := &Server{
		store:    s,
		cfg:      cfg,
		renderer: seo.NewRenderer(s, cfg.SiteURL, cfg.SiteName),
		builder:  sitemap.NewBuilder(s, cfg.SiteURL),
		mux:      http.NewServeMux(),
	}
	srv.routes()
	return srv
}

func (s *Server) routes() {
	// Both GET and POST are accepted for seo-render: edge proxies forward
	// the original request method unchanged.
	s.mux.HandleFunc("GET /seo-render", s.handleSeoRender)
	s.mux.HandleFunc("POST /seo-render", s.handleSeoRender)
	s.mux.HandleFunc("GET /sitemap", s.handleSitemap)
	s.mux.HandleFunc("GET /robots.txt", s.handleRobots)

	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/docs", handleSwaggerUI)
	s.mux.HandleFunc("GET /api/docs/openapi.yaml", handleOpenAPISpec)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the configured port.
// It blocks until the server is shut down or ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := ":" + s.cfg.ServerPort
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      withCORS(withLogging(s)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("ListenAndServe: %w", err)
	}
	return nil
}

// --- handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSeoRender classifies the caller and either defers to the SPA (JSON
// response) or serves the full pre-rendered document.
func (s *Server) handleSeoRender(w http.ResponseWriter, r *http.Request) {
	userAgent := r.Header.Get("User-Agent")
	if !bot.Detect(userAgent) {
		writeJSON(w, http.StatusOK, map[string]any{
			"isBot":   false,
			"message": "not a crawler, serve the app shell",
		})
		return
	}

	path := r.URL.Query().Get("path")
	html, err := s.renderer.Render(r.Context(), path)
	if err != nil {
		log.Printf("seo-render %q: %v", path, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", s.cacheControl())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleSitemap dispatches on the type query parameter. Unknown types fall
// back to the index and an unparseable page falls back to 1; neither is an
// error.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	var (
		body []byte
		err  error
	)
	switch q.Get("type") {
	case "pages":
		body, err = s.builder.BuildPages(r.Context())
	case "shows":
		body, err = s.builder.BuildShows(r.Context())
	case "categories":
		body, err = s.builder.BuildCategories(r.Context())
	case "episodes":
		body, err = s.builder.BuildEpisodes(r.Context(), page)
	default:
		body, err = s.builder.BuildIndex(r.Context())
	}
	if err != nil {
		log.Printf("sitemap type=%s page=%d: %v", q.Get("type"), page, err)
		writeXMLError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", s.cacheControl())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// handleRobots points crawlers at the sitemap index.
func (s *Server) handleRobots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", s.cacheControl())
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintf(w, "Sitemap: %s/sitemap\n", s.cfg.SiteURL)
}

func (s *Server) cacheControl() string {
	return fmt.Sprintf("public, max-age=%d", s.cfg.CacheMaxAge)
}

// --- middleware ---

// withCORS adds permissive CORS headers to every response and answers
// preflight OPTIONS requests with an empty 200.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, User-Agent")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// withLogging wraps a handler and logs each request with method, path, status, and duration.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		statusColor := colorForStatus(sw.status)
		methodColor := colorForMethod(r.Method)

		target := r.URL.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		log.Printf("%s%-7s\x1b[0m %s%3d\x1b[0m %s  %s",
			methodColor, r.Method,
			statusColor, sw.status,
			formatDuration(time.Since(start)), target,
		)
	})
}

func colorForStatus(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "\x1b[32m" // green
	case code >= 300 && code < 400:
		return "\x1b[36m" // cyan
	case code >= 400 && code < 500:
		return "\x1b[33m" // yellow
	default:
		return "\x1b[31m" // red
	}
}

func colorForMethod(method string) string {
	switch method {
	case http.MethodGet:
		return "\x1b[36m" // cyan
	case http.MethodPost:
		return "\x1b[32m" // green
	default:
		return "\x1b[37m" // white
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dus", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON: %v", err)
	}
}

// xmlError is the error envelope for sitemap responses.
type xmlError struct {
	XMLName xml.Name `xml:"error"`
	Message string   `xml:",chardata"`
}

func writeXMLError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	body, mErr := xml.Marshal(xmlError{Message: err.Error()})
	if mErr != nil {
		body = []byte("<error>internal error</error>")
	}
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(body)
}

// --- docs handlers ---

func handleOpenAPISpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(api.OpenAPISpec)
}

func handleSwaggerUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, swaggerUIHTML)
}

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>seoedge API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
  <style>html{box-sizing:border-box;overflow-y:scroll}*,*:before,*:after{box-sizing:inherit}body{margin:0;background:#fafafa}</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/api/docs/openapi.yaml",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout",
    });
  </script>
</body>
</html>`
