package server

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/bitsbytes/blog/internal/config"
	"github.com/bitsbytes/blog/internal/dev"
	blogerrors "github.com/bitsbytes/blog/internal/errors"
	"github.com/bitsbytes/blog/pkg/assets"
	"github.com/bitsbytes/blog/pkg/layout"
	"github.com/bitsbytes/blog/pkg/middleware"
	"github.com/bitsbytes/blog/pkg/pages"
	"github.com/bitsbytes/blog/web"
)

// HealthPath answers liveness probes.
const HealthPath = "/healthz"

// Server is the blog HTTP server.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	source   pages.Source
	static   fs.FS
	manifest *assets.Manifest
	layout   *layout.RootLayout

	registry *prometheus.Registry
	metrics  *middleware.Metrics
	tracer   trace.TracerProvider

	reload  *dev.ReloadServer
	watcher *dev.Watcher

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSource overrides the page source built from the configuration.
func WithSource(src pages.Source) Option {
	return func(s *Server) {
		s.source = src
	}
}

// WithStatic overrides the embedded static files.
func WithStatic(fsys fs.FS) Option {
	return func(s *Server) {
		s.static = fsys
	}
}

// WithRegistry sets the Prometheus registry metrics are registered on.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracer = tp
	}
}

// New creates a Server from cfg.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		logger: slog.Default(),
		static: web.Static(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.source == nil {
		s.source = SourceFromConfig(cfg)
	}

	manifest, err := assets.Fingerprint(s.static, web.StyleSheet)
	if err != nil {
		return nil, blogerrors.New("E110").
			WithDetail("Could not fingerprint " + web.StyleSheet).
			Wrap(err)
	}
	s.manifest = manifest

	if cfg.Metrics.Enabled {
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
			s.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
		s.metrics = middleware.NewMetrics(
			middleware.WithRegistry(s.registry),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
	}

	if cfg.Server.Dev {
		s.reload = dev.NewReloadServer(s.logger)
		s.watcher = dev.NewWatcher(dev.WatcherConfig{
			Paths:    cfg.WatchDirs(),
			Debounce: cfg.ReloadDebounce(),
			Logger:   s.logger,
		})
		s.watcher.OnChange(func(c dev.Change) {
			s.logger.Info("change detected", "path", c.Path, "type", c.Type.String())
			if c.Type == dev.ChangeCSS {
				s.reload.NotifyCSS(c.Path)
				return
			}
			s.reload.NotifyReload()
		})
	}

	s.layout = layout.New(s.layoutOptions()...)
	s.router = s.routes()
	return s, nil
}

// SourceFromConfig builds the page source cfg describes: an S3 bucket
// when pages.bucket is set, the pages directory otherwise. S3
// credentials come from the standard AWS environment variables.
func SourceFromConfig(cfg *config.Config) pages.Source {
	if cfg.UsesS3() {
		client := pages.NewS3Client(pages.S3Options{
			Region:          cfg.Pages.Region,
			Endpoint:        cfg.Pages.Endpoint,
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		})
		return pages.NewS3Source(client, cfg.Pages.Bucket, cfg.Pages.Prefix)
	}
	return pages.NewFSSource(os.DirFS(cfg.Pages.Dir))
}

func (s *Server) layoutOptions() []layout.Option {
	var resolver assets.Resolver
	if s.cfg.Server.Dev {
		resolver = assets.NewPassthroughResolver(s.cfg.Static.Prefix)
	} else {
		resolver = assets.NewResolver(s.manifest, s.cfg.Static.Prefix)
	}

	opts := []layout.Option{
		layout.WithLogger(s.logger),
		layout.WithStyleSheets(resolver.Asset(web.StyleSheet)),
	}
	if s.metrics != nil {
		opts = append(opts, layout.WithObserver(s.metrics.ObserveTheme))
	}
	if s.reload != nil {
		opts = append(opts, layout.WithScripts(dev.ClientScript()))
	}
	return opts
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, middleware.Logger(s.logger), chimw.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Handler)
	}
	r.Use(middleware.OpenTelemetry(
		middleware.WithTracerName(s.cfg.Tracing.Name),
		middleware.WithTracerProvider(s.tracer),
		middleware.WithFilter(s.traced),
	))

	r.Get(HealthPath, handleHealth)
	if s.metrics != nil && s.cfg.Metrics.Addr == "" {
		r.Handle(s.cfg.Metrics.Path, s.MetricsHandler())
	}
	if s.reload != nil {
		r.Handle(dev.ReloadPath, s.reload)
	}

	static := s.cfg.Static.Prefix + "*"
	r.Get(static, s.serveStatic)
	r.Head(static, s.serveStatic)

	r.Handle("/*", s.layout.Handler(s.source))
	return r
}

// traced reports whether a request gets a span. Probes, scrapes and the
// reload socket are skipped.
func (s *Server) traced(r *http.Request) bool {
	switch r.URL.Path {
	case HealthPath, s.cfg.Metrics.Path, dev.ReloadPath:
		return false
	}
	return true
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// MetricsHandler returns the Prometheus exposition handler, or nil when
// metrics are disabled.
func (s *Server) MetricsHandler() http.Handler {
	if s.metrics == nil {
		return nil
	}
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

// Manifest returns the fingerprint manifest of the static files.
func (s *Server) Manifest() *assets.Manifest {
	return s.manifest
}

// Layout returns the root layout pages are rendered with.
func (s *Server) Layout() *layout.RootLayout {
	return s.layout
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte("ok"))
}

// Run listens on the configured addresses and serves until ctx is
// canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := listen(s.cfg.Addr())
	if err != nil {
		return err
	}

	var metricsLn net.Listener
	if s.metrics != nil && s.cfg.Metrics.Addr != "" {
		metricsLn, err = listen(s.cfg.Metrics.Addr)
		if err != nil {
			ln.Close()
			return err
		}
	}

	return s.Serve(ctx, ln, metricsLn)
}

func listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, blogerrors.New("E120").
			WithDetail("Could not listen on " + addr).
			WithSuggestion("Pick another port with --port or BLOG_PORT").
			Wrap(err)
	}
	return ln, nil
}

// Serve serves pages on ln and, when metricsLn is non-nil, metrics on
// metricsLn. It returns after ctx is canceled and every listener has
// shut down, or after the first listener fails.
func (s *Server) Serve(ctx context.Context, ln, metricsLn net.Listener) error {
	servers := []*http.Server{s.httpServer(s.router)}
	listeners := []net.Listener{ln}
	if metricsLn != nil {
		mux := http.NewServeMux()
		mux.Handle(s.cfg.Metrics.Path, s.MetricsHandler())
		servers = append(servers, s.httpServer(mux))
		listeners = append(listeners, metricsLn)
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, srv := range servers {
		srv, l := srv, listeners[i]
		g.Go(func() error {
			s.logger.Info("listening", "address", l.Addr().String())
			if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return blogerrors.New("E120").
					WithDetail("Server on " + l.Addr().String() + " stopped").
					Wrap(err)
			}
			return nil
		})
	}

	if s.watcher != nil {
		g.Go(func() error {
			// A failed watcher only disables live reload.
			if err := s.watcher.Run(gctx); err != nil {
				s.logger.Warn("file watcher stopped", "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
		defer cancel()

		if s.reload != nil {
			s.reload.Close()
		}

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("shutdown error", "error", err)
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	err := g.Wait()
	if err == nil {
		s.logger.Info("server shutdown complete")
	}
	return err
}

func (s *Server) httpServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
}
