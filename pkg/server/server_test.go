package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bitsbytes/blog/internal/config"
	"github.com/bitsbytes/blog/internal/dev"
	"github.com/bitsbytes/blog/pkg/pages"
	"github.com/bitsbytes/blog/pkg/theme"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testPages = pages.Static{
	"index.html":       "<h1>Hello</h1>",
	"posts/first.html": "<article>First post</article>",
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, cfg *config.Config, opts ...Option) *Server {
	t.Helper()
	if cfg == nil {
		cfg = config.New()
	}
	opts = append([]Option{
		WithSource(testPages),
		WithRegistry(prometheus.NewRegistry()),
		WithLogger(quietLogger()),
	}, opts...)
	srv, err := New(cfg, opts...)
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPagesThroughLayout(t *testing.T) {
	srv := newTestServer(t, nil)
	h := srv.Handler()

	rec := get(t, h, "/", &http.Cookie{Name: theme.CookieName, Value: "dark"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `data-color-theme="dark"`)
	assert.Contains(t, body, `style="`+theme.DarkTokens.Style()+`"`)
	assert.Contains(t, body, "<title>Bits &amp; Bytes</title>")
	assert.Contains(t, body, "<main><h1>Hello</h1></main>")
	assert.Equal(t, "Cookie", rec.Header().Get("Vary"))

	rec = get(t, h, "/posts/first")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-color-theme="light"`)
	assert.Contains(t, rec.Body.String(), "<article>First post</article>")
}

func TestNotFoundKeepsShell(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := get(t, srv.Handler(), "/missing", &http.Cookie{Name: theme.CookieName, Value: "purple"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-color-theme="light"`)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := get(t, srv.Handler(), HealthPath)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStaticStylesheet(t *testing.T) {
	srv := newTestServer(t, nil)
	h := srv.Handler()

	fingerprinted := srv.Manifest().Resolve("styles.css")
	require.NotEqual(t, "styles.css", fingerprinted)

	page := get(t, h, "/")
	href := "/static/" + fingerprinted
	assert.Contains(t, page.Body.String(), `href="`+href+`"`)

	rec := get(t, h, href)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rec.Body.String(), "var(--color-background)")

	rec = get(t, h, "/static/styles.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600, must-revalidate", rec.Header().Get("Cache-Control"))

	assert.Equal(t, http.StatusNotFound, get(t, h, "/static/nope.css").Code)
}

func TestStaticRejectsDirectoryNames(t *testing.T) {
	h := newTestServer(t, nil).Handler()

	tests := []string{
		"/static/",
		"/static/.",
		"/static/nope.css",
		"/static/./styles.css",
	}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, get(t, h, path).Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	h := srv.Handler()

	get(t, h, "/", &http.Cookie{Name: theme.CookieName, Value: "dark"})
	get(t, h, "/", &http.Cookie{Name: theme.CookieName, Value: "purple"})
	get(t, h, "/")

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `blog_theme_resolutions_total{source="cookie",theme="dark"} 1`)
	assert.Contains(t, body, `blog_theme_resolutions_total{source="fallback",theme="light"} 1`)
	assert.Contains(t, body, `blog_theme_resolutions_total{source="default",theme="light"} 1`)
	assert.Contains(t, body, `blog_http_requests_total{method="GET",route="/*",status="200"} 3`)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.New()
	cfg.Metrics.Enabled = false
	srv := newTestServer(t, cfg)

	assert.Nil(t, srv.MetricsHandler())
	// Without a metrics route the path falls through to the page source.
	assert.Equal(t, http.StatusNotFound, get(t, srv.Handler(), "/metrics").Code)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.New()
	cfg.Server.Port = -1

	_, err := New(cfg, WithLogger(quietLogger()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E102")
}

func TestSourceFromConfig(t *testing.T) {
	cfg := config.New()
	_, ok := SourceFromConfig(cfg).(*pages.FSSource)
	assert.True(t, ok, "directory source expected by default")

	cfg.Pages.Bucket = "blog-pages"
	cfg.Pages.Region = "eu-west-1"
	_, ok = SourceFromConfig(cfg).(*pages.S3Source)
	assert.True(t, ok, "S3 source expected when a bucket is set")
}

func noKeepAliveClient() *http.Client {
	return &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
}

func startServe(t *testing.T, srv *Server, metricsLn net.Listener) (string, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln, metricsLn) }()

	return "http://" + ln.Addr().String(), func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after cancel")
		}
	}
}

func TestServeAndShutdown(t *testing.T) {
	srv := newTestServer(t, nil)
	base, stop := startServe(t, srv, nil)

	resp, err := noKeepAliveClient().Get(base + HealthPath)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	stop()

	_, err = noKeepAliveClient().Get(base + HealthPath)
	assert.Error(t, err, "listener should be closed after shutdown")
}

func TestSeparateMetricsListener(t *testing.T) {
	cfg := config.New()
	cfg.Metrics.Addr = "127.0.0.1:0"
	srv := newTestServer(t, cfg)

	metricsLn, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base, stop := startServe(t, srv, metricsLn)
	defer stop()

	client := noKeepAliveClient()

	resp, err := client.Get(base + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "metrics should not be on the page listener")

	resp, err = client.Get("http://" + metricsLn.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "blog_theme_resolutions_total")
}

func TestRunListenFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	host, port, _ := net.SplitHostPort(taken.Addr().String())
	cfg := config.New()
	cfg.Server.Host = host
	cfg.Server.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	srv := newTestServer(t, cfg)
	err = srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E120")
}

func TestDevLiveReload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>v1</p>"), 0644))

	cfg := config.New()
	cfg.Server.Dev = true
	cfg.Pages.Dir = dir
	cfg.Dev.Debounce = "20ms"
	srv, err := New(cfg, WithRegistry(prometheus.NewRegistry()), WithLogger(quietLogger()))
	require.NoError(t, err)

	base, stop := startServe(t, srv, nil)
	defer stop()

	resp, err := noKeepAliveClient().Get(base + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	page := string(body)
	assert.Contains(t, page, "<p>v1</p>")
	assert.Contains(t, page, dev.ReloadPath, "dev pages carry the reload client")
	assert.Contains(t, page, `href="/static/styles.css"`, "dev mode links the plain stylesheet")

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(base, "http")+dev.ReloadPath, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Let the watcher register the directory before editing.
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>v2</p>"), 0644))

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var msg dev.ReloadMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, dev.ReloadTypeFull, msg.Type)
}

func TestDevStylesheetChangeSendsCSS(t *testing.T) {
	pagesDir := t.TempDir()
	cssDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(pagesDir, "index.html"), []byte("<p>v1</p>"), 0644))

	cfg := config.New()
	cfg.Server.Dev = true
	cfg.Pages.Dir = pagesDir
	cfg.Dev.Watch = []string{cssDir}
	cfg.Dev.Debounce = "20ms"
	srv, err := New(cfg, WithRegistry(prometheus.NewRegistry()), WithLogger(quietLogger()))
	require.NoError(t, err)

	base, stop := startServe(t, srv, nil)
	defer stop()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(base, "http")+dev.ReloadPath, nil)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(150 * time.Millisecond)
	css := filepath.Join(cssDir, "extra.css")
	require.NoError(t, os.WriteFile(css, []byte("body{}"), 0644))

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var msg dev.ReloadMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, dev.ReloadTypeCSS, msg.Type)
	assert.Equal(t, css, msg.File)
}

func TestProductionOmitsReload(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := get(t, srv.Handler(), "/")
	assert.NotContains(t, rec.Body.String(), dev.ReloadPath)
	assert.Equal(t, http.StatusNotFound, get(t, srv.Handler(), dev.ReloadPath).Code)
}
