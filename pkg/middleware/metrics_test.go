package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/bitsbytes/blog/pkg/theme"
)

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func newMetricsRouter(m *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/posts/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chi.URLParam(r, "slug")))
	})
	r.Get("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func TestMetricsHandler_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	h := newMetricsRouter(m)

	for _, path := range []string{"/posts/a", "/posts/b", "/posts/c"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", path, rec.Code)
		}
	}

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/posts/{slug}", "GET", "200")); got != 3 {
		t.Fatalf("http_requests_total=%v, want 3", got)
	}
	if got := metricHistogramCount(t, m.requestDuration.WithLabelValues("/posts/{slug}")); got != 3 {
		t.Fatalf("duration sample count=%d, want 3", got)
	}
}

func TestMetricsHandler_StatusAndUnmatched(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	h := newMetricsRouter(m)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/1", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/2", nil))

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/broken", "GET", "500")); got != 1 {
		t.Errorf("500 count=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues(unmatchedRoute, "GET", "404")); got != 2 {
		t.Errorf("unmatched 404 count=%v, want 2", got)
	}
}

func TestMetrics_ObserveTheme(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	m.ObserveTheme(nil, theme.Resolution{Theme: theme.Dark, Source: theme.SourceCookie})
	m.ObserveTheme(nil, theme.Resolution{Theme: theme.Light, Source: theme.SourceFallback})
	m.ObserveTheme(nil, theme.Resolution{Theme: theme.Light, Source: theme.SourceFallback})

	if got := testutil.ToFloat64(m.themeResolutions.WithLabelValues("dark", "cookie")); got != 1 {
		t.Errorf("dark/cookie=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.themeResolutions.WithLabelValues("light", "fallback")); got != 2 {
		t.Errorf("light/fallback=%v, want 2", got)
	}
	if got := testutil.ToFloat64(m.themeResolutions.WithLabelValues("light", "default")); got != 0 {
		t.Errorf("light/default=%v, want 0", got)
	}

	// Pre-created series: light/cookie, dark/cookie, light/default, light/fallback.
	if got := testutil.CollectAndCount(m.themeResolutions, "test_theme_resolutions_total"); got != 4 {
		t.Errorf("series count=%d, want 4", got)
	}
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(WithRegistry(reg))

	defer func() {
		if recover() == nil {
			t.Fatal("expected second registration on the same registry to panic")
		}
	}()
	NewMetrics(WithRegistry(reg))
}
