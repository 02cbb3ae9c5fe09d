package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)
	return m, reg
}

func TestPrometheusMiddleware(t *testing.T) {
	m, _ := newTestMetrics(t)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("Hello World!") })
	app.Delete("/requests/documents/:documentId?", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/requests/documents", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "File type not allowed")
	})

	app.Test(httptest.NewRequest("GET", "/", nil))
	app.Test(httptest.NewRequest("DELETE", "/requests/documents/abc", nil))
	app.Test(httptest.NewRequest("POST", "/requests/documents", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("DELETE", "/requests/documents/:documentId?", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("POST", "/requests/documents", "415")))
	assert.Greater(t, testutil.CollectAndCount(m.requestDuration), 0)
}

func TestPrometheusMiddleware_LabelsSurviveLaterRequests(t *testing.T) {
	m, reg := newTestMetrics(t)

	app := fiber.New()
	app.Use(m.Handler())
	app.Delete("/requests/documents/:documentId?", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/requests/documents", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, method := range []string{"DELETE", "POST", "DELETE", "POST"} {
		path := "/requests/documents"
		if method == "DELETE" {
			path += "/abc"
		}
		_, err := app.Test(httptest.NewRequest(method, path, nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("DELETE", "/requests/documents/:documentId?", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("POST", "/requests/documents", "200")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		require.Len(t, mf.GetMetric(), 2)
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "method" {
					assert.Contains(t, []string{"DELETE", "POST"}, lp.GetValue())
				}
			}
		}
	}
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	m, reg := newTestMetrics(t)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	app.Test(httptest.NewRequest("GET", "/metrics", nil))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		assert.Empty(t, mf.GetMetric(), "unexpected samples for %s", mf.GetName())
	}
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
