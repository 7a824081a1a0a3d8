package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Finure/app-gateway/internal/config"
	"github.com/Finure/app-gateway/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestID(), Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/fail", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "response", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])
	assert.NotEmpty(t, entries[0].ContextMap()["req_id"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("generated", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "0b9d6c5e-3c1f-4a57-9f0e-2f6a8d1c7b42")

		w := serve(r, req)
		assert.Equal(t, "0b9d6c5e-3c1f-4a57-9f0e-2f6a8d1c7b42", w.Header().Get(RequestIDHeader))
	})

	t.Run("malformed replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")

		w := serve(r, req)
		assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
	})
}

func TestRequestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(RequestTimeout(10 * time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
			c.Status(http.StatusGatewayTimeout)
		case <-time.After(time.Second):
			c.Status(http.StatusOK)
		}
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestRequestTimeoutDisabled(t *testing.T) {
	r := gin.New()
	r.Use(RequestTimeout(0))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestCORS(t *testing.T) {
	newRouter := func(cfg config.CORS) *gin.Engine {
		r := gin.New()
		r.Use(CORS(cfg))
		r.POST("/apply", func(c *gin.Context) { c.Status(http.StatusOK) })

		return r
	}

	preflight := func(origin string) *http.Request {
		req := httptest.NewRequest(http.MethodOptions, "/apply", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		return req
	}

	t.Run("any origin", func(t *testing.T) {
		r := newRouter(config.CORS{
			AllowMethods: []string{http.MethodPost},
			AllowHeaders: []string{"Content-Type"},
		})

		w := serve(r, preflight("https://finure.example"))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://finure.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("advertises methods", func(t *testing.T) {
		r := newRouter(config.CORS{
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		})

		w := serve(r, preflight("https://finure.example"))
		assert.Equal(t, "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("restricted origins", func(t *testing.T) {
		r := newRouter(config.CORS{
			AllowOrigins: []string{"https://finure.example"},
			AllowMethods: []string{http.MethodPost},
		})

		w := serve(r, preflight("https://evil.example"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		r := newRouter(config.CORS{Disabled: true})

		req := httptest.NewRequest(http.MethodPost, "/apply", nil)
		req.Header.Set("Origin", "https://finure.example")

		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/metrics-test/:id", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	serve(r, httptest.NewRequest(http.MethodGet, "/metrics-test/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/metrics-test/2", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(
		metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/metrics-test/:id", "202"),
	))
}
