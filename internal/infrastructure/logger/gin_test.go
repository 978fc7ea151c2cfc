package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveLogged(t *testing.T, level zapcore.Level, setup func(*gin.Engine), target string) (*httptest.ResponseRecorder, *observer.ObservedLogs) {
	t.Helper()

	core, recorded := observer.New(level)
	router := gin.New()
	setup(router)
	router.Use(GinMiddleware(zap.New(core)))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", target, nil)
	router.ServeHTTP(w, req)
	return w, recorded
}

func completionLog(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := recorded.FilterMessage("request completed").All()
	require.Len(t, entries, 1, "expected exactly one completion log")
	return entries[0]
}

func fieldMap(entry observer.LoggedEntry) map[string]zapcore.Field {
	m := make(map[string]zapcore.Field, len(entry.Context))
	for _, f := range entry.Context {
		m[f.Key] = f
	}
	return m
}

func TestGinMiddlewareLogsCompletion(t *testing.T) {
	w, recorded := serveLogged(t, zapcore.InfoLevel, func(r *gin.Engine) {
		r.Use(func(c *gin.Context) { c.Next() })
	}, "/missing")
	// 404 from gin's default handler still produces a completion log
	assert.Equal(t, http.StatusNotFound, w.Code)
	entry := completionLog(t, recorded)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
}

func TestGinMiddlewareLevelByStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"success is info", http.StatusOK, zapcore.InfoLevel},
		{"client error is warn", http.StatusConflict, zapcore.WarnLevel},
		{"server error is error", http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.InfoLevel)
			router := gin.New()
			router.Use(GinMiddleware(zap.New(core)))
			router.GET("/probe", func(c *gin.Context) {
				c.Status(tc.status)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/probe", nil)
			router.ServeHTTP(w, req)

			entry := completionLog(t, recorded)
			assert.Equal(t, tc.level, entry.Level)
		})
	}
}

func TestGinMiddlewareCarriesRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("X-Request-ID", "req-42")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ok", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	entry := completionLog(t, recorded)
	fields := fieldMap(entry)
	require.Contains(t, fields, "request_id")
	assert.Equal(t, "req-42", fields["request_id"].String)
}

func TestGinMiddlewareIdentityFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	// downstream of the logger, like the JWT middleware in production
	router.Use(func(c *gin.Context) {
		c.Set("jwt_tenant_id", "org-1")
		c.Set("jwt_user_id", "user-1")
		c.Next()
	})
	router.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me?verbose=1", nil)
	req.Header.Set("User-Agent", "bizgrid-test/1.0")
	router.ServeHTTP(w, req)

	fields := fieldMap(completionLog(t, recorded))
	assert.Equal(t, "org-1", fields["org_id"].String)
	assert.Equal(t, "user-1", fields["user_id"].String)
	assert.Equal(t, "verbose=1", fields["query"].String)
	assert.Equal(t, "bizgrid-test/1.0", fields["user_agent"].String)
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "latency")
	assert.Contains(t, fields, "client_ip")
}

func TestRecoveryLogsPanicAndReturns500(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/boom", nil)
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entries := recorded.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	assert.Contains(t, fieldMap(entries[0]), "stacktrace")
}

func TestGetGinLogger(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	var got *zap.Logger

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) {
		got = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ok", nil)
	router.ServeHTTP(w, req)

	assert.NotNil(t, got)
}

func TestGetGinLoggerWithoutMiddleware(t *testing.T) {
	var got *zap.Logger

	router := gin.New()
	router.GET("/ok", func(c *gin.Context) {
		got = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ok", nil)
	router.ServeHTTP(w, req)

	require.NotNil(t, got, "falls back to a nop logger")
	assert.NotPanics(t, func() { got.Info("noop") })
}
