package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slugPayload struct {
	Slug string `json:"slug" binding:"required,slug"`
}

func postJSON(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func newValidationEngine(t *testing.T) *gin.Engine {
	t.Helper()
	SetupValidator()

	engine := gin.New()
	engine.POST("/", func(c *gin.Context) {
		var payload slugPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return engine
}

func TestSlugValidationAccepts(t *testing.T) {
	engine := newValidationEngine(t)

	for _, slug := range []string{"acme", "acme-co", "a1-b2-c3", "42"} {
		w := postJSON(engine, `{"slug":"`+slug+`"}`)
		assert.Equal(t, http.StatusOK, w.Code, slug)
	}
}

func TestSlugValidationRejects(t *testing.T) {
	engine := newValidationEngine(t)

	for _, slug := range []string{"Acme", "acme co", "-acme", "acme-", "acme--co", "acme_co"} {
		w := postJSON(engine, `{"slug":"`+slug+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, slug)
	}
}

func TestValidationErrorResponseShape(t *testing.T) {
	engine := newValidationEngine(t)

	w := postJSON(engine, `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `"success":false`)
	assert.Contains(t, body, "VALIDATION_ERROR")
	assert.Contains(t, body, `"field":"slug"`)
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
