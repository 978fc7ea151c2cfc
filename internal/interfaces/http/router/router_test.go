package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func TestRouterMountsUnderVersionPrefix(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("/widgets")
	group.GET("", okHandler)
	r.Register(group)
	r.Setup()

	assert.Equal(t, http.StatusOK, doRequest(engine, http.MethodGet, "/api/v1/widgets").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(engine, http.MethodGet, "/widgets").Code)
}

func TestRouterDefaultVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("/widgets")
	group.GET("", okHandler)
	r.Register(group)
	r.Setup()

	assert.Equal(t, http.StatusOK, doRequest(engine, http.MethodGet, "/api/v1/widgets").Code)
}

func TestRouterUseAppliesToAllGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.Header("X-Test", "applied")
	})

	group := NewDomainGroup("/widgets")
	group.GET("", okHandler)
	r.Register(group)
	r.Setup()

	w := doRequest(engine, http.MethodGet, "/api/v1/widgets")
	assert.Equal(t, "applied", w.Header().Get("X-Test"))
}

func TestDomainGroupMethods(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("/widgets")
	group.GET("", okHandler)
	group.POST("", okHandler)
	group.GET("/:id", okHandler)
	group.PUT("/:id", okHandler)
	group.PATCH("/:id", okHandler)
	group.DELETE("/:id", okHandler)
	r.Register(group)
	r.Setup()

	for _, method := range []string{
		http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete,
	} {
		assert.Equal(t, http.StatusOK, doRequest(engine, method, "/api/v1/widgets/abc").Code, method)
	}
	assert.Equal(t, http.StatusOK, doRequest(engine, http.MethodPost, "/api/v1/widgets").Code)
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("/widgets")
	group.Use(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"blocked": true})
	})
	group.GET("", okHandler)
	r.Register(group)
	r.Setup()

	assert.Equal(t, http.StatusForbidden, doRequest(engine, http.MethodGet, "/api/v1/widgets").Code)
}

func TestDomainGroupSubgroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("/boards")
	group.GET("/:id", okHandler)
	columns := group.Group("/:id/columns")
	columns.POST("", okHandler)
	columns.DELETE("/:columnId", okHandler)
	r.Register(group)
	r.Setup()

	assert.Equal(t, http.StatusOK, doRequest(engine, http.MethodGet, "/api/v1/boards/b1").Code)
	assert.Equal(t, http.StatusOK, doRequest(engine, http.MethodPost, "/api/v1/boards/b1/columns").Code)
	assert.Equal(t, http.StatusOK, doRequest(engine, http.MethodDelete, "/api/v1/boards/b1/columns/c1").Code)
}

func TestPerRouteHandlerChain(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	guard := func(c *gin.Context) {
		if c.GetHeader("X-Allow") == "" {
			c.AbortWithStatus(http.StatusForbidden)
		}
	}

	group := NewDomainGroup("/widgets")
	group.POST("", guard, okHandler)
	group.GET("", okHandler)
	r.Register(group)
	r.Setup()

	assert.Equal(t, http.StatusForbidden, doRequest(engine, http.MethodPost, "/api/v1/widgets").Code)
	assert.Equal(t, http.StatusOK, doRequest(engine, http.MethodGet, "/api/v1/widgets").Code)
}
