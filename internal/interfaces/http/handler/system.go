package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler exposes unauthenticated service endpoints
type SystemHandler struct {
	BaseHandler
	appName string
	env     string
}

func NewSystemHandler(appName, env string) *SystemHandler {
	return &SystemHandler{appName: appName, env: env}
}

// Info returns service identification
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, gin.H{
		"name":        h.appName,
		"environment": h.env,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}

// Ping is a trivial liveness check
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{"message": "pong"})
}
