package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"healthadvisor.app/internal/ports"
)

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// getHealth is a liveness probe; it never consults dependencies
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "OK", Service: serviceName})
}

// getComponentHealth reports per-component status without affecting liveness
func (s *HTTPServerAdapter) getComponentHealth(c *gin.Context) {
	components := map[string]ports.HealthStatus{}
	if s.healthChecker != nil {
		components = s.healthChecker.CheckAll(c.Request.Context())
	}

	overall := "healthy"
	for _, status := range components {
		if status.Status == "unhealthy" {
			overall = "degraded"
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     overall,
		"service":    serviceName,
		"components": components,
	})
}
