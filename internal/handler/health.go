package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusHealthy is the only status the service ever reports.
const StatusHealthy = "healthy"

// HealthStatus is the /health response body. Field order is the wire order.
type HealthStatus struct {
	Status        string `json:"status"`
	Hostname      string `json:"hostname"`
	UptimeSeconds int64  `json:"uptime"`
}

// Health writes a fresh HealthStatus.
func (h *PageHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{
		Status:        StatusHealthy,
		Hostname:      h.host.Hostname(),
		UptimeSeconds: h.host.UptimeSeconds(),
	})
}
