package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

type pageData struct {
	Hostname      string
	Version       string
	UptimeSeconds int64
	Port          int
}

// Page renders the info page. gin's NoRoute path presets 404, so the status
// is always written explicitly.
func (h *PageHandler) Page(c *gin.Context) {
	c.Render(http.StatusOK, render.HTML{
		Template: h.page,
		Name:     pageTemplateName,
		Data: pageData{
			Hostname:      h.host.Hostname(),
			Version:       h.version,
			UptimeSeconds: h.host.UptimeSeconds(),
			Port:          h.port,
		},
	})
}
