// Package handler implements the service's only request handler: /health
// answers with a JSON status, every other path gets the info page.
package handler

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/richiesure/day3-docker-ecs-deployment/internal/config"
)

// HealthPath is the only path that does not render the info page.
const HealthPath = "/health"

// Route labels used for metrics.
const (
	RouteHealth = "health"
	RoutePage   = "page"
)

const pageTemplateName = "index"

//go:embed templates/index.html
var templateFS embed.FS

// HostInfo is what the handler needs to know about the running host.
type HostInfo interface {
	Hostname() string
	UptimeSeconds() int64
}

// PageHandler dispatches requests on their path.
type PageHandler struct {
	host    HostInfo
	port    int
	version string
	page    *template.Template
}

// NewPageHandler creates a PageHandler. The service config is copied; later
// changes to svc are not observed.
func NewPageHandler(host HostInfo, svc config.ServiceConfig) *PageHandler {
	return &PageHandler{
		host:    host,
		port:    svc.Port,
		version: svc.Version,
		page:    template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}
}

// Route reports which branch a request path takes.
func Route(path string) string {
	if path == HealthPath {
		return RouteHealth
	}
	return RoutePage
}

// Handle serves any request. There is no 404: unknown paths fall through to
// the info page.
func (h *PageHandler) Handle(c *gin.Context) {
	if Route(c.Request.URL.Path) == RouteHealth {
		h.Health(c)
		return
	}
	h.Page(c)
}
