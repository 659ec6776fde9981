package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelModule = "module"
	ProfilingLabelRoute  = "route"
	ProfilingLabelMethod = "method"
)

// Profiling tags CPU samples taken while a request runs with its module,
// route and method so Pyroscope can slice profiles per endpoint. Health and
// scrape endpoints are left untagged.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || isProbeRoute(route) {
			c.Next()
			return
		}

		labels := []string{ProfilingLabelRoute, route, ProfilingLabelMethod, c.Request.Method}
		if module := moduleFromRoute(route); module != "" {
			labels = append(labels, ProfilingLabelModule, module)
		}

		pyroscope.TagWrapper(c.Request.Context(), pyroscope.Labels(labels...), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func isProbeRoute(route string) bool {
	return route == "/metrics" || strings.HasPrefix(route, "/api/health")
}

// moduleFromRoute returns the segment after /api: "/api/crm/leads/:id" -> "crm"
func moduleFromRoute(route string) string {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	if len(parts) < 2 || parts[0] != "api" || strings.HasPrefix(parts[1], ":") {
		return ""
	}
	return parts[1]
}
