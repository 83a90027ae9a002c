// Package handlers provides the HTTP handlers for the quotes screens and
// the operational endpoints.
package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/quotes-client/internal/ports"
)

// BuildInfo contains build-time information injected with ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo creates a BuildInfo with the Go version filled in.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthHandler serves the /-/ operational endpoints.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	gatherer  prometheus.Gatherer
}

// NewHealthHandler creates a health handler. A nil gatherer serves the
// Prometheus default registry.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo, gatherer prometheus.Gatherer) *HealthHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &HealthHandler{
		registry:  registry,
		buildInfo: buildInfo,
		gatherer:  gatherer,
	}
}

type livenessResponse struct {
	Status string `json:"status"`
}

// Liveness reports that the process is up. It checks nothing else.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{Status: "ok"})
}

type readinessResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Readiness runs every registered check, the JSONBin bin among them, and
// answers 503 if any fails.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	status := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, readinessResponse{
		Status: string(result.Status),
		Checks: result.Checks,
	})
}

// BuildInfoHandler serves the build information.
func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// MetricsHandler exposes the handler's gatherer in the Prometheus text format.
func (h *HealthHandler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})
}

// RegisterHealthRoutes registers /live, /ready, /build and /metrics on rg.
func (h *HealthHandler) RegisterHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.BuildInfoHandler)
	rg.GET("/metrics", gin.WrapH(h.MetricsHandler()))
}

// RegisterHealthRoutesOnEngine registers the health routes under /-/.
func (h *HealthHandler) RegisterHealthRoutesOnEngine(engine *gin.Engine) {
	h.RegisterHealthRoutes(engine.Group("/-"))
}
